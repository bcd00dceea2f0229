package cache

// Tiered layers an in-process LRU in front of an optional persistent
// Store, promoting a persistent-tier hit back into the LRU so a second
// lookup for the same key never leaves the process (spec §4.13
// expansion).
type Tiered struct {
	l1 *LRU
	l2 Store // nil when no persistent tier is configured
}

// NewTiered builds a two-tier cache. l2 may be nil.
func NewTiered(l1 *LRU, l2 Store) *Tiered {
	return &Tiered{l1: l1, l2: l2}
}

// Get implements Store.
func (t *Tiered) Get(key Key) (Entry, bool, error) {
	if e, ok, _ := t.l1.Get(key); ok {
		return e, true, nil
	}
	if t.l2 == nil {
		return Entry{}, false, nil
	}
	e, ok, err := t.l2.Get(key)
	if err != nil || !ok {
		return e, ok, err
	}
	_ = t.l1.Set(key, e)
	return e, true, nil
}

// Set implements Store, writing through both tiers.
func (t *Tiered) Set(key Key, entry Entry) error {
	if err := t.l1.Set(key, entry); err != nil {
		return err
	}
	if t.l2 == nil {
		return nil
	}
	return t.l2.Set(key, entry)
}

// Clear implements Store, clearing both tiers.
func (t *Tiered) Clear() error {
	if err := t.l1.Clear(); err != nil {
		return err
	}
	if t.l2 == nil {
		return nil
	}
	return t.l2.Clear()
}
