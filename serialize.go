package mdchunk

import "encoding/json"

// jsonEqual compares two values by round-tripping both through
// encoding/json, which is how Go canonicalizes map key order and numeric
// types (ints become float64). This is what makes the serialization
// round-trip property (spec §8.1 property 6, §6.2) checkable without the
// engine hand-rolling a canonical-form comparator.
func jsonEqual(a, b any) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(ab) == string(bb)
}

// Serialize encodes a Chunk as the record described in spec §6.2: sorted
// keys (encoding/json sorts map[string]any keys natively), UTF-8, no
// trailing whitespace appended by the encoder.
func Serialize(c Chunk) ([]byte, error) {
	return json.Marshal(c)
}

// Deserialize decodes a Chunk previously produced by Serialize.
func Deserialize(data []byte) (Chunk, error) {
	var c Chunk
	err := json.Unmarshal(data, &c)
	return c, err
}
