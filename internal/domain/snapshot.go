package domain

import "encoding/json"

// Snapshot is an opaque design-state value. The store never interprets its
// content: it only deep-copies it, diffs it structurally, and round-trips it
// through JSON. Values must stay JSON-representable (maps, slices, strings,
// numbers, bools, nil).
type Snapshot map[string]any

// SnapshotFromJSON parses a JSON object into a Snapshot.
func SnapshotFromJSON(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s, nil
}

// JSON serializes the snapshot.
func (s Snapshot) JSON() ([]byte, error) {
	return json.Marshal(s)
}

// Clone returns a deep copy. Nodes store clones so that no caller can mutate
// history after the fact.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	return cloneValue(map[string]any(s)).(map[string]any)
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		// Scalars (string, float64, bool, nil) are immutable by value.
		return v
	}
}
