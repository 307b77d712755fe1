package domain

import (
	"fmt"
	"reflect"
	"sort"
)

// ChangeType classifies one structural difference between two snapshots.
type ChangeType string

const (
	ChangeLayerAdded      ChangeType = "layer_added"
	ChangeLayerRemoved    ChangeType = "layer_removed"
	ChangeLayerModified   ChangeType = "layer_modified"
	ChangeCanvasResized   ChangeType = "canvas_resized"
	ChangeMetadataChanged ChangeType = "metadata_changed"
)

// ChangeDetail describes a single change with its location and the values on
// either side.
type ChangeDetail struct {
	Type   ChangeType `json:"type"`
	Path   string     `json:"path"`
	Before any        `json:"before,omitempty"`
	After  any        `json:"after,omitempty"`
}

// DiffResult is the outcome of comparing two snapshots. Similarity is
// advisory: renderers use it to pick a transition style, nothing more.
type DiffResult struct {
	Changes    []ChangeDetail `json:"changes"`
	Similarity float64        `json:"similarity"`
}

// similarityNormalizer bounds the similarity score: similarity is
// 1 - changes/similarityNormalizer, floored at 0. Twenty changes or more
// count as "completely different". Tunable.
const similarityNormalizer = 20

// Compare diffs two snapshots structurally. It understands the conventional
// envelope only: a "layers" array of objects keyed by "id", a "canvas"
// object, and everything else treated as metadata. It never interprets what
// a layer means.
func Compare(a, b Snapshot) DiffResult {
	var changes []ChangeDetail
	changes = append(changes, diffLayers(a["layers"], b["layers"])...)
	changes = append(changes, diffCanvas(a["canvas"], b["canvas"])...)
	changes = append(changes, diffMetadata(a, b)...)

	similarity := 1 - float64(len(changes))/similarityNormalizer
	if similarity < 0 {
		similarity = 0
	}
	return DiffResult{Changes: changes, Similarity: similarity}
}

func diffLayers(a, b any) []ChangeDetail {
	before := layersByID(a)
	after := layersByID(b)

	ids := make([]string, 0, len(before)+len(after))
	for id := range before {
		ids = append(ids, id)
	}
	for id := range after {
		if _, seen := before[id]; !seen {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	var changes []ChangeDetail
	for _, id := range ids {
		old, hadOld := before[id]
		cur, hasCur := after[id]
		path := "layers/" + id
		switch {
		case hadOld && !hasCur:
			changes = append(changes, ChangeDetail{Type: ChangeLayerRemoved, Path: path, Before: old})
		case !hadOld && hasCur:
			changes = append(changes, ChangeDetail{Type: ChangeLayerAdded, Path: path, After: cur})
		case !reflect.DeepEqual(old, cur):
			changes = append(changes, ChangeDetail{Type: ChangeLayerModified, Path: path, Before: old, After: cur})
		}
	}
	return changes
}

// layersByID indexes a layers array by each element's "id" field, falling
// back to the element's position for id-less entries.
func layersByID(v any) map[string]any {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make(map[string]any, len(list))
	for i, item := range list {
		key := fmt.Sprintf("%d", i)
		if m, ok := item.(map[string]any); ok {
			if id, ok := m["id"].(string); ok && id != "" {
				key = id
			}
		}
		out[key] = item
	}
	return out
}

func diffCanvas(a, b any) []ChangeDetail {
	if reflect.DeepEqual(a, b) {
		return nil
	}
	return []ChangeDetail{{Type: ChangeCanvasResized, Path: "canvas", Before: a, After: b}}
}

// diffMetadata compares every top-level key other than layers and canvas.
func diffMetadata(a, b Snapshot) []ChangeDetail {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, seen := a[k]; !seen {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var changes []ChangeDetail
	for _, k := range keys {
		if k == "layers" || k == "canvas" {
			continue
		}
		if !reflect.DeepEqual(a[k], b[k]) {
			changes = append(changes, ChangeDetail{Type: ChangeMetadataChanged, Path: k, Before: a[k], After: b[k]})
		}
	}
	return changes
}
