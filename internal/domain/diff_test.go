package domain

import (
	"math"
	"testing"
)

func layer(id string, extra map[string]any) map[string]any {
	m := map[string]any{"id": id}
	for k, v := range extra {
		m[k] = v
	}
	return m
}

func TestCompare_IdenticalSnapshots(t *testing.T) {
	a := testSnapshot("x")
	b := testSnapshot("x")

	result := Compare(a, b)
	if len(result.Changes) != 0 {
		t.Errorf("expected no changes, got %v", result.Changes)
	}
	if result.Similarity != 1 {
		t.Errorf("similarity = %v, want 1", result.Similarity)
	}
}

func TestCompare_LayerAddedRemovedModified(t *testing.T) {
	a := Snapshot{"layers": []any{
		layer("bg", map[string]any{"fill": "white"}),
		layer("title", map[string]any{"text": "Hello"}),
		layer("old", nil),
	}}
	b := Snapshot{"layers": []any{
		layer("bg", map[string]any{"fill": "black"}),
		layer("title", map[string]any{"text": "Hello"}),
		layer("new", nil),
	}}

	result := Compare(a, b)

	byPath := map[string]ChangeType{}
	for _, ch := range result.Changes {
		byPath[ch.Path] = ch.Type
	}

	if byPath["layers/bg"] != ChangeLayerModified {
		t.Errorf("layers/bg = %s, want %s", byPath["layers/bg"], ChangeLayerModified)
	}
	if byPath["layers/old"] != ChangeLayerRemoved {
		t.Errorf("layers/old = %s, want %s", byPath["layers/old"], ChangeLayerRemoved)
	}
	if byPath["layers/new"] != ChangeLayerAdded {
		t.Errorf("layers/new = %s, want %s", byPath["layers/new"], ChangeLayerAdded)
	}
	if _, ok := byPath["layers/title"]; ok {
		t.Error("unchanged layer reported as change")
	}
	if len(result.Changes) != 3 {
		t.Errorf("got %d changes, want 3", len(result.Changes))
	}
}

func TestCompare_CanvasResized(t *testing.T) {
	a := Snapshot{"canvas": map[string]any{"width": float64(800), "height": float64(600)}}
	b := Snapshot{"canvas": map[string]any{"width": float64(1024), "height": float64(600)}}

	result := Compare(a, b)
	if len(result.Changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(result.Changes))
	}
	if result.Changes[0].Type != ChangeCanvasResized {
		t.Errorf("type = %s, want %s", result.Changes[0].Type, ChangeCanvasResized)
	}
}

func TestCompare_MetadataKeys(t *testing.T) {
	a := Snapshot{"theme": "light", "grid": true}
	b := Snapshot{"theme": "dark", "grid": true}

	result := Compare(a, b)
	if len(result.Changes) != 1 {
		t.Fatalf("got %d changes, want 1: %v", len(result.Changes), result.Changes)
	}
	ch := result.Changes[0]
	if ch.Type != ChangeMetadataChanged || ch.Path != "theme" {
		t.Errorf("got %s at %s, want %s at theme", ch.Type, ch.Path, ChangeMetadataChanged)
	}
	if ch.Before != "light" || ch.After != "dark" {
		t.Errorf("before/after = %v/%v", ch.Before, ch.After)
	}
}

func TestCompare_SimilarityScales(t *testing.T) {
	a := Snapshot{"layers": []any{layer("l1", map[string]any{"x": float64(0)})}}
	b := Snapshot{"layers": []any{layer("l1", map[string]any{"x": float64(1)})}}

	result := Compare(a, b)
	want := 1 - 1.0/20
	if math.Abs(result.Similarity-want) > 1e-9 {
		t.Errorf("similarity = %v, want %v", result.Similarity, want)
	}
}

func TestCompare_SimilarityFloorsAtZero(t *testing.T) {
	aLayers := make([]any, 0, 25)
	bLayers := make([]any, 0, 25)
	for i := 0; i < 25; i++ {
		aLayers = append(aLayers, layer(idFor(i, "a"), nil))
		bLayers = append(bLayers, layer(idFor(i, "b"), nil))
	}
	result := Compare(Snapshot{"layers": aLayers}, Snapshot{"layers": bLayers})
	if result.Similarity != 0 {
		t.Errorf("similarity = %v, want 0", result.Similarity)
	}
}

func idFor(i int, side string) string {
	return side + string(rune('a'+i%26)) + string(rune('0'+i/26))
}

func TestCompare_IDlessLayersFallBackToPosition(t *testing.T) {
	a := Snapshot{"layers": []any{map[string]any{"fill": "red"}}}
	b := Snapshot{"layers": []any{map[string]any{"fill": "blue"}}}

	result := Compare(a, b)
	if len(result.Changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(result.Changes))
	}
	if result.Changes[0].Path != "layers/0" {
		t.Errorf("path = %s, want layers/0", result.Changes[0].Path)
	}
}
