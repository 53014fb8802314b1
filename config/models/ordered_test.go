package models

import (
	"encoding/json"
	"testing"
)

func TestOrderedMapInsertionOrder(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("zeta", 1)
	m.Set("alpha", 2)
	m.Set("mid", 3)

	want := []string{"zeta", "alpha", "mid"}
	got := m.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys() = %v, want %v", got, want)
		}
	}

	// Overwriting keeps the original position.
	m.Set("zeta", 9)
	if m.Keys()[0] != "zeta" {
		t.Errorf("overwrite moved key: %v", m.Keys())
	}
	if v, _ := m.Get("zeta"); v != 9 {
		t.Errorf("Get(zeta) = %d, want 9", v)
	}
}

func TestOrderedMapDelete(t *testing.T) {
	m := NewOrderedMap[string]()
	m.Set("a", "1")
	m.Set("b", "2")
	m.Set("c", "3")

	m.Delete("b")
	if m.Has("b") {
		t.Error("b still present after Delete")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
	keys := m.Keys()
	if keys[0] != "a" || keys[1] != "c" {
		t.Errorf("Keys() = %v, want [a c]", keys)
	}

	// Deleting an absent key is a no-op.
	m.Delete("missing")
	if m.Len() != 2 {
		t.Errorf("Len() = %d after no-op delete, want 2", m.Len())
	}
}

func TestOrderedMapJSONRoundTrip(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("second", 2)
	m.Set("first", 1)
	m.Set("third", 3)

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"second":2,"first":1,"third":3}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	decoded := NewOrderedMap[int]()
	if err := json.Unmarshal(data, decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	keys := decoded.Keys()
	if len(keys) != 3 || keys[0] != "second" || keys[1] != "first" || keys[2] != "third" {
		t.Errorf("decoded key order = %v", keys)
	}
	if v, _ := decoded.Get("first"); v != 1 {
		t.Errorf("decoded Get(first) = %d, want 1", v)
	}
}

func TestOrderedMapUnmarshalNull(t *testing.T) {
	m := NewOrderedMap[int]()
	if err := json.Unmarshal([]byte(`null`), m); err != nil {
		t.Fatalf("Unmarshal null: %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d after null, want 0", m.Len())
	}
}

func TestOrderedMapUnmarshalRejectsNonObject(t *testing.T) {
	m := NewOrderedMap[int]()
	if err := json.Unmarshal([]byte(`[1,2]`), m); err == nil {
		t.Error("expected error for array input")
	}
}
