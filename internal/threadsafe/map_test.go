package threadsafe

import "testing"

func TestMapBasic(t *testing.T) {
	m := NewMap()
	if _, ok := m.Get("a"); ok {
		t.Fatal("empty map returned a value")
	}
	m.Put("a", 1)
	v, ok := m.Get("a")
	if !ok || v.(int) != 1 {
		t.Fatalf("Get after Put = %v, %v", v, ok)
	}
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}
	m.Del("a")
	if _, ok := m.Get("a"); ok {
		t.Fatal("value survived Del")
	}
}

func TestMapDo(t *testing.T) {
	m := NewMap()
	m.Put("a", 1)
	m.Put("b", 2)
	sum := 0
	m.Do(func(_, v interface{}) {
		sum += v.(int)
	})
	if sum != 3 {
		t.Fatalf("sum = %d, want 3", sum)
	}
}
