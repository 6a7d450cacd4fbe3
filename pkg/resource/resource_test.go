package resource

import "testing"

func TestFlatItemRoundTrip(t *testing.T) {
	r := New[int](4)
	r.SetItem(2, 7)

	if got := r.Item(2); got != 7 {
		t.Errorf("Item(2) = %d, want 7", got)
	}
}

func Test2DAddressing(t *testing.T) {
	r := New2D[int](3, 2)
	r.SetAt(1, 1, 9)

	if got := r.Item(1 + 3*1); got != 9 {
		t.Errorf("linear index for (1,1) = %d, want 9", got)
	}
	if got := r.At(1, 1); got != 9 {
		t.Errorf("At(1,1) = %d, want 9", got)
	}
}

func TestNumberOfElementsInvariant(t *testing.T) {
	r := New2D[float64](5, 7)
	if r.Len() != 5*7 {
		t.Errorf("Len() = %d, want %d", r.Len(), 5*7)
	}
}

func TestOutOfRangePanics(t *testing.T) {
	r := New[int](3)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on out-of-range access")
		}
	}()
	r.Item(3)
}

func TestFillIdempotent(t *testing.T) {
	r := New[int](4)
	r.Fill(5)
	r.Fill(5)

	for i := range r.Len() {
		if r.Item(i) != 5 {
			t.Errorf("Item(%d) = %d, want 5 after double fill", i, r.Item(i))
		}
	}
}
