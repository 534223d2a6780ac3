package valueset

import "testing"

func TestSingletonRoundTrip(t *testing.T) {
	for v := 1; v <= 9; v++ {
		s := Singleton(9, v)
		if !s.Fixed() {
			t.Errorf("Singleton(9, %d).Fixed() = false, want true", v)
		}
		if s.Index() != v-1 {
			t.Errorf("Singleton(9, %d).Index() = %d, want %d", v, s.Index(), v-1)
		}
	}
}

func TestComplementInvolution(t *testing.T) {
	a := Singleton(9, 3).Union(Singleton(9, 7))
	got := a.Complement().Complement()
	if got != a {
		t.Errorf("~~a = %+v, want %+v", got, a)
	}
}

func TestFullAndInit(t *testing.T) {
	full := Full(9)
	if full.Count() != 9 {
		t.Errorf("Full(9).Count() = %d, want 9", full.Count())
	}
	empty := Init(9)
	if !empty.Empty() {
		t.Errorf("Init(9).Empty() = false, want true")
	}
}

func TestUnionIntersectMinusXor(t *testing.T) {
	a := Singleton(9, 1).Union(Singleton(9, 2))
	b := Singleton(9, 2).Union(Singleton(9, 3))

	if got := a.Union(b).Count(); got != 3 {
		t.Errorf("a.Union(b).Count() = %d, want 3", got)
	}
	if got := a.Intersect(b); got.Count() != 1 || !got.Has(2) {
		t.Errorf("a.Intersect(b) = %+v, want singleton {2}", got)
	}
	if got := a.Minus(b); got.Count() != 1 || !got.Has(1) {
		t.Errorf("a.Minus(b) = %+v, want singleton {1}", got)
	}
	if got := a.Xor(b); got.Count() != 2 || !got.Has(1) || !got.Has(3) {
		t.Errorf("a.Xor(b) = %+v, want {1,3}", got)
	}
}

func TestMismatchedUniversePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for mismatched universe sizes")
		}
	}()
	a := Init(9)
	b := Init(16)
	a.Union(b)
}

func TestToString(t *testing.T) {
	s := Singleton(9, 1).Union(Singleton(9, 9))
	got := s.ToString("123456789")
	if got != "19" {
		t.Errorf("ToString() = %q, want %q", got, "19")
	}
}

func TestNotFixedWhenMultipleOrZero(t *testing.T) {
	multi := Singleton(9, 1).Union(Singleton(9, 2))
	if multi.Fixed() {
		t.Errorf("two-value set reported Fixed() = true")
	}
	empty := Init(9)
	if empty.Fixed() {
		t.Errorf("empty set reported Fixed() = true")
	}
	if !empty.Empty() {
		t.Errorf("empty set reported Empty() = false")
	}
}
