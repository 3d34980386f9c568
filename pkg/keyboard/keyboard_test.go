package keyboard

import "testing"

func TestDistanceSelfIsZero(t *testing.T) {
	k := NewDefault()
	for _, c := range []byte("qwertyasdfzxcvQWE1234 ,.") {
		if d := k.Distance(c, c); d != 0 {
			t.Errorf("Distance(%q, %q) = %d, want 0", c, c, d)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	k := NewDefault()
	pairs := [][2]byte{{'q', 'w'}, {'a', 'z'}, {'q', 'p'}, {'1', 'm'}, {' ', 'b'}}
	for _, p := range pairs {
		d1 := k.Distance(p[0], p[1])
		d2 := k.Distance(p[1], p[0])
		if d1 != d2 {
			t.Errorf("Distance(%q,%q)=%d but Distance(%q,%q)=%d, want symmetric", p[0], p[1], d1, p[1], p[0], d2)
		}
	}
}

func TestDistanceAdjacent(t *testing.T) {
	k := NewDefault()
	if d := k.Distance('q', 'w'); d != 1 {
		t.Errorf("Distance(q,w) = %d, want 1", d)
	}
	if d := k.Distance('a', 's'); d != 1 {
		t.Errorf("Distance(a,s) = %d, want 1", d)
	}
}

func TestDistanceDiagonalCompressed(t *testing.T) {
	k := NewDefault()
	// q is row1/col1, a is row2/col1, w is row1/col2 -> s at row2/col2 is a
	// true diagonal neighbour of q (row+1, col+1): Manhattan 2, compressed to 1.
	if d := k.Distance('q', 's'); d != 1 {
		t.Errorf("Distance(q,s) = %d, want 1 (diagonal compression)", d)
	}
}

func TestDistanceUnknownCharacter(t *testing.T) {
	k := NewDefault()
	if d := k.Distance('q', 0xFF); d != unknownDistance {
		t.Errorf("Distance(q, unknown) = %d, want sentinel %d", d, unknownDistance)
	}
	if d := k.Distance(0x00, 0x01); d != unknownDistance {
		t.Errorf("Distance(unknown, unknown) = %d, want sentinel %d", d, unknownDistance)
	}
}

func TestDistanceShiftedVariantSamePosition(t *testing.T) {
	k := NewDefault()
	if d := k.Distance('q', 'Q'); d != 0 {
		t.Errorf("Distance(q, Q) = %d, want 0 (same key)", d)
	}
}
