// Package keyboard models the physical geometry of a keyboard so that the
// error model can tell a fat-finger slip on an adjacent key from a wild miss.
package keyboard

// pos is a key's row/column position. A key can occupy more than one
// position (e.g. the spacebar), so Keyboard keeps a set of them per byte.
type pos struct {
	row, col int8
}

// Keyboard maps bytes to the physical key positions that produce them and
// answers distance queries between two bytes.
type Keyboard struct {
	positions map[byte][]pos
}

// layout encodes a 5-row, 12-column QWERTY keyboard. Each cell lists every
// character (including its shifted variant) produced by that physical key;
// characters sharing a cell therefore sit at the same position. Row 4 is the
// spacebar row: columns 3-8 all produce ' '.
var layout = [5][12]string{
	{"`~", "1!", "2@", "3#", "4$", "5%", "6^", "7&", "8*", "9(", "0)", "-_=+"},
	{"", "Qq", "Ww", "Ee", "Rr", "Tt", "Yy", "Uu", "Ii", "Oo", "Pp", "[{]}"},
	{"", "Aa", "Ss", "Dd", "Ff", "Gg", "Hh", "Jj", "Kk", "Ll", ";:'\"", "\\|"},
	{"", "Zz", "Xx", "Cc", "Vv", "Bb", "Nn", "Mm", ",<", ".>", "/?", ""},
	{"", "", "", " ", " ", " ", " ", " ", " ", "", "", ""},
}

// NewDefault builds the keyboard geometry of the reference layout above.
func NewDefault() *Keyboard {
	k := &Keyboard{positions: make(map[byte][]pos)}
	for row, cols := range layout {
		for col, cell := range cols {
			for i := 0; i < len(cell); i++ {
				c := cell[i]
				p := pos{row: int8(row), col: int8(col)}
				k.positions[c] = append(k.positions[c], p)
			}
		}
	}
	return k
}

// unknownDistance is returned when either character never appears on the
// layout (off-keyboard characters, e.g. non-Latin input).
const unknownDistance = 20

// Distance returns the minimum physical distance between any position that
// produces a and any position that produces b. Distance(c, c) is always 0.
// Diagonal neighbours (Manhattan distance 2 with both row and column
// differing) are compressed to 1, matching how close a diagonal key press
// actually is on a real keyboard.
func (k *Keyboard) Distance(a, b byte) uint32 {
	pa, oka := k.positions[a]
	pb, okb := k.positions[b]
	if !oka || !okb {
		return unknownDistance
	}

	best := uint32(unknownDistance)
	for _, p := range pa {
		for _, q := range pb {
			if d := keyDistance(p, q); d < best {
				best = d
			}
		}
	}
	return best
}

func keyDistance(p, q pos) uint32 {
	dr := abs8(p.row - q.row)
	dc := abs8(p.col - q.col)
	result := uint32(dr) + uint32(dc)
	if result == 2 && dr != 0 && dc != 0 {
		return 1
	}
	return result
}

func abs8(v int8) int8 {
	if v < 0 {
		return -v
	}
	return v
}
