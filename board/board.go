// Package board holds the grid data model (coordinates, squares, the
// board itself) together with its geometry and its compact
// line-oriented text codec. Internally the board is a flat array
// indexed by row-major position, per the spec's flat-array guidance;
// the textual codec is purely an external wire format.
package board

import "territory/apperr"

// PlayerID identifies a player by ordinal (0-indexed). Neutral is the
// sentinel for an unowned square.
type PlayerID int

// Neutral marks a square with no owner. By invariant, units == 0 iff
// Owner == Neutral.
const Neutral PlayerID = -1

// MaxPlayers is the highest player count the engine supports: letters
// 'a'..'t' give 20 distinct ordinals.
const MaxPlayers = 20

// Letter renders p as its wire-format marker: '.' for Neutral, else
// 'a'+p.
func (p PlayerID) Letter() byte {
	if p == Neutral {
		return '.'
	}
	return byte('a' + int(p))
}

// ParsePlayerMarker converts a wire-format owner marker back to a
// PlayerID.
func ParsePlayerMarker(b byte) (PlayerID, error) {
	if b == '.' {
		return Neutral, nil
	}
	if b >= 'a' && b <= 'z' {
		return PlayerID(b - 'a'), nil
	}
	return Neutral, apperr.Newf(apperr.InvalidGridFormat, "invalid owner marker %q", b)
}

// Coordinate is a grid position. X increases rightward, Y increases
// downward.
type Coordinate struct {
	X, Y int
}

// Square is one grid cell.
type Square struct {
	Units      int
	Owner      PlayerID
	IsResource bool
}

// Board is a Size x Size grid of squares stored row-major: the square
// at (x, y) lives at index y*Size+x.
type Board struct {
	Size    int
	Squares []Square
}

// NewBoard allocates an all-Neutral board of the given size.
func NewBoard(size int) *Board {
	b := &Board{
		Size:    size,
		Squares: make([]Square, size*size),
	}
	for i := range b.Squares {
		b.Squares[i].Owner = Neutral
	}
	return b
}

func (b *Board) index(c Coordinate) int {
	return c.Y*b.Size + c.X
}

// At returns the square at c. Callers must ensure InBounds(c, b.Size).
func (b *Board) At(c Coordinate) Square {
	return b.Squares[b.index(c)]
}

// Set writes sq at c. Callers must ensure InBounds(c, b.Size).
func (b *Board) Set(c Coordinate, sq Square) {
	b.Squares[b.index(c)] = sq
}

// Clone returns a deep copy of b.
func (b *Board) Clone() *Board {
	cp := &Board{
		Size:    b.Size,
		Squares: make([]Square, len(b.Squares)),
	}
	copy(cp.Squares, b.Squares)
	return cp
}

// Equal reports whether two boards have identical contents.
func (b *Board) Equal(other *Board) bool {
	if b.Size != other.Size || len(b.Squares) != len(other.Squares) {
		return false
	}
	for i, sq := range b.Squares {
		if sq != other.Squares[i] {
			return false
		}
	}
	return true
}

// Coordinates returns every coordinate on the board in row-major order.
func (b *Board) Coordinates() []Coordinate {
	coords := make([]Coordinate, 0, len(b.Squares))
	for y := 0; y < b.Size; y++ {
		for x := 0; x < b.Size; x++ {
			coords = append(coords, Coordinate{X: x, Y: y})
		}
	}
	return coords
}

// EdgeCoordinates returns every coordinate on the outer edge of the
// board, in row-major order, for initial setup (spec §4.9 step 1).
func (b *Board) EdgeCoordinates() []Coordinate {
	var coords []Coordinate
	for y := 0; y < b.Size; y++ {
		for x := 0; x < b.Size; x++ {
			if x == 0 || y == 0 || x == b.Size-1 || y == b.Size-1 {
				coords = append(coords, Coordinate{X: x, Y: y})
			}
		}
	}
	return coords
}
