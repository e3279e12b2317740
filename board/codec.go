package board

import (
	"strconv"
	"strings"

	"territory/apperr"
)

// Width is the fixed decimal digit width of the unit-count field in
// the wire format, chosen once for this format version (§4.1). W=2
// supports up to 99 units per square, which combined with the default
// productionCap of 21 is safe for normal play; a future format
// version could raise it to support higher caps, but doing so breaks
// replay of games persisted under this version.
const Width = 2

// tokenLen is the fixed length of one square's token: Width unit
// digits, one owner marker, one type marker.
const tokenLen = Width + 2

// Serialize renders b as rows joined by newlines, squares within a
// row joined by '|'. It always succeeds for a well-formed *Board.
func Serialize(b *Board) string {
	rows := make([]string, b.Size)
	for y := 0; y < b.Size; y++ {
		tokens := make([]string, b.Size)
		for x := 0; x < b.Size; x++ {
			sq := b.At(Coordinate{X: x, Y: y})
			tokens[x] = serializeSquare(sq)
		}
		rows[y] = strings.Join(tokens, "|")
	}
	return strings.Join(rows, "\n")
}

func serializeSquare(sq Square) string {
	typeMarker := byte('.')
	if sq.IsResource {
		typeMarker = '+'
	}
	units := strconv.Itoa(sq.Units)
	for len(units) < Width {
		units = "0" + units
	}
	return units + string(sq.Owner.Letter()) + string(typeMarker)
}

// Parse decodes s into a *Board, failing with apperr.InvalidGridFormat
// on any malformed input per §4.1.
func Parse(s string) (*Board, error) {
	if strings.TrimSpace(s) == "" {
		return nil, apperr.New(apperr.InvalidGridFormat, "grid is empty")
	}

	lines := strings.Split(s, "\n")
	size := len(lines)

	b := NewBoard(size)
	for y, line := range lines {
		tokens := strings.Split(line, "|")
		if len(tokens) != size {
			return nil, apperr.Newf(apperr.InvalidGridFormat,
				"row %d has %d squares, want %d (board must be square)", y, len(tokens), size).
				WithContext("row", y, "got", len(tokens), "want", size)
		}
		for x, tok := range tokens {
			sq, err := parseSquare(tok)
			if err != nil {
				return nil, err.(*apperr.Error).WithContext("x", x, "y", y)
			}
			b.Set(Coordinate{X: x, Y: y}, sq)
		}
	}
	return b, nil
}

func parseSquare(tok string) (Square, error) {
	if len(tok) != tokenLen {
		return Square{}, apperr.Newf(apperr.InvalidGridFormat,
			"token %q has length %d, want %d", tok, len(tok), tokenLen)
	}
	unitsPart := tok[:Width]
	ownerPart := tok[Width]
	typePart := tok[Width+1]

	units, err := strconv.Atoi(unitsPart)
	if err != nil || units < 0 {
		return Square{}, apperr.Newf(apperr.InvalidGridFormat,
			"token %q has non-decimal unit count %q", tok, unitsPart)
	}

	owner, perr := ParsePlayerMarker(ownerPart)
	if perr != nil {
		return Square{}, apperr.Newf(apperr.InvalidGridFormat,
			"token %q has invalid owner marker %q", tok, ownerPart)
	}

	var isResource bool
	switch typePart {
	case '.':
		isResource = false
	case '+':
		isResource = true
	default:
		return Square{}, apperr.Newf(apperr.InvalidGridFormat,
			"token %q has invalid type marker %q", tok, typePart)
	}

	if (units == 0) != (owner == Neutral) {
		return Square{}, apperr.Newf(apperr.InvalidGridFormat,
			"token %q violates units/owner invariant", tok)
	}

	return Square{Units: units, Owner: owner, IsResource: isResource}, nil
}
