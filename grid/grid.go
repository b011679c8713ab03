// Package grid maps between the unified 4x8 grid and the native note numbers
// of the two 2x8 controllers that make it up.
//
// Both controllers report the same 16 notes (64-79). The top controller
// covers grid rows 0-1, the bottom controller rows 2-3. The bottom half is
// numbered in reverse, mirroring the hardware when one pad sits upside down
// above the other.
package grid

import (
	"errors"
	"fmt"

	"padgrid/errs"
)

const (
	Rows     = 4
	Cols     = 8
	HalfRows = 2
	PadCount = HalfRows * Cols
)

var (
	// ErrCoordinate reports a row or column outside the grid.
	ErrCoordinate = fmt.Errorf("%w: grid coordinate out of range", errs.ErrConfiguration)
	// ErrUnmappedNote reports a native note with no grid position.
	ErrUnmappedNote = errors.New("native note not mapped")
)

// Role is the half of the grid a controller currently occupies.
type Role int

const (
	Top Role = iota
	Bottom
)

func (r Role) String() string {
	if r == Top {
		return "top"
	}
	return "bottom"
}

// Other returns the opposite role.
func (r Role) Other() Role {
	if r == Top {
		return Bottom
	}
	return Top
}

// Coord is a position on the 4x8 grid.
type Coord struct {
	Row, Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Role returns which half of the grid the coordinate is in.
func (c Coord) Role() Role {
	if c.Row < HalfRows {
		return Top
	}
	return Bottom
}

// Local returns the coordinate within its controller's own 2x8 grid.
func (c Coord) Local() Coord {
	return Coord{Row: c.Row % HalfRows, Col: c.Col}
}

var grid2note = [Rows][Cols]uint8{
	{64, 65, 66, 67, 68, 69, 70, 71},
	{72, 73, 74, 75, 76, 77, 78, 79},
	{79, 78, 77, 76, 75, 74, 73, 72},
	{71, 70, 69, 68, 67, 66, 65, 64},
}

var note2grid = buildInverse()

func buildInverse() [2]map[uint8]Coord {
	inv := [2]map[uint8]Coord{{}, {}}
	for row := 0; row < HalfRows; row++ {
		for col := 0; col < Cols; col++ {
			inv[Top][grid2note[row][col]] = Coord{Row: row, Col: col}
			inv[Bottom][grid2note[row+HalfRows][col]] = Coord{Row: row + HalfRows, Col: col}
		}
	}
	return inv
}

// Check validates a 4x8 coordinate.
func Check(row, col int) error {
	if row < 0 || row >= Rows {
		return fmt.Errorf("%w: row %d", ErrCoordinate, row)
	}
	if col < 0 || col >= Cols {
		return fmt.Errorf("%w: col %d", ErrCoordinate, col)
	}
	return nil
}

// Grid2Note returns the native note for a 4x8 coordinate.
func Grid2Note(row, col int) (uint8, error) {
	if err := Check(row, col); err != nil {
		return 0, err
	}
	return grid2note[row][col], nil
}

// TopGrid2Note takes a row of the top controller (0-1).
func TopGrid2Note(row, col int) (uint8, error) {
	if row < 0 || row >= HalfRows {
		return 0, fmt.Errorf("%w: top row %d", ErrCoordinate, row)
	}
	return Grid2Note(row, col)
}

// BottomGrid2Note takes a row of the bottom controller (0-1).
func BottomGrid2Note(row, col int) (uint8, error) {
	if row < 0 || row >= HalfRows {
		return 0, fmt.Errorf("%w: bottom row %d", ErrCoordinate, row)
	}
	return Grid2Note(row+HalfRows, col)
}

// HalfGrid2Note dispatches to TopGrid2Note or BottomGrid2Note.
func HalfGrid2Note(role Role, row, col int) (uint8, error) {
	if role == Top {
		return TopGrid2Note(row, col)
	}
	return BottomGrid2Note(row, col)
}

// Note2Grid returns the 4x8 coordinate of a native note played on a
// controller holding role.
func Note2Grid(role Role, note uint8) (Coord, error) {
	if role != Top && role != Bottom {
		return Coord{}, fmt.Errorf("%w: role %d", ErrCoordinate, int(role))
	}
	c, ok := note2grid[role][note]
	if !ok {
		return Coord{}, fmt.Errorf("%w: %d on %s", ErrUnmappedNote, note, role)
	}
	return c, nil
}

// Half lists the 16 coordinates of a role in row-major order.
func Half(role Role) []Coord {
	base := 0
	if role == Bottom {
		base = HalfRows
	}
	out := make([]Coord, 0, PadCount)
	for row := base; row < base+HalfRows; row++ {
		for col := 0; col < Cols; col++ {
			out = append(out, Coord{Row: row, Col: col})
		}
	}
	return out
}

// NativeNotes returns the note range every controller reports, ascending.
func NativeNotes() []uint8 {
	out := make([]uint8, 0, PadCount)
	for n := grid2note[0][0]; n <= grid2note[1][Cols-1]; n++ {
		out = append(out, n)
	}
	return out
}

// Landmarks are the last pad of each device row (71 and 79). Holding both
// with the scene button promotes a controller to the top half.
func Landmarks() [2]uint8 {
	return [2]uint8{grid2note[0][Cols-1], grid2note[1][Cols-1]}
}
