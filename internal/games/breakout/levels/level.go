// Package levels holds level definitions: the 20x20 tile matrix, the optional
// gravity override and the spawn points derived from the matrix.
package levels

import (
	"fmt"

	"github.com/vovakirdan/brickfall/internal/games/breakout/physics"
	"github.com/vovakirdan/brickfall/internal/games/breakout/tiles"
)

// Size is the fixed edge length of every level matrix.
const Size = 20

// Matrix is a normalized level grid indexed [row][col]. Rows run down-field
// toward the goal, columns run across the field.
type Matrix [Size][Size]tiles.Code

// Definition is a fully normalized level.
type Definition struct {
	Number  int
	Gravity *physics.Vec3 // nil when the level keeps zero gravity
	Matrix  Matrix
}

// Empty returns the fallback level: number 0, no bricks, no override.
func Empty() Definition {
	return Definition{}
}

// DefaultGravity returns the level's gravity override or the zero vector.
func (d Definition) DefaultGravity() physics.Vec3 {
	if d.Gravity == nil {
		return physics.Zero
	}
	return *d.Gravity
}

// Cell is a non-empty matrix entry.
type Cell struct {
	Row, Col int
	Code     tiles.Code
}

// CellCenter maps a matrix position onto the play plane.
func CellCenter(row, col int) physics.Vec3 {
	return physics.V(float64(row)+0.5, 0, float64(col)+0.5)
}

// Bricks returns every brick cell in row-major order.
func (d Definition) Bricks() []Cell {
	var out []Cell
	for r := range Size {
		for c := range Size {
			code := d.Matrix[r][c]
			if tiles.Classify(code).IsBrick() {
				out = append(out, Cell{Row: r, Col: c, Code: code})
			}
		}
	}
	return out
}

// CompletionCount returns how many bricks must be destroyed to clear the level.
func (d Definition) CompletionCount() int {
	n := 0
	for _, b := range d.Bricks() {
		if tiles.Classify(b.Code).CountsTowardCompletion() {
			n++
		}
	}
	return n
}

// Default spawn cells used when the matrix carries no spawn markers.
const (
	DefaultPaddleRow = 18
	DefaultBallRow   = 16
	DefaultSpawnCol  = 10
)

// SpawnPoints records where the paddle and ball appear.
type SpawnPoints struct {
	Paddle physics.Vec3
	Ball   physics.Vec3
}

// SpawnPoints scans the matrix for the first paddle and ball markers and
// falls back to the default cells.
func (d Definition) SpawnPoints() SpawnPoints {
	sp := SpawnPoints{
		Paddle: CellCenter(DefaultPaddleRow, DefaultSpawnCol),
		Ball:   CellCenter(DefaultBallRow, DefaultSpawnCol),
	}
	var havePaddle, haveBall bool
	for r := range Size {
		for c := range Size {
			switch d.Matrix[r][c] {
			case tiles.PaddleSpawn:
				if !havePaddle {
					sp.Paddle = CellCenter(r, c)
					havePaddle = true
				}
			case tiles.BallSpawn:
				if !haveBall {
					sp.Ball = CellCenter(r, c)
					haveBall = true
				}
			}
		}
	}
	return sp
}

// Normalize fits raw rows into a Size x Size matrix. Missing rows and
// columns are zero-filled at the tail and extra ones are cut from the tail.
// Every mismatch produces a warning; normalization itself never fails.
// Codes outside the canonical table are replaced by Empty with a warning.
func Normalize(raw [][]int) (Matrix, []string) {
	var m Matrix
	var warnings []string

	if len(raw) != Size {
		warnings = append(warnings, fmt.Sprintf("matrix has %d rows, want %d", len(raw), Size))
	}
	for r, row := range raw {
		if r >= Size {
			break
		}
		if len(row) != Size {
			warnings = append(warnings, fmt.Sprintf("row %d has %d columns, want %d", r, len(row), Size))
		}
		for c, v := range row {
			if c >= Size {
				break
			}
			code := tiles.Code(v)
			if !tiles.Known(code) {
				warnings = append(warnings, fmt.Sprintf("unknown tile code %d at (%d,%d), treated as empty", v, r, c))
				code = tiles.Empty
			}
			m[r][c] = code
		}
	}
	return m, warnings
}
