package levels

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/brickfall/internal/games/breakout/tiles"
)

func TestNormalizePadsShortMatrix(t *testing.T) {
	raw := make([][]int, 18)
	for r := range raw {
		raw[r] = make([]int, 19)
		for c := range raw[r] {
			raw[r][c] = 20 + (r+c)%2 // 20 and 21 are both canonical
		}
	}

	m, warnings := Normalize(raw)
	if len(warnings) != 19 {
		t.Errorf("warnings = %d, want 19 (1 row + 18 columns): %v", len(warnings), warnings)
	}

	paddedCells := 0
	for r := range Size {
		for c := range Size {
			if r < 18 && c < 19 {
				if want := tiles.Code(raw[r][c]); m[r][c] != want {
					t.Fatalf("cell (%d,%d) = %d, want %d", r, c, m[r][c], want)
				}
				continue
			}
			if m[r][c] != tiles.Empty {
				t.Fatalf("padded cell (%d,%d) = %d, want 0", r, c, m[r][c])
			}
			paddedCells++
		}
	}
	// two full rows plus one cell per original row
	if want := 2*Size + 18; paddedCells != want {
		t.Errorf("padded cells = %d, want %d", paddedCells, want)
	}
}

func TestNormalizeTruncatesTail(t *testing.T) {
	raw := make([][]int, 22)
	for r := range raw {
		raw[r] = make([]int, 23)
		raw[r][0] = 20
		raw[r][22] = 90
	}
	m, warnings := Normalize(raw)
	if len(warnings) == 0 {
		t.Error("expected warnings for oversized matrix")
	}
	if m[19][0] != tiles.Simple {
		t.Errorf("last kept row lost its data")
	}
	for r := range Size {
		if m[r][Size-1] != tiles.Empty {
			t.Errorf("row %d kept a truncated value", r)
		}
	}
}

func TestNormalizeExactShapeNoWarnings(t *testing.T) {
	raw := make([][]int, Size)
	for r := range raw {
		raw[r] = make([]int, Size)
	}
	if _, warnings := Normalize(raw); len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
}

func TestNormalizeUnknownCodeBecomesEmpty(t *testing.T) {
	raw := [][]int{{20, 77, 41}}
	m, warnings := Normalize(raw)
	if m[0][1] != tiles.Empty {
		t.Errorf("unknown code kept: %d", m[0][1])
	}
	if m[0][0] != tiles.Simple || m[0][2] != tiles.ExtraLife {
		t.Errorf("known codes changed: %v", m[0][:3])
	}
	found := false
	for _, w := range warnings {
		if w == "unknown tile code 77 at (0,1), treated as empty" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing unknown-code warning in %v", warnings)
	}
}

func TestParseYAMLGravity(t *testing.T) {
	def, _, err := ParseYAML([]byte("number: 4\ngravity: [2, 0, 0]\nmatrix:\n  - [20]\n"))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if def.Gravity == nil || def.Gravity.X != 2 {
		t.Fatalf("gravity = %v", def.Gravity)
	}
	if def.DefaultGravity().X != 2 {
		t.Errorf("DefaultGravity = %v", def.DefaultGravity())
	}

	def, warnings, err := ParseYAML([]byte("number: 4\ngravity: [2, 0]\nmatrix: []\n"))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if def.Gravity != nil {
		t.Error("two-component gravity should be ignored")
	}
	if len(warnings) == 0 {
		t.Error("expected a warning")
	}
}

func TestParseYAMLRejectsGarbage(t *testing.T) {
	if _, _, err := ParseYAML([]byte("matrix: {not: [a list")); err == nil {
		t.Error("expected parse error")
	}
}

func TestMarshalRoundTripKeepsMatrix(t *testing.T) {
	var def Definition
	def.Number = 7
	def.Matrix[3][4] = tiles.HazardTrigger
	data, err := MarshalYAML(def)
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}
	got, warnings, err := ParseYAML(data)
	if err != nil || len(warnings) != 0 {
		t.Fatalf("ParseYAML: %v %v", err, warnings)
	}
	if got.Matrix != def.Matrix || got.Number != 7 || got.Gravity != nil {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestSpawnPoints(t *testing.T) {
	var def Definition
	sp := def.SpawnPoints()
	if sp.Paddle != CellCenter(DefaultPaddleRow, DefaultSpawnCol) || sp.Ball != CellCenter(DefaultBallRow, DefaultSpawnCol) {
		t.Errorf("default spawns = %+v", sp)
	}

	def.Matrix[17][3] = tiles.PaddleSpawn
	def.Matrix[12][4] = tiles.BallSpawn
	sp = def.SpawnPoints()
	if sp.Paddle.X != 17.5 || sp.Paddle.Z != 3.5 {
		t.Errorf("paddle spawn = %v", sp.Paddle)
	}
	if sp.Ball.X != 12.5 || sp.Ball.Z != 4.5 {
		t.Errorf("ball spawn = %v", sp.Ball)
	}
}

func TestCompletionCount(t *testing.T) {
	var def Definition
	def.Matrix[0][0] = tiles.Simple
	def.Matrix[0][1] = tiles.Indestructible
	def.Matrix[0][2] = tiles.PaddleOnly
	def.Matrix[0][3] = tiles.MultiHit4
	def.Matrix[0][4] = tiles.PaddleSpawn
	if n := len(def.Bricks()); n != 4 {
		t.Errorf("bricks = %d, want 4", n)
	}
	if n := def.CompletionCount(); n != 2 {
		t.Errorf("completion count = %d, want 2", n)
	}
}

func TestLoaderFallsBackToEmptyLevel(t *testing.T) {
	fsys := fstest.MapFS{
		"level1.yaml": {Data: []byte("number: 1\nmatrix:\n  - [20, 20]\n")},
		"level2.yaml": {Data: []byte("matrix: [[[")},
	}
	l := NewLoader(fsys, nil)

	if def := l.Load(1); def.Number != 1 || def.Matrix[0][1] != tiles.Simple {
		t.Errorf("Load(1) = %+v", def)
	}
	if def := l.Load(2); def.Number != 0 || len(def.Bricks()) != 0 {
		t.Errorf("unparsable level should fall back to empty level 0, got %+v", def.Number)
	}
	if def := l.Load(9); def.Number != 0 {
		t.Errorf("missing level should fall back to level 0, got %d", def.Number)
	}
	if _, _, err := l.Read(9); err == nil {
		t.Error("Read(9) should fail")
	}
}

func TestLoaderNumbersAndNext(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"level3.yaml", "level1.yaml", "level10.yaml", "notes.txt", "levelx.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("matrix: []\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	l := DirLoader(dir, nil)

	nums := l.Numbers()
	want := []int{1, 3, 10}
	if len(nums) != len(want) {
		t.Fatalf("Numbers = %v, want %v", nums, want)
	}
	for i := range want {
		if nums[i] != want[i] {
			t.Fatalf("Numbers = %v, want %v", nums, want)
		}
	}

	cases := []struct{ from, want int }{
		{1, 3},
		{3, 10},
		{10, 1},
		{0, 1},
		{5, 10},
	}
	for _, tc := range cases {
		if got := l.Next(tc.from); got != tc.want {
			t.Errorf("Next(%d) = %d, want %d", tc.from, got, tc.want)
		}
	}
	if !l.Has(3) || l.Has(2) {
		t.Error("Has reports wrong availability")
	}
}

func TestEmbeddedLevelsAreClean(t *testing.T) {
	l := EmbeddedLoader(nil)
	nums := l.Numbers()
	if len(nums) < 3 {
		t.Fatalf("embedded levels = %v", nums)
	}
	for _, n := range nums {
		def, warnings, err := l.Read(n)
		if err != nil {
			t.Fatalf("level %d: %v", n, err)
		}
		if len(warnings) != 0 {
			t.Errorf("level %d warnings: %v", n, warnings)
		}
		if def.CompletionCount() == 0 {
			t.Errorf("level %d has nothing to clear", n)
		}
	}
}
