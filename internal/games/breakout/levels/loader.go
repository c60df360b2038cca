package levels

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/brickfall/internal/games/breakout/physics"
)

// ErrLevelNotFound is returned when no file exists for a level number.
var ErrLevelNotFound = errors.New("levels: level not found")

//go:embed data/*.yaml
var embedded embed.FS

// levelFile is the on-disk YAML schema.
type levelFile struct {
	Number  int       `yaml:"number"`
	Gravity []float64 `yaml:"gravity,omitempty"`
	Matrix  [][]int   `yaml:"matrix"`
}

// ParseYAML decodes and normalizes a level description. Shape problems and
// unknown codes come back as warnings; only undecodable input is an error.
func ParseYAML(data []byte) (Definition, []string, error) {
	var f levelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Definition{}, nil, fmt.Errorf("levels: cannot parse level: %w", err)
	}

	m, warnings := Normalize(f.Matrix)
	def := Definition{Number: f.Number, Matrix: m}

	switch len(f.Gravity) {
	case 0:
	case 3:
		g := physics.V(f.Gravity[0], f.Gravity[1], f.Gravity[2])
		if g.Finite() {
			def.Gravity = &g
		} else {
			warnings = append(warnings, fmt.Sprintf("gravity %v is not finite, ignored", f.Gravity))
		}
	default:
		warnings = append(warnings, fmt.Sprintf("gravity needs 3 components, got %d, ignored", len(f.Gravity)))
	}
	return def, warnings, nil
}

// MarshalYAML encodes a definition in the file schema.
func MarshalYAML(def Definition) ([]byte, error) {
	f := levelFile{Number: def.Number, Matrix: make([][]int, Size)}
	if def.Gravity != nil {
		f.Gravity = []float64{def.Gravity.X, def.Gravity.Y, def.Gravity.Z}
	}
	for r := range Size {
		row := make([]int, Size)
		for c := range Size {
			row[c] = int(def.Matrix[r][c])
		}
		f.Matrix[r] = row
	}
	return yaml.Marshal(f)
}

// Loader reads level files named levelN.yaml from a filesystem.
type Loader struct {
	fsys   fs.FS
	logger *log.Logger
}

// NewLoader reads levels from fsys.
func NewLoader(fsys fs.FS, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{fsys: fsys, logger: logger}
}

// DirLoader reads levels from a directory on disk.
func DirLoader(dir string, logger *log.Logger) *Loader {
	return NewLoader(os.DirFS(dir), logger)
}

// EmbeddedLoader reads the levels shipped with the binary.
func EmbeddedLoader(logger *log.Logger) *Loader {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// data/ is part of the embed pattern, Sub cannot fail here.
		panic(err)
	}
	return NewLoader(sub, logger)
}

// FileName returns the file a level number is stored in.
func FileName(n int) string {
	return fmt.Sprintf("level%d.yaml", n)
}

// Read loads level n and returns warnings and errors to the caller.
func (l *Loader) Read(n int) (Definition, []string, error) {
	data, err := fs.ReadFile(l.fsys, FileName(n))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Definition{}, nil, fmt.Errorf("%w: %d", ErrLevelNotFound, n)
		}
		return Definition{}, nil, fmt.Errorf("levels: cannot read %s: %w", FileName(n), err)
	}
	def, warnings, err := ParseYAML(data)
	if err != nil {
		return Definition{}, nil, err
	}
	if def.Number != n {
		warnings = append(warnings, fmt.Sprintf("file declares number %d, using %d", def.Number, n))
		def.Number = n
	}
	return def, warnings, nil
}

// Load returns level n. Warnings are logged; a file that cannot be read or
// parsed yields the empty level 0.
func (l *Loader) Load(n int) Definition {
	def, warnings, err := l.Read(n)
	for _, w := range warnings {
		l.logger.Warn("level normalized", "level", n, "detail", w)
	}
	if err != nil {
		l.logger.Warn("level unavailable, using empty level", "level", n, "err", err)
		return Empty()
	}
	return def
}

// Has reports whether a file exists for level n.
func (l *Loader) Has(n int) bool {
	_, err := fs.Stat(l.fsys, FileName(n))
	return err == nil
}

// Numbers returns every available level number in ascending order.
func (l *Loader) Numbers() []int {
	matches, err := fs.Glob(l.fsys, "level*.yaml")
	if err != nil {
		return nil
	}
	var nums []int
	for _, m := range matches {
		s := strings.TrimSuffix(strings.TrimPrefix(path.Base(m), "level"), ".yaml")
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			continue
		}
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// Next returns the first available level after n, wrapping to the lowest.
// When nothing is available n is returned unchanged.
func (l *Loader) Next(n int) int {
	nums := l.Numbers()
	if len(nums) == 0 {
		return n
	}
	best := math.MaxInt
	for _, v := range nums {
		if v > n && v < best {
			best = v
		}
	}
	if best == math.MaxInt {
		return nums[0]
	}
	return best
}
