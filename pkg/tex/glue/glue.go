// Package glue holds the table of spaces TeX inserts between adjacent
// atoms, keyed by the left and right atom types and the style class.
package glue

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/env"
	"github.com/matzehuels/texbox/pkg/tex/style"
)

//go:embed data/glue.toml
var defaultData []byte

// Glue is a stretchable space in math units.
type Glue struct {
	Name    string
	Space   float64
	Stretch float64
	Shrink  float64
}

// IsZero reports whether g inserts no space.
func (g Glue) IsZero() bool { return g.Space == 0 && g.Stretch == 0 && g.Shrink == 0 }

func (g Glue) String() string {
	if g.Name != "" {
		return g.Name
	}
	return fmt.Sprintf("%gmu plus %gmu minus %gmu", g.Space, g.Stretch, g.Shrink)
}

type key struct {
	left, right class.Type
	class       style.Class
}

// Table maps atom type pairs to glue. It is immutable after construction.
type Table struct {
	entries map[key]Glue
}

// columns is the row order of the data file.
var columns = []class.Type{
	class.Ord, class.Op, class.Bin, class.Rel,
	class.Open, class.Close, class.Punct, class.Inner,
}

type fileData struct {
	Glue  map[string]glueData `toml:"glue"`
	Table map[string][]string `toml:"table"`
}

type glueData struct {
	Space   float64 `toml:"space"`
	Stretch float64 `toml:"stretch"`
	Shrink  float64 `toml:"shrink"`
}

// Default loads the embedded TeXbook spacing table.
func Default() (*Table, error) { return NewTable(defaultData) }

// NewTable decodes a spacing table document.
func NewTable(data []byte) (*Table, error) {
	var fd fileData
	if _, err := toml.Decode(string(data), &fd); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "decode glue table")
	}

	named := make(map[string]Glue, len(fd.Glue))
	for n, g := range fd.Glue {
		named[n] = Glue{Name: n, Space: g.Space, Stretch: g.Stretch, Shrink: g.Shrink}
	}

	t := &Table{entries: make(map[key]Glue)}
	for row, cells := range fd.Table {
		left, err := class.Parse(row)
		if err != nil || !left.Spacing() {
			return nil, errors.New(errors.ErrCodeConfig, "glue table: unknown row %q", row)
		}
		if len(cells) != len(columns) {
			return nil, errors.New(errors.ErrCodeConfig, "glue table: row %q has %d entries, want %d", row, len(cells), len(columns))
		}
		for i, cell := range cells {
			cell = strings.TrimSpace(cell)
			if cell == "" || cell == "*" {
				continue
			}
			textOnly := strings.HasPrefix(cell, "(") && strings.HasSuffix(cell, ")")
			name := strings.Trim(cell, "()")
			g, ok := named[name]
			if !ok {
				return nil, errors.New(errors.ErrCodeConfig, "glue table: row %q uses undefined glue %q", row, name)
			}
			for _, c := range []style.Class{style.ClassDisplay, style.ClassText, style.ClassScript, style.ClassScriptScript} {
				if textOnly && c >= style.ClassScript {
					continue
				}
				t.entries[key{left, columns[i], c}] = g
			}
		}
	}
	return t, nil
}

// Get returns the glue between a left and a right atom type in a style
// class. Pairs without an entry yield zero glue.
func (t *Table) Get(left, right class.Type, c style.Class) Glue {
	return t.entries[key{left, right, c}]
}

// Width returns the natural width in em of the glue between left and
// right under e.
func (t *Table) Width(left, right class.Type, e env.Environment) float64 {
	return t.Get(left, right, e.Style.Class()).Space * e.Mu()
}

// Box returns a glue box for the space between left and right under e.
func (t *Table) Box(left, right class.Type, e env.Environment) *box.Box {
	return box.NewGlue(t.Width(left, right, e))
}
