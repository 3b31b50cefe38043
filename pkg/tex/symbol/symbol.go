// Package symbol holds the table of named math symbols.
//
// A symbol is a single glyph with a fixed atom category, such as \alpha
// (ord), \leq (rel) or \sum (op). The table also maps characters typed in
// math mode ('+', '≤', 'α') to symbol names, so that they get the same
// category and glyph as their command form.
//
// The embedded table follows the Computer Modern assignment of glyphs to
// fonts: relations and arrows live in cmsy10, big operators in cmex10,
// Greek lowercase in cmmi10. A [*Table] implements [font.SymbolResolver].
package symbol

import (
	_ "embed"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/class"
)

//go:embed data/symbols.toml
var defaultData []byte

// Symbol is a named glyph with a fixed category.
type Symbol struct {
	Name string     `json:"name"`
	Type class.Type `json:"-"`
	// Delimiter marks symbols usable after \left, \right and \big.
	Delimiter bool   `json:"delimiter,omitempty"`
	Font      string `json:"font"`
	C         rune   `json:"char"`
	// NoLimits marks operators whose scripts never stack (integrals).
	NoLimits bool `json:"nolimits,omitempty"`
}

type groupData struct {
	Font      string            `toml:"font"`
	Type      string            `toml:"type"`
	Delimiter bool              `toml:"delimiter"`
	NoLimits  bool              `toml:"nolimits"`
	Symbols   map[string]string `toml:"symbols"`
}

type fileData struct {
	Groups []groupData       `toml:"group"`
	Chars  map[string]string `toml:"chars"`
}

// Table maps names and typed characters to symbols.
//
// Table is safe for concurrent use.
type Table struct {
	mu     sync.RWMutex
	byName map[string]Symbol
	byChar map[rune]string
}

// Default loads the embedded symbol table.
func Default() (*Table, error) { return NewTable(defaultData) }

// NewTable decodes a symbol table document.
func NewTable(data []byte) (*Table, error) {
	var fd fileData
	if _, err := toml.Decode(string(data), &fd); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "decode symbol table")
	}
	t := &Table{
		byName: make(map[string]Symbol),
		byChar: make(map[rune]string, len(fd.Chars)),
	}
	for _, g := range fd.Groups {
		typ, err := class.Parse(g.Type)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfig, err, "symbol group in font %q", g.Font)
		}
		if g.Font == "" {
			return nil, errors.New(errors.ErrCodeConfig, "symbol group of type %q has no font", g.Type)
		}
		for name, glyph := range g.Symbols {
			c, n := utf8.DecodeRuneInString(glyph)
			if c == utf8.RuneError || n != len(glyph) {
				return nil, errors.New(errors.ErrCodeConfig, "symbol %q must be a single character, got %q", name, glyph)
			}
			if _, dup := t.byName[name]; dup {
				return nil, errors.New(errors.ErrCodeConfig, "symbol %q defined twice", name)
			}
			t.byName[name] = Symbol{
				Name:      name,
				Type:      typ,
				Delimiter: g.Delimiter,
				Font:      g.Font,
				C:         c,
				NoLimits:  g.NoLimits,
			}
		}
	}
	for ch, name := range fd.Chars {
		c, n := utf8.DecodeRuneInString(ch)
		if n != len(ch) {
			return nil, errors.New(errors.ErrCodeConfig, "character mapping key %q must be a single character", ch)
		}
		if _, ok := t.byName[name]; !ok {
			return nil, errors.New(errors.ErrCodeConfig, "character %q maps to unknown symbol %q", ch, name)
		}
		t.byChar[c] = name
	}
	return t, nil
}

// Lookup returns the symbol with the given name.
func (t *Table) Lookup(name string) (Symbol, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.byName[name]
	return s, ok
}

// ForChar returns the symbol a typed character stands for.
func (t *Table) ForChar(c rune) (Symbol, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	name, ok := t.byChar[c]
	if !ok {
		return Symbol{}, false
	}
	return t.byName[name], true
}

// Resolve implements font.SymbolResolver.
func (t *Table) Resolve(name string) (string, rune, bool) {
	s, ok := t.Lookup(name)
	return s.Font, s.C, ok
}

// Define registers or replaces a symbol.
func (t *Table) Define(s Symbol) error {
	if s.Name == "" || strings.ContainsAny(s.Name, " \\{}") {
		return errors.New(errors.ErrCodeInvalidInput, "invalid symbol name %q", s.Name)
	}
	if s.Font == "" {
		return errors.New(errors.ErrCodeInvalidInput, "symbol %q has no font", s.Name)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byName[s.Name] = s
	return nil
}

// MapChar makes typing c in math mode produce the named symbol.
func (t *Table) MapChar(c rune, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.byName[name]; !ok {
		return errors.New(errors.ErrCodeNotFound, "unknown symbol %q", name)
	}
	t.byChar[c] = name
	return nil
}

// Symbols returns every symbol accepted by keep, sorted by name. A nil
// keep selects all.
func (t *Table) Symbols(keep func(Symbol) bool) []Symbol {
	t.mu.RLock()
	out := make([]Symbol, 0, len(t.byName))
	for _, s := range t.byName {
		if keep == nil || keep(s) {
			out = append(out, s)
		}
	}
	t.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
