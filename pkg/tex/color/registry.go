package color

import (
	_ "embed"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/texbox/pkg/errors"
)

//go:embed data/colors.toml
var defaultData []byte

type fileData struct {
	Colors     map[string]string    `toml:"colors"`
	DvipsNames map[string][]float64 `toml:"dvipsnames"`
}

// Registry maps color names to colors. A child registry sees every name of
// its parent and may shadow them without affecting it.
//
// Registry is safe for concurrent use.
type Registry struct {
	parent *Registry

	mu    sync.RWMutex
	named map[string]Color
}

// Default loads the embedded LaTeX and dvipsnames colors.
func Default() (*Registry, error) { return NewRegistry(defaultData) }

// NewRegistry decodes a color table document.
func NewRegistry(data []byte) (*Registry, error) {
	var fd fileData
	if _, err := toml.Decode(string(data), &fd); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "decode color table")
	}
	r := &Registry{named: make(map[string]Color, len(fd.Colors)+len(fd.DvipsNames))}
	for name, hex := range fd.Colors {
		c, err := parseHex(hex)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfig, err, "color %q", name)
		}
		r.named[name] = c
	}
	for name, cmyk := range fd.DvipsNames {
		if len(cmyk) != 4 {
			return nil, errors.New(errors.ErrCodeConfig, "color %q needs 4 cmyk components, got %d", name, len(cmyk))
		}
		k := 1 - cmyk[3]
		r.named[name] = RGB((1-cmyk[0])*k, (1-cmyk[1])*k, (1-cmyk[2])*k)
	}
	return r, nil
}

// Child returns an empty registry layered over r.
func (r *Registry) Child() *Registry {
	return &Registry{parent: r, named: make(map[string]Color)}
}

// Define registers or replaces a named color.
func (r *Registry) Define(name string, c Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.named[name] = c
}

// Lookup returns a named color, searching parents.
func (r *Registry) Lookup(name string) (Color, bool) {
	for cur := r; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		c, ok := cur.named[name]
		cur.mu.RUnlock()
		if ok {
			return c, true
		}
	}
	return Color{}, false
}

// Names lists every visible color name in sorted order.
func (r *Registry) Names() []string {
	seen := make(map[string]bool)
	for cur := r; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		for n := range cur.named {
			seen[n] = true
		}
		cur.mu.RUnlock()
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Parse decodes a color spec without an explicit model: a registered name,
// a hex literal (#rgb, #rrggbb, #rrggbbaa), or an xcolor expression.
//
// In an expression "a!p!b" the result is p percent of a mixed with b; a
// missing b is white, and expressions chain left to right. A leading "-"
// takes the complement.
func (r *Registry) Parse(spec string) (Color, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Color{}, errors.New(errors.ErrCodeInvalidInput, "empty color")
	}
	if strings.HasPrefix(spec, "#") {
		return parseHex(spec)
	}
	if !strings.Contains(spec, "!") {
		neg := strings.HasPrefix(spec, "-")
		c, ok := r.Lookup(strings.TrimPrefix(spec, "-"))
		if !ok {
			return Color{}, errors.New(errors.ErrCodeNotFound, "undefined color %q", spec)
		}
		if neg {
			c = complement(c)
		}
		return c, nil
	}

	parts := strings.Split(spec, "!")
	cur, err := r.Parse(parts[0])
	if err != nil {
		return Color{}, err
	}
	for i := 1; i < len(parts); i += 2 {
		p, err := strconv.ParseFloat(parts[i], 64)
		if err != nil || p < 0 || p > 100 {
			return Color{}, errors.New(errors.ErrCodeInvalidInput, "invalid mix percentage %q in %q", parts[i], spec)
		}
		other := White
		if i+1 < len(parts) {
			if other, err = r.Parse(parts[i+1]); err != nil {
				return Color{}, err
			}
		}
		cur = cur.Mix(other, 1-p/100)
	}
	return cur, nil
}

func complement(c Color) Color {
	n := RGB(1-c.R, 1-c.G, 1-c.B)
	n.A = c.A
	return n
}

// Resolve decodes value in model, or through Parse when model is empty.
func (r *Registry) Resolve(model, value string) (Color, error) {
	if model == "" || model == "named" {
		return r.Parse(value)
	}
	return ParseModel(model, value)
}
