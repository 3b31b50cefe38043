package tex

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/atom"
	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/color"
	"github.com/matzehuels/texbox/pkg/tex/env"
	"github.com/matzehuels/texbox/pkg/tex/font"
	"github.com/matzehuels/texbox/pkg/tex/glue"
	"github.com/matzehuels/texbox/pkg/tex/macro"
	"github.com/matzehuels/texbox/pkg/tex/parser"
	"github.com/matzehuels/texbox/pkg/tex/style"
	"github.com/matzehuels/texbox/pkg/tex/symbol"
)

// Engine holds the tables shared by every conversion.
type Engine struct {
	Symbols *symbol.Table
	Macros  *macro.Registry
	Colors  *color.Registry
	Fonts   *font.Set
	Glue    *glue.Table
	Limits  parser.Limits
	Logger  *log.Logger
}

// Option configures New.
type Option func(*config)

type config struct {
	fonts, glue, symbols, colors []byte
	limits                       parser.Limits
	logger                       *log.Logger
}

// WithFontData replaces the embedded font metrics with a TOML document.
func WithFontData(data []byte) Option { return func(c *config) { c.fonts = data } }

// WithGlueData replaces the embedded spacing table with a TOML document.
func WithGlueData(data []byte) Option { return func(c *config) { c.glue = data } }

// WithSymbolData replaces the embedded symbol table with a TOML document.
func WithSymbolData(data []byte) Option { return func(c *config) { c.symbols = data } }

// WithColorData replaces the embedded named colors with a TOML document.
func WithColorData(data []byte) Option { return func(c *config) { c.colors = data } }

// WithLimits bounds macro expansion and nesting.
func WithLimits(l parser.Limits) Option { return func(c *config) { c.limits = l } }

// WithLogger sets the engine's logger.
func WithLogger(l *log.Logger) Option { return func(c *config) { c.logger = l } }

// New loads every table. A malformed table fails with errors.ErrCodeConfig.
func New(opts ...Option) (*Engine, error) {
	var c config
	for _, opt := range opts {
		opt(&c)
	}

	syms, err := load(c.symbols, symbol.Default, symbol.NewTable)
	if err != nil {
		return nil, err
	}
	colors, err := load(c.colors, color.Default, color.NewRegistry)
	if err != nil {
		return nil, err
	}
	spacing, err := load(c.glue, glue.Default, glue.NewTable)
	if err != nil {
		return nil, err
	}
	fonts, err := load(c.fonts,
		func() (*font.Set, error) { return font.Default(syms) },
		func(data []byte) (*font.Set, error) { return font.NewSet(data, syms) })
	if err != nil {
		return nil, err
	}
	macros, err := macro.Default()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "install built-in macros")
	}

	return &Engine{
		Symbols: syms,
		Macros:  macros,
		Colors:  colors,
		Fonts:   fonts,
		Glue:    spacing,
		Limits:  c.limits,
		Logger:  c.logger,
	}, nil
}

func load[T any](data []byte, def func() (T, error), decode func([]byte) (T, error)) (T, error) {
	var (
		v   T
		err error
	)
	if data == nil {
		v, err = def()
	} else {
		v, err = decode(data)
	}
	if err != nil && !errors.Is(err, errors.ErrCodeConfig) {
		err = errors.Wrap(errors.ErrCodeConfig, err, "load table")
	}
	return v, err
}

func (e *Engine) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.Default()
}

// =============================================================================
// Conversion
// =============================================================================

// Options control one conversion.
type Options struct {
	// Style is the outer math style; the zero value is display style.
	Style style.Style
	// PointSize is the size of one em in points at text style. Zero means
	// env.DefaultPointSize.
	PointSize float64
	// Width bounds alignments and splits wider formulas into lines, in em.
	// Zero leaves the width unbounded.
	Width float64
	// Interline is the gap between split lines in em. Zero means one.
	Interline  float64
	Foreground *color.Color
	Background *color.Color
	// Partial replaces parse errors with placeholders instead of failing.
	Partial bool
}

// Result is a converted formula.
type Result struct {
	Atom atom.Atom
	Box  *box.Box
	// Errors lists the failures replaced by placeholders in partial mode.
	Errors []error
}

// Parser returns a parser over the engine's tables.
func (e *Engine) Parser(partial bool) *parser.Parser {
	p := parser.New(e.Symbols, e.Macros, e.Colors)
	p.Partial = partial
	p.Limits = e.Limits
	p.Logger = e.Logger
	return p
}

// Parse parses src in strict mode.
func (e *Engine) Parse(src string) (atom.Atom, error) {
	return e.Parser(false).Parse(src)
}

// ParsePartial parses src in partial mode and returns the atom tree with
// the errors its placeholders stand for.
func (e *Engine) ParsePartial(src string) (atom.Atom, []error) {
	a, err := e.Parser(true).Parse(src)
	if err != nil {
		return atom.Group(atom.NewPlaceholder("", err)), []error{err}
	}
	return a, parser.Errors(a)
}

// Environment returns the root layout environment for opts.
func (e *Engine) Environment(opts Options) env.Environment {
	en := env.New(e.Fonts, opts.Style).WithSpacing(e.Glue)
	if opts.PointSize > 0 {
		en.PointSize = opts.PointSize
	}
	if opts.Width > 0 {
		en = en.WithTextWidth(opts.Width)
	}
	if opts.Interline > 0 {
		en.Interline = opts.Interline
	}
	if opts.Foreground != nil {
		en = en.WithColor(opts.Foreground)
	}
	if opts.Background != nil {
		en = en.WithBackground(opts.Background)
	}
	return en
}

// Layout lays a out under opts.
func (e *Engine) Layout(a atom.Atom, opts Options) *box.Box {
	en := e.Environment(opts)
	if a == nil {
		return box.NewHBox()
	}
	b := a.CreateBox(en)
	if !math.IsInf(en.TextWidth, 1) {
		b = box.Split(b, en.TextWidth, en.Interline*en.Quad())
	}
	return b
}

// Build parses and lays out src.
func (e *Engine) Build(src string, opts Options) (*Result, error) {
	res := &Result{}
	if opts.Partial {
		res.Atom, res.Errors = e.ParsePartial(src)
	} else {
		a, err := e.Parse(src)
		if err != nil {
			return nil, err
		}
		res.Atom = a
	}
	res.Box = e.Layout(res.Atom, opts)
	e.logger().Debug("built formula",
		"style", opts.Style,
		"width", res.Box.Width,
		"height", res.Box.Height,
		"depth", res.Box.Depth,
		"errors", len(res.Errors))
	return res, nil
}

// =============================================================================
// Extension
// =============================================================================

// DefineMacro registers a Go command for every later parse.
func (e *Engine) DefineMacro(m macro.Macro) error { return e.Macros.Define(m) }

// DefineTemplate registers a \newcommand-style macro.
func (e *Engine) DefineTemplate(t macro.Template) error {
	return e.Macros.DefineTemplate(t, macro.New)
}

// DefineEnvironment registers a \newenvironment-style environment.
func (e *Engine) DefineEnvironment(en macro.Env) error {
	return e.Macros.DefineEnv(en, macro.New)
}

// DefineFragment registers a command that expands to a formula source.
func (e *Engine) DefineFragment(name, src string) error {
	return e.Macros.DefineFragment(name, src)
}

// DefineSymbol registers or replaces a named symbol.
func (e *Engine) DefineSymbol(s symbol.Symbol) error { return e.Symbols.Define(s) }

// DefineColor registers a named color from any spec Parse accepts.
func (e *Engine) DefineColor(name, spec string) error {
	c, err := e.Colors.Parse(spec)
	if err != nil {
		return err
	}
	e.Colors.Define(name, c)
	return nil
}

// DefineOperator registers \name as an upright operator setting text. With
// limits, scripts are stacked in display style like \lim.
func (e *Engine) DefineOperator(name, text string, limits bool) error {
	l := class.NoLimits
	if limits {
		l = class.Normal
	}
	return e.Macros.Define(macro.Macro{
		Name: name,
		Invoke: func(macro.Context, macro.Args) (atom.Atom, error) {
			return macro.NamedOperator(text, l), nil
		},
	})
}

// DefineAlphabet sets the code points lo..hi in the named font, for
// scripts such as Cyrillic that the math fonts lack.
func (e *Engine) DefineAlphabet(lo, hi rune, fontName string) error {
	return e.Fonts.DefineBlock(lo, hi, fontName)
}
