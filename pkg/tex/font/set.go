package font

import (
	_ "embed"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/style"
)

//go:embed data/cm.toml
var defaultData []byte

// Names of the fonts the character mapping relies on. A data file may omit
// any of them; lookups then fall back to the first font.
const (
	FontRoman      = "cmr10"
	FontMathItalic = "cmmi10"
	FontSymbols    = "cmsy10"
	FontExtension  = "cmex10"
	FontBold       = "cmbx10"
	FontTextItalic = "cmti10"
	FontSansSerif  = "cmss10"
	FontTypewriter = "cmtt10"
	FontBoldMath   = "cmmib10"
	FontBoldItalic = "cmbxti10"
	FontBlackboard = "msbm10"
	FontFraktur    = "eufm10"
	FontCal        = "cmcal10"
)

// SymbolResolver maps symbol names to a font name and code point.
type SymbolResolver interface {
	Resolve(name string) (font string, c rune, ok bool)
}

// =============================================================================
// Data file schema
// =============================================================================

type fileData struct {
	MuFont string      `toml:"mufont"`
	Sizes  sizeData    `toml:"sizes"`
	Params paramData   `toml:"params"`
	Fonts  []fontData  `toml:"font"`
	Blocks []blockData `toml:"block"`
}

type sizeData struct {
	Script       float64 `toml:"script"`
	ScriptScript float64 `toml:"scriptscript"`
}

type paramData struct {
	AxisHeight           float64 `toml:"axis_height"`
	DefaultRuleThickness float64 `toml:"default_rule_thickness"`
	Num1                 float64 `toml:"num1"`
	Num2                 float64 `toml:"num2"`
	Num3                 float64 `toml:"num3"`
	Denom1               float64 `toml:"denom1"`
	Denom2               float64 `toml:"denom2"`
	Sup1                 float64 `toml:"sup1"`
	Sup2                 float64 `toml:"sup2"`
	Sup3                 float64 `toml:"sup3"`
	Sub1                 float64 `toml:"sub1"`
	Sub2                 float64 `toml:"sub2"`
	SupDrop              float64 `toml:"sup_drop"`
	SubDrop              float64 `toml:"sub_drop"`
	Delim1               float64 `toml:"delim1"`
	Delim2               float64 `toml:"delim2"`
	BigOpSpacing1        float64 `toml:"big_op_spacing1"`
	BigOpSpacing2        float64 `toml:"big_op_spacing2"`
	BigOpSpacing3        float64 `toml:"big_op_spacing3"`
	BigOpSpacing4        float64 `toml:"big_op_spacing4"`
	BigOpSpacing5        float64 `toml:"big_op_spacing5"`
}

type fontData struct {
	Name       string               `toml:"name"`
	Family     string               `toml:"family"`
	Style      string               `toml:"style"`
	Weight     string               `toml:"weight"`
	Derive     string               `toml:"derive"`
	WidthScale float64              `toml:"width_scale"`
	MonoWidth  float64              `toml:"mono_width"`
	Space      float64              `toml:"space"`
	XHeight    float64              `toml:"xheight"`
	Quad       float64              `toml:"quad"`
	SkewChar   string               `toml:"skewchar"`
	Default    []float64            `toml:"default"`
	Chars      map[string][]float64 `toml:"chars"`
	Extras     map[string]extraData `toml:"extras"`
	Ligatures  [][]string           `toml:"ligatures"`
	Kerns      []kernData           `toml:"kerns"`
}

type extraData struct {
	Next  string      `toml:"next"`
	Steps [][]float64 `toml:"steps"`
	Top   string      `toml:"top"`
	Mid   string      `toml:"mid"`
	Rep   string      `toml:"rep"`
	Bot   string      `toml:"bot"`
}

type kernData struct {
	L string  `toml:"l"`
	R string  `toml:"r"`
	K float64 `toml:"k"`
}

type blockData struct {
	Font string `toml:"font"`
	From string `toml:"from"`
	To   string `toml:"to"`
}

// =============================================================================
// Runtime representation
// =============================================================================

type pair struct{ l, r rune }

type step struct{ x, y float64 }

type extra struct {
	next               int
	steps              []step
	top, mid, rep, bot rune
}

func (e extra) extensible() bool { return e.rep != 0 }

type fontEntry struct {
	info    Info
	space   float64
	xheight float64
	quad    float64
	skew    rune
	def     Metrics
	chars   map[rune]Metrics
	extras  map[rune]extra
	lig     map[pair]rune
	kern    map[pair]float64
}

func (f *fontEntry) metrics(c rune) Metrics {
	if m, ok := f.chars[c]; ok {
		return m
	}
	return f.def
}

type block struct {
	lo, hi rune
	font   int
}

// Set is a family of fonts loaded from a TOML metrics document. It
// implements [Provider].
type Set struct {
	fonts   []*fontEntry
	byName  map[string]int
	muFont  int
	sizes   [3]float64
	params  Params
	symbols SymbolResolver

	mu     sync.RWMutex
	blocks []block
}

// Default loads the embedded Computer-Modern-like metrics.
func Default(symbols SymbolResolver) (*Set, error) {
	return NewSet(defaultData, symbols)
}

// NewSet decodes a metrics document. Symbol names are resolved through
// symbols, which may be nil when only characters are looked up.
func NewSet(data []byte, symbols SymbolResolver) (*Set, error) {
	var fd fileData
	if _, err := toml.Decode(string(data), &fd); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "decode font metrics")
	}
	if len(fd.Fonts) == 0 {
		return nil, errors.New(errors.ErrCodeConfig, "font metrics define no fonts")
	}

	s := &Set{
		byName:  make(map[string]int, len(fd.Fonts)),
		symbols: symbols,
		sizes:   [3]float64{1, fd.Sizes.Script, fd.Sizes.ScriptScript},
		params:  fd.Params.toParams(),
	}
	if s.sizes[1] <= 0 {
		s.sizes[1] = 0.7
	}
	if s.sizes[2] <= 0 {
		s.sizes[2] = 0.5
	}

	for i, f := range fd.Fonts {
		if f.Name == "" {
			return nil, errors.New(errors.ErrCodeConfig, "font #%d has no name", i)
		}
		if _, dup := s.byName[f.Name]; dup {
			return nil, errors.New(errors.ErrCodeConfig, "font %q defined twice", f.Name)
		}
		s.byName[f.Name] = i
	}
	for i, f := range fd.Fonts {
		e, err := s.buildFont(i, f, fd.Fonts)
		if err != nil {
			return nil, err
		}
		s.fonts = append(s.fonts, e)
	}

	s.muFont = s.id(fd.MuFont)
	for _, b := range fd.Blocks {
		if err := s.DefineBlock(firstRune(b.From), firstRune(b.To), b.Font); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (p paramData) toParams() Params {
	return Params{
		AxisHeight:           p.AxisHeight,
		DefaultRuleThickness: p.DefaultRuleThickness,
		Num1:                 p.Num1,
		Num2:                 p.Num2,
		Num3:                 p.Num3,
		Denom1:               p.Denom1,
		Denom2:               p.Denom2,
		Sup1:                 p.Sup1,
		Sup2:                 p.Sup2,
		Sup3:                 p.Sup3,
		Sub1:                 p.Sub1,
		Sub2:                 p.Sub2,
		SupDrop:              p.SupDrop,
		SubDrop:              p.SubDrop,
		Delim1:               p.Delim1,
		Delim2:               p.Delim2,
		BigOpSpacing1:        p.BigOpSpacing1,
		BigOpSpacing2:        p.BigOpSpacing2,
		BigOpSpacing3:        p.BigOpSpacing3,
		BigOpSpacing4:        p.BigOpSpacing4,
		BigOpSpacing5:        p.BigOpSpacing5,
	}
}

func (s *Set) buildFont(id int, f fontData, all []fontData) (*fontEntry, error) {
	e := &fontEntry{
		info:    Info{ID: id, Name: f.Name, Family: f.Family, Style: f.Style, Weight: f.Weight},
		space:   f.Space,
		xheight: f.XHeight,
		quad:    f.Quad,
		skew:    firstRune(f.SkewChar),
		chars:   make(map[rune]Metrics),
		extras:  make(map[rune]extra),
		lig:     make(map[pair]rune),
		kern:    make(map[pair]float64),
	}
	if e.quad == 0 {
		e.quad = 1
	}

	// Derived fonts start from a copy of their base.
	if f.Derive != "" {
		bi, ok := s.byName[f.Derive]
		if !ok || bi >= id {
			return nil, errors.New(errors.ErrCodeConfig, "font %q derives from unknown or later font %q", f.Name, f.Derive)
		}
		base := s.fonts[bi]
		scale := f.WidthScale
		if scale == 0 {
			scale = 1
		}
		for c, m := range base.chars {
			m.Width *= scale
			if f.MonoWidth > 0 {
				m.Width = f.MonoWidth
			}
			e.chars[c] = m
		}
		for p, r := range base.lig {
			if f.MonoWidth == 0 {
				e.lig[p] = r
			}
		}
		for p, k := range base.kern {
			if f.MonoWidth == 0 {
				e.kern[p] = k * scale
			}
		}
		e.def = base.def
		e.def.Width *= scale
		if e.space == 0 {
			e.space = base.space * scale
		}
		if e.xheight == 0 {
			e.xheight = base.xheight
		}
		if e.skew == 0 {
			e.skew = base.skew
		}
	}

	if len(f.Default) > 0 {
		m, err := toMetrics(f.Name, "default", f.Default)
		if err != nil {
			return nil, err
		}
		e.def = m
	}
	for k, v := range f.Chars {
		m, err := toMetrics(f.Name, k, v)
		if err != nil {
			return nil, err
		}
		e.chars[firstRune(k)] = m
	}
	for k, x := range f.Extras {
		ex := extra{
			next: -1,
			top:  firstRune(x.Top),
			mid:  firstRune(x.Mid),
			rep:  firstRune(x.Rep),
			bot:  firstRune(x.Bot),
		}
		if x.Next != "" {
			ni, ok := s.byName[x.Next]
			if !ok || ni == id {
				return nil, errors.New(errors.ErrCodeConfig, "font %q: char %q continues in invalid font %q", f.Name, k, x.Next)
			}
			ex.next = ni
		}
		for _, st := range x.Steps {
			if len(st) != 2 || st[0] <= 0 || st[1] <= 0 {
				return nil, errors.New(errors.ErrCodeConfig, "font %q: char %q has malformed step %v", f.Name, k, st)
			}
			ex.steps = append(ex.steps, step{x: st[0], y: st[1]})
		}
		e.extras[firstRune(k)] = ex
	}
	for _, l := range f.Ligatures {
		if len(l) != 3 {
			return nil, errors.New(errors.ErrCodeConfig, "font %q: ligature needs 3 entries, got %v", f.Name, l)
		}
		e.lig[pair{firstRune(l[0]), firstRune(l[1])}] = firstRune(l[2])
	}
	for _, k := range f.Kerns {
		e.kern[pair{firstRune(k.L), firstRune(k.R)}] = k.K
	}
	return e, nil
}

func toMetrics(font, key string, v []float64) (Metrics, error) {
	if len(v) < 3 || len(v) > 4 {
		return Metrics{}, errors.New(errors.ErrCodeConfig, "font %q: char %q needs [width, height, depth, italic?], got %v", font, key, v)
	}
	m := Metrics{Width: v[0], Height: v[1], Depth: v[2]}
	if len(v) == 4 {
		m.Italic = v[3]
	}
	return m, nil
}

func firstRune(s string) rune {
	if s == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// id returns the font id for name, or 0 when the font is not defined.
func (s *Set) id(name string) int {
	if i, ok := s.byName[name]; ok {
		return i
	}
	return 0
}

// FontID looks up a font by name.
func (s *Set) FontID(name string) (int, bool) {
	i, ok := s.byName[name]
	return i, ok
}

// DefineBlock routes the code points lo..hi to the named font. Later
// definitions take precedence.
func (s *Set) DefineBlock(lo, hi rune, fontName string) error {
	id, ok := s.byName[fontName]
	if !ok {
		return errors.New(errors.ErrCodeConfig, "unknown font %q for block %U-%U", fontName, lo, hi)
	}
	if hi < lo {
		return errors.New(errors.ErrCodeConfig, "empty block %U-%U", lo, hi)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = append([]block{{lo: lo, hi: hi, font: id}}, s.blocks...)
	return nil
}

func (s *Set) blockFont(c rune) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.blocks {
		if c >= b.lo && c <= b.hi {
			return b.font, true
		}
	}
	return 0, false
}

func (s *Set) entry(id int) *fontEntry {
	if id < 0 || id >= len(s.fonts) {
		return s.fonts[0]
	}
	return s.fonts[id]
}

// =============================================================================
// Provider implementation
// =============================================================================

// SizeFactor returns the scale of a style relative to text size.
func (s *Set) SizeFactor(st style.Style) float64 { return s.sizes[st.Size()] }

// Params returns the parameter table scaled for st.
func (s *Set) Params(st style.Style) Params { return s.params.scaled(s.SizeFactor(st)) }

// Char resolves a typed character.
func (s *Set) Char(c rune, v Variant, st style.Style) Char {
	id, mapped := s.fontFor(c, v)
	return s.Glyph(CharFont{C: mapped, FontID: id}, st)
}

// Symbol resolves a named symbol through the symbol resolver.
func (s *Set) Symbol(name string, st style.Style) (Char, bool) {
	if s.symbols == nil {
		return Char{}, false
	}
	fontName, c, ok := s.symbols.Resolve(name)
	if !ok {
		return Char{}, false
	}
	id, ok := s.byName[fontName]
	if !ok {
		return Char{}, false
	}
	return s.Glyph(CharFont{C: c, FontID: id}, st), true
}

// Glyph returns the base glyph of cf scaled for st.
func (s *Set) Glyph(cf CharFont, st style.Style) Char {
	f := s.entry(cf.FontID)
	return s.scaledChar(cf.C, f, st, 0, step{1, 1})
}

func (s *Set) scaledChar(c rune, f *fontEntry, st style.Style, n int, sc step) Char {
	m := f.metrics(c)
	k := s.SizeFactor(st)
	return Char{
		C:      c,
		FontID: f.info.ID,
		Scale:  k,
		Step:   n,
		XScale: sc.x,
		YScale: sc.y,
		Metrics: Metrics{
			Width:  m.Width * k * sc.x,
			Height: m.Height * k * sc.y,
			Depth:  m.Depth * k * sc.y,
			Italic: m.Italic * k * sc.x,
		},
	}
}

// Kern returns the kern between two glyphs of the same font.
func (s *Set) Kern(left, right CharFont, st style.Style) float64 {
	if left.FontID != right.FontID {
		return 0
	}
	return s.entry(left.FontID).kern[pair{left.C, right.C}] * s.SizeFactor(st)
}

// Ligature returns the ligature of two glyphs of the same font.
func (s *Set) Ligature(left, right CharFont) (CharFont, bool) {
	if left.FontID != right.FontID {
		return CharFont{}, false
	}
	r, ok := s.entry(left.FontID).lig[pair{left.C, right.C}]
	if !ok {
		return CharFont{}, false
	}
	return CharFont{C: r, FontID: left.FontID}, true
}

// HasNextLarger reports whether a larger variant of c exists.
func (s *Set) HasNextLarger(c Char) bool {
	ex, ok := s.entry(c.FontID).extras[c.C]
	if !ok {
		return false
	}
	return c.Step < len(ex.steps) || ex.next >= 0
}

// NextLarger returns the next larger variant of c, or c itself.
func (s *Set) NextLarger(c Char, st style.Style) Char {
	f := s.entry(c.FontID)
	ex, ok := f.extras[c.C]
	if !ok {
		return c
	}
	if c.Step < len(ex.steps) {
		return s.scaledChar(c.C, f, st, c.Step+1, ex.steps[c.Step])
	}
	if ex.next >= 0 {
		return s.Glyph(CharFont{C: c.C, FontID: ex.next}, st)
	}
	return c
}

// IsExtensible reports whether c can be built from repeated pieces.
func (s *Set) IsExtensible(c Char) bool {
	ex, ok := s.entry(c.FontID).extras[c.C]
	return ok && ex.extensible()
}

// Extension returns the pieces of an extensible glyph.
func (s *Set) Extension(c Char, st style.Style) Extension {
	f := s.entry(c.FontID)
	ex := f.extras[c.C]
	piece := func(r rune) *Char {
		if r == 0 {
			return nil
		}
		ch := s.scaledChar(r, f, st, 0, step{1, 1})
		return &ch
	}
	return Extension{
		Top:    piece(ex.top),
		Middle: piece(ex.mid),
		Repeat: piece(ex.rep),
		Bottom: piece(ex.bot),
	}
}

// Skew returns the kern of cf with its font's skew character.
func (s *Set) Skew(cf CharFont, st style.Style) float64 {
	f := s.entry(cf.FontID)
	if f.skew == 0 {
		return 0
	}
	return f.kern[pair{cf.C, f.skew}] * s.SizeFactor(st)
}

// HasSpace reports whether a font has interword space.
func (s *Set) HasSpace(fontID int) bool { return s.entry(fontID).space > Prec }

// Space returns the interword space of a font.
func (s *Set) Space(st style.Style, fontID int) float64 {
	return s.entry(fontID).space * s.SizeFactor(st)
}

// Quad returns the em width of a font.
func (s *Set) Quad(st style.Style, fontID int) float64 {
	return s.entry(fontID).quad * s.SizeFactor(st)
}

// XHeight returns the x-height of a font.
func (s *Set) XHeight(st style.Style, fontID int) float64 {
	return s.entry(fontID).xheight * s.SizeFactor(st)
}

// MuFontID returns the font whose quad defines 18mu.
func (s *Set) MuFontID() int { return s.muFont }

// Info describes a font for painters.
func (s *Set) Info(fontID int) (Info, bool) {
	if fontID < 0 || fontID >= len(s.fonts) {
		return Info{}, false
	}
	return s.fonts[fontID].info, true
}

// Fonts lists every font in id order.
func (s *Set) Fonts() []Info {
	out := make([]Info, len(s.fonts))
	for i, f := range s.fonts {
		out[i] = f.info
	}
	return out
}

// String summarizes the set for debug logs.
func (s *Set) String() string {
	return fmt.Sprintf("font.Set(%d fonts, mu=%s)", len(s.fonts), s.fonts[s.muFont].info.Name)
}

var _ Provider = (*Set)(nil)
