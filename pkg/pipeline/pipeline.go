// Package pipeline provides the formula conversion pipeline for texbox.
//
// This package implements the complete parse → layout → render pipeline used
// by the CLI and the HTTP service, so both entry points cache and validate
// the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: expand macros and build the atom tree
//  2. Layout: turn the atom tree into a measured box tree
//  3. Render: paint the box tree as SVG, PNG, PDF or JSON, or draw the atom
//     tree as DOT
//
// Parse and layout are cached together as one box entry keyed by the source
// and layout options; each rendered format is cached by the box hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(engine, cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  `\frac{a}{b}`,
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/texbox/pkg/cache"
	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/tex/style"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultStyle is the outer math style.
	DefaultStyle = "display"

	// DefaultSize is the number of pixels per em.
	DefaultSize = 20.0

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ContentTypes maps formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one conversion.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Source string `json:"source"`
	// Preamble holds definitions (\newcommand, \definecolor, ...) applied
	// before Source.
	Preamble string `json:"preamble,omitempty"`
	Partial  bool   `json:"partial,omitempty"`

	// Layout options
	Style     string  `json:"style,omitempty"`
	Width     float64 `json:"width,omitempty"`     // em; zero is unbounded
	Interline float64 `json:"interline,omitempty"` // em

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Size       float64  `json:"size,omitempty"`    // pixels per em
	Padding    float64  `json:"padding,omitempty"` // em
	Foreground string   `json:"fg,omitempty"`      // color spec
	Background string   `json:"bg,omitempty"`      // color spec
	Scale      float64  `json:"scale,omitempty"`   // PNG multiplier
	EmbedFonts bool     `json:"embed_fonts,omitempty"`

	// Refresh bypasses cached entries.
	Refresh bool `json:"refresh,omitempty"`

	// MaxSource bounds the source length; zero means errors.MaxSourceLength.
	MaxSource int `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the parsed and measured formula.
	Layout *Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Width, Height, Depth float64
	LayoutTime           time.Duration
	RenderTime           time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the box tree came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style name is valid.
func ValidateStyle(name string) error {
	if _, err := style.Parse(name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidStyle, err, "invalid style")
	}
	return nil
}

// ParseFormats splits a comma-separated format list.
func ParseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout checks the source and layout options.
func (o *Options) ValidateForLayout() error {
	if err := errors.ValidateSource(o.Source, o.MaxSource); err != nil {
		return err
	}
	if len(o.Preamble) > errors.MaxSourceLength {
		return errors.New(errors.ErrCodeInvalidInput, "preamble too long (max %d bytes)", errors.MaxSourceLength)
	}
	o.SetLayoutDefaults()
	if o.Width < 0 || o.Interline < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width and interline must not be negative")
	}
	return ValidateStyle(o.Style)
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Size < 0 || o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "size and scale must not be negative")
	}
	return ValidateFormats(o.Formats)
}

// Text returns the markup handed to the parser: preamble, then source.
func (o *Options) Text() string {
	if o.Preamble == "" {
		return o.Source
	}
	return o.Preamble + "\n" + o.Source
}

// BoxKeyOpts returns cache key options for the layout stage.
func (o *Options) BoxKeyOpts() cache.BoxKeyOpts {
	k := cache.BoxKeyOpts{
		Style:     o.Style,
		Width:     o.Width,
		Interline: o.Interline,
		Partial:   o.Partial,
	}
	if o.Preamble != "" {
		k.Macros = cache.Hash([]byte(o.Preamble))
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:     format,
		Size:       o.Size,
		Padding:    o.Padding,
		Foreground: o.Foreground,
		Background: o.Background,
		EmbedFonts: o.EmbedFonts,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
