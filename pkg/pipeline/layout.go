package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/observability"
	"github.com/matzehuels/texbox/pkg/tex"
	"github.com/matzehuels/texbox/pkg/tex/atom"
	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/style"
)

// Layout is a parsed and measured formula.
type Layout struct {
	// Atom is the parsed tree. It is nil when the layout came from cache.
	Atom atom.Atom `json:"-"`
	Box  *box.Box  `json:"box"`
	// Errors are the failures replaced by placeholders in partial mode.
	Errors []string `json:"errors,omitempty"`
}

// Marshal encodes the layout for caching.
func (l *Layout) Marshal() ([]byte, error) { return json.Marshal(l) }

// UnmarshalLayout decodes a cached layout.
func UnmarshalLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, err
	}
	if l.Box == nil {
		return nil, errors.New(errors.ErrCodeInternal, "cached layout has no box")
	}
	return &l, nil
}

// TexOptions converts pipeline options to engine options.
func TexOptions(opts Options) (tex.Options, error) {
	st, err := style.Parse(opts.Style)
	if err != nil {
		return tex.Options{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "invalid style")
	}
	return tex.Options{
		Style:     st,
		Width:     opts.Width,
		Interline: opts.Interline,
		Partial:   opts.Partial,
	}, nil
}

// BuildLayout parses and lays out opts.Source without caching.
func BuildLayout(ctx context.Context, e *tex.Engine, opts Options) (*Layout, error) {
	topts, err := TexOptions(opts)
	if err != nil {
		return nil, err
	}
	src := opts.Text()
	hooks := observability.Pipeline()

	hooks.OnParseStart(ctx, len(src))
	start := time.Now()
	var (
		a    atom.Atom
		errs []error
	)
	if opts.Partial {
		a, errs = e.ParsePartial(src)
	} else {
		a, err = e.Parse(src)
	}
	hooks.OnParseComplete(ctx, len(src), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	hooks.OnLayoutStart(ctx, opts.Style)
	start = time.Now()
	b := e.Layout(a, topts)
	hooks.OnLayoutComplete(ctx, opts.Style, b.Width, time.Since(start))

	l := &Layout{Atom: a, Box: b}
	for _, err := range errs {
		l.Errors = append(l.Errors, err.Error())
	}
	return l, nil
}
