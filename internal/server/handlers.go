package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/texbox/pkg/buildinfo"
	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/pipeline"
	"github.com/matzehuels/texbox/pkg/render"
	"github.com/matzehuels/texbox/pkg/tex/atom"
)

// CacheHeader reports whether the response came from cache ("hit") or
// was computed ("miss").
const CacheHeader = "X-Cache"

// renderResponse answers multi-format render requests.
type renderResponse struct {
	Width     float64           `json:"width"`
	Height    float64           `json:"height"`
	Depth     float64           `json:"depth"`
	Errors    []string          `json:"errors,omitempty"`
	Artifacts map[string][]byte `json:"artifacts"`
}

// parseResponse answers parse requests.
type parseResponse struct {
	Tree   string   `json:"tree"`
	DOT    string   `json:"dot,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Current()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := decodeOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Config.PipelineDefaults(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheStatus := "miss"
	if res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set(CacheHeader, cacheStatus)

	if len(opts.Formats) == 1 {
		format := opts.Formats[0]
		w.Header().Set("Content-Type", pipeline.ContentTypes[format])
		w.Header().Set("X-Formula-Errors", strconv.Itoa(len(res.Layout.Errors)))
		w.WriteHeader(http.StatusOK)
		w.Write(res.Artifacts[format])
		return
	}
	s.writeJSON(w, http.StatusOK, renderResponse{
		Width:     res.Stats.Width,
		Height:    res.Stats.Height,
		Depth:     res.Stats.Depth,
		Errors:    res.Layout.Errors,
		Artifacts: res.Artifacts,
	})
}

// execute runs the pipeline, sharing the run between identical
// concurrent requests. The shared run is detached from any single
// client's cancellation.
func (s *Server) execute(ctx context.Context, opts pipeline.Options) (*pipeline.Result, error) {
	key, err := json.Marshal(opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode request key")
	}
	ch := s.renders.DoChan(string(key), func() (any, error) {
		runCtx := context.WithoutCancel(ctx)
		if t := s.Config.Server.Timeout; t > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(runCtx, t)
			defer cancel()
		}
		return s.Runner.Execute(runCtx, opts)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*pipeline.Result), nil
	}
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	opts, err := decodeOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := opts.ValidateForLayout(); err != nil {
		s.writeError(w, r, err)
		return
	}

	e := s.Runner.Engine
	var (
		a    atom.Atom
		errs []error
	)
	if opts.Partial {
		a, errs = e.ParsePartial(opts.Text())
	} else if a, err = e.Parse(opts.Text()); err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := parseResponse{Tree: atom.Dump(a)}
	for _, err := range errs {
		resp.Errors = append(resp.Errors, err.Error())
	}
	if isTrue(r.URL.Query().Get("dot")) {
		resp.DOT = render.AtomDOT(a)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// decodeOptions reads pipeline options from the JSON body of a POST or
// the query string of a GET.
func decodeOptions(r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	if r.Method == http.MethodPost {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&opts); err != nil {
			if _, ok := err.(*http.MaxBytesError); ok {
				return opts, err
			}
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
		}
		return opts, nil
	}
	return optionsFromQuery(r.URL.Query())
}

// optionsFromQuery decodes GET parameters. "source" may be abbreviated
// to "q" and "formats" to "format".
func optionsFromQuery(q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{
		Source:     first(q, "source", "q"),
		Preamble:   q.Get("preamble"),
		Style:      q.Get("style"),
		Foreground: q.Get("fg"),
		Background: q.Get("bg"),
		Partial:    isTrue(q.Get("partial")),
		EmbedFonts: isTrue(q.Get("embed_fonts")),
		Refresh:    isTrue(q.Get("refresh")),
	}
	if f := first(q, "formats", "format"); f != "" {
		opts.Formats = pipeline.ParseFormats(f)
	}
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"width", &opts.Width},
		{"interline", &opts.Interline},
		{"size", &opts.Size},
		{"padding", &opts.Padding},
		{"scale", &opts.Scale},
	} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid %s %q", p.name, v)
		}
		*p.dst = f
	}
	return opts, nil
}

func first(q url.Values, keys ...string) string {
	for _, k := range keys {
		if v := q.Get(k); v != "" {
			return v
		}
	}
	return ""
}

func isTrue(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
