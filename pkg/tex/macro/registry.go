package macro

import (
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/texbox/pkg/errors"
)

// Mode selects the \newcommand family semantics of a definition.
type Mode int

const (
	// New fails when the name is already defined.
	New Mode = iota
	// Renew fails when the name is not yet defined.
	Renew
	// Provide keeps an existing definition and reports no error.
	Provide
)

// Registry holds macros, user templates, environments and formula
// fragments. A child registry sees every definition of its parent and
// shadows them without affecting it; each parse writes its \newcommand
// definitions into a child.
//
// Registry is safe for concurrent use.
type Registry struct {
	parent *Registry

	mu        sync.RWMutex
	macros    map[string]Macro
	templates map[string]Template
	envs      map[string]Env
	fragments map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		macros:    map[string]Macro{},
		templates: map[string]Template{},
		envs:      map[string]Env{},
		fragments: map[string]string{},
	}
}

// Child returns an empty registry layered over r.
func (r *Registry) Child() *Registry {
	c := NewRegistry()
	c.parent = r
	return c
}

// Define registers or replaces a Go macro.
func (r *Registry) Define(m Macro) error {
	if err := checkName(m.Name); err != nil {
		return err
	}
	if m.Invoke == nil {
		return errors.New(errors.ErrCodeInvalidInput, "macro %s has no implementation", m.Name)
	}
	if m.Args < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "macro %s has a negative argument count", m.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.macros[m.Name] = m
	return nil
}

// Lookup returns the Go macro called name.
func (r *Registry) Lookup(name string) (Macro, bool) {
	for cur := r; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		m, ok := cur.macros[name]
		cur.mu.RUnlock()
		if ok {
			return m, true
		}
	}
	return Macro{}, false
}

// DefineTemplate registers a user macro with \newcommand, \renewcommand
// or \providecommand semantics, checked against every visible command.
func (r *Registry) DefineTemplate(t Template, mode Mode) error {
	if err := checkName(t.Name); err != nil {
		return err
	}
	if t.Args < 0 || t.Args > 9 {
		return errors.New(errors.ErrCodeInvalidNumber, "command %s takes 0 to 9 arguments, got %d", t.Name, t.Args)
	}
	defined := r.Defined(t.Name)
	switch {
	case mode == New && defined:
		return errors.New(errors.ErrCodeInvalidInput, `command \%s already defined`, t.Name)
	case mode == Renew && !defined:
		return errors.New(errors.ErrCodeUnknownCommand, `command \%s undefined`, t.Name)
	case mode == Provide && defined:
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[t.Name] = t
	return nil
}

// Template returns the user macro called name.
func (r *Registry) Template(name string) (Template, bool) {
	for cur := r; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		t, ok := cur.templates[name]
		cur.mu.RUnlock()
		if ok {
			return t, true
		}
	}
	return Template{}, false
}

// DefineEnv registers a template environment with \newenvironment or
// \renewenvironment semantics.
func (r *Registry) DefineEnv(e Env, mode Mode) error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "environment name cannot be empty")
	}
	_, isEnv := r.Env(e.Name)
	_, isPrim := r.Primitive(e.Name)
	defined := isEnv || isPrim
	switch {
	case mode == New && defined:
		return errors.New(errors.ErrCodeInvalidInput, "environment %s already defined", e.Name)
	case mode == Renew && !defined:
		return errors.New(errors.ErrCodeUnknownEnvironment, "environment %s undefined", e.Name)
	case mode == Provide && defined:
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.envs[e.Name] = e
	return nil
}

// Env returns the template environment called name.
func (r *Registry) Env(name string) (Env, bool) {
	for cur := r; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		e, ok := cur.envs[name]
		cur.mu.RUnlock()
		if ok {
			return e, true
		}
	}
	return Env{}, false
}

// Primitive returns the macro implementing the built-in environment name.
// A template environment of the same name takes precedence during
// expansion.
func (r *Registry) Primitive(name string) (Macro, bool) {
	return r.Lookup(name + PrimitiveSuffix)
}

// DefineFragment stores a formula fragment that is parsed on use.
func (r *Registry) DefineFragment(name, src string) error {
	if err := checkName(name); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fragments[name] = src
	return nil
}

// Fragment returns the source of a formula fragment.
func (r *Registry) Fragment(name string) (string, bool) {
	for cur := r; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		s, ok := cur.fragments[name]
		cur.mu.RUnlock()
		if ok {
			return s, true
		}
	}
	return "", false
}

// Defined reports whether name is a macro, template or fragment.
func (r *Registry) Defined(name string) bool {
	if _, ok := r.Lookup(name); ok {
		return true
	}
	if _, ok := r.Template(name); ok {
		return true
	}
	_, ok := r.Fragment(name)
	return ok
}

// Names lists every visible command name in sorted order, without the
// internal environment macros.
func (r *Registry) Names() []string {
	seen := map[string]bool{}
	for cur := r; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		for n := range cur.macros {
			if !strings.HasSuffix(n, PrimitiveSuffix) {
				seen[n] = true
			}
		}
		for n := range cur.templates {
			seen[n] = true
		}
		for n := range cur.fragments {
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

// Environments lists every visible environment name in sorted order.
func (r *Registry) Environments() []string {
	seen := map[string]bool{}
	for cur := r; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		for n := range cur.macros {
			if name, ok := strings.CutSuffix(n, PrimitiveSuffix); ok {
				seen[name] = true
			}
		}
		for n := range cur.envs {
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

func checkName(name string) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "command name cannot be empty")
	}
	if len(name) > 1 && strings.ContainsAny(name, " \\{}") {
		return errors.New(errors.ErrCodeInvalidInput, "invalid command name %q", name)
	}
	return nil
}
