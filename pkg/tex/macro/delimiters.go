package macro

import (
	"github.com/matzehuels/texbox/pkg/tex/atom"
	"github.com/matzehuels/texbox/pkg/tex/class"
)

func delimiterMacros() []Macro {
	ms := []Macro{
		fixed("middle", 1, middle),
	}
	sizes := []string{"big", "Big", "bigg", "Bigg"}
	suffixes := []struct {
		s string
		t class.Type
	}{
		{"", class.Ord},
		{"l", class.Open},
		{"m", class.Rel},
		{"r", class.Close},
	}
	for i, name := range sizes {
		for _, suf := range suffixes {
			ms = append(ms, fixed(name+suf.s, 1, big(i+1, suf.t)))
		}
	}
	return ms
}

func middle(ctx Context, args Args) (atom.Atom, error) {
	d, err := ctx.Parse(args.Arg(0))
	if err != nil {
		return nil, err
	}
	return atom.NewMiddle(d)
}

func big(size int, t class.Type) Invoker {
	return func(ctx Context, args Args) (atom.Atom, error) {
		d, err := ctx.Parse(args.Arg(0))
		if err != nil {
			return nil, err
		}
		return atom.NewBigDelimiter(single(d), size, t)
	}
}
