package atom

import (
	"fmt"
	"strings"
)

// Label is a one-line description of a: its variant, the fields that tell
// it apart and its category.
func Label(a Atom) string {
	var name string
	switch x := a.(type) {
	case nil:
		return "nil"
	case *Row:
		name = "row"
	case *Char:
		name = fmt.Sprintf("char %q", x.C)
	case *Symbol:
		name = `symbol \` + x.Name
	case *glyph:
		name = fmt.Sprintf("ligature %q", x.cf.C)
	case *Placeholder:
		name = "placeholder " + x.Command
	case *Empty:
		name = "empty"
	case *Space:
		switch {
		case x.Interword:
			name = "space interword"
		case x.Height.Value != 0 || x.Depth.Value != 0:
			name = fmt.Sprintf("strut %s %s %s", x.Width, x.Height, x.Depth)
		default:
			name = "space " + x.Width.String()
		}
	case *Rule:
		name = fmt.Sprintf("rule %s %s", x.Width, x.Height)
	case *Scripts:
		name = "scripts"
	case *Fraction:
		name = "fraction"
		if !x.Rule {
			name = "fraction norule"
		}
	case *BigOperator:
		name = "bigop " + x.limits.String()
	case *Accented:
		name = "accented"
	case *UnderOver:
		name = "underover"
	case *OverBar:
		name = "overline"
	case *UnderBar:
		name = "underline"
	case *HExtensible:
		name = "extensible " + x.Glyph
	case *XArrow:
		name = "xarrow " + x.Glyph
	case *Radical:
		name = "sqrt"
	case *Fenced:
		name = fmt.Sprintf("fenced %q %q", x.Left, x.Right)
	case *Middle:
		name = "middle " + x.Name
	case *BigDelimiter:
		name = fmt.Sprintf("big%d %s", x.Size, x.Name)
	case *Matrix:
		name = fmt.Sprintf("matrix %s %dx%d", x.Flavor, x.Grid.Rows(), x.cols())
	case *Hline:
		name = "hline"
	case *Multicolumn:
		name = fmt.Sprintf("multicolumn %d", x.Span)
	case *Intertext:
		name = "intertext"
	case *Color:
		name = "color"
		if x.Foreground != nil {
			name += " " + x.Foreground.Hex()
		}
		if x.Background != nil {
			name += " bg " + x.Background.Hex()
		}
	case *StyleChange:
		name = "style " + x.Style.String()
	case *Styled:
		name = "styled " + x.Variant.String()
	case *Text:
		name = "text " + x.Variant.String()
	case *Typed:
		name = "typed"
	case *Phantom:
		name = "phantom"
	case *Smash:
		name = "smash"
	case *Raise:
		name = "raise " + x.Raise.String()
	case *Lap:
		name = "rlap"
		if x.Left {
			name = "llap"
		}
	case *VCenter:
		name = "vcenter"
	case *Framed:
		name = "framed"
	default:
		name = fmt.Sprintf("%T", a)
	}
	return name + " [" + a.Type().String() + "]"
}

// Dump renders the atom tree as indented text, one atom per line.
func Dump(a Atom) string {
	var sb strings.Builder
	dump(&sb, a, 0)
	return sb.String()
}

func dump(sb *strings.Builder, a Atom, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(Label(a))
	sb.WriteByte('\n')
	if c, ok := a.(Composite); ok {
		for _, child := range c.Children() {
			dump(sb, child, depth+1)
		}
	}
}
