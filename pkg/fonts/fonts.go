// Package fonts provides the stylesheet the SVG sink embeds for glyph fonts.
//
// Glyph metrics come from the engine's font tables; the SVG only names the
// families to draw with. The embedded @font-face rules map those families
// to locally installed Latin Modern faces, and [StyleSheet] adds one CSS
// class per font id so text elements stay short.
package fonts

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/matzehuels/texbox/pkg/tex/font"
)

//go:embed faces.css
var faces string

// Faces returns the @font-face rules for the Latin Modern families.
func Faces() string { return faces }

// Class returns the CSS class of a font id.
func Class(fontID int) string { return fmt.Sprintf("f%d", fontID) }

// StyleSheet returns a CSS class per font in infos. With embed, the
// @font-face rules are prepended.
func StyleSheet(infos []font.Info, embed bool) string {
	var b strings.Builder
	if embed {
		b.WriteString(faces)
	}
	for _, f := range infos {
		fmt.Fprintf(&b, ".%s{font-family:%s;", Class(f.ID), quoteFamilies(f.Family))
		if f.Style != "" && f.Style != "normal" {
			fmt.Fprintf(&b, "font-style:%s;", f.Style)
		}
		if f.Weight != "" && f.Weight != "normal" {
			fmt.Fprintf(&b, "font-weight:%s;", f.Weight)
		}
		b.WriteString("}\n")
	}
	return b.String()
}

var generic = map[string]bool{"serif": true, "sans-serif": true, "monospace": true, "cursive": true, "fantasy": true}

// quoteFamilies quotes every non-generic family of a CSS family list.
func quoteFamilies(list string) string {
	parts := strings.Split(list, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if !generic[p] {
			p = "'" + strings.Trim(p, `'"`) + "'"
		}
		parts[i] = p
	}
	return strings.Join(parts, ",")
}
