package render

import (
	"encoding/json"

	"github.com/matzehuels/texbox/pkg/tex/box"
	"github.com/matzehuels/texbox/pkg/tex/font"
)

// Document is the JSON sink's output: a box tree with the fonts its glyphs
// reference. Lengths are in em.
type Document struct {
	Source string      `json:"source,omitempty"`
	Size   float64     `json:"size"`
	Fonts  []font.Info `json:"fonts"`
	Box    *box.Box    `json:"box"`
}

// JSON encodes b with the infos of the fonts it uses.
func JSON(source string, b *box.Box, fs Fonts, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	doc := Document{
		Source: source,
		Size:   opts.Size,
		Fonts:  usedFonts(b, fs),
		Box:    b,
	}
	if doc.Fonts == nil {
		doc.Fonts = []font.Info{}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ReadJSON decodes a document written by JSON.
func ReadJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
