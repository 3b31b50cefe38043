package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer derives cache keys from pipeline inputs.
type Keyer interface {
	// BoxKey identifies the box tree of a formula.
	BoxKey(source string, opts BoxKeyOpts) string
	// ArtifactKey identifies one rendered output of a box tree.
	ArtifactKey(boxHash string, opts ArtifactKeyOpts) string
}

// BoxKeyOpts are the layout options that change a box tree.
type BoxKeyOpts struct {
	Style     string  `json:"style"`
	Width     float64 `json:"width,omitempty"`
	Interline float64 `json:"interline,omitempty"`
	Partial   bool    `json:"partial,omitempty"`
	// Macros is a digest of preamble definitions applied before parsing.
	Macros string `json:"macros,omitempty"`
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Size       float64 `json:"size"`
	Padding    float64 `json:"padding,omitempty"`
	Foreground string  `json:"fg,omitempty"`
	Background string  `json:"bg,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	EmbedFonts bool    `json:"embed,omitempty"`
}

// DefaultKeyer hashes key options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// BoxKey returns "box:<hash>" over the source and options.
func (DefaultKeyer) BoxKey(source string, opts BoxKeyOpts) string {
	return hashKey("box", source, opts)
}

// ArtifactKey returns "artifact:<format>:<hash>".
func (DefaultKeyer) ArtifactKey(boxHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, boxHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
