package cache

// Keyer generates cache keys for diagram artifacts.
type Keyer interface {
	// ArtifactKey returns the key of the artifact rendered from the options
	// with the given hash in the given format (svg, png, pdf, json).
	ArtifactKey(optionsHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds the render settings that change an artifact's bytes
// without being part of the diagram options.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer generates unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(optionsHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", optionsHash, opts)
}
