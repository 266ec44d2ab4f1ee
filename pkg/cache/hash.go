package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

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

// ArtifactKeyOpts lists every render parameter that affects an artifact's
// bytes. Colors are given in hex so the struct stays comparable.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	Wall       int    `json:"wall"`
	Passage    int    `json:"passage"`
	Margin     int    `json:"margin"`
	Background string `json:"background"`
	Foreground string `json:"foreground"`
	Detailed   bool   `json:"detailed,omitempty"`
	CellWidth  int    `json:"cell_width,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered output of the grid whose
	// serialized form hashes to gridHash.
	ArtifactKey(gridHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unprefixed keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(gridHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", gridHash, opts)
}
