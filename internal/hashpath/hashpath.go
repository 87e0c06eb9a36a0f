// Package hashpath derives stable, evenly fanned-out storage paths from
// arbitrary relative source paths.
//
// The SHA-1 digest of the slash-separated source path is split into depth
// two-character directory names, and the rest of the digest plus the source
// extension forms the file name:
//
//	Build("Jane Doe/Album 1/photo1.jpg", 2) // "3f/a1/9c0e...e4.jpg"
//
// The same source path always maps to the same result, and distinct paths
// only collide when their digests do.
package hashpath

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

const (
	// DefaultDepth is the nesting used when callers have no preference.
	DefaultDepth = 4
	// MinDepth and MaxDepth bound the accepted nesting.
	MinDepth = 1
	MaxDepth = 20
)

// ErrDepthOutOfRange is returned for a depth outside [MinDepth, MaxDepth].
var ErrDepthOutOfRange = errors.New("hash path depth out of range")

// Build returns the content-addressed path for rel, slash-separated.
func Build(rel string, depth int) (string, error) {
	if depth < MinDepth || depth > MaxDepth {
		return "", fmt.Errorf("%w: %d not in [%d, %d]", ErrDepthOutOfRange, depth, MinDepth, MaxDepth)
	}
	source := filepath.ToSlash(rel)
	sum := sha1.Sum([]byte(source))
	digest := hex.EncodeToString(sum[:])

	parts := make([]string, 0, depth+1)
	for i := 0; i < depth; i++ {
		parts = append(parts, digest[i*2:i*2+2])
	}
	parts = append(parts, digest[depth*2:]+path.Ext(source))
	return path.Join(parts...), nil
}

// Tagged inserts _tag before the extension of p: "a/b.jpg" -> "a/b_thumb.jpg".
func Tagged(p, tag string) string {
	dir, name := path.Split(filepath.ToSlash(p))
	ext := path.Ext(name)
	return dir + strings.TrimSuffix(name, ext) + "_" + tag + ext
}

// PathToRoot returns "../" repeated depth times. Negative depths are an error.
func PathToRoot(depth int) (string, error) {
	if depth < 0 {
		return "", fmt.Errorf("%w: %d is negative", ErrDepthOutOfRange, depth)
	}
	return strings.Repeat("../", depth), nil
}
