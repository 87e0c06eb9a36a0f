package images

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/rwcarlsen/goexif/exif"
)

// Dimensions is the displayed size of an image in pixels.
type Dimensions struct {
	Width  int
	Height int
}

// Orientation is the aspect an image selection prefers.
type Orientation string

const (
	// Portrait prefers images taller than they are wide.
	Portrait Orientation = "portrait"
	// Landscape prefers images wider than they are tall.
	Landscape Orientation = "landscape"
)

// Matches reports whether d has orientation o. Square images match neither.
func (o Orientation) Matches(d Dimensions) bool {
	switch o {
	case Portrait:
		return d.Height > d.Width
	case Landscape:
		return d.Width > d.Height
	default:
		return false
	}
}

// ProbeFunc reads the dimensions of the image at an absolute path.
type ProbeFunc func(path string) (Dimensions, error)

// Probe reads the image header at path and returns its displayed dimensions.
// EXIF orientations 5 through 8 rotate the image by 90 degrees, so width and
// height are swapped for them.
func Probe(path string) (Dimensions, error) {
	file, err := os.Open(path)
	if err != nil {
		return Dimensions{}, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return Dimensions{}, fmt.Errorf("decode image header %s: %w", path, err)
	}
	dims := Dimensions{Width: cfg.Width, Height: cfg.Height}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return dims, nil
	}
	if rotated(file) {
		dims.Width, dims.Height = dims.Height, dims.Width
	}
	return dims, nil
}

// rotated reports whether the EXIF orientation tag describes a quarter turn.
// Missing or unreadable EXIF data means no rotation.
func rotated(r io.Reader) bool {
	x, err := exif.Decode(r)
	if err != nil {
		return false
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return false
	}
	value, err := tag.Int(0)
	if err != nil {
		return false
	}
	return value >= 5 && value <= 8
}
