// Package loaders reads external asset files into the in-memory forms the
// rest of the tracer consumes.
package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder

	"github.com/stetizu1/semestral-project-height-fields/pkg/core"
)

// ElevationMap holds elevation samples decoded from an image, one value in
// [0, 1] per pixel, in a flat row-major buffer. It implements
// geometry.ElevationSampler.
type ElevationMap struct {
	width  int
	height int
	values []float64
}

// LoadElevationMap loads an image file and converts it to elevation samples.
// Color images are converted through perceptual luminance, so a grayscale
// height map image round-trips exactly.
func LoadElevationMap(filename string) (*ElevationMap, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open elevation image: %w", err)
	}
	defer file.Close()

	// Format is auto-detected from the file header (PNG/JPEG/BMP/TIFF)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode elevation image %s: %w", filename, err)
	}

	return NewElevationMapFromImage(img), nil
}

// NewElevationMapFromImage converts a decoded image to elevation samples
func NewElevationMapFromImage(img image.Image) *ElevationMap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	values := make([]float64, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			color := core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
			values[y*width+x] = color.Luminance()
		}
	}

	return &ElevationMap{width: width, height: height, values: values}
}

// NewElevationMapFromValues builds an elevation map directly from sample
// values in row-major order. Useful for synthetic terrain and tests.
func NewElevationMapFromValues(width, height int, values []float64) (*ElevationMap, error) {
	if len(values) != width*height {
		return nil, fmt.Errorf("expected %d elevation values for %dx%d, got %d",
			width*height, width, height, len(values))
	}
	return &ElevationMap{width: width, height: height, values: values}, nil
}

// ImageWidth returns the number of sample columns
func (e *ElevationMap) ImageWidth() int {
	return e.width
}

// ImageHeight returns the number of sample rows
func (e *ElevationMap) ImageHeight() int {
	return e.height
}

// ElevationAt returns the elevation sample at (row, col)
func (e *ElevationMap) ElevationAt(row, col int) float64 {
	return e.values[row*e.width+col]
}
