package geometry

// Cell is one height-field grid cell: the four corner elevation samples of an
// adjacent 2x2 block, plus their precomputed maximum. "Top" corners belong to
// the lower row index (smaller z), "bottom" corners to the higher one.
type Cell struct {
	TopLeft     float64
	TopRight    float64
	BottomLeft  float64
	BottomRight float64
	MaxHeight   float64 // Maximum of the four corners
}

// NewCell creates a cell from its four corner elevations and computes the
// corner maximum.
func NewCell(topLeft, topRight, bottomLeft, bottomRight float64) Cell {
	maxHeight := topLeft
	if topRight > maxHeight {
		maxHeight = topRight
	}
	if bottomLeft > maxHeight {
		maxHeight = bottomLeft
	}
	if bottomRight > maxHeight {
		maxHeight = bottomRight
	}

	return Cell{
		TopLeft:     topLeft,
		TopRight:    topRight,
		BottomLeft:  bottomLeft,
		BottomRight: bottomRight,
		MaxHeight:   maxHeight,
	}
}

// ElevationSampler is the read-only data source a height map is built from.
// Elevations are expected in [0, 1]; the height map scales them into world
// space. Implementations must report dimensions of at least 2x2.
type ElevationSampler interface {
	ImageWidth() int
	ImageHeight() int
	ElevationAt(row, col int) float64
}
