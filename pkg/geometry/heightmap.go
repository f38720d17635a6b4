package geometry

import (
	"fmt"
	"math"
	"strings"

	"github.com/stetizu1/semestral-project-height-fields/pkg/core"
)

// HeightMap is a terrain surface sampled on a regular grid. Each adjacent
// 2x2 block of elevation samples forms one Cell, so the grid has one row and
// one column less than the source image.
//
// A HeightMap is immutable after construction; all queries are read-only and
// safe for concurrent use.
type HeightMap struct {
	cells []Cell // Flat row-major cell grid (row*cols + col)
	rows  int
	cols  int

	position core.Vec3 // World position of the (0, 0) corner
	width    float64   // World extent along x
	height   float64   // Scale applied to elevation samples along y
	depth    float64   // World extent along z

	widthRatio float64 // Grid columns per world unit of x
	depthRatio float64 // Grid rows per world unit of z

	material core.Material
	bbox     core.AABB
}

// NewHeightMap builds a height map from an elevation sampler. The sampled
// image must be at least 2x2; anything smaller cannot form a single cell and
// is rejected as a construction error.
func NewHeightMap(sampler ElevationSampler, position core.Vec3, width, height, depth float64, material core.Material) (*HeightMap, error) {
	imgWidth, imgHeight := sampler.ImageWidth(), sampler.ImageHeight()
	if imgWidth < 2 || imgHeight < 2 {
		return nil, fmt.Errorf("height map needs at least a 2x2 elevation image, got %dx%d", imgWidth, imgHeight)
	}
	if width <= 0 || depth <= 0 {
		return nil, fmt.Errorf("height map needs positive width and depth, got %gx%g", width, depth)
	}

	rows, cols := imgHeight-1, imgWidth-1
	cells := make([]Cell, rows*cols)
	maxElevation := 0.0

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell := NewCell(
				sampler.ElevationAt(row, col),
				sampler.ElevationAt(row, col+1),
				sampler.ElevationAt(row+1, col),
				sampler.ElevationAt(row+1, col+1),
			)
			cells[row*cols+col] = cell
			if cell.MaxHeight > maxElevation {
				maxElevation = cell.MaxHeight
			}
		}
	}

	return &HeightMap{
		cells:      cells,
		rows:       rows,
		cols:       cols,
		position:   position,
		width:      width,
		height:     height,
		depth:      depth,
		widthRatio: float64(cols) / width,
		depthRatio: float64(rows) / depth,
		material:   material,
		bbox: core.NewAABB(
			position,
			position.Add(core.NewVec3(width, height*maxElevation, depth)),
		),
	}, nil
}

// Rows returns the number of cell rows in the grid
func (h *HeightMap) Rows() int {
	return h.rows
}

// Cols returns the number of cell columns in the grid
func (h *HeightMap) Cols() int {
	return h.cols
}

// Position returns the world position of the height map
func (h *HeightMap) Position() core.Vec3 {
	return h.position
}

// Material returns the material handle of the height map
func (h *HeightMap) Material() core.Material {
	return h.material
}

// BoundingBox returns the axis-aligned bounding box of the height map
func (h *HeightMap) BoundingBox() core.AABB {
	return h.bbox
}

// CellAt returns the cell at the given grid coordinates
func (h *HeightMap) CellAt(row, col int) Cell {
	if row < 0 || row >= h.rows || col < 0 || col >= h.cols {
		panic(fmt.Sprintf("cell coordinates (%d, %d) outside %dx%d grid", row, col, h.rows, h.cols))
	}
	return h.cells[row*h.cols+col]
}

// BaseCoordinates maps a world position onto continuous grid coordinates:
// x is the column coordinate, z the row coordinate.
func (h *HeightMap) BaseCoordinates(position core.Vec3) (x, z float64) {
	return (position.X - h.position.X) * h.widthRatio,
		(position.Z - h.position.Z) * h.depthRatio
}

// IntBaseCoordinates maps a world position onto the grid indices of the cell
// under it: the floor of the continuous coordinates from BaseCoordinates.
func (h *HeightMap) IntBaseCoordinates(position core.Vec3) (col, row int) {
	x, z := h.BaseCoordinates(position)
	return int(math.Floor(x)), int(math.Floor(z))
}

// CellOnPosition returns the cell under a world position. The position must
// lie within the grid's footprint; anything else is a caller contract
// violation.
func (h *HeightMap) CellOnPosition(position core.Vec3) Cell {
	col, row := h.IntBaseCoordinates(position)
	return h.CellAt(row, col)
}

// String returns a human-readable dump of the grid contents and parameters,
// for diagnostics only.
func (h *HeightMap) String() string {
	var sb strings.Builder
	sb.WriteString("heightMap(\n")
	for row := 0; row < h.rows; row++ {
		sb.WriteString("  ")
		for col := 0; col < h.cols; col++ {
			cell := h.cells[row*h.cols+col]
			fmt.Fprintf(&sb, "{%.2f,%.2f,%.2f,%.2f --> %.2f} ",
				cell.TopLeft, cell.TopRight, cell.BottomLeft, cell.BottomRight, cell.MaxHeight)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, ") with parameters (width, height, depth) set to (%g, %g, %g) at %v",
		h.width, h.height, h.depth, h.position)
	return sb.String()
}
