package geometry

import (
	"math"
	"strings"
	"testing"

	"github.com/stetizu1/semestral-project-height-fields/pkg/core"
)

const testEpsilon = 1e-9

// gridSampler is an in-memory elevation source for tests
type gridSampler struct {
	width  int
	height int
	values []float64
}

func (s gridSampler) ImageWidth() int  { return s.width }
func (s gridSampler) ImageHeight() int { return s.height }
func (s gridSampler) ElevationAt(row, col int) float64 {
	return s.values[row*s.width+col]
}

// flatSampler returns a width x height sampler with a constant elevation
func flatSampler(width, height int, elevation float64) gridSampler {
	values := make([]float64, width*height)
	for i := range values {
		values[i] = elevation
	}
	return gridSampler{width: width, height: height, values: values}
}

func mustHeightMap(t *testing.T, sampler ElevationSampler, position core.Vec3, width, height, depth float64) *HeightMap {
	t.Helper()
	heightMap, err := NewHeightMap(sampler, position, width, height, depth, nil)
	if err != nil {
		t.Fatalf("NewHeightMap failed: %v", err)
	}
	return heightMap
}

func TestNewCell_MaxHeight(t *testing.T) {
	tests := []struct {
		name           string
		tl, tr, bl, br float64
		expectedMax    float64
	}{
		{"All equal", 0.5, 0.5, 0.5, 0.5, 0.5},
		{"TopLeft highest", 0.9, 0.1, 0.2, 0.3, 0.9},
		{"TopRight highest", 0.1, 0.8, 0.2, 0.3, 0.8},
		{"BottomLeft highest", 0.1, 0.2, 0.7, 0.3, 0.7},
		{"BottomRight highest", 0.1, 0.2, 0.3, 0.6, 0.6},
		{"All zero", 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := NewCell(tt.tl, tt.tr, tt.bl, tt.br)
			if cell.MaxHeight != tt.expectedMax {
				t.Errorf("expected max %v, got %v", tt.expectedMax, cell.MaxHeight)
			}
		})
	}
}

func TestNewHeightMap_GridDimensions(t *testing.T) {
	heightMap := mustHeightMap(t, flatSampler(5, 3, 0.5), core.NewVec3(0, 0, 0), 4, 1, 2)

	// A cell needs 4 neighboring samples, so the grid is one smaller than
	// the image in each dimension.
	if heightMap.Rows() != 2 {
		t.Errorf("expected 2 rows for a 3-row image, got %d", heightMap.Rows())
	}
	if heightMap.Cols() != 4 {
		t.Errorf("expected 4 cols for a 5-col image, got %d", heightMap.Cols())
	}
}

func TestNewHeightMap_CellCorners(t *testing.T) {
	// 3x3 samples numbered row-major 0..8 scaled to [0, 1]
	values := make([]float64, 9)
	for i := range values {
		values[i] = float64(i) / 10
	}
	sampler := gridSampler{width: 3, height: 3, values: values}

	heightMap := mustHeightMap(t, sampler, core.NewVec3(0, 0, 0), 2, 1, 2)

	cell := heightMap.CellAt(1, 0)
	if cell.TopLeft != 0.3 || cell.TopRight != 0.4 || cell.BottomLeft != 0.6 || cell.BottomRight != 0.7 {
		t.Errorf("unexpected corners for cell (1, 0): %+v", cell)
	}
	if cell.MaxHeight != 0.7 {
		t.Errorf("expected max 0.7, got %v", cell.MaxHeight)
	}
}

func TestNewHeightMap_BoundingBox(t *testing.T) {
	// Highest sample is 0.5, so the box reaches position.y + height*0.5
	values := []float64{0, 0.5, 0.25, 0}
	sampler := gridSampler{width: 2, height: 2, values: values}
	position := core.NewVec3(1, 2, 3)

	heightMap := mustHeightMap(t, sampler, position, 4, 10, 6)

	bbox := heightMap.BoundingBox()
	if bbox.Min != position {
		t.Errorf("expected box min %v, got %v", position, bbox.Min)
	}
	expectedMax := core.NewVec3(5, 7, 9)
	if bbox.Max != expectedMax {
		t.Errorf("expected box max %v, got %v", expectedMax, bbox.Max)
	}
}

func TestNewHeightMap_TooSmall(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"1x1", 1, 1},
		{"1x5", 1, 5},
		{"5x1", 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHeightMap(flatSampler(tt.width, tt.height, 0), core.NewVec3(0, 0, 0), 1, 1, 1, nil)
			if err == nil {
				t.Errorf("expected construction error for %dx%d sampler", tt.width, tt.height)
			}
		})
	}
}

func TestNewHeightMap_InvalidExtent(t *testing.T) {
	if _, err := NewHeightMap(flatSampler(2, 2, 0), core.NewVec3(0, 0, 0), 0, 1, 1, nil); err == nil {
		t.Error("expected construction error for zero width")
	}
	if _, err := NewHeightMap(flatSampler(2, 2, 0), core.NewVec3(0, 0, 0), 1, 1, -2, nil); err == nil {
		t.Error("expected construction error for negative depth")
	}
}

func TestHeightMap_BaseCoordinates(t *testing.T) {
	// 5x3 image -> 4x2 cells; one world unit per cell in both directions
	heightMap := mustHeightMap(t, flatSampler(5, 3, 0.5), core.NewVec3(1, 0, -1), 4, 1, 2)

	tests := []struct {
		name        string
		position    core.Vec3
		expectedX   float64
		expectedZ   float64
		expectedCol int
		expectedRow int
	}{
		{"Grid origin", core.NewVec3(1, 0, -1), 0, 0, 0, 0},
		{"Cell interior", core.NewVec3(2.5, 0, -0.25), 1.5, 0.75, 1, 0},
		{"Far corner cell", core.NewVec3(4.75, 0, 0.75), 3.75, 1.75, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, z := heightMap.BaseCoordinates(tt.position)
			if math.Abs(x-tt.expectedX) > testEpsilon || math.Abs(z-tt.expectedZ) > testEpsilon {
				t.Errorf("expected float coordinates (%v, %v), got (%v, %v)", tt.expectedX, tt.expectedZ, x, z)
			}

			col, row := heightMap.IntBaseCoordinates(tt.position)
			if col != tt.expectedCol || row != tt.expectedRow {
				t.Errorf("expected int coordinates (%d, %d), got (%d, %d)", tt.expectedCol, tt.expectedRow, col, row)
			}

			// Integer coordinates are the floor of the float coordinates
			if col != int(math.Floor(x)) || row != int(math.Floor(z)) {
				t.Errorf("int coordinates (%d, %d) are not the floor of (%v, %v)", col, row, x, z)
			}
		})
	}
}

func TestHeightMap_CellOnPosition(t *testing.T) {
	values := []float64{
		0.1, 0.2, 0.3,
		0.4, 0.5, 0.6,
		0.7, 0.8, 0.9,
	}
	sampler := gridSampler{width: 3, height: 3, values: values}
	heightMap := mustHeightMap(t, sampler, core.NewVec3(0, 0, 0), 2, 1, 2)

	cell := heightMap.CellOnPosition(core.NewVec3(1.5, 0, 0.5))
	if cell.TopLeft != 0.2 || cell.BottomRight != 0.6 {
		t.Errorf("expected cell (0, 1), got %+v", cell)
	}
}

func TestHeightMap_Accessors(t *testing.T) {
	position := core.NewVec3(2, 1, -3)
	heightMap := mustHeightMap(t, flatSampler(2, 2, 0), position, 1, 1, 1)

	if heightMap.Position() != position {
		t.Errorf("expected position %v, got %v", position, heightMap.Position())
	}
	if heightMap.Material() != nil {
		t.Errorf("expected nil material, got %v", heightMap.Material())
	}
}

func TestHeightMap_String(t *testing.T) {
	heightMap := mustHeightMap(t, flatSampler(3, 2, 0.5), core.NewVec3(0, 0, 0), 2, 1, 1)

	dump := heightMap.String()
	if !strings.Contains(dump, "heightMap(") {
		t.Errorf("expected dump to start with heightMap(, got %q", dump)
	}
	if !strings.Contains(dump, "0.50") {
		t.Errorf("expected dump to contain cell values, got %q", dump)
	}
}
