package geometry

import (
	"math"

	"github.com/stetizu1/semestral-project-height-fields/pkg/core"
)

const (
	// degenerateEpsilon is the threshold below which a grid-space direction
	// component is treated as zero during traversal.
	degenerateEpsilon = 1e-12

	// triangleEpsilon guards the Möller-Trumbore determinant and the minimum
	// accepted hit parameter.
	triangleEpsilon = 1e-8
)

// Intersection is the result of a successful ray query: the parametric
// distance along the ray and the surface normal at the hit point. The normal
// is oriented against the ray direction.
type Intersection struct {
	T      float64
	Normal core.Vec3
}

// FindIntersection finds the first point where the ray strikes the terrain
// surface. It runs a broad-phase bounding-box test first and only walks the
// grid cells the ray's projection can cross, in increasing-distance order,
// so the nearest hit is the first one found.
//
// On a miss the returned Intersection is the zero value and the bool is
// false.
func (h *HeightMap) FindIntersection(ray core.Ray) (Intersection, bool) {
	tLow, tHigh, ok := h.bbox.HitInterval(ray, 0, math.Inf(1))
	if !ok {
		return Intersection{}, false
	}
	return h.walkGrid(ray, tLow, tHigh)
}

// Hit adapts FindIntersection to the core.Shape interface, attaching the
// material handle to the hit record.
func (h *HeightMap) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	intersection, ok := h.FindIntersection(ray)
	if !ok || intersection.T < tMin || intersection.T > tMax {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:        intersection.T,
		Point:    ray.At(intersection.T),
		Material: h.material,
	}
	hitRecord.SetFaceNormal(ray, intersection.Normal)

	return hitRecord, true
}

// walkGrid walks the ray's (x, z) projection through the cell grid starting
// at the bounding-box entry parameter tLow. The walk advances one row band
// at a time; the columns crossed while inside a row band form one run, which
// is first quick-rejected against the cells' maximum heights and only then
// tested exactly.
func (h *HeightMap) walkGrid(ray core.Ray, tLow, tHigh float64) (Intersection, bool) {
	entry := ray.At(tLow)
	gridX, gridZ := h.BaseCoordinates(entry)
	gridDirX := ray.Direction.X * h.widthRatio
	gridDirZ := ray.Direction.Z * h.depthRatio

	col := clampIndex(gridX, h.cols)
	row := clampIndex(gridZ, h.rows)

	// A vertical ray projects onto a single point: only the entry cell can
	// be struck, over the whole box interval.
	if math.Abs(gridDirX) < degenerateEpsilon && math.Abs(gridDirZ) < degenerateEpsilon {
		return h.checkRun(row, col, col, ray, tLow, tHigh, tHigh)
	}

	stepRow := 0
	if gridDirZ > degenerateEpsilon {
		stepRow = 1
	} else if gridDirZ < -degenerateEpsilon {
		stepRow = -1
	}

	t0 := tLow
	for {
		// Parameter at which the ray leaves the current row band.
		t1 := tHigh
		if stepRow != 0 {
			boundary := float64(row)
			if stepRow > 0 {
				boundary = float64(row + 1)
			}
			if tExit := tLow + (boundary-gridZ)/gridDirZ; tExit < t1 {
				t1 = tExit
			}
		}

		colTo := col
		if math.Abs(gridDirX) >= degenerateEpsilon {
			colTo = clampIndex(gridX+(t1-tLow)*gridDirX, h.cols)
		}

		if intersection, ok := h.checkRun(row, col, colTo, ray, t0, t1, tHigh); ok {
			return intersection, true
		}

		if t1 >= tHigh || stepRow == 0 {
			return Intersection{}, false
		}
		row += stepRow
		if row < 0 || row >= h.rows {
			return Intersection{}, false
		}
		col = colTo
		t0 = t1
	}
}

// checkRun tests the contiguous span of columns [colFrom, colTo] in one row
// against the ray. The ray's height varies linearly over the run, so the run
// as a whole is rejected when the lower of its endpoint heights still clears
// every cell's maximum in the run. Surviving cells get the exact two-triangle
// test, in increasing-distance order; the first genuine hit is the nearest.
func (h *HeightMap) checkRun(row, colFrom, colTo int, ray core.Ray, t0, t1, tHigh float64) (Intersection, bool) {
	step := 1
	if colTo < colFrom {
		step = -1
	}

	runMax := 0.0
	for col := colFrom; ; col += step {
		if cellMax := h.cells[row*h.cols+col].MaxHeight; cellMax > runMax {
			runMax = cellMax
		}
		if col == colTo {
			break
		}
	}

	y0 := ray.Origin.Y + t0*ray.Direction.Y
	y1 := ray.Origin.Y + t1*ray.Direction.Y
	if math.Min(y0, y1) > h.position.Y+runMax*h.height {
		return Intersection{}, false
	}

	for col := colFrom; ; col += step {
		if intersection, ok := h.checkCell(row, col, ray, tHigh); ok {
			return intersection, true
		}
		if col == colTo {
			break
		}
	}
	return Intersection{}, false
}

// checkCell tests the ray against the true corner-sampled surface of one
// cell as two planar triangles, split along the topRight-bottomLeft
// diagonal. Both triangles are tested and the nearer hit wins, since the
// ray can clip either one first depending on its direction.
func (h *HeightMap) checkCell(row, col int, ray core.Ray, tHigh float64) (Intersection, bool) {
	cell := h.cells[row*h.cols+col]

	cellWidth := h.width / float64(h.cols)
	cellDepth := h.depth / float64(h.rows)
	x0 := h.position.X + float64(col)*cellWidth
	z0 := h.position.Z + float64(row)*cellDepth

	topLeft := core.NewVec3(x0, h.position.Y+cell.TopLeft*h.height, z0)
	topRight := core.NewVec3(x0+cellWidth, h.position.Y+cell.TopRight*h.height, z0)
	bottomLeft := core.NewVec3(x0, h.position.Y+cell.BottomLeft*h.height, z0+cellDepth)
	bottomRight := core.NewVec3(x0+cellWidth, h.position.Y+cell.BottomRight*h.height, z0+cellDepth)

	// Winding puts the geometric normals on the upper side of the surface.
	tMax := tHigh + triangleEpsilon
	t1, n1, hit1 := rayTriangle(ray, topLeft, bottomLeft, topRight, tMax)
	t2, n2, hit2 := rayTriangle(ray, topRight, bottomLeft, bottomRight, tMax)

	var t float64
	var normal core.Vec3
	switch {
	case hit1 && (!hit2 || t1 <= t2):
		t, normal = t1, n1
	case hit2:
		t, normal = t2, n2
	default:
		return Intersection{}, false
	}

	// Report the normal facing the ray origin side.
	if ray.Direction.Dot(normal) > 0 {
		normal = normal.Negate()
	}
	return Intersection{T: t, Normal: normal}, true
}

// rayTriangle tests a ray against a planar triangle using the
// Möller-Trumbore algorithm and returns the hit parameter and the
// triangle's geometric normal.
func rayTriangle(ray core.Ray, v0, v1, v2 core.Vec3, tMax float64) (float64, core.Vec3, bool) {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	p := ray.Direction.Cross(edge2)
	determinant := edge1.Dot(p)

	// Ray parallel to the triangle plane
	if determinant > -triangleEpsilon && determinant < triangleEpsilon {
		return 0, core.Vec3{}, false
	}

	invDeterminant := 1.0 / determinant
	s := ray.Origin.Subtract(v0)
	u := invDeterminant * s.Dot(p)
	if u < 0 || u > 1 {
		return 0, core.Vec3{}, false
	}

	q := s.Cross(edge1)
	v := invDeterminant * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, core.Vec3{}, false
	}

	t := invDeterminant * edge2.Dot(q)
	if t < triangleEpsilon || t > tMax {
		return 0, core.Vec3{}, false
	}

	return t, edge1.Cross(edge2).Normalize(), true
}

// clampIndex converts a continuous grid coordinate into a cell index,
// clamped into [0, count). Entry points computed on the bounding box can
// land exactly on the far edge of the grid; clamping keeps them in the last
// cell instead of one past it.
func clampIndex(coordinate float64, count int) int {
	index := int(math.Floor(coordinate))
	if index < 0 {
		return 0
	}
	if index >= count {
		return count - 1
	}
	return index
}
