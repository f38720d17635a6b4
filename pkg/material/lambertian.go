// Package material provides the surface materials the renderer shades with.
// Shapes only carry materials as opaque handles; all evaluation happens at
// shading time.
package material

import "github.com/stetizu1/semestral-project-height-fields/pkg/core"

// Lambertian represents a perfectly diffuse material with a solid color
type Lambertian struct {
	albedo core.Vec3
}

// NewLambertian creates a new lambertian material with a solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{albedo: albedo}
}

// Albedo implements the core.Material interface
func (l *Lambertian) Albedo(point core.Vec3) core.Vec3 {
	return l.albedo
}
