// Package renderer turns a scene of shapes into an image by casting one
// primary ray per pixel. Shading is a simple directional-sun Lambert model;
// light transport beyond that is out of scope here.
package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/stetizu1/semestral-project-height-fields/pkg/core"
)

const gamma = 2.0

// Renderer renders a scene of shapes with a shared camera. The shapes are
// read-only during rendering, so rows are traced by parallel workers without
// locking.
type Renderer struct {
	camera  *Camera
	shapes  []core.Shape
	sunDir  core.Vec3 // Unit vector pointing towards the sun
	ambient float64
	logger  *zap.Logger
}

// NewRenderer creates a renderer for the given shapes
func NewRenderer(camera *Camera, shapes []core.Shape, sunDirection core.Vec3, ambient float64, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		camera:  camera,
		shapes:  shapes,
		sunDir:  sunDirection.Normalize(),
		ambient: ambient,
		logger:  logger,
	}
}

// Render traces one ray per pixel and returns the resulting image. Rows are
// distributed over one worker goroutine per CPU.
func (r *Renderer) Render(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	numWorkers := runtime.NumCPU()
	rowQueue := make(chan int, height)
	for y := 0; y < height; y++ {
		rowQueue <- y
	}
	close(rowQueue)

	start := time.Now()
	r.logger.Info("render started",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("workers", numWorkers),
	)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rowQueue {
				r.renderRow(img, y, width, height)
			}
		}()
	}
	wg.Wait()

	r.logger.Info("render finished", zap.Duration("elapsed", time.Since(start)))
	return img
}

// renderRow traces every pixel of one image row
func (r *Renderer) renderRow(img *image.RGBA, y, width, height int) {
	for x := 0; x < width; x++ {
		s := (float64(x) + 0.5) / float64(width)
		t := 1.0 - (float64(y)+0.5)/float64(height) // Image rows grow downwards
		pixel := r.trace(r.camera.GetRay(s, t))

		pixel = pixel.Clamp(0, 1).GammaCorrect(gamma)
		img.SetRGBA(x, y, color.RGBA{
			R: uint8(pixel.X * 255.999),
			G: uint8(pixel.Y * 255.999),
			B: uint8(pixel.Z * 255.999),
			A: 255,
		})
	}
}

// trace finds the nearest hit over all shapes and shades it
func (r *Renderer) trace(ray core.Ray) core.Vec3 {
	var nearest *core.HitRecord
	tMax := math.Inf(1)

	for _, shape := range r.shapes {
		if hit, ok := shape.Hit(ray, 0, tMax); ok {
			nearest = hit
			tMax = hit.T
		}
	}

	if nearest == nil {
		return r.skyColor(ray)
	}
	return r.shade(nearest)
}

// shade applies the directional-sun Lambert model at a hit point
func (r *Renderer) shade(hit *core.HitRecord) core.Vec3 {
	albedo := core.NewVec3(0.5, 0.5, 0.5)
	if hit.Material != nil {
		albedo = hit.Material.Albedo(hit.Point)
	}

	diffuse := math.Max(0, hit.Normal.Dot(r.sunDir))
	intensity := r.ambient + (1-r.ambient)*diffuse
	return albedo.Multiply(intensity)
}

// skyColor returns the background gradient for rays that miss everything
func (r *Renderer) skyColor(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	blend := 0.5 * (unitDirection.Y + 1.0)

	white := core.NewVec3(1.0, 1.0, 1.0)
	blue := core.NewVec3(0.5, 0.7, 1.0)
	return white.Multiply(1.0 - blend).Add(blue.Multiply(blend))
}

// SavePNG writes an image to a PNG file
func SavePNG(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
