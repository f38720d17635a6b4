package core

import (
	"math"
	"testing"
)

func TestAABB_HitInterval(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))

	tests := []struct {
		name         string
		ray          Ray
		expectHit    bool
		expectedLow  float64
		expectedHigh float64
	}{
		{
			name:         "Straight through along y",
			ray:          NewRay(NewVec3(0.5, 5, 0.5), NewVec3(0, -1, 0)),
			expectHit:    true,
			expectedLow:  4,
			expectedHigh: 5,
		},
		{
			name:         "Origin inside the box",
			ray:          NewRay(NewVec3(0.5, 0.5, 0.5), NewVec3(0, 0, 1)),
			expectHit:    true,
			expectedLow:  0,
			expectedHigh: 0.5,
		},
		{
			name:      "Pointing away from the box",
			ray:       NewRay(NewVec3(0.5, 5, 0.5), NewVec3(0, 1, 0)),
			expectHit: false,
		},
		{
			name:      "Parallel axis outside slab",
			ray:       NewRay(NewVec3(10, 5, 0.5), NewVec3(0, -1, 0)),
			expectHit: false,
		},
		{
			name:         "Parallel axis inside slab",
			ray:          NewRay(NewVec3(0.5, 0.5, -2), NewVec3(0, 0, 1)),
			expectHit:    true,
			expectedLow:  2,
			expectedHigh: 3,
		},
		{
			name:         "Diagonal through corner region",
			ray:          NewRay(NewVec3(-1, -1, -1), NewVec3(1, 1, 1)),
			expectHit:    true,
			expectedLow:  1,
			expectedHigh: 2,
		},
		{
			name:      "Diagonal missing the box",
			ray:       NewRay(NewVec3(-1, -1, -1), NewVec3(1, -1, 1)),
			expectHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tLow, tHigh, ok := box.HitInterval(tt.ray, 0, math.Inf(1))
			if ok != tt.expectHit {
				t.Fatalf("expected hit=%v, got %v", tt.expectHit, ok)
			}
			if !ok {
				return
			}
			if math.Abs(tLow-tt.expectedLow) > testEpsilon {
				t.Errorf("expected tLow %v, got %v", tt.expectedLow, tLow)
			}
			if math.Abs(tHigh-tt.expectedHigh) > testEpsilon {
				t.Errorf("expected tHigh %v, got %v", tt.expectedHigh, tHigh)
			}
			if tLow > tHigh {
				t.Errorf("interval is empty: tLow %v > tHigh %v", tLow, tHigh)
			}
		})
	}
}

func TestAABB_HitInterval_FlatBox(t *testing.T) {
	// A box degenerate in y still produces a valid single-point interval.
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 0, 1))
	ray := NewRay(NewVec3(0.5, 5, 0.5), NewVec3(0, -1, 0))

	tLow, tHigh, ok := box.HitInterval(ray, 0, math.Inf(1))
	if !ok {
		t.Fatal("expected hit on flat box")
	}
	if math.Abs(tLow-5) > testEpsilon || math.Abs(tHigh-5) > testEpsilon {
		t.Errorf("expected interval [5, 5], got [%v, %v]", tLow, tHigh)
	}
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	if !box.Hit(NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), 0, math.Inf(1)) {
		t.Error("expected hit for ray aimed at the box")
	}
	if box.Hit(NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), 0, 1) {
		t.Error("expected miss when tMax ends before the box")
	}
}

func TestAABB_Construction(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(1, 5, -2), NewVec3(-1, 0, 3), NewVec3(0, 2, 0))

	if !vec3Equals(box.Min, NewVec3(-1, 0, -2), testEpsilon) {
		t.Errorf("expected min (-1, 0, -2), got %v", box.Min)
	}
	if !vec3Equals(box.Max, NewVec3(1, 5, 3), testEpsilon) {
		t.Errorf("expected max (1, 5, 3), got %v", box.Max)
	}

	if !box.Contains(NewVec3(0, 2, 0)) {
		t.Error("expected box to contain an interior point")
	}
	if box.Contains(NewVec3(0, 6, 0)) {
		t.Error("expected box not to contain a point above it")
	}

	union := box.Union(NewAABB(NewVec3(-5, 0, 0), NewVec3(0, 1, 4)))
	if !vec3Equals(union.Min, NewVec3(-5, 0, -2), testEpsilon) || !vec3Equals(union.Max, NewVec3(1, 5, 4), testEpsilon) {
		t.Errorf("unexpected union: %v", union)
	}

	if !vec3Equals(box.Center(), NewVec3(0, 2.5, 0.5), testEpsilon) {
		t.Errorf("expected center (0, 2.5, 0.5), got %v", box.Center())
	}
	if !vec3Equals(box.Size(), NewVec3(2, 5, 5), testEpsilon) {
		t.Errorf("expected size (2, 5, 5), got %v", box.Size())
	}
}
