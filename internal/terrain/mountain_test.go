package terrain

import (
	"errors"
	"math"
	"testing"
)

func TestStampMountainRaisesCenter(t *testing.T) {
	// Steepness and roughness zero: the raise is exactly PeakHeight at
	// the center and falls off linearly to zero at the radius.
	m := flatMesh(3, 20, 0)

	err := StampMountain(m, MountainOptions{
		Radius:     10,
		PeakHeight: 10,
	})
	if err != nil {
		t.Fatalf("stamp: %v", err)
	}

	center := vertexAt(m, 0, 0)
	if got := m.heightAt(center); got != 10 {
		t.Fatalf("center height = %v, want 10", got)
	}
	checkMeshInvariants(t, m)
}

func TestStampMountainLocality(t *testing.T) {
	// Grid vertices sit at x,z in {-10, 0, 10}. With radius 5 around the
	// origin, every vertex except the center is at distance >= 10 and
	// must be untouched.
	m := flatMesh(3, 20, 0)

	err := StampMountain(m, MountainOptions{
		Radius:     5,
		PeakHeight: 10,
	})
	if err != nil {
		t.Fatalf("stamp: %v", err)
	}

	for i := 0; i < m.VertexCount(); i++ {
		x, y, z := m.position(i)
		dist := math.Hypot(x, z)
		if dist >= 5 && y != 0 {
			t.Fatalf("vertex at distance %v moved to height %v", dist, y)
		}
	}
}

func TestStampMountainBoundaryVertexUnmodified(t *testing.T) {
	// Vertices exactly at the radius see falloff zero and are skipped.
	m := flatMesh(3, 20, 0)

	err := StampMountain(m, MountainOptions{
		Radius:     10,
		PeakHeight: 10,
	})
	if err != nil {
		t.Fatalf("stamp: %v", err)
	}

	edge := vertexAt(m, 10, 0)
	if got := m.heightAt(edge); got != 0 {
		t.Fatalf("vertex at exact radius moved to %v", got)
	}
}

func TestStampMountainPlateau(t *testing.T) {
	// With a plateau fraction, vertices past it get the near-flat cap of
	// 0.9*PeakHeight instead of the falloff curve.
	m := flatMesh(3, 20, 0)

	err := StampMountain(m, MountainOptions{
		Radius:        10,
		PeakHeight:    10,
		PlateauHeight: 0.5,
	})
	if err != nil {
		t.Fatalf("stamp: %v", err)
	}

	center := vertexAt(m, 0, 0)
	if got := m.heightAt(center); got != 9 {
		t.Fatalf("plateau center height = %v, want 9", got)
	}
}

func TestStampMountainSteepnessSharpensPeak(t *testing.T) {
	steep := flatMesh(9, 20, 0)
	gentle := flatMesh(9, 20, 0)

	if err := StampMountain(gentle, MountainOptions{Radius: 10, PeakHeight: 10}); err != nil {
		t.Fatalf("stamp: %v", err)
	}
	if err := StampMountain(steep, MountainOptions{Radius: 10, PeakHeight: 10, Steepness: 1}); err != nil {
		t.Fatalf("stamp: %v", err)
	}

	// Halfway out, the steep mountain has dropped off further.
	mid := vertexAt(gentle, 5, 0)
	if steep.heightAt(mid) >= gentle.heightAt(mid) {
		t.Fatalf("steep falloff %v should be below gentle falloff %v",
			steep.heightAt(mid), gentle.heightAt(mid))
	}
}

func TestStampMountainDeterministicRoughness(t *testing.T) {
	opts := MountainOptions{Radius: 10, PeakHeight: 10, Roughness: 0.8, Seed: 31}

	m1 := flatMesh(9, 20, 0)
	m2 := flatMesh(9, 20, 0)
	if err := StampMountain(m1, opts); err != nil {
		t.Fatalf("stamp: %v", err)
	}
	if err := StampMountain(m2, opts); err != nil {
		t.Fatalf("stamp: %v", err)
	}

	h1 := meshHeights(m1)
	h2 := meshHeights(m2)
	for i := range h1 {
		if h1[i] != h2[i] {
			t.Fatalf("roughness not deterministic at vertex %d", i)
		}
	}
}

func TestStampMountainInvalidOptions(t *testing.T) {
	m := flatMesh(3, 20, 0)
	cases := []MountainOptions{
		{Radius: 0, PeakHeight: 10},
		{Radius: 10, Roughness: 2},
		{Radius: 10, Steepness: -0.1},
		{Radius: 10, PlateauHeight: 1.5},
	}
	for i, opts := range cases {
		if err := StampMountain(m, opts); !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("case %d: expected ErrInvalidParameters, got %v", i, err)
		}
	}
}
