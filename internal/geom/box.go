package geom

import "math"

// Box is an axis-aligned bounding box.
type Box struct {
	Min Vec3
	Max Vec3
}

// BoxAround creates box from center and full size.
func BoxAround(center, size Vec3) Box {
	half := size.Scale(0.5)
	return Box{Min: center.Sub(half), Max: center.Add(half)}
}

// Contains reports whether p lies inside the box (inclusive).
func (b Box) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Center returns box center.
func (b Box) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// ClosestPoint returns the point of the box nearest to p.
func (b Box) ClosestPoint(p Vec3) Vec3 {
	return Vec3{
		X: math.Max(b.Min.X, math.Min(p.X, b.Max.X)),
		Y: math.Max(b.Min.Y, math.Min(p.Y, b.Max.Y)),
		Z: math.Max(b.Min.Z, math.Min(p.Z, b.Max.Z)),
	}
}

// RaySphere returns distance along unit ray dir to the first intersection
// with sphere, or false when missed or further than maxDist.
func RaySphere(origin, dir, center Vec3, radius, maxDist float64) (float64, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.LenSquared() - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		// origin inside sphere
		t = -b + sq
	}
	if t < 0 || t > maxDist {
		return 0, false
	}
	return t, true
}

// RayBox returns distance and surface normal for the first intersection of
// unit ray dir with box (slab method).
func RayBox(origin, dir Vec3, box Box, maxDist float64) (float64, Vec3, bool) {
	tmin, tmax := 0.0, maxDist
	var normal Vec3

	axes := [3]struct {
		o, d, lo, hi float64
		n            Vec3
	}{
		{origin.X, dir.X, box.Min.X, box.Max.X, Vec3{X: 1}},
		{origin.Y, dir.Y, box.Min.Y, box.Max.Y, Vec3{Y: 1}},
		{origin.Z, dir.Z, box.Min.Z, box.Max.Z, Vec3{Z: 1}},
	}

	for _, a := range axes {
		if a.d == 0 {
			if a.o < a.lo || a.o > a.hi {
				return 0, Vec3{}, false
			}
			continue
		}
		t1 := (a.lo - a.o) / a.d
		t2 := (a.hi - a.o) / a.d
		n := a.n.Scale(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			n = a.n
		}
		if t1 > tmin {
			tmin = t1
			normal = n
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, Vec3{}, false
		}
	}
	return tmin, normal, true
}
