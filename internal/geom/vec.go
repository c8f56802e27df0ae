package geom

import "math"

// Vec3 is a float64 point/direction in world space (Y is up).
// Value type, passed by value.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// V creates Vec3.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Zero returns the origin.
func Zero() Vec3 {
	return Vec3{}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns dot product.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// LenSquared returns squared length (no sqrt for hot paths).
func (v Vec3) LenSquared() float64 {
	return v.Dot(v)
}

// Len returns vector length.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.LenSquared())
}

// Normalize returns unit vector. Zero vector stays zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Distance returns euclidean distance to o.
func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Len()
}

// DistanceSquared returns squared distance to o.
func (v Vec3) DistanceSquared(o Vec3) float64 {
	return v.Sub(o).LenSquared()
}

// WithY returns copy with Y replaced.
func (v Vec3) WithY(y float64) Vec3 {
	v.Y = y
	return v
}

// MoveTowards moves v toward target by at most maxDelta, never overshooting.
func (v Vec3) MoveTowards(target Vec3, maxDelta float64) Vec3 {
	d := target.Sub(v)
	dist := d.Len()
	if dist <= maxDelta || dist == 0 {
		return target
	}
	return v.Add(d.Scale(maxDelta / dist))
}

// YawForward returns the horizontal forward vector for yaw in degrees
// (0 looks down +Z, positive yaw turns clockwise seen from above).
func YawForward(yawDeg float64) Vec3 {
	r := yawDeg * math.Pi / 180
	return Vec3{X: math.Sin(r), Z: math.Cos(r)}
}

// InverseYaw expresses world-space offset in a frame rotated by yaw degrees.
func InverseYaw(offset Vec3, yawDeg float64) Vec3 {
	r := yawDeg * math.Pi / 180
	sin, cos := math.Sin(r), math.Cos(r)
	return Vec3{
		X: offset.X*cos - offset.Z*sin,
		Y: offset.Y,
		Z: offset.X*sin + offset.Z*cos,
	}
}
