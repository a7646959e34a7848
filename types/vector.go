package types

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Float is the set of floating point precisions supported by the library.
type Float = constraints.Float

// A 2 component vector.
type Vec2[T Float] [2]T

// A 3 component vector.
type Vec3[T Float] [3]T

// A 3 component integer vector used for face indices.
type Vec3i [3]int32

// Define a 2 component vector.
func XY[T Float](x, y T) Vec2[T] {
	return Vec2[T]{x, y}
}

// Define a 3 component vector.
func XYZ[T Float](x, y, z T) Vec3[T] {
	return Vec3[T]{x, y, z}
}

// Add a vector.
func (v Vec3[T]) Add(v2 Vec3[T]) Vec3[T] {
	return Vec3[T]{v[0] + v2[0], v[1] + v2[1], v[2] + v2[2]}
}

// Subtract a vector.
func (v Vec3[T]) Sub(v2 Vec3[T]) Vec3[T] {
	return Vec3[T]{v[0] - v2[0], v[1] - v2[1], v[2] - v2[2]}
}

// Multiply a 3 component vector with a scalar.
func (v Vec3[T]) Mul(s T) Vec3[T] {
	return Vec3[T]{v[0] * s, v[1] * s, v[2] * s}
}

// Multiply two vectors component-wise.
func (v Vec3[T]) MulVec(v2 Vec3[T]) Vec3[T] {
	return Vec3[T]{v[0] * v2[0], v[1] * v2[1], v[2] * v2[2]}
}

// Divide a 3 component vector by another component-wise. Division by zero
// follows IEEE semantics and yields an infinity of the appropriate sign.
func (v Vec3[T]) Div(v2 Vec3[T]) Vec3[T] {
	return Vec3[T]{v[0] / v2[0], v[1] / v2[1], v[2] / v2[2]}
}

// Calculate dot product of 2 vectors.
func (v Vec3[T]) Dot(v2 Vec3[T]) T {
	return v[0]*v2[0] + v[1]*v2[1] + v[2]*v2[2]
}

// Calculate cross product of 2 vectors.
func (v Vec3[T]) Cross(v2 Vec3[T]) Vec3[T] {
	return Vec3[T]{v[1]*v2[2] - v[2]*v2[1], v[2]*v2[0] - v[0]*v2[2], v[0]*v2[1] - v[1]*v2[0]}
}

// Get 3 component vector length.
func (v Vec3[T]) Len() T {
	return T(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}

// Normalize 3 component vector.
func (v Vec3[T]) Normalize() Vec3[T] {
	l := v.Len()
	if l == 0 {
		return Vec3[T]{}
	}
	inv := 1 / l
	return Vec3[T]{v[0] * inv, v[1] * inv, v[2] * inv}
}

// Component-wise absolute value.
func (v Vec3[T]) Abs() Vec3[T] {
	return Vec3[T]{absf(v[0]), absf(v[1]), absf(v[2])}
}

// ArgMax returns the index of the largest component. Ties resolve to the
// lowest axis index.
func (v Vec3[T]) ArgMax() int {
	axis := 0
	if v[1] > v[axis] {
		axis = 1
	}
	if v[2] > v[axis] {
		axis = 2
	}
	return axis
}

// Calc min component from two vectors.
func MinVec3[T Float](v1, v2 Vec3[T]) Vec3[T] {
	out := v1
	if v2[0] < out[0] {
		out[0] = v2[0]
	}
	if v2[1] < out[1] {
		out[1] = v2[1]
	}
	if v2[2] < out[2] {
		out[2] = v2[2]
	}
	return out
}

// Calc max component from two vectors.
func MaxVec3[T Float](v1, v2 Vec3[T]) Vec3[T] {
	out := v1
	if v2[0] > out[0] {
		out[0] = v2[0]
	}
	if v2[1] > out[1] {
		out[1] = v2[1]
	}
	if v2[2] > out[2] {
		out[2] = v2[2]
	}
	return out
}

func absf[T Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

const (
	epsilon32 = float32(1.1920928955078125e-07)
	epsilon64 = 2.220446049250313e-16
)

// Epsilon returns the machine epsilon of T.
func Epsilon[T Float]() T {
	// Adding the double precision epsilon to one rounds back to one in
	// single precision only.
	one := T(1)
	if one+T(epsilon64) == one {
		return T(epsilon32)
	}
	return T(epsilon64)
}

// Inf returns positive infinity in T.
func Inf[T Float]() T {
	return T(math.Inf(1))
}
