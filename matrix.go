package arbor

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

// degToRad converts degrees to radians.
const degToRad = math.Pi / 180

// Matrix2D is a 2D affine transform.
//
//	| A  C  Tx |
//	| B  D  Ty |
//	| 0  0   1 |
//
// Matrix2D is a value type: every operation returns a new matrix and leaves
// the receiver untouched, so a matrix can be shared freely between traversals.
type Matrix2D struct {
	A, B, C, D float64
	Tx, Ty     float64
}

// Transform holds the decomposed components of a Matrix2D. Rotation and skew
// are in degrees.
type Transform struct {
	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64
	SkewX, SkewY   float64
}

// IdentityMatrix returns the identity transform.
func IdentityMatrix() Matrix2D {
	return Matrix2D{A: 1, D: 1}
}

// NewMatrix returns a matrix with the given coefficients.
func NewMatrix(a, b, c, d, tx, ty float64) Matrix2D {
	return Matrix2D{A: a, B: b, C: c, D: d, Tx: tx, Ty: ty}
}

// IsIdentity reports whether m is exactly the identity transform.
func (m Matrix2D) IsIdentity() bool {
	return m == IdentityMatrix()
}

// Equals reports whether m and o have identical coefficients.
func (m Matrix2D) Equals(o Matrix2D) bool {
	return m == o
}

// Append returns m · o. Appending a child's local matrix to its parent's
// concatenated matrix yields the child's concatenated matrix.
func (m Matrix2D) Append(o Matrix2D) Matrix2D {
	return Matrix2D{
		A:  m.A*o.A + m.C*o.B,
		B:  m.B*o.A + m.D*o.B,
		C:  m.A*o.C + m.C*o.D,
		D:  m.B*o.C + m.D*o.D,
		Tx: m.A*o.Tx + m.C*o.Ty + m.Tx,
		Ty: m.B*o.Tx + m.D*o.Ty + m.Ty,
	}
}

// AppendValues is Append with the operand given as coefficients.
func (m Matrix2D) AppendValues(a, b, c, d, tx, ty float64) Matrix2D {
	return m.Append(Matrix2D{a, b, c, d, tx, ty})
}

// Prepend returns o · m. Prepending each ancestor's local matrix while
// walking toward the root builds the same result as appending root-first.
func (m Matrix2D) Prepend(o Matrix2D) Matrix2D {
	return o.Append(m)
}

// rotationTerms returns cos and sin of a rotation in degrees, short-cutting
// whole turns so that 0 and 360 produce an exact identity.
func rotationTerms(deg float64) (cos, sin float64) {
	if math.Mod(deg, 360) == 0 {
		return 1, 0
	}
	sin, cos = math.Sincos(deg * degToRad)
	return cos, sin
}

// AppendTransform appends the transform of a display object with the given
// properties. Rotation and skew are in degrees. The registration point is
// subtracted after scale, skew and rotation have been applied.
func (m Matrix2D) AppendTransform(x, y, scaleX, scaleY, rotation, skewX, skewY, regX, regY float64) Matrix2D {
	cos, sin := rotationTerms(rotation)
	rs := Matrix2D{cos * scaleX, sin * scaleX, -sin * scaleY, cos * scaleY, 0, 0}

	if skewX != 0 || skewY != 0 {
		kx, ky := skewX*degToRad, skewY*degToRad
		m = m.Append(Matrix2D{math.Cos(ky), math.Sin(ky), -math.Sin(kx), math.Cos(kx), x, y})
		m = m.Append(rs)
	} else {
		rs.Tx, rs.Ty = x, y
		m = m.Append(rs)
	}

	if regX != 0 || regY != 0 {
		m.Tx -= regX*m.A + regY*m.C
		m.Ty -= regX*m.B + regY*m.D
	}
	return m
}

// PrependTransform prepends the transform of a display object with the given
// properties. It is the mirror of AppendTransform: the result applies m first,
// then the display object's transform.
func (m Matrix2D) PrependTransform(x, y, scaleX, scaleY, rotation, skewX, skewY, regX, regY float64) Matrix2D {
	cos, sin := rotationTerms(rotation)
	rs := Matrix2D{cos * scaleX, sin * scaleX, -sin * scaleY, cos * scaleY, 0, 0}

	if regX != 0 || regY != 0 {
		m.Tx -= regX
		m.Ty -= regY
	}

	if skewX != 0 || skewY != 0 {
		kx, ky := skewX*degToRad, skewY*degToRad
		m = m.Prepend(rs)
		m = m.Prepend(Matrix2D{math.Cos(ky), math.Sin(ky), -math.Sin(kx), math.Cos(kx), x, y})
	} else {
		rs.Tx, rs.Ty = x, y
		m = m.Prepend(rs)
	}
	return m
}

// Rotate returns m with a rotation of deg degrees appended.
func (m Matrix2D) Rotate(deg float64) Matrix2D {
	cos, sin := rotationTerms(deg)
	return m.Append(Matrix2D{cos, sin, -sin, cos, 0, 0})
}

// Skew returns m with a skew appended. Angles are in degrees.
func (m Matrix2D) Skew(skewX, skewY float64) Matrix2D {
	kx, ky := skewX*degToRad, skewY*degToRad
	return m.Append(Matrix2D{math.Cos(ky), math.Sin(ky), -math.Sin(kx), math.Cos(kx), 0, 0})
}

// Scale returns m with a scale appended.
func (m Matrix2D) Scale(x, y float64) Matrix2D {
	m.A *= x
	m.B *= x
	m.C *= y
	m.D *= y
	return m
}

// Translate returns m with a translation appended.
func (m Matrix2D) Translate(x, y float64) Matrix2D {
	m.Tx += m.A*x + m.C*y
	m.Ty += m.B*x + m.D*y
	return m
}

// Determinant returns A·D − B·C.
func (m Matrix2D) Determinant() float64 {
	return m.A*m.D - m.B*m.C
}

// Invert returns the algebraic inverse of m. A singular matrix produces
// non-finite coefficients; use Inverse when the input is not known to be
// invertible.
func (m Matrix2D) Invert() Matrix2D {
	n := m.A*m.D - m.B*m.C
	return Matrix2D{
		A:  m.D / n,
		B:  -m.B / n,
		C:  -m.C / n,
		D:  m.A / n,
		Tx: (m.C*m.Ty - m.D*m.Tx) / n,
		Ty: -(m.A*m.Ty - m.B*m.Tx) / n,
	}
}

// Inverse returns the inverse of m, or ErrSingularMatrix when m has no
// finite inverse.
func (m Matrix2D) Inverse() (Matrix2D, error) {
	det := m.Determinant()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Matrix2D{}, fmt.Errorf("invert %v: %w", m, ErrSingularMatrix)
	}
	return m.Invert(), nil
}

// Decompose splits m into position, scale, rotation and skew. Only the visual
// result is preserved: recomposing the returned values yields an equivalent
// matrix, not necessarily the original rotation/skew split.
func (m Matrix2D) Decompose() Transform {
	t := Transform{
		X:      m.Tx,
		Y:      m.Ty,
		ScaleX: math.Sqrt(m.A*m.A + m.B*m.B),
		ScaleY: math.Sqrt(m.C*m.C + m.D*m.D),
	}

	skewX := math.Atan2(-m.C, m.D)
	skewY := math.Atan2(m.B, m.A)

	if math.Abs(skewX-skewY) < 1e-5 {
		t.Rotation = skewY / degToRad
		if m.A < 0 && m.D >= 0 {
			if t.Rotation <= 0 {
				t.Rotation += 180
			} else {
				t.Rotation -= 180
			}
		}
		return t
	}
	t.SkewX = skewX / degToRad
	t.SkewY = skewY / degToRad
	return t
}

// TransformPoint maps (x, y) through m.
func (m Matrix2D) TransformPoint(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.Tx, m.B*x + m.D*y + m.Ty
}

// Aff3 converts m into the row-major form used by golang.org/x/image.
func (m Matrix2D) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.C, m.Tx, m.B, m.D, m.Ty}
}

func (m Matrix2D) String() string {
	return fmt.Sprintf("Matrix2D(a=%g b=%g c=%g d=%g tx=%g ty=%g)", m.A, m.B, m.C, m.D, m.Tx, m.Ty)
}
