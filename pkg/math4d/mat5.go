package math4d

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrInvalidArgument is returned when a matrix is built from a backing
// store of the wrong shape.
var ErrInvalidArgument = errors.New("invalid argument")

// Mat5 is a 5x5 matrix representing a 4D affine transform in homogeneous
// coordinates, stored in row-major order.
//
// Memory layout (indices):
// | 0  1  2  3  4  |
// | 5  6  7  8  9  |
// | 10 11 12 13 14 |
// | 15 16 17 18 19 |
// | 20 21 22 23 24 |
//
// For an affine transform:
// | Rxx Rxy Rxz Rxw Tx |   R = linear part (rotation/scale)
// | Ryx Ryy Ryz Ryw Ty |   T = translation
// | Rzx Rzy Rzz Rzw Tz |
// | Rwx Rwy Rwz Rww Tw |
// | 0   0   0   0   1  |
type Mat5 [25]float32

// Identity5 returns the identity matrix.
func Identity5() Mat5 {
	return Mat5{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
		0, 0, 0, 0, 1,
	}
}

// NewMat5 builds a matrix from rows. It fails unless rows is exactly 5x5.
func NewMat5(rows [][]float32) (Mat5, error) {
	var m Mat5
	if len(rows) != 5 {
		return m, fmt.Errorf("matrix must be 5x5, got %d rows: %w", len(rows), ErrInvalidArgument)
	}
	for r, row := range rows {
		if len(row) != 5 {
			return m, fmt.Errorf("matrix must be 5x5, row %d has %d columns: %w", r, len(row), ErrInvalidArgument)
		}
		copy(m[r*5:r*5+5], row)
	}
	return m, nil
}

// Translate5 creates a translation matrix.
func Translate5(v Vec4) Mat5 {
	return Mat5{
		1, 0, 0, 0, v.X,
		0, 1, 0, 0, v.Y,
		0, 0, 1, 0, v.Z,
		0, 0, 0, 1, v.W,
		0, 0, 0, 0, 1,
	}
}

// Scale5 creates a per-axis scaling matrix.
func Scale5(v Vec4) Mat5 {
	return Mat5{
		v.X, 0, 0, 0, 0,
		0, v.Y, 0, 0, 0,
		0, 0, v.Z, 0, 0,
		0, 0, 0, v.W, 0,
		0, 0, 0, 0, 1,
	}
}

// ScaleUniform5 creates a uniform scaling matrix.
func ScaleUniform5(s float32) Mat5 {
	return Scale5(V4(s, s, s, s))
}

// Mul multiplies two matrices: a * b. The result applies b first, then a.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat5) Mul(b Mat5) Mat5 {
	var m Mat5
	for row := range 5 {
		for col := range 5 {
			var sum float32
			for k := range 5 {
				sum += a[row*5+k] * b[k*5+col]
			}
			m[row*5+col] = sum
		}
	}
	return m
}

// MulVec4 transforms a point (implicit homogeneous coordinate 1).
func (m Mat5) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3]*v.W + m[4],
		m[5]*v.X + m[6]*v.Y + m[7]*v.Z + m[8]*v.W + m[9],
		m[10]*v.X + m[11]*v.Y + m[12]*v.Z + m[13]*v.W + m[14],
		m[15]*v.X + m[16]*v.Y + m[17]*v.Z + m[18]*v.W + m[19],
	}
}

// MulDir transforms a direction (no translation).
func (m Mat5) MulDir(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3]*v.W,
		m[5]*v.X + m[6]*v.Y + m[7]*v.Z + m[8]*v.W,
		m[10]*v.X + m[11]*v.Y + m[12]*v.Z + m[13]*v.W,
		m[15]*v.X + m[16]*v.Y + m[17]*v.Z + m[18]*v.W,
	}
}

// Transpose returns the transposed matrix.
func (m Mat5) Transpose() Mat5 {
	var t Mat5
	for row := range 5 {
		for col := range 5 {
			t[col*5+row] = m[row*5+col]
		}
	}
	return t
}

// Get returns the element at (row, col).
func (m Mat5) Get(row, col int) float32 {
	return m[row*5+col]
}

// Set sets the element at (row, col).
func (m *Mat5) Set(row, col int, val float32) {
	m[row*5+col] = val
}

// Translation extracts the translation column.
func (m Mat5) Translation() Vec4 {
	return Vec4{m[4], m[9], m[14], m[19]}
}

// SetTranslation sets the translation column.
func (m *Mat5) SetTranslation(v Vec4) {
	m[4] = v.X
	m[9] = v.Y
	m[14] = v.Z
	m[19] = v.W
}

// ApproxEqual reports whether all elements differ by at most eps.
func (a Mat5) ApproxEqual(b Mat5, eps float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
