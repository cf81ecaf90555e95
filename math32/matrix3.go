// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

import "errors"

// Matrix3 is 3x3 matrix organized internally as column matrix.
type Matrix3 [9]float32

// Matrix3FromRows returns a new [Matrix3] from the given rows,
// which is how matrices are normally written down.
func Matrix3FromRows(r0, r1, r2 [3]float32) Matrix3 {
	var m Matrix3
	m.Set(r0[0], r0[1], r0[2], r1[0], r1[1], r1[2], r2[0], r2[1], r2[2])
	return m
}

// Identity3 returns a new identity [Matrix3] matrix.
func Identity3() Matrix3 {
	m := Matrix3{}
	m.SetIdentity()
	return m
}

// Set sets all the elements of the matrix row by row starting at row1, column1,
// row1, column2, row1, column3 and so forth.
func (m *Matrix3) Set(n11, n12, n13, n21, n22, n23, n31, n32, n33 float32) {
	m[0] = n11
	m[3] = n12
	m[6] = n13
	m[1] = n21
	m[4] = n22
	m[7] = n23
	m[2] = n31
	m[5] = n32
	m[8] = n33
}

// SetIdentity sets this matrix as the identity matrix.
func (m *Matrix3) SetIdentity() {
	m.Set(
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	)
}

// Determinant calculates and returns the determinant of this matrix.
func (m *Matrix3) Determinant() float32 {
	return m[0]*m[4]*m[8] -
		m[0]*m[5]*m[7] -
		m[1]*m[3]*m[8] +
		m[1]*m[5]*m[6] +
		m[2]*m[3]*m[7] -
		m[2]*m[4]*m[6]
}

// Inverse returns the inverse of this matrix.
// If the matrix cannot be inverted it returns the identity
// matrix and an error.
func (m Matrix3) Inverse() (Matrix3, error) {
	nm := Matrix3{}
	nm[0] = m[4]*m[8] - m[5]*m[7]
	nm[1] = m[2]*m[7] - m[1]*m[8]
	nm[2] = m[1]*m[5] - m[2]*m[4]
	nm[3] = m[5]*m[6] - m[3]*m[8]
	nm[4] = m[0]*m[8] - m[2]*m[6]
	nm[5] = m[2]*m[3] - m[0]*m[5]
	nm[6] = m[3]*m[7] - m[4]*m[6]
	nm[7] = m[1]*m[6] - m[0]*m[7]
	nm[8] = m[0]*m[4] - m[1]*m[3]

	det := m[0]*nm[0] + m[1]*nm[3] + m[2]*nm[6]
	if det == 0 {
		return Identity3(), errors.New("cannot invert matrix, determinant is 0")
	}
	s := 1 / det
	for i := range nm {
		nm[i] *= s
	}
	return nm, nil
}
