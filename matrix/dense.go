// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt     = "At"
	ctxSet    = "Set"
	ctxRow    = "Row"
	ctxSetRow = "SetRow"
)

// denseErrorf wraps a sentinel with a uniform "Dense.<method>(row,col)" context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c (offset = i*c + j).
//   - validateNaNInf enables NaN/Inf rejection in Set and SetRow.
type Dense struct {
	r, c           int
	data           []float64
	validateNaNInf bool
}

var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix.
// Stage 1 (Validate): rows>0 && cols>0, else ErrInvalidDimensions.
// Stage 2 (Prepare): allocate a zero-filled flat buffer.
// Stage 3 (Finalize): apply options over the default numeric policy.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	m := &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: DefaultValidateNaNInf,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// checkFinite applies the numeric policy to v.
func (m *Dense) checkFinite(v float64) error {
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return ErrNaNInf
	}
	return nil
}

// At returns the value at (row, col) or a wrapped ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col).
// Stage 1: bounds check via indexOf.
// Stage 2: numeric policy (reject NaN/±Inf when enabled).
// Stage 3: write into the flat buffer.
// Errors: ErrOutOfRange, ErrNaNInf (both wrapped with coordinates).
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if err = m.checkFinite(v); err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	m.data[off] = v

	return nil
}

// Row returns row i as a slice aliasing the matrix storage (no copy).
// Writes through the slice bypass the numeric policy; use SetRow for
// validated writes.
// Complexity: O(1).
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}

	return m.data[i*m.c : (i+1)*m.c : (i+1)*m.c], nil
}

// SetRow copies vals into row i after validating every value.
// The row is left untouched when any value is rejected.
// Errors: ErrOutOfRange, ErrDimensionMismatch, ErrNaNInf.
// Complexity: O(c).
func (m *Dense) SetRow(i int, vals []float64) error {
	if i < 0 || i >= m.r {
		return denseErrorf(ctxSetRow, i, 0, ErrOutOfRange)
	}
	if len(vals) != m.c {
		return denseErrorf(ctxSetRow, i, len(vals), ErrDimensionMismatch)
	}
	for j, v := range vals {
		if err := m.checkFinite(v); err != nil {
			return denseErrorf(ctxSetRow, i, j, err)
		}
	}
	copy(m.data[i*m.c:(i+1)*m.c], vals)

	return nil
}

// Fill assigns v to every cell, subject to the numeric policy.
func (m *Dense) Fill(v float64) error {
	if err := m.checkFinite(v); err != nil {
		return denseErrorf("Fill", 0, 0, err)
	}
	for k := range m.data {
		m.data[k] = v
	}

	return nil
}

// Clone returns a deep copy with the same numeric policy.
// Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp, validateNaNInf: m.validateNaNInf}
}

// String renders rows as "[a, b]\n" lines for diagnostics.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString("[")
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
