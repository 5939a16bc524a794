// SPDX-License-Identifier: MIT

package flux

import (
	"bufio"
	"io"
	"strconv"

	"github.com/katalvlaran/nucprep/diag"
	"github.com/katalvlaran/nucprep/matrix"
)

// ReadText fills out from a whitespace-separated text stream. The first
// skip rows of out.Cols() values are discarded, then out is filled row by
// row. Running out of values or meeting a non-numeric token is fatal 622.
// name identifies the stream in diagnostics.
func ReadText(r io.Reader, name string, skip int, out *matrix.Dense) error {
	if out == nil {
		return matrix.ErrNilMatrix
	}
	rows, cols := out.Shape()
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	next := func() (float64, error) {
		if !sc.Scan() {
			cause := sc.Err()
			if cause == nil {
				cause = io.ErrUnexpectedEOF
			}
			return 0, diag.Fatalf(diag.CodeFluxTextData, name,
				"Flux file %s does not contain enough data.", name).Wrap(cause)
		}
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return 0, diag.Fatalf(diag.CodeFluxTextData, name,
				"Flux file %s: bad value %q", name, sc.Text()).Wrap(err)
		}
		return v, nil
	}

	for n := skip * cols; n > 0; n-- {
		if _, err := next(); err != nil {
			return err
		}
	}

	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for g := range row {
			v, err := next()
			if err != nil {
				return err
			}
			row[g] = v
		}
		if err := out.SetRow(i, row); err != nil {
			return diag.Fatalf(diag.CodeFluxTextData, name,
				"Flux file %s: bad value in row %d", name, i+skip).Wrap(err)
		}
	}
	return nil
}
