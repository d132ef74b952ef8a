package ntt

import "github.com/apflow/bigntt/modmath"

// transformSlice applies an unnormalized length-len(data)
// decimation-in-time Cooley-Tukey butterfly to data in place, given an
// N-th root of unity (forward or inverse — the caller decides which
// root to pass and whether to apply the final 1/N scaling). Shared by
// tableStrategy directly and by sixStepStrategy/twoPassStrategy for
// their row/column sub-transforms.
func transformSlice(data []uint64, field modmath.Field, root uint64) {
	n := len(data)
	if n <= 1 {
		return
	}
	bitReversePermute(data)
	table := field.CreateWTable(root, n/2)
	for m := 2; m <= n; m <<= 1 {
		half := m / 2
		step := n / m
		for k := 0; k < n; k += m {
			for j := 0; j < half; j++ {
				w := table[j*step]
				u := data[k+j]
				v := field.ModMultiply(w, data[k+j+half])
				data[k+j] = field.ModAdd(u, v)
				data[k+j+half] = field.ModSubtract(u, v)
			}
		}
	}
}

// transpose reinterprets data (length rows*cols) as a row-major
// rows x cols matrix and returns its transpose as a row-major
// cols x rows matrix, the permutation used by steps 1, 4, and 6 of
// the six-step FNT (spec.md §4.2).
func transpose(data []uint64, rows, cols int) []uint64 {
	out := make([]uint64, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[j*rows+i] = data[i*cols+j]
		}
	}
	return out
}

// splitDims picks the (rows, cols) factorization of a power-of-two
// length n used by the six-step decomposition, with rows <= cols so
// the column sub-transforms (the smaller dimension) stay cache
// resident.
func splitDims(n int) (rows, cols int) {
	logN := 0
	for 1<<uint(logN) < n {
		logN++
	}
	logRows := logN / 2
	rows = 1 << uint(logRows)
	cols = n / rows
	return
}
