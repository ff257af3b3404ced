package symbolic

import (
	"fmt"
	"strings"
)

// ============================================================
// Matrix: dense symbolic matrix
// ============================================================

// Matrix is a dense row-major matrix of expressions. Entries are built with
// the canonicalizing constructors only; callers simplify the entries they
// care about.
type Matrix struct {
	rows, cols int
	data       []Expr
}

// NewMatrix returns a rows×cols matrix of zeros.
func NewMatrix(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("symbolic: negative matrix dimension %dx%d", rows, cols))
	}
	data := make([]Expr, rows*cols)
	for i := range data {
		data[i] = zero
	}
	return &Matrix{rows: rows, cols: cols, data: data}
}

// MatrixFromSlice builds a matrix from entries in row-major order.
func MatrixFromSlice(rows, cols int, entries []Expr) *Matrix {
	if len(entries) != rows*cols {
		panic(fmt.Sprintf("symbolic: MatrixFromSlice needs %d entries, got %d", rows*cols, len(entries)))
	}
	return &Matrix{rows: rows, cols: cols, data: append([]Expr(nil), entries...)}
}

// MatrixFromColumns stacks equally long columns side by side.
func MatrixFromColumns(cols ...[]Expr) *Matrix {
	if len(cols) == 0 {
		return NewMatrix(0, 0)
	}
	m := NewMatrix(len(cols[0]), len(cols))
	for j, c := range cols {
		if len(c) != m.rows {
			panic(fmt.Sprintf("symbolic: column %d has %d entries, want %d", j, len(c), m.rows))
		}
		for i, e := range c {
			m.data[i*m.cols+j] = e
		}
	}
	return m
}

func (m *Matrix) at(row, col int) int {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("symbolic: matrix index out of range [%d,%d] for %dx%d", row, col, m.rows, m.cols))
	}
	return row*m.cols + col
}

func (m *Matrix) Get(row, col int) Expr      { return m.data[m.at(row, col)] }
func (m *Matrix) Set(row, col int, val Expr) { m.data[m.at(row, col)] = val }
func (m *Matrix) Rows() int                  { return m.rows }
func (m *Matrix) Cols() int                  { return m.cols }

// Column returns a copy of column j.
func (m *Matrix) Column(j int) []Expr {
	out := make([]Expr, m.rows)
	for i := range out {
		out[i] = m.Get(i, j)
	}
	return out
}

// format renders rows with the given delimiters, calling entry on each cell.
func (m *Matrix) format(open, rowSep, cellSep, end string, rowWrap [2]string, entry func(Expr) string) string {
	var sb strings.Builder
	sb.WriteString(open)
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			sb.WriteString(rowSep)
		}
		sb.WriteString(rowWrap[0])
		for j, e := range m.data[i*m.cols : (i+1)*m.cols] {
			if j > 0 {
				sb.WriteString(cellSep)
			}
			sb.WriteString(entry(e))
		}
		sb.WriteString(rowWrap[1])
	}
	sb.WriteString(end)
	return sb.String()
}

func (m *Matrix) String() string {
	return m.format("[", ", ", ", ", "]", [2]string{"[", "]"}, Expr.String)
}

func (m *Matrix) LaTeX() string {
	return m.format("\\begin{pmatrix}", " \\\\ ", " & ", "\\end{pmatrix}", [2]string{}, Expr.LaTeX)
}

// MatMul returns m·other. Each entry is a single AddOf of the products.
func (m *Matrix) MatMul(other *Matrix) *Matrix {
	if m.cols != other.rows {
		panic(fmt.Sprintf("symbolic: cannot multiply %dx%d by %dx%d", m.rows, m.cols, other.rows, other.cols))
	}
	out := NewMatrix(m.rows, other.cols)
	terms := make([]Expr, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < other.cols; j++ {
			for k := range terms {
				terms[k] = MulOf(m.data[i*m.cols+k], other.data[k*other.cols+j])
			}
			out.data[i*out.cols+j] = AddOf(terms...)
		}
	}
	return out
}

// Det computes the determinant by cofactor expansion, always along the row
// with the most zero entries.
func (m *Matrix) Det() Expr {
	if m.rows != m.cols {
		panic(fmt.Sprintf("symbolic: Det of non-square %dx%d matrix", m.rows, m.cols))
	}
	idx := make([]int, m.rows)
	for i := range idx {
		idx[i] = i
	}
	return m.minor(idx, append([]int(nil), idx...))
}

// minor is the determinant of the submatrix selected by rows and cols.
func (m *Matrix) minor(rows, cols []int) Expr {
	get := func(i, j int) Expr { return m.data[rows[i]*m.cols+cols[j]] }
	switch len(rows) {
	case 0:
		return one
	case 1:
		return get(0, 0)
	case 2:
		return MinusOf(MulOf(get(0, 0), get(1, 1)), MulOf(get(0, 1), get(1, 0)))
	}
	pivot, most := 0, -1
	for i := range rows {
		zeros := 0
		for j := range cols {
			if get(i, j) == zero {
				zeros++
			}
		}
		if zeros > most {
			pivot, most = i, zeros
		}
	}
	subRows := append(append([]int(nil), rows[:pivot]...), rows[pivot+1:]...)
	var terms []Expr
	for j := range cols {
		e := get(pivot, j)
		if e == zero {
			continue
		}
		subCols := append(append([]int(nil), cols[:j]...), cols[j+1:]...)
		t := MulOf(e, m.minor(subRows, subCols))
		if (pivot+j)%2 == 1 {
			t = NegOf(t)
		}
		terms = append(terms, t)
	}
	return AddOf(terms...)
}
