package util

import (
	"strconv"
	"strings"
)

// matrix represents a 2 dimensional matrix.
type matrix struct {
	nRow, nCol int
	data       []int // row-major nRow*nCol array.
}

// newMatrix returns an n x m matrix.
func newMatrix(n, m int) (x matrix) {
	return matrix{
		nRow: n,
		nCol: m,
		data: make([]int, n*m),
	}
}

// String returns a string representation of a matrix.
func (m matrix) String() (r string) {
	maxLength := 0
	for _, d := range m.data {
		if l := len(strconv.Itoa(d)); l > maxLength {
			maxLength = l
		}
	}

	lines := []string{"\n"}
	for i := 0; i < m.nRow; i++ {
		var parts []string
		for j := 0; j < m.nCol; j++ {
			parts = append(parts, strconv.Itoa(m.data[i*m.nCol+j]))
		}
		lines = append(lines, strings.Join(parts, " | "))
	}
	return strings.Join(lines, "\n")
}

// computeCell computes the cell (i, j) in a Levenshtein matrix.
func (m matrix) computeCell(i, j int, r1, r2 []byte) {
	if i == 0 {
		m.data[i*m.nCol+j] = j
		return
	}
	if j == 0 {
		m.data[i*m.nCol+j] = i
		return
	}
	if r1[i-1] == r2[j-1] {
		m.data[i*m.nCol+j] = m.data[(i-1)*m.nCol+(j-1)]
		return
	}

	downValue := m.data[(i-1)*m.nCol+j] + 1
	diagonalValue := m.data[(i-1)*m.nCol+(j-1)] + 1
	rightValue := m.data[i*m.nCol+(j-1)] + 1

	minValue := downValue
	if diagonalValue < minValue {
		minValue = diagonalValue
	}
	if rightValue < minValue {
		minValue = rightValue
	}

	m.data[i*m.nCol+j] = minValue
}

// Levenshtein computes the Levenshtein distance between two strings. The
// returned value - distance - is the number of single-character insertions,
// deletions, and substitutions it takes to transform one string (s1) into
// the other (s2). Each step in the transformation "costs" one distance
// point.
func Levenshtein(s1, s2 string) (distance int) {
	r1 := []byte(s1)
	r2 := []byte(s2)

	rows := len(r1)
	cols := len(r2)

	m := newMatrix(rows+1, cols+1)
	for i := 0; i <= rows; i++ {
		for j := 0; j <= cols; j++ {
			m.computeCell(i, j, r1, r2)
		}
	}
	return m.data[rows*m.nCol+cols]
}

// Closest returns the candidate with the smallest Levenshtein distance to s,
// for use in "did you mean" hints. Ties resolve to the earliest candidate.
// It returns "" when candidates is empty.
func Closest(s string, candidates []string) string {
	best := ""
	bestDistance := 0
	for i, c := range candidates {
		if d := Levenshtein(s, c); i == 0 || d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best
}
