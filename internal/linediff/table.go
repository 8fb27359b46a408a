package linediff

// table holds LCS lengths for every pair of prefixes in one contiguous
// row-major buffer. cell(i, j) is the LCS length of original[:i] and
// modified[:j].
type table struct {
	cols  int
	cells []int
}

func buildTable(original, modified []string) *table {
	m, n := len(original), len(modified)
	t := &table{
		cols:  n + 1,
		cells: make([]int, (m+1)*(n+1)),
	}

	// Row 0 and column 0 stay zero.
	for i := 1; i <= m; i++ {
		row := i * t.cols
		prev := row - t.cols
		for j := 1; j <= n; j++ {
			if original[i-1] == modified[j-1] {
				t.cells[row+j] = t.cells[prev+j-1] + 1
			} else if up, left := t.cells[prev+j], t.cells[row+j-1]; up >= left {
				t.cells[row+j] = up
			} else {
				t.cells[row+j] = left
			}
		}
	}
	return t
}

func (t *table) cell(i, j int) int {
	return t.cells[i*t.cols+j]
}

// length returns the LCS length of the full sequences.
func (t *table) length() int {
	return t.cells[len(t.cells)-1]
}

// LCSLength returns the length of the longest common subsequence of the two
// line sequences. It equals the number of Unchanged entries Lines returns.
func LCSLength(original, modified []string) int {
	return buildTable(original, modified).length()
}
