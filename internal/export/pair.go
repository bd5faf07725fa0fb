// Package export lays out a worksheet and writes it as a Word document.
package export

// Cell is one numbered problem on the printed sheet.
type Cell struct {
	Index int // 1-based
	Text  string
}

// Row is one printed line with two columns. Right is nil when the
// worksheet has an odd number of problems and this is the last row.
type Row struct {
	Left  Cell
	Right *Cell
}

// Pair arranges problems two per row, numbered from 1 in input order.
func Pair(problems []string) []Row {
	rows := make([]Row, 0, (len(problems)+1)/2)
	for i := 0; i < len(problems); i += 2 {
		row := Row{Left: Cell{Index: i + 1, Text: problems[i]}}
		if i+1 < len(problems) {
			row.Right = &Cell{Index: i + 2, Text: problems[i+1]}
		}
		rows = append(rows, row)
	}
	return rows
}
