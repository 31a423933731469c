package compressor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const ownerNone = -1

// Table is a sparse row-major matrix compressed in two steps. Identical rows are stored once, then the
// distinct rows are overlaid into a single vector by row displacement. Owners records which distinct row
// placed each entry, so a lookup can tell a stored entry from another row's entry.
type Table struct {
	RowCount     int   `json:"row_count"`
	ColCount     int   `json:"col_count"`
	EmptyValue   int   `json:"empty_value"`
	RowIndex     []int `json:"row_index"`
	Displacement []int `json:"displacement"`
	Entries      []int `json:"entries"`
	Owners       []int `json:"owners"`
}

type distinctRow struct {
	num      int
	start    int
	nonEmpty []int
}

// Compress compresses a matrix given as its row-major entries.
func Compress(entries []int, colCount int, emptyValue int) (*Table, error) {
	if colCount <= 0 {
		return nil, fmt.Errorf("column count must be >=1; got: %v", colCount)
	}
	if len(entries)%colCount != 0 {
		return nil, fmt.Errorf("entries length or column count are incorrect; entries length: %v, column count: %v", len(entries), colCount)
	}

	rowCount := len(entries) / colCount
	tab := &Table{
		RowCount:   rowCount,
		ColCount:   colCount,
		EmptyValue: emptyValue,
		RowIndex:   make([]int, rowCount),
	}

	var rows []*distinctRow
	byContent := map[string]int{}
	for row := 0; row < rowCount; row++ {
		start := row * colCount
		key := rowKey(entries[start : start+colCount])
		num, ok := byContent[key]
		if !ok {
			num = len(rows)
			byContent[key] = num
			r := &distinctRow{
				num:   num,
				start: start,
			}
			for col := 0; col < colCount; col++ {
				if entries[start+col] != emptyValue {
					r.nonEmpty = append(r.nonEmpty, col)
				}
			}
			rows = append(rows, r)
		}
		tab.RowIndex[row] = num
	}

	tab.Displacement = make([]int, len(rows))

	// Placing the densest rows first leaves the gaps for the sparse ones.
	placing := make([]*distinctRow, len(rows))
	copy(placing, rows)
	sort.SliceStable(placing, func(i, j int) bool {
		return len(placing[i].nonEmpty) > len(placing[j].nonEmpty)
	})

	for _, r := range placing {
		if len(r.nonEmpty) == 0 {
			continue
		}
		d := 0
		for !tab.fits(r, d) {
			d++
		}
		tab.Displacement[r.num] = d
		for _, col := range r.nonEmpty {
			tab.grow(d + col + 1)
			tab.Entries[d+col] = entries[r.start+col]
			tab.Owners[d+col] = r.num
		}
	}

	return tab, nil
}

func (tab *Table) fits(r *distinctRow, d int) bool {
	for _, col := range r.nonEmpty {
		if d+col < len(tab.Owners) && tab.Owners[d+col] != ownerNone {
			return false
		}
	}
	return true
}

func (tab *Table) grow(n int) {
	for len(tab.Entries) < n {
		tab.Entries = append(tab.Entries, tab.EmptyValue)
		tab.Owners = append(tab.Owners, ownerNone)
	}
}

// Lookup returns the entry at a row and column of the original matrix.
func (tab *Table) Lookup(row, col int) (int, error) {
	if row < 0 || row >= tab.RowCount || col < 0 || col >= tab.ColCount {
		return tab.EmptyValue, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	r := tab.RowIndex[row]
	i := tab.Displacement[r] + col
	if i >= len(tab.Entries) || tab.Owners[i] != r {
		return tab.EmptyValue, nil
	}
	return tab.Entries[i], nil
}

func rowKey(row []int) string {
	var b strings.Builder
	for i, v := range row {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}
