package compressor

import (
	"fmt"
	"testing"
)

func TestCompress(t *testing.T) {
	x := -1 // an empty value

	tests := []struct {
		original        []int
		rowCount        int
		colCount        int
		distinctRows    int
		maxEntriesCount int
	}{
		{
			original: []int{
				1, 1, 1, 1, 1,
				1, 1, 1, 1, 1,
				1, 1, 1, 1, 1,
			},
			rowCount:        3,
			colCount:        5,
			distinctRows:    1,
			maxEntriesCount: 5,
		},
		{
			original: []int{
				x, x, x, x, x,
				x, x, x, x, x,
				x, x, x, x, x,
			},
			rowCount:        3,
			colCount:        5,
			distinctRows:    1,
			maxEntriesCount: 0,
		},
		{
			original: []int{
				1, 1, 1, 1, 1,
				x, x, x, x, x,
				1, 1, 1, 1, 1,
			},
			rowCount:        3,
			colCount:        5,
			distinctRows:    2,
			maxEntriesCount: 5,
		},
		{
			original: []int{
				1, x, 1, 1, 1,
				1, 1, x, 1, 1,
				1, 1, 1, x, 1,
			},
			rowCount:        3,
			colCount:        5,
			distinctRows:    3,
			maxEntriesCount: 15,
		},
		{
			original: []int{
				2, x, x, x,
				x, 3, x, x,
				x, x, 4, x,
				x, x, x, 0,
			},
			rowCount:        4,
			colCount:        4,
			distinctRows:    4,
			maxEntriesCount: 4,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			dup := make([]int, len(tt.original))
			copy(dup, tt.original)

			tab, err := Compress(tt.original, tt.colCount, x)
			if err != nil {
				t.Fatal(err)
			}
			if tab.RowCount != tt.rowCount || tab.ColCount != tt.colCount {
				t.Fatalf("unexpected table size; want: %vx%v, got: %vx%v", tt.rowCount, tt.colCount, tab.RowCount, tab.ColCount)
			}
			if len(tab.Displacement) != tt.distinctRows {
				t.Fatalf("unexpected distinct row count; want: %v, got: %v", tt.distinctRows, len(tab.Displacement))
			}
			if len(tab.Entries) > tt.maxEntriesCount {
				t.Fatalf("the table is not compressed enough; want: <=%v, got: %v", tt.maxEntriesCount, len(tab.Entries))
			}
			for i := 0; i < tt.rowCount; i++ {
				for j := 0; j < tt.colCount; j++ {
					v, err := tab.Lookup(i, j)
					if err != nil {
						t.Fatal(err)
					}
					expected := tt.original[i*tt.colCount+j]
					if v != expected {
						t.Fatalf("unexpected entry (%v, %v); want: %v, got: %v", i, j, expected, v)
					}
				}
			}

			// Calling with out-of-range indexes should be an error.
			if _, err := tab.Lookup(0, -1); err == nil {
				t.Fatalf("expected error didn't occur (0, -1)")
			}
			if _, err := tab.Lookup(-1, 0); err == nil {
				t.Fatalf("expected error didn't occur (-1, 0)")
			}
			if _, err := tab.Lookup(tab.RowCount-1, tab.ColCount); err == nil {
				t.Fatalf("expected error didn't occur (%v, %v)", tab.RowCount-1, tab.ColCount)
			}
			if _, err := tab.Lookup(tab.RowCount, tab.ColCount-1); err == nil {
				t.Fatalf("expected error didn't occur (%v, %v)", tab.RowCount, tab.ColCount-1)
			}

			// Compressing must not break the original table.
			for idx := range tt.original {
				if tt.original[idx] != dup[idx] {
					t.Fatalf("the original table is broken at %v; want: %v, got: %v", idx, dup[idx], tt.original[idx])
				}
			}
		})
	}
}

func TestCompress_InvalidSize(t *testing.T) {
	if _, err := Compress([]int{1, 2, 3}, 2, 0); err == nil {
		t.Fatal("expected error didn't occur for a ragged matrix")
	}
	if _, err := Compress([]int{1, 2}, 0, 0); err == nil {
		t.Fatal("expected error didn't occur for a zero column count")
	}
}
