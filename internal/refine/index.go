// Package refine narrows an already-fetched result set locally, with no
// backend round trip: an inverted token index over the rows answers
// as-you-type narrowing instantly.
package refine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/netinv-mcp/pkg/types"
)

// Index is an inverted token index over the rows of one result set.
// Build once per fetched result set; reads are then lock-free.
type Index struct {
	postings map[string]*roaring.Bitmap
	rows     int
}

// Build tokenizes every cell of every row into the index. Row positions are
// the bitmap values, so refined output preserves backend ordering.
func Build(rs *types.ResultSet) *Index {
	ix := &Index{
		postings: make(map[string]*roaring.Bitmap),
	}
	if rs == nil {
		return ix
	}
	ix.rows = len(rs.Data)

	for i, row := range rs.Data {
		for _, h := range rs.Headers {
			cell, ok := row[h]
			if !ok || cell == nil {
				continue
			}
			for _, tok := range Tokenize(cellText(cell)) {
				bm := ix.postings[tok]
				if bm == nil {
					bm = roaring.New()
					ix.postings[tok] = bm
				}
				bm.Add(uint32(i))
			}
		}
	}
	return ix
}

// Rows returns the number of indexed rows.
func (ix *Index) Rows() int {
	return ix.rows
}

// Refine returns the positions of rows matching text, in original order.
// Terms are ANDed; the final term also matches as a token prefix so partial
// typing still narrows. Empty text matches every row.
func (ix *Index) Refine(text string) []int {
	terms := Tokenize(text)
	if len(terms) == 0 {
		all := make([]int, ix.rows)
		for i := range all {
			all[i] = i
		}
		return all
	}

	var acc *roaring.Bitmap
	for i, term := range terms {
		var bm *roaring.Bitmap
		if i == len(terms)-1 {
			bm = ix.prefixBitmap(term)
		} else if exact := ix.postings[term]; exact != nil {
			bm = exact
		}
		if bm == nil {
			return nil
		}
		if acc == nil {
			acc = bm.Clone()
		} else {
			acc.And(bm)
		}
		if acc.IsEmpty() {
			return nil
		}
	}

	out := make([]int, 0, acc.GetCardinality())
	acc.Iterate(func(pos uint32) bool {
		out = append(out, int(pos))
		return true
	})
	return out
}

// prefixBitmap ORs the postings of every token starting with prefix.
// Includes the exact token, so a fully typed term behaves like the AND path.
func (ix *Index) prefixBitmap(prefix string) *roaring.Bitmap {
	var matched []*roaring.Bitmap
	for tok, bm := range ix.postings {
		if strings.HasPrefix(tok, prefix) {
			matched = append(matched, bm)
		}
	}
	if len(matched) == 0 {
		return nil
	}
	return roaring.ParOr(0, matched...)
}

// Select materializes the rows at the given positions, preserving order.
func Select(rs *types.ResultSet, positions []int) []types.Row {
	sort.Ints(positions)
	rows := make([]types.Row, 0, len(positions))
	for _, p := range positions {
		if p >= 0 && p < len(rs.Data) {
			rows = append(rows, rs.Data[p])
		}
	}
	return rows
}

func cellText(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
