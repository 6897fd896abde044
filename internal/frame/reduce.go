package frame

import (
	"runtime"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// defaultChunkSize is the row count per reduction chunk. Columns shorter
// than one chunk are scanned inline without spawning goroutines.
const defaultChunkSize = 4096

// Chunks splits n rows into [start, end) ranges of at most size rows.
func Chunks(n, size int) [][2]int {
	if size <= 0 {
		size = defaultChunkSize
	}
	var ranges [][2]int
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		ranges = append(ranges, [2]int{start, end})
	}
	return ranges
}

// FirstValid returns the first non-missing cell in the column, or nil if
// every cell is missing. Chunks are scanned in parallel and merged in
// chunk order, so the result is the same as a sequential front-to-back scan.
func (c *Column) FirstValid() any {
	if len(c.Values) <= defaultChunkSize {
		for _, v := range c.Values {
			if !IsMissing(v) {
				return v
			}
		}
		return nil
	}

	ranges := Chunks(len(c.Values), defaultChunkSize)
	found := make([]any, len(ranges))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, r := range ranges {
		g.Go(func() error {
			for _, v := range c.Values[r[0]:r[1]] {
				if !IsMissing(v) {
					found[i] = v
					return nil
				}
			}
			return nil
		})
	}
	_ = g.Wait() // chunk scans cannot fail

	for _, v := range found {
		if v != nil {
			return v
		}
	}
	return nil
}

// MaxStringLen returns the maximum rune count across all string cells in
// the column, or 0 if the column holds no strings. Non-string cells are
// ignored. The scan is a chunked parallel reduction with a max merge.
func (c *Column) MaxStringLen() int {
	if len(c.Values) <= defaultChunkSize {
		return maxStringLen(c.Values)
	}

	ranges := Chunks(len(c.Values), defaultChunkSize)
	maxes := make([]int, len(ranges))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, r := range ranges {
		g.Go(func() error {
			maxes[i] = maxStringLen(c.Values[r[0]:r[1]])
			return nil
		})
	}
	_ = g.Wait()

	max := 0
	for _, m := range maxes {
		if m > max {
			max = m
		}
	}
	return max
}

func maxStringLen(values []any) int {
	max := 0
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if n := utf8.RuneCountInString(s); n > max {
			max = n
		}
	}
	return max
}
