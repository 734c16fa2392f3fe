package grammar

import "sort"

// RuneSet is a sorted, non-overlapping set of inclusive code-point ranges.
// It backs terminal charsets and the charset variant of nofollow/reject
// filter entries.
type RuneSet struct {
	ranges []runeRange
}

type runeRange struct {
	lo, hi rune // inclusive
}

// NewRuneSet builds a RuneSet from a list of inclusive (lo, hi) pairs,
// merging overlapping or adjacent ranges.
func NewRuneSet(pairs ...[2]rune) *RuneSet {
	rs := &RuneSet{}
	for _, p := range pairs {
		rs.ranges = append(rs.ranges, runeRange{p[0], p[1]})
	}
	sort.Slice(rs.ranges, func(i, j int) bool { return rs.ranges[i].lo < rs.ranges[j].lo })
	merged := rs.ranges[:0]
	for _, r := range rs.ranges {
		if n := len(merged); n > 0 && r.lo <= merged[n-1].hi+1 {
			if r.hi > merged[n-1].hi {
				merged[n-1].hi = r.hi
			}
			continue
		}
		merged = append(merged, r)
	}
	rs.ranges = merged
	return rs
}

// Contains reports whether r falls in the set. Code-point 0 never
// matches any charset: it is reserved as the "no character" sentinel
// used by reject sub-parses.
func (rs *RuneSet) Contains(r rune) bool {
	if rs == nil || r == 0 {
		return false
	}
	i := sort.Search(len(rs.ranges), func(i int) bool { return rs.ranges[i].hi >= r })
	return i < len(rs.ranges) && rs.ranges[i].lo <= r
}
