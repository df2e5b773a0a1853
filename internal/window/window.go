// Package window computes which rows of a long list are realized on screen.
package window

// Range is the half-open index range [Start, End) of realized rows.
type Range struct {
	Start int
	End   int
}

// Len returns the number of rows in the range.
func (r Range) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Contains reports whether idx is inside the range.
func (r Range) Contains(idx int) bool {
	return idx >= r.Start && idx < r.End
}

// Compute returns the rows intersecting a viewport of height rows starting at
// offset, widened by overscan rows on both sides and clamped to [0, total].
func Compute(total, offset, height, overscan int) Range {
	if total <= 0 || height <= 0 {
		return Range{}
	}
	if overscan < 0 {
		overscan = 0
	}
	offset = clamp(offset, 0, total-1)
	start := offset - overscan
	if start < 0 {
		start = 0
	}
	end := offset + height + overscan
	if end > total {
		end = total
	}
	return Range{Start: start, End: end}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
