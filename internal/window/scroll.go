package window

// Scroller keeps a cursor inside a scrolling viewport over total rows.
type Scroller struct {
	Cursor int
	Offset int
	Height int
	total  int
}

// Total returns the row count the scroller was last clamped to.
func (s *Scroller) Total() int {
	return s.total
}

// Resize sets the viewport height and keeps the cursor visible.
func (s *Scroller) Resize(height int) {
	if height < 1 {
		height = 1
	}
	s.Height = height
	s.follow()
}

// Clamp adapts the scroller to a new row count.
func (s *Scroller) Clamp(total int) {
	if total < 0 {
		total = 0
	}
	s.total = total
	s.Cursor = clamp(s.Cursor, 0, total-1)
	s.follow()
}

// Move shifts the cursor by delta rows.
func (s *Scroller) Move(delta int) {
	s.Cursor = clamp(s.Cursor+delta, 0, s.total-1)
	s.follow()
}

// Page shifts the cursor by pages viewport heights.
func (s *Scroller) Page(pages int) {
	s.Move(pages * s.height())
}

// Home moves the cursor to the first row.
func (s *Scroller) Home() {
	s.Cursor = 0
	s.follow()
}

// End moves the cursor to the last row.
func (s *Scroller) End() {
	s.Cursor = clamp(s.total-1, 0, s.total-1)
	s.follow()
}

// Visible returns the rows currently inside the viewport, without overscan.
func (s *Scroller) Visible() Range {
	return Compute(s.total, s.Offset, s.height(), 0)
}

// Window returns the realized rows with overscan.
func (s *Scroller) Window(overscan int) Range {
	return Compute(s.total, s.Offset, s.height(), overscan)
}

func (s *Scroller) height() int {
	if s.Height < 1 {
		return 1
	}
	return s.Height
}

func (s *Scroller) follow() {
	h := s.height()
	if s.Cursor < s.Offset {
		s.Offset = s.Cursor
	}
	if s.Cursor >= s.Offset+h {
		s.Offset = s.Cursor - h + 1
	}
	maxOffset := s.total - h
	if maxOffset < 0 {
		maxOffset = 0
	}
	s.Offset = clamp(s.Offset, 0, maxOffset)
}
