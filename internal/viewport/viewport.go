// Package viewport implements the cursor-plus-window arithmetic used to
// keep a highlighted row visible inside a fixed-height slice of a growing,
// unbounded list.
package viewport

// View is the currently visible slice of the list: a half-open
// [Start, End) window together with the cursor's row position within it.
type View struct {
	Pos   int
	Start int
	End   int
}

// Position is a pure value type holding cursor/window state over a list
// of Length items rendered through a window of Height rows. Moving down
// keeps Offset rows visible below the cursor before scrolling; moving up
// keeps Offset-1 rows visible above it.
//
// There is no I/O here: every method is arithmetic over the integer
// fields below.
type Position struct {
	view View

	userOffset int

	height int
	length int
	offset int
}

// Reset clears the window to the start of the list and records a new
// offset and length. Height is left untouched.
func (p *Position) Reset(offset, length int) {
	p.view.Start = 0
	p.view.End = p.height
	p.view.Pos = 0
	p.length = length
	p.userOffset = offset
	p.updateOffset()
}

// LengthExtended records that the backing list grew to newLength. It
// never shrinks the recorded length.
func (p *Position) LengthExtended(newLength int) {
	if newLength > p.length {
		p.length = newLength
	}
}

// Position returns the cursor's absolute index into the list.
func (p *Position) Position() int {
	return p.view.Pos + p.view.Start
}

// Next moves the cursor forward by count rows, scrolling the window down
// when the cursor would cross the bottom offset margin. It saturates at
// the end of the list and is a no-op on an empty list.
func (p *Position) Next(count int) {
	if p.length == 0 {
		return
	}
	p.view.Pos = min(p.view.Pos+count, p.length-1-p.view.Start)

	if countToScroll := p.view.Pos - (p.height - p.offset - 1); countToScroll > 0 {
		countToScroll = min(countToScroll, satSub(p.length, p.view.End))
		p.view.End += countToScroll
		p.view.Pos -= countToScroll
	}
	p.view.Start = satSub(p.view.End, p.height)
}

// Prev moves the cursor backward by count rows, scrolling the window up
// when the cursor would cross the top offset margin. Saturates at 0.
func (p *Position) Prev(count int) {
	if p.length == 0 {
		return
	}
	oldPos := p.view.Pos
	p.view.Pos = satSub(p.view.Pos, count)
	p.view.Start = satSub(p.view.Start, count-(oldPos-p.view.Pos))

	if p.view.Pos < p.offset {
		offsetMissing := p.offset - 1 - p.view.Pos
		oldStart := p.view.Start
		p.view.Start = satSub(p.view.Start, offsetMissing)
		p.view.Pos += oldStart - p.view.Start
	}

	p.view.End = p.view.Start + p.height
}

// End jumps the cursor to the last entry, aligning the window so the
// cursor sits at the bottom row.
func (p *Position) End() {
	p.view.Pos = satSub(min(p.length, p.height), 1)
	p.view.Start = satSub(p.length, p.height)
	p.view.End = p.view.Start + p.height
}

// Start jumps the cursor to the first entry, aligning the window at 0.
func (p *Position) Start() {
	p.view.Pos = 0
	p.view.Start = 0
	p.view.End = p.height
}

// SetHeight resizes the viewport, scrolling into view if necessary so the
// cursor remains visible, and recomputes the effective offset.
func (p *Position) SetHeight(height int) {
	if p.height == height {
		return
	}
	if p.height > height {
		count := p.height - height
		p.view.End -= count
		if count := p.view.Pos - (p.view.End - p.view.Start - 1); count > 0 {
			p.view.Start += count
			p.view.End += count
			p.view.Pos -= count
		}
	} else {
		count := height - p.height
		p.view.End += count
	}
	p.height = height
	p.updateOffset()
}

// GetView returns the current view with End clamped to Length.
func (p *Position) GetView() View {
	v := p.view
	v.End = min(p.length, p.view.End)
	return v
}

// Select moves the cursor directly to position, scrolling through Next
// or Prev as needed so the offset margin is respected.
func (p *Position) Select(position int) {
	if count := p.Position() - position; count >= 0 {
		p.Prev(count)
	} else {
		p.Next(position - p.Position())
	}
}

func (p *Position) updateOffset() {
	if 2*p.userOffset > p.height {
		if p.height <= 0 {
			p.offset = 0
		} else {
			p.offset = p.height / 2
		}
	} else {
		p.offset = p.userOffset
	}
}

// Center places the cursor at height/2 within the window, shifting the
// window instead of the cursor, saturating at the list boundaries.
func (p *Position) Center() {
	if p.height == 0 {
		return
	}
	middle := p.height / 2
	if count := p.view.Pos - middle; count >= 0 {
		count = min(count, satSub(p.length, p.view.End))
		p.view.Pos -= count
		p.view.Start += count
		p.view.End += count
	} else {
		count := middle - p.view.Pos
		oldStart := p.view.Start
		p.view.Start = satSub(p.view.Start, count)
		realCount := oldStart - p.view.Start
		p.view.Pos += realCount
		p.view.End -= realCount
	}
}

func satSub(a, b int) int {
	if a < b {
		return 0
	}
	return a - b
}
