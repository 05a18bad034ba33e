package view

// Lines is the part of a document the scroll engine needs.
type Lines interface {
	NumRows() int
	RowLen(i int) int
	CxToRx(i, cx int) int
}

// Cursor is a position in character space. Y may equal NumRows, the line
// past the end of the file.
type Cursor struct {
	X int
	Y int
}

// Viewport is the visible window in render space.
type Viewport struct {
	RowOff int
	ColOff int
	Rows   int
	Cols   int
}

// Direction of a single cursor step.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// RenderX returns the cursor column in render space.
func RenderX(c Cursor, doc Lines) int {
	if c.Y < 0 || c.Y >= doc.NumRows() {
		return 0
	}
	return doc.CxToRx(c.Y, c.X)
}

// Scroll moves the viewport the least amount needed to show the cursor and
// returns it with the cursor's render column.
func Scroll(c Cursor, doc Lines, vp Viewport) (Viewport, int) {
	rx := RenderX(c, doc)

	if c.Y < vp.RowOff {
		vp.RowOff = c.Y
	}
	if vp.Rows > 0 && c.Y >= vp.RowOff+vp.Rows {
		vp.RowOff = c.Y - vp.Rows + 1
	}
	if rx < vp.ColOff {
		vp.ColOff = rx
	}
	if vp.Cols > 0 && rx >= vp.ColOff+vp.Cols {
		vp.ColOff = rx - vp.Cols + 1
	}
	return vp, rx
}

// Clamp keeps Y within [0, NumRows] and X within [0, len(row Y)].
func Clamp(c Cursor, doc Lines) Cursor {
	n := doc.NumRows()
	if c.Y > n {
		c.Y = n
	}
	if c.Y < 0 {
		c.Y = 0
	}
	if c.X < 0 {
		c.X = 0
	}
	if l := doc.RowLen(c.Y); c.X > l {
		c.X = l
	}
	return c
}

// Move applies one arrow-key step. Left at column 0 wraps to the end of the
// previous line, Right at the end of a line wraps to the next one.
func Move(c Cursor, dir Direction, doc Lines) Cursor {
	n := doc.NumRows()
	switch dir {
	case Up:
		if c.Y > 0 {
			c.Y--
		}
	case Down:
		if c.Y < n {
			c.Y++
		}
	case Left:
		if c.X > 0 {
			c.X--
		} else if c.Y > 0 {
			c.Y--
			c.X = doc.RowLen(c.Y)
		}
	case Right:
		if c.Y < n {
			if c.X < doc.RowLen(c.Y) {
				c.X++
			} else {
				c.Y++
				c.X = 0
			}
		}
	}
	return Clamp(c, doc)
}

// LineStart moves to column 0.
func LineStart(c Cursor) Cursor {
	c.X = 0
	return c
}

// LineEnd moves to the end of the current row.
func LineEnd(c Cursor, doc Lines) Cursor {
	if c.Y < doc.NumRows() {
		c.X = doc.RowLen(c.Y)
	}
	return c
}

// PageUp jumps to the top of the viewport and then moves up one screen.
func PageUp(c Cursor, vp Viewport, doc Lines) Cursor {
	c.Y = vp.RowOff
	return repeat(Clamp(c, doc), Up, vp.Rows, doc)
}

// PageDown jumps to the bottom of the viewport and then moves down one screen.
func PageDown(c Cursor, vp Viewport, doc Lines) Cursor {
	c.Y = vp.RowOff + vp.Rows - 1
	if n := doc.NumRows(); c.Y > n {
		c.Y = n
	}
	return repeat(Clamp(c, doc), Down, vp.Rows, doc)
}

func repeat(c Cursor, dir Direction, times int, doc Lines) Cursor {
	for i := 0; i < times; i++ {
		c = Move(c, dir, doc)
	}
	return c
}
