package document

// DefaultTabStop is the render width of a tab stop.
const DefaultTabStop = 8

// Row is one line of the file. render is derived from chars and is rebuilt
// whenever chars is replaced.
type Row struct {
	chars   []byte
	render  []byte
	tabStop int
}

func newRow(chars []byte, tabStop int) *Row {
	if tabStop < 1 {
		tabStop = DefaultTabStop
	}
	r := &Row{tabStop: tabStop}
	r.setChars(chars)
	return r
}

// Chars returns the stored bytes. Callers must not modify the slice.
func (r *Row) Chars() []byte {
	return r.chars
}

// Render returns the display form with tabs expanded.
func (r *Row) Render() []byte {
	return r.render
}

// Len is the length of the row in character space.
func (r *Row) Len() int {
	return len(r.chars)
}

// RenderLen is the length of the row in render space.
func (r *Row) RenderLen() int {
	return len(r.render)
}

// setChars replaces the row contents and rebuilds the render form.
func (r *Row) setChars(chars []byte) {
	r.chars = append([]byte(nil), chars...)
	r.render = expandTabs(r.chars, r.tabStop)
}

// CxToRx converts a character index to a render column.
func (r *Row) CxToRx(cx int) int {
	if cx > len(r.chars) {
		cx = len(r.chars)
	}
	rx := 0
	for j := 0; j < cx; j++ {
		if r.chars[j] == '\t' {
			rx += (r.tabStop - 1) - (rx % r.tabStop)
		}
		rx++
	}
	return rx
}

// RxToCx converts a render column back to the character index that covers it.
// The navigation core only maps cx to rx; RxToCx serves commands registered
// on top of it that start from a screen column.
func (r *Row) RxToCx(rx int) int {
	cur := 0
	for cx, c := range r.chars {
		if c == '\t' {
			cur += (r.tabStop - 1) - (cur % r.tabStop)
		}
		cur++
		if cur > rx {
			return cx
		}
	}
	return len(r.chars)
}

func expandTabs(chars []byte, tabStop int) []byte {
	tabs := 0
	for _, c := range chars {
		if c == '\t' {
			tabs++
		}
	}
	out := make([]byte, 0, len(chars)+tabs*(tabStop-1))
	for _, c := range chars {
		if c != '\t' {
			out = append(out, c)
			continue
		}
		out = append(out, ' ')
		for len(out)%tabStop != 0 {
			out = append(out, ' ')
		}
	}
	return out
}
