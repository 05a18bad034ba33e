package screen

import (
	"bytes"
	"strconv"

	"github.com/mattn/go-runewidth"

	"kilo-tui/internal/view"
)

// Escape sequences written by the compositor.
const (
	HideCursor  = "\x1b[?25l"
	ShowCursor  = "\x1b[?25h"
	CursorHome  = "\x1b[H"
	EraseLine   = "\x1b[K"
	ClearScreen = "\x1b[2J"
)

// Filler marks screen rows below the end of the file.
const Filler = "~"

// Source is the document as seen by the compositor.
type Source interface {
	NumRows() int
	RenderSlice(i, off, width int) []byte
}

// Frame is everything needed to draw one screen.
type Frame struct {
	Doc      Source
	Cursor   view.Cursor
	RX       int
	Viewport view.Viewport
	// Welcome is centered on the middle row when the document is empty.
	Welcome string
	// Bars are pre-rendered lines drawn below the text rows.
	Bars []string
}

// Compose builds the whole frame into one buffer so the caller can write it
// with a single write.
func Compose(f Frame) []byte {
	var buf bytes.Buffer
	buf.Grow((f.Viewport.Rows + len(f.Bars)) * (f.Viewport.Cols + 8))

	buf.WriteString(HideCursor)
	buf.WriteString(CursorHome)

	drawRows(&buf, f)
	drawBars(&buf, f.Bars)

	buf.Write(CursorPosition(f.Cursor.Y-f.Viewport.RowOff+1, f.RX-f.Viewport.ColOff+1))
	buf.WriteString(ShowCursor)
	return buf.Bytes()
}

func drawRows(buf *bytes.Buffer, f Frame) {
	vp := f.Viewport
	numRows := f.Doc.NumRows()
	for y := 0; y < vp.Rows; y++ {
		fileRow := y + vp.RowOff
		if fileRow >= numRows {
			if numRows == 0 && f.Welcome != "" && y == vp.Rows/2 {
				buf.Write(WelcomeLine(f.Welcome, vp.Cols))
			} else {
				buf.WriteString(Filler)
			}
		} else {
			buf.Write(f.Doc.RenderSlice(fileRow, vp.ColOff, vp.Cols))
		}
		buf.WriteString(EraseLine)
		buf.WriteString("\r\n")
	}
}

func drawBars(buf *bytes.Buffer, bars []string) {
	for i, bar := range bars {
		buf.WriteString(EraseLine)
		buf.WriteString(bar)
		if i < len(bars)-1 {
			buf.WriteString("\r\n")
		}
	}
}

// WelcomeLine clips msg to cols and centers it, starting the line with the
// filler glyph when there is room for padding.
func WelcomeLine(msg string, cols int) []byte {
	if cols <= 0 {
		return nil
	}
	msg = runewidth.Truncate(msg, cols, "")
	padding := (cols - runewidth.StringWidth(msg)) / 2

	var line []byte
	if padding > 0 {
		line = append(line, Filler...)
		padding--
	}
	for ; padding > 0; padding-- {
		line = append(line, ' ')
	}
	return append(line, msg...)
}

// CursorPosition returns the sequence moving the cursor to a 1-indexed row and column.
func CursorPosition(row, col int) []byte {
	b := make([]byte, 0, 16)
	b = append(b, "\x1b["...)
	b = strconv.AppendInt(b, int64(row), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(col), 10)
	return append(b, 'H')
}
