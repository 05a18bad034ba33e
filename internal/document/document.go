package document

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Document is the ordered list of rows of one file.
type Document struct {
	rows    []*Row
	tabStop int
	path    string
}

// New creates an empty document.
func New(tabStop int) *Document {
	if tabStop < 1 {
		tabStop = DefaultTabStop
	}
	return &Document{tabStop: tabStop}
}

// Open reads the file at path into a new document.
func Open(path string, tabStop int) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc := New(tabStop)
	doc.path = path
	if err := doc.Load(f); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return doc, nil
}

// Load appends every newline-delimited line of r.
func (d *Document) Load(r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			d.AppendRow(line)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// AppendRow adds a row built from line with trailing \n and \r removed.
func (d *Document) AppendRow(line []byte) {
	line = bytes.TrimRight(line, "\r\n")
	d.rows = append(d.rows, newRow(line, d.tabStop))
}

// Path is the file the document was read from, empty if none.
func (d *Document) Path() string {
	return d.path
}

// NumRows returns the number of rows.
func (d *Document) NumRows() int {
	return len(d.rows)
}

// Row returns row i or nil when out of range.
func (d *Document) Row(i int) *Row {
	if i < 0 || i >= len(d.rows) {
		return nil
	}
	return d.rows[i]
}

// RowLen returns the character length of row i, 0 past the end.
func (d *Document) RowLen(i int) int {
	if row := d.Row(i); row != nil {
		return row.Len()
	}
	return 0
}

// CxToRx converts cx on row i to a render column, 0 past the end.
func (d *Document) CxToRx(i, cx int) int {
	if row := d.Row(i); row != nil {
		return row.CxToRx(cx)
	}
	return 0
}

// RenderSlice returns up to width bytes of row i's render form starting at
// render column off. The result is empty when the row is shorter than off.
func (d *Document) RenderSlice(i, off, width int) []byte {
	row := d.Row(i)
	if row == nil || width <= 0 {
		return nil
	}
	render := row.Render()
	if off >= len(render) {
		return nil
	}
	if off < 0 {
		off = 0
	}
	end := off + width
	if end > len(render) {
		end = len(render)
	}
	return render[off:end]
}
