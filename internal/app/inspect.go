package app

import (
	"fmt"
	"io"

	"kilo-tui/internal/keys"
)

// InspectKeys печатает каждую декодированную клавишу до нажатия 'q'.
// Управляющие байты выводятся кодом, печатные кодом и символом,
// распознанные последовательности именем.
func InspectKeys(in keys.ByteReader, out io.Writer) error {
	dec := keys.NewDecoder(in)
	for {
		ev, err := dec.ReadKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}

		var line string
		switch {
		case ev.Kind == keys.KindNone:
			continue
		case ev.Kind == keys.KindChar:
			line = fmt.Sprintf("%d ('%c')\r\n", ev.Byte, ev.Byte)
		case ev.Kind == keys.KindCtrl:
			line = fmt.Sprintf("%d\r\n", ev.Byte)
		default:
			line = ev.String() + "\r\n"
		}
		if _, err := io.WriteString(out, line); err != nil {
			return fmt.Errorf("write key: %w", err)
		}
		if ev.Kind == keys.KindChar && ev.Byte == 'q' {
			return nil
		}
	}
}
