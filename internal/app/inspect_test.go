package app

import (
	"bytes"
	"testing"
)

func TestInspectKeys(t *testing.T) {
	in := &scriptReader{data: []byte("a\x11\x1b[A\x1b[5~q ignored")}
	var out bytes.Buffer
	if err := InspectKeys(in, &out); err != nil {
		t.Fatalf("InspectKeys: %v", err)
	}
	want := "97 ('a')\r\n17\r\nup\r\npgup\r\n113 ('q')\r\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestInspectKeysWriteError(t *testing.T) {
	in := &scriptReader{data: []byte("x")}
	if err := InspectKeys(in, failingWriter{}); err == nil {
		t.Fatal("expected write error")
	}
}
