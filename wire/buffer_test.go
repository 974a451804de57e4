package wire_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/wippyai/nwrfc/wire"
)

func TestWriterReader(t *testing.T) {
	var w wire.Writer
	w.Byte(1)
	w.Uvarint(300)
	w.Text("RFCTABLE")
	w.Chunk([]byte{0xde, 0xad})
	err := w.Nested(func(inner *wire.Writer) error {
		inner.Uvarint(2)
		inner.Chunk(nil)
		inner.Chunk([]byte{7})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	r := wire.NewReader(w.Bytes())
	if b, err := r.Byte(); err != nil || b != 1 {
		t.Fatalf("Byte() = %d, %v", b, err)
	}
	if v, err := r.Uvarint(); err != nil || v != 300 {
		t.Fatalf("Uvarint() = %d, %v", v, err)
	}
	if s, err := r.Text(); err != nil || s != "RFCTABLE" {
		t.Fatalf("Text() = %q, %v", s, err)
	}
	if c, err := r.Chunk(); err != nil || !bytes.Equal(c, []byte{0xde, 0xad}) {
		t.Fatalf("Chunk() = %v, %v", c, err)
	}

	inner, err := r.Nested()
	if err != nil {
		t.Fatal(err)
	}
	n, err := inner.Count()
	if err != nil || n != 2 {
		t.Fatalf("Count() = %d, %v", n, err)
	}
	if c, err := inner.Chunk(); err != nil || len(c) != 0 {
		t.Fatalf("empty Chunk() = %v, %v", c, err)
	}
	if c, err := inner.Chunk(); err != nil || !bytes.Equal(c, []byte{7}) {
		t.Fatalf("Chunk() = %v, %v", c, err)
	}
	if r.Remaining() != 0 || inner.Remaining() != 0 {
		t.Errorf("unread bytes left: %d, %d", r.Remaining(), inner.Remaining())
	}
}

func TestReaderTruncated(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		read func(*wire.Reader) error
	}{
		{"empty byte", nil, func(r *wire.Reader) error { _, err := r.Byte(); return err }},
		{"empty varint", nil, func(r *wire.Reader) error { _, err := r.Uvarint(); return err }},
		{"short chunk", []byte{5, 1, 2}, func(r *wire.Reader) error { _, err := r.Chunk(); return err }},
		{"count past end", []byte{9, 0}, func(r *wire.Reader) error { _, err := r.Count(); return err }},
		{"dangling continuation", []byte{0x80}, func(r *wire.Reader) error { _, err := r.Uvarint(); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(wire.NewReader(tt.buf))
			if !errors.Is(err, wire.ErrTruncated) {
				t.Errorf("expected ErrTruncated, got %v", err)
			}
		})
	}
}

func TestNestedError(t *testing.T) {
	var w wire.Writer
	boom := errors.New("boom")
	if err := w.Nested(func(*wire.Writer) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("got %v", err)
	}
	if w.Len() != 0 {
		t.Errorf("failed Nested must not write, got %d bytes", w.Len())
	}
}
