package wire

import (
	"bytes"
	"errors"
	"io"
)

// ErrTruncated is returned when a buffer ends inside a value
var ErrTruncated = errors.New("wire: truncated buffer")

// MaxChunk bounds a single length prefixed chunk
const MaxChunk = 1 << 30

// Writer builds a buffer. The zero value is ready to use.
type Writer struct {
	buf bytes.Buffer
}

func (w *Writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

func (w *Writer) Uvarint(v uint64) {
	WriteUvarint(&w.buf, v)
}

// Chunk writes b with a length prefix
func (w *Writer) Chunk(b []byte) {
	WriteUvarint(&w.buf, uint64(len(b)))
	w.buf.Write(b)
}

// Raw writes b without a prefix
func (w *Writer) Raw(b []byte) {
	w.buf.Write(b)
}

// Text writes s as a length prefixed chunk of UTF-8 bytes
func (w *Writer) Text(s string) {
	WriteUvarint(&w.buf, uint64(len(s)))
	w.buf.WriteString(s)
}

// Nested writes a chunk produced by fn
func (w *Writer) Nested(fn func(*Writer) error) error {
	var inner Writer
	if err := fn(&inner); err != nil {
		return err
	}
	w.Chunk(inner.Bytes())
	return nil
}

// Bytes returns the buffer contents
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

func (w *Writer) Len() int {
	return w.buf.Len()
}

// Reader consumes a buffer produced by Writer
type Reader struct {
	r *bytes.Reader
}

// NewReader returns a Reader over b
func NewReader(b []byte) *Reader {
	return &Reader{r: bytes.NewReader(b)}
}

func (r *Reader) Byte() (byte, error) {
	b, err := r.r.ReadByte()
	if err == io.EOF {
		return 0, ErrTruncated
	}
	return b, err
}

func (r *Reader) Uvarint() (uint64, error) {
	v, err := ReadUvarint(r.r)
	if err == io.EOF {
		return 0, ErrTruncated
	}
	return v, err
}

// Count reads a varint used as an element count
func (r *Reader) Count() (int, error) {
	v, err := r.Uvarint()
	if err != nil {
		return 0, err
	}
	if v > uint64(r.r.Len()) {
		// every element takes at least one byte
		return 0, ErrTruncated
	}
	return int(v), nil
}

// Chunk reads a length prefixed chunk. The result is a copy.
func (r *Reader) Chunk() ([]byte, error) {
	n, err := r.Uvarint()
	if err != nil {
		return nil, err
	}
	if n > MaxChunk || n > uint64(r.r.Len()) {
		return nil, ErrTruncated
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(r.r, out); err != nil {
		return nil, ErrTruncated
	}
	return out, nil
}

func (r *Reader) Text() (string, error) {
	b, err := r.Chunk()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Nested reads a chunk and returns a Reader over it
func (r *Reader) Nested() (*Reader, error) {
	b, err := r.Chunk()
	if err != nil {
		return nil, err
	}
	return NewReader(b), nil
}

// Rest returns a copy of all unread bytes and consumes them
func (r *Reader) Rest() []byte {
	out := make([]byte, r.r.Len())
	_, _ = io.ReadFull(r.r, out)
	return out
}

// Remaining reports the number of unread bytes
func (r *Reader) Remaining() int {
	return r.r.Len()
}
