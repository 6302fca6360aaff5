package io

import "bytes"

// BufBinWriter is a BinWriter with its own byte buffer backing store,
// convenient for one-shot serializations where the caller just wants the
// resulting bytes rather than wiring up their own io.Writer.
type BufBinWriter struct {
	*BinWriter
	buf *bytes.Buffer
}

// NewBufBinWriter creates a new BufBinWriter with its own buffer.
func NewBufBinWriter() *BufBinWriter {
	b := new(bytes.Buffer)
	return &BufBinWriter{
		BinWriter: NewBinWriterFromIO(b),
		buf:       b,
	}
}

// Len returns the number of bytes written so far.
func (bw *BufBinWriter) Len() int {
	return bw.buf.Len()
}

// Bytes returns the accumulated bytes. It returns nil if the writer is in
// an error state, mirroring the teacher's "don't hand back partial,
// possibly-corrupt output" convention.
func (bw *BufBinWriter) Bytes() []byte {
	if bw.Err != nil {
		return nil
	}
	return bw.buf.Bytes()
}

// Reset resets the buffer and clears any accumulated error so the writer
// can be reused.
func (bw *BufBinWriter) Reset() {
	bw.Err = nil
	bw.buf.Reset()
}

// Error returns the error accumulated so far, if any.
func (bw *BufBinWriter) Error() error {
	return bw.Err
}

// SetError sets the accumulated error explicitly, useful for tests and
// for short-circuiting a chain of writes from calling code that detected
// a problem out of band.
func (bw *BufBinWriter) SetError(err error) {
	bw.Err = err
}
