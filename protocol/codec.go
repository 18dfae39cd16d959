package protocol

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/pkg/errors"
)

// ReadOpcode reads the next opcode. io.EOF is returned as is when the stream
// ends cleanly before the opcode byte.
func ReadOpcode(r io.Reader) (Opcode, error) {
	var b [1]byte
	if br, ok := r.(io.ByteReader); ok {
		c, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		return Opcode(c), nil
	}
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return Opcode(b[0]), nil
}

// ReadChunk fills buf, which must be BufferSize long, with one filler
// payload. A stream that ends part way is an error.
func ReadChunk(r io.Reader, buf []byte) error {
	if len(buf) != BufferSize {
		return errors.Errorf("chunk buffer is %d bytes, want %d", len(buf), BufferSize)
	}
	if _, err := io.ReadFull(r, buf); err != nil {
		return errors.Wrap(noEOF(err), "reading data chunk")
	}
	return nil
}

// ReadMillis reads the OpRequest payload.
func ReadMillis(r io.Reader) (uint64, error) {
	var b [RequestSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, errors.Wrap(noEOF(err), "reading duration request")
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

// ReadDuration reads the OpRequest payload as a time.Duration.
func ReadDuration(r io.Reader) (time.Duration, error) {
	ms, err := ReadMillis(r)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func WriteOpcode(w io.Writer, op Opcode) error {
	if _, err := w.Write([]byte{byte(op)}); err != nil {
		return errors.Wrapf(err, "writing %s opcode", op)
	}
	return nil
}

// WriteRequest writes OpRequest with d rounded down to whole milliseconds.
func WriteRequest(w io.Writer, d time.Duration) error {
	var b [1 + RequestSize]byte
	b[0] = byte(OpRequest)
	binary.BigEndian.PutUint64(b[1:], uint64(d/time.Millisecond))
	if _, err := w.Write(b[:]); err != nil {
		return errors.Wrap(err, "writing duration request")
	}
	return nil
}

// NewDataFrame returns a ready to send OpData unit. Sending the whole frame
// with one Write keeps it from interleaving with other writers on the same
// connection.
func NewDataFrame() []byte {
	frame := make([]byte, FrameSize)
	frame[0] = byte(OpData)
	for i := 1; i < FrameSize; i++ {
		frame[i] = byte(i - 1)
	}
	return frame
}

// WriteFrame writes a frame built by NewDataFrame.
func WriteFrame(w io.Writer, frame []byte) error {
	if _, err := w.Write(frame); err != nil {
		return errors.Wrap(err, "writing data chunk")
	}
	return nil
}

// a payload cut short is never a clean end of stream
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
