package kserde

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	ErrMalformed      = errors.New("kserde: malformed data")
	ErrFrameTooLarge  = errors.New("kserde: payload too large for frame header")
	ErrInvalidFraming = errors.New("kserde: invalid framing")
)

// Framing delimits messages on a byte stream with a big-endian length header
// of HeaderLength bytes (1, 2, 4 or 8).
type Framing struct {
	HeaderLength int
}

// DefaultFraming uses a 4 byte header.
var DefaultFraming = Framing{HeaderLength: 4}

// Validate checks the header length.
func (f Framing) Validate() error {
	switch f.HeaderLength {
	case 1, 2, 4, 8:
		return nil
	default:
		return fmt.Errorf("%w: header length %d, want 1, 2, 4 or 8", ErrInvalidFraming, f.HeaderLength)
	}
}

// PayloadLength decodes the payload length from a frame header.
func (f Framing) PayloadLength(header []byte) (int, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}
	if len(header) != f.HeaderLength {
		return 0, fmt.Errorf("%w: header has %d bytes, want %d", ErrMalformed, len(header), f.HeaderLength)
	}

	var n uint64
	switch f.HeaderLength {
	case 1:
		n = uint64(header[0])
	case 2:
		n = uint64(binary.BigEndian.Uint16(header))
	case 4:
		n = uint64(binary.BigEndian.Uint32(header))
	case 8:
		n = binary.BigEndian.Uint64(header)
	}
	if n > uint64(maxInt) {
		return 0, fmt.Errorf("%w: payload length %d", ErrMalformed, n)
	}
	return int(n), nil
}

// Frame prefixes payload with its length header.
func (f Framing) Frame(payload []byte) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	n := uint64(len(payload))
	if f.HeaderLength < 8 && n >= 1<<(8*f.HeaderLength) {
		return nil, fmt.Errorf("%w: %d bytes with %d byte header", ErrFrameTooLarge, n, f.HeaderLength)
	}

	buf := make([]byte, f.HeaderLength, f.HeaderLength+len(payload))
	switch f.HeaderLength {
	case 1:
		buf[0] = byte(n)
	case 2:
		binary.BigEndian.PutUint16(buf, uint16(n))
	case 4:
		binary.BigEndian.PutUint32(buf, uint32(n))
	case 8:
		binary.BigEndian.PutUint64(buf, n)
	}
	return append(buf, payload...), nil
}

// ReadFrame reads one frame from r and returns its payload. It returns io.EOF
// only if r is exhausted before the header.
func (f Framing) ReadFrame(r io.Reader) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	header := make([]byte, f.HeaderLength)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	n, err := f.PayloadLength(header)
	if err != nil {
		return nil, err
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return payload, nil
}

const maxInt = int(^uint(0) >> 1)
