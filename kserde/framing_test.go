package kserde

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestFraming(t *testing.T) {
	for _, headerLength := range []int{1, 2, 4, 8} {
		f := Framing{HeaderLength: headerLength}

		frame, err := f.Frame([]byte("hello"))
		assert.NoError(t, err)
		assert.Equal(t, headerLength+5, len(frame))

		n, err := f.PayloadLength(frame[:headerLength])
		assert.NoError(t, err)
		assert.Equal(t, 5, n)

		payload, err := f.ReadFrame(bytes.NewReader(frame))
		assert.NoError(t, err)
		assert.Equal(t, []byte("hello"), payload)
	}
}

func TestFramingHeader(t *testing.T) {
	frame, err := DefaultFraming.Frame([]byte("abc"))
	assert.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 3, 'a', 'b', 'c'}, frame)
}

func TestFramingErrors(t *testing.T) {
	t.Run("invalid header length", func(t *testing.T) {
		f := Framing{HeaderLength: 3}
		_, err := f.Frame([]byte("x"))
		assert.True(t, errors.Is(err, ErrInvalidFraming))
		_, err = f.PayloadLength([]byte{0, 0, 1})
		assert.True(t, errors.Is(err, ErrInvalidFraming))
		_, err = f.ReadFrame(bytes.NewReader(nil))
		assert.True(t, errors.Is(err, ErrInvalidFraming))
	})

	t.Run("payload too large", func(t *testing.T) {
		f := Framing{HeaderLength: 1}
		_, err := f.Frame(make([]byte, 256))
		assert.True(t, errors.Is(err, ErrFrameTooLarge))
		_, err = f.Frame(make([]byte, 255))
		assert.NoError(t, err)
	})

	t.Run("short header", func(t *testing.T) {
		_, err := DefaultFraming.PayloadLength([]byte{0, 1})
		assert.True(t, errors.Is(err, ErrMalformed))
	})

	t.Run("empty stream", func(t *testing.T) {
		_, err := DefaultFraming.ReadFrame(bytes.NewReader(nil))
		assert.True(t, errors.Is(err, io.EOF))
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, err := DefaultFraming.ReadFrame(bytes.NewReader([]byte{0, 0, 0, 5, 'a'}))
		assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	})
}

func TestReadFrames(t *testing.T) {
	var buf bytes.Buffer
	for _, msg := range []string{"one", "", "three"} {
		frame, err := DefaultFraming.Frame([]byte(msg))
		assert.NoError(t, err)
		buf.Write(frame)
	}

	var got []string
	for {
		payload, err := DefaultFraming.ReadFrame(&buf)
		if errors.Is(err, io.EOF) {
			break
		}
		assert.NoError(t, err)
		got = append(got, string(payload))
	}
	assert.Equal(t, []string{"one", "", "three"}, got)
}
