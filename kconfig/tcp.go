// Package kconfig holds source and sink configurations passed to
// kpipe.Source and kpipe.Sink. The streaming runtime receives them unchanged
// through the application builder.
package kconfig

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"

	"github.com/birdayz/kpipe/kserde"
	"go.uber.org/multierr"
)

var ErrInvalidConfig = errors.New("invalid config")

// TCPSource reads length-framed messages from a TCP connection.
type TCPSource[T any] struct {
	Host    string
	Port    int
	Framing kserde.Framing
	Decoder kserde.Deserializer[T]
}

// NewTCPSource returns a TCPSource using kserde.DefaultFraming.
func NewTCPSource[T any](host string, port int, decoder kserde.Deserializer[T]) *TCPSource[T] {
	return &TCPSource[T]{
		Host:    host,
		Port:    port,
		Framing: kserde.DefaultFraming,
		Decoder: decoder,
	}
}

// Addr returns the address to listen on.
func (c *TCPSource[T]) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate reports every missing or invalid field.
func (c *TCPSource[T]) Validate() error {
	err := validateAddr(c.Host, c.Port)
	if ferr := c.Framing.Validate(); ferr != nil {
		err = multierr.Append(err, fmt.Errorf("%w: %v", ErrInvalidConfig, ferr))
	}
	if c.Decoder == nil {
		err = multierr.Append(err, fmt.Errorf("%w: decoder is required", ErrInvalidConfig))
	}
	return err
}

// Read reads and decodes the next message from r.
func (c *TCPSource[T]) Read(r io.Reader) (T, error) {
	payload, err := c.Framing.ReadFrame(r)
	if err != nil {
		return *new(T), err
	}
	return c.Decoder(payload)
}

func (c *TCPSource[T]) String() string {
	return "tcp://" + c.Addr()
}

// TCPSink writes length-framed messages to a TCP connection.
type TCPSink[T any] struct {
	Host    string
	Port    int
	Framing kserde.Framing
	Encoder kserde.Serializer[T]
}

// NewTCPSink returns a TCPSink using kserde.DefaultFraming.
func NewTCPSink[T any](host string, port int, encoder kserde.Serializer[T]) *TCPSink[T] {
	return &TCPSink[T]{
		Host:    host,
		Port:    port,
		Framing: kserde.DefaultFraming,
		Encoder: encoder,
	}
}

// Addr returns the address to connect to.
func (c *TCPSink[T]) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate reports every missing or invalid field.
func (c *TCPSink[T]) Validate() error {
	err := validateAddr(c.Host, c.Port)
	if ferr := c.Framing.Validate(); ferr != nil {
		err = multierr.Append(err, fmt.Errorf("%w: %v", ErrInvalidConfig, ferr))
	}
	if c.Encoder == nil {
		err = multierr.Append(err, fmt.Errorf("%w: encoder is required", ErrInvalidConfig))
	}
	return err
}

// Write encodes v and writes it to w as one frame.
func (c *TCPSink[T]) Write(w io.Writer, v T) error {
	payload, err := c.Encoder(v)
	if err != nil {
		return err
	}
	frame, err := c.Framing.Frame(payload)
	if err != nil {
		return err
	}
	_, err = w.Write(frame)
	return err
}

func (c *TCPSink[T]) String() string {
	return "tcp://" + c.Addr()
}

func validateAddr(host string, port int) error {
	var err error
	if host == "" {
		err = multierr.Append(err, fmt.Errorf("%w: host is required", ErrInvalidConfig))
	}
	if port <= 0 || port > 65535 {
		err = multierr.Append(err, fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, port))
	}
	return err
}
