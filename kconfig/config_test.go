package kconfig

import (
	"bytes"
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/birdayz/kpipe/kserde"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/multierr"
)

func TestTCPSource(t *testing.T) {
	c := NewTCPSource[string]("127.0.0.1", 7010, kserde.StringDeserializer)
	assert.NoError(t, c.Validate())
	assert.Equal(t, "127.0.0.1:7010", c.Addr())
	assert.Equal(t, "tcp://127.0.0.1:7010", c.String())

	frame, err := c.Framing.Frame([]byte("hello"))
	assert.NoError(t, err)
	v, err := c.Read(bytes.NewReader(frame))
	assert.NoError(t, err)
	assert.Equal(t, "hello", v)
}

func TestTCPSink(t *testing.T) {
	c := NewTCPSink[int64]("::1", 7002, kserde.Int64Serializer)
	assert.NoError(t, c.Validate())
	assert.Equal(t, "[::1]:7002", c.Addr())

	var buf bytes.Buffer
	assert.NoError(t, c.Write(&buf, 42))

	payload, err := c.Framing.ReadFrame(&buf)
	assert.NoError(t, err)
	v, err := kserde.Int64Deserializer(payload)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

func TestTCPValidate(t *testing.T) {
	src := &TCPSource[string]{Port: 70000, Framing: kserde.Framing{HeaderLength: 3}}
	err := src.Validate()
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	// host, port, framing, decoder
	assert.Equal(t, 4, len(multierr.Errors(err)))

	sink := &TCPSink[string]{Host: "localhost", Port: 1, Framing: kserde.DefaultFraming}
	err = sink.Validate()
	assert.Equal(t, 1, len(multierr.Errors(err)))
}

func TestKafkaSource(t *testing.T) {
	c := &KafkaSource[string]{
		Topic:   "words",
		Brokers: []string{"localhost:9092"},
		Group:   "word-count",
		Decoder: kserde.StringDeserializer,
	}
	assert.NoError(t, c.Validate())
	assert.Equal(t, 3, len(c.ClientOpts()))
	assert.Equal(t, "kafka://words", c.String())

	v, err := c.Decode(&kgo.Record{Topic: "words", Value: []byte("hello")})
	assert.NoError(t, err)
	assert.Equal(t, "hello", v)

	c.ClientID = "kpipe"
	assert.Equal(t, 4, len(c.ClientOpts()))
}

func TestKafkaSink(t *testing.T) {
	c := &KafkaSink[string]{
		Topic:   "counts",
		Brokers: []string{"localhost:9092"},
		Encoder: kserde.StringSerializer,
		Key:     func(v string) []byte { return []byte(v[:1]) },
	}
	assert.NoError(t, c.Validate())
	assert.Equal(t, 2, len(c.ClientOpts()))

	r, err := c.Record("hello")
	assert.NoError(t, err)
	assert.Equal(t, "counts", r.Topic)
	assert.Equal(t, []byte("h"), r.Key)
	assert.Equal(t, []byte("hello"), r.Value)

	errEncode := errors.New("encode")
	c.Encoder = func(string) ([]byte, error) { return nil, errEncode }
	_, err = c.Record("hello")
	assert.True(t, errors.Is(err, errEncode))
}

func TestKafkaValidate(t *testing.T) {
	src := &KafkaSource[string]{Brokers: []string{""}}
	err := src.Validate()
	// topic, empty broker, decoder
	assert.Equal(t, 3, len(multierr.Errors(err)))

	sink := &KafkaSink[string]{Topic: "counts"}
	err = sink.Validate()
	// brokers, encoder
	assert.Equal(t, 2, len(multierr.Errors(err)))
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}
