package kconfig

import (
	"fmt"

	"github.com/birdayz/kpipe/kserde"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/multierr"
)

// KafkaSource consumes a Kafka topic.
type KafkaSource[T any] struct {
	Topic    string
	Brokers  []string
	Group    string
	ClientID string
	Decoder  kserde.Deserializer[T]
}

// Validate reports every missing field.
func (c *KafkaSource[T]) Validate() error {
	err := validateKafka(c.Topic, c.Brokers)
	if c.Decoder == nil {
		err = multierr.Append(err, fmt.Errorf("%w: decoder is required", ErrInvalidConfig))
	}
	return err
}

// ClientOpts returns the franz-go client options consuming the topic.
func (c *KafkaSource[T]) ClientOpts() []kgo.Opt {
	opts := []kgo.Opt{
		kgo.SeedBrokers(c.Brokers...),
		kgo.ConsumeTopics(c.Topic),
	}
	if c.Group != "" {
		opts = append(opts, kgo.ConsumerGroup(c.Group))
	}
	if c.ClientID != "" {
		opts = append(opts, kgo.ClientID(c.ClientID))
	}
	return opts
}

// Decode decodes the value of a consumed record.
func (c *KafkaSource[T]) Decode(r *kgo.Record) (T, error) {
	return c.Decoder(r.Value)
}

func (c *KafkaSource[T]) String() string {
	return "kafka://" + c.Topic
}

// KafkaSink produces to a Kafka topic.
type KafkaSink[T any] struct {
	Topic    string
	Brokers  []string
	ClientID string
	Encoder  kserde.Serializer[T]

	// Key optionally derives the record key from a value.
	Key func(T) []byte
}

// Validate reports every missing field.
func (c *KafkaSink[T]) Validate() error {
	err := validateKafka(c.Topic, c.Brokers)
	if c.Encoder == nil {
		err = multierr.Append(err, fmt.Errorf("%w: encoder is required", ErrInvalidConfig))
	}
	return err
}

// ClientOpts returns the franz-go client options producing to the topic.
func (c *KafkaSink[T]) ClientOpts() []kgo.Opt {
	opts := []kgo.Opt{
		kgo.SeedBrokers(c.Brokers...),
		kgo.DefaultProduceTopic(c.Topic),
	}
	if c.ClientID != "" {
		opts = append(opts, kgo.ClientID(c.ClientID))
	}
	return opts
}

// Record encodes v into a record for the sink topic.
func (c *KafkaSink[T]) Record(v T) (*kgo.Record, error) {
	value, err := c.Encoder(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record for topic %s: %w", c.Topic, err)
	}
	r := &kgo.Record{
		Topic: c.Topic,
		Value: value,
	}
	if c.Key != nil {
		r.Key = c.Key(v)
	}
	return r, nil
}

func (c *KafkaSink[T]) String() string {
	return "kafka://" + c.Topic
}

func validateKafka(topic string, brokers []string) error {
	var err error
	if topic == "" {
		err = multierr.Append(err, fmt.Errorf("%w: topic is required", ErrInvalidConfig))
	}
	if len(brokers) == 0 {
		err = multierr.Append(err, fmt.Errorf("%w: at least one broker is required", ErrInvalidConfig))
	}
	for i, b := range brokers {
		if b == "" {
			err = multierr.Append(err, fmt.Errorf("%w: broker %d is empty", ErrInvalidConfig, i))
		}
	}
	return err
}
