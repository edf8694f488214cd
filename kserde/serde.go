// Package kserde converts pipeline values to and from bytes, for the sources
// and sinks configured in package kconfig.
package kserde

// Serializer encodes a value written by a sink.
type Serializer[T any] func(T) ([]byte, error)

// Deserializer decodes a value read by a source.
type Deserializer[T any] func([]byte) (T, error)

// Serde pairs a Serializer and a Deserializer of the same type.
type Serde[T any] struct {
	Serializer   Serializer[T]
	Deserializer Deserializer[T]
}

