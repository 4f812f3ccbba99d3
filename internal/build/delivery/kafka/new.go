// Package kafka announces build lifecycle events on a Kafka topic so
// out-of-process executors can pick up pending builds and cancellations.
package kafka

import (
	"buildhook/internal/build"
	pkgKafka "buildhook/pkg/kafka"
)

type publisher struct {
	prod  pkgKafka.IProducer
	topic string
}

var _ build.Publisher = (*publisher)(nil)

func New(prod pkgKafka.IProducer, topic string) build.Publisher {
	return &publisher{prod: prod, topic: topic}
}
