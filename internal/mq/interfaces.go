package mq

import (
	"context"
)

// ProducerInterface defines the interface for message production
type ProducerInterface interface {
	SendPurge(ctx context.Context, msg *PurgeMessage) error
	Close() error
}

// ConsumerInterface defines the interface for message consumption
type ConsumerInterface interface {
	Subscribe() error
	Close() error
}

var (
	_ ProducerInterface = (*Producer)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
