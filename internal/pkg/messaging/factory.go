package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// DriverNSQ selects the NSQ backend.
	DriverNSQ = "nsq"
	// DriverNATS selects the NATS backend.
	DriverNATS = "nats"
	// DriverKafka selects the Kafka backend.
	DriverKafka = "kafka"
	// DriverGooglePubSub selects the Google Pub/Sub backend.
	DriverGooglePubSub = "google-pubsub"
)

// ErrUnknownDriver indicates an unsupported messaging driver.
var ErrUnknownDriver = errors.New("pkgmessage: unknown driver")

// FactoryOptions groups config for the supported messaging backends.
type FactoryOptions struct {
	NSQ    NSQConfig
	NATS   NATSConfig
	Kafka  KafkaConfig
	PubSub PubSubConfig
}

// NewFromDriver constructs a Messaging implementation by driver name.
func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Messaging, error) {
	switch strings.TrimSpace(driver) {
	case DriverNSQ:
		return NewNSQ(opts.NSQ)
	case DriverNATS:
		return NewNATS(opts.NATS)
	case DriverKafka:
		return NewKafka(opts.Kafka)
	case DriverGooglePubSub:
		return NewPubSub(ctx, opts.PubSub)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
