package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnsupported is returned when the selected broker cannot perform the
// requested operation.
var ErrUnsupported = errors.New("pkgmessage: unsupported operation")

// Messaging is a broker-agnostic client that can publish and consume
// messages. Implementations wrap NATS, Kafka, NSQ or Google Pub/Sub.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

// Publisher publishes messages to a destination (topic/subject/queue).
type Publisher interface {
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// Consumer consumes messages from a source until the context is canceled.
type Consumer interface {
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes a received message. With auto-ack enabled, a nil return
// acks the message and a non-nil return nacks it (when the broker supports
// negative acknowledgement).
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage is a broker-agnostic message to be published.
type OutgoingMessage struct {
	// Body is the message payload.
	Body []byte

	// Key is used by Kafka for partitioning.
	Key []byte

	// Headers support arbitrary binary values and duplicate keys.
	Headers []Header

	// Attributes is used by brokers that model string attributes (Pub/Sub).
	Attributes map[string]string
}

// Header is a key/value pair used for message headers.
type Header struct {
	Key   string
	Value []byte
}

// PublishResult carries optional broker-specific publish metadata.
type PublishResult struct {
	// MessageID is the broker-assigned message ID, when exposed.
	MessageID string
	// Topic is the destination used for publishing.
	Topic string
	// Timestamp is when the broker accepted the message.
	Timestamp time.Time
}

// Message is a broker-agnostic received message.
type Message interface {
	// Body returns the message payload.
	Body() []byte
	// Headers returns message headers.
	Headers() []Header
	// ID returns the broker message ID, when exposed.
	ID() string
	// Topic returns the topic/subject the message was received on.
	Topic() string
	// Timestamp returns the broker or receive timestamp.
	Timestamp() time.Time

	// Ack acknowledges successful processing.
	Ack(ctx context.Context) error
	// Nack requests redelivery when the broker supports it.
	Nack(ctx context.Context) error
}
