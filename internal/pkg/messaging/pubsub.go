package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"google.golang.org/api/option"
)

var (
	// ErrPubSubProjectIDRequired is returned when a ProjectID is missing.
	ErrPubSubProjectIDRequired = errors.New("pkgmessage: pubsub project id is required")
	// ErrPubSubClientRequired is returned when the Pub/Sub client is nil or closed.
	ErrPubSubClientRequired = errors.New("pkgmessage: pubsub client is required")
	// ErrPubSubTopicRequired is returned when the publish topic is empty.
	ErrPubSubTopicRequired = errors.New("pkgmessage: pubsub topic is required")
	// ErrPubSubSubscriptionRequired is returned when the subscription name is empty.
	ErrPubSubSubscriptionRequired = errors.New("pkgmessage: pubsub subscription is required")
	// ErrPubSubHandlerRequired is returned when Consume is called with a nil handler.
	ErrPubSubHandlerRequired = errors.New("pkgmessage: pubsub handler is required")
)

// PubSubConfig configures the Google Pub/Sub implementation.
type PubSubConfig struct {
	// ProjectID is the Google Cloud project ID.
	ProjectID string

	// Client provides an existing Pub/Sub client.
	Client *pubsub.Client
	// ClientOptions are used when creating a new client.
	ClientOptions []option.ClientOption
}

// PubSub is a messaging implementation backed by Google Pub/Sub. Publishers
// are created lazily per topic and reused.
type PubSub struct {
	client *pubsub.Client

	mu         sync.Mutex
	closed     bool
	publishers map[string]*pubsub.Publisher
}

// NewPubSub constructs a Pub/Sub messaging client.
func NewPubSub(ctx context.Context, cfg PubSubConfig) (*PubSub, error) {
	if cfg.Client != nil {
		return &PubSub{client: cfg.Client, publishers: map[string]*pubsub.Publisher{}}, nil
	}
	if cfg.ProjectID == "" {
		return nil, ErrPubSubProjectIDRequired
	}

	c, err := pubsub.NewClient(ctx, cfg.ProjectID, cfg.ClientOptions...)
	if err != nil {
		return nil, fmt.Errorf("pkgmessage: pubsub new client: %w", err)
	}

	return &PubSub{client: c, publishers: map[string]*pubsub.Publisher{}}, nil
}

// Close stops publishers and closes the Pub/Sub client.
func (p *PubSub) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	pubs := make([]*pubsub.Publisher, 0, len(p.publishers))
	for _, pub := range p.publishers {
		pubs = append(pubs, pub)
	}
	p.publishers = nil
	p.mu.Unlock()

	for _, pub := range pubs {
		pub.Stop()
	}

	if p.client == nil {
		return nil
	}
	return p.client.Close()
}

// Publish sends a message to a Pub/Sub topic.
func (p *PubSub) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrPubSubTopicRequired
	}
	if err := p.ensureOpen(); err != nil {
		return PublishResult{}, err
	}

	attrs := msg.Attributes
	if len(msg.Headers) > 0 {
		attrs = make(map[string]string, len(msg.Headers)+len(msg.Attributes))
		for k, v := range msg.Attributes {
			attrs[k] = v
		}
		for _, h := range msg.Headers {
			if h.Key == "" {
				continue
			}
			attrs[h.Key] = string(h.Value)
		}
	}

	pub := p.getPublisher(destination)
	res := pub.Publish(ctx, &pubsub.Message{
		Data:       msg.Body,
		Attributes: attrs,
	})
	id, err := res.Get(ctx)
	if err != nil {
		return PublishResult{}, fmt.Errorf("pkgmessage: pubsub publish: %w", err)
	}

	return PublishResult{
		MessageID: id,
		Topic:     destination,
	}, nil
}

// Consume starts receiving messages. The source is the subscription name
// unless WithSubscription is given, in which case source names the topic.
func (p *PubSub) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrPubSubSubscriptionRequired
	}
	if handler == nil {
		return ErrPubSubHandlerRequired
	}
	if err := p.ensureOpen(); err != nil {
		return err
	}

	co := newConsumeOptions(opts...)
	topic := ""
	subscription := source
	if co.subscription != "" {
		topic = source
		subscription = co.subscription
	}

	sub := p.client.Subscriber(subscription)
	if co.concurrency > 0 {
		sub.ReceiveSettings.NumGoroutines = co.concurrency
	}
	if co.maxInFlight > 0 {
		sub.ReceiveSettings.MaxOutstandingMessages = co.maxInFlight
	}

	return sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		wrapped := newPubSubMessage(topic, m)
		herr := callHandlerWithRecover(ctx, "pubsub", func() error {
			return handler(ctx, wrapped)
		})

		if wrapped.hasResponded() || !co.autoAck {
			return
		}
		if herr == nil {
			_ = wrapped.Ack(ctx)
			return
		}
		_ = wrapped.Nack(ctx)
	})
}

func (p *PubSub) getPublisher(topic string) *pubsub.Publisher {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.publishers == nil {
		p.publishers = map[string]*pubsub.Publisher{}
	}
	if pub, ok := p.publishers[topic]; ok {
		return pub
	}
	pub := p.client.Publisher(topic)
	p.publishers[topic] = pub
	return pub
}

func (p *PubSub) ensureOpen() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client == nil {
		return ErrPubSubClientRequired
	}
	if p.closed {
		return io.ErrClosedPipe
	}
	return nil
}

type pubSubMessage struct {
	topic string
	msg   *pubsub.Message

	responded atomic.Bool
}

func newPubSubMessage(topic string, msg *pubsub.Message) *pubSubMessage {
	return &pubSubMessage{topic: topic, msg: msg}
}

func (m *pubSubMessage) hasResponded() bool { return m.responded.Load() }

func (m *pubSubMessage) Body() []byte { return m.msg.Data }

func (m *pubSubMessage) Headers() []Header {
	if len(m.msg.Attributes) == 0 {
		return nil
	}
	out := make([]Header, 0, len(m.msg.Attributes))
	for k, v := range m.msg.Attributes {
		out = append(out, Header{Key: k, Value: []byte(v)})
	}
	return out
}

func (m *pubSubMessage) ID() string { return m.msg.ID }

func (m *pubSubMessage) Topic() string { return m.topic }

func (m *pubSubMessage) Timestamp() time.Time { return m.msg.PublishTime }

func (m *pubSubMessage) Ack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.responded.Swap(true) {
		return nil
	}
	m.msg.Ack()
	return nil
}

func (m *pubSubMessage) Nack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.responded.Swap(true) {
		return nil
	}
	m.msg.Nack()
	return nil
}
