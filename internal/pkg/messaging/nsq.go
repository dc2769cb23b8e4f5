package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	nsq "github.com/nsqio/go-nsq"
)

var (
	// ErrNSQTopicRequired is returned when the topic is empty.
	ErrNSQTopicRequired = errors.New("pkgmessage: nsq topic is required")
	// ErrNSQChannelRequired is returned when the channel is empty.
	ErrNSQChannelRequired = errors.New("pkgmessage: nsq channel is required")
	// ErrNSQHandlerRequired is returned when Consume is called with a nil handler.
	ErrNSQHandlerRequired = errors.New("pkgmessage: nsq handler is required")
	// ErrNSQProducerAddrRequired is returned when the producer address is missing.
	ErrNSQProducerAddrRequired = errors.New("pkgmessage: nsq producer address is required")
	// ErrNSQConsumerAddrsRequired is returned when no nsqd/lookupd addresses are configured.
	ErrNSQConsumerAddrsRequired = errors.New("pkgmessage: nsq consumer nsqd/lookupd addresses are required")
)

// NSQConfig configures the NSQ implementation.
type NSQConfig struct {
	// ProducerAddr is the nsqd address for publishing.
	ProducerAddr string

	// ConsumerNSQDAddrs lists nsqd addresses for consumers.
	ConsumerNSQDAddrs []string
	// ConsumerLookupdAddrs lists lookupd addresses for consumers.
	ConsumerLookupdAddrs []string
}

// NSQ is a messaging implementation backed by NSQ.
type NSQ struct {
	producer *nsq.Producer

	consumerNSQDAddrs    []string
	consumerLookupdAddrs []string

	mu        sync.Mutex
	consumers []*nsq.Consumer
	closed    bool
}

// NewNSQ constructs an NSQ messaging client.
func NewNSQ(cfg NSQConfig) (*NSQ, error) {
	var producer *nsq.Producer
	if cfg.ProducerAddr != "" {
		p, err := nsq.NewProducer(cfg.ProducerAddr, nsq.NewConfig())
		if err != nil {
			return nil, fmt.Errorf("pkgmessage: nsq new producer: %w", err)
		}
		p.SetLoggerLevel(nsq.LogLevelError)
		producer = p
	}

	return &NSQ{
		producer: producer,

		consumerNSQDAddrs:    append([]string{}, cfg.ConsumerNSQDAddrs...),
		consumerLookupdAddrs: append([]string{}, cfg.ConsumerLookupdAddrs...),
	}, nil
}

// Close stops NSQ consumers and the producer.
func (n *NSQ) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	consumers := append([]*nsq.Consumer{}, n.consumers...)
	n.mu.Unlock()

	for _, c := range consumers {
		c.Stop()
		<-c.StopChan
	}

	if n.producer != nil {
		n.producer.Stop()
	}
	return nil
}

// Publish sends a message to an NSQ topic.
func (n *NSQ) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrNSQTopicRequired
	}
	if n.producer == nil {
		return PublishResult{}, ErrNSQProducerAddrRequired
	}

	if err := n.producer.Publish(destination, msg.Body); err != nil {
		return PublishResult{}, fmt.Errorf("pkgmessage: nsq publish: %w", err)
	}

	return PublishResult{
		Topic:     destination,
		Timestamp: time.Now(),
	}, nil
}

// Consume starts consuming messages from an NSQ topic/channel.
func (n *NSQ) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrNSQTopicRequired
	}
	if handler == nil {
		return ErrNSQHandlerRequired
	}
	if len(n.consumerNSQDAddrs) == 0 && len(n.consumerLookupdAddrs) == 0 {
		return ErrNSQConsumerAddrsRequired
	}

	co := newConsumeOptions(opts...)
	if co.channel == "" {
		return ErrNSQChannelRequired
	}

	concurrency := concurrencyOrDefault(co.concurrency)

	ccfg := nsq.NewConfig()
	if co.maxInFlight > 0 {
		ccfg.MaxInFlight = co.maxInFlight
	} else if ccfg.MaxInFlight < concurrency {
		ccfg.MaxInFlight = concurrency
	}

	consumer, err := nsq.NewConsumer(source, co.channel, ccfg)
	if err != nil {
		return fmt.Errorf("pkgmessage: nsq new consumer: %w", err)
	}
	consumer.SetLoggerLevel(nsq.LogLevelError)

	consumer.AddConcurrentHandlers(n.makeHandler(ctx, source, handler, co.autoAck), concurrency)

	if err := n.addConsumer(consumer); err != nil {
		stopNSQConsumer(consumer)
		return err
	}

	if err := n.connectConsumer(consumer); err != nil {
		stopNSQConsumer(consumer)
		return err
	}

	select {
	case <-ctx.Done():
		stopNSQConsumer(consumer)
		return ctx.Err()
	case <-consumer.StopChan:
		return nil
	}
}

func (n *NSQ) addConsumer(consumer *nsq.Consumer) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return io.ErrClosedPipe
	}
	n.consumers = append(n.consumers, consumer)
	return nil
}

func (n *NSQ) connectConsumer(consumer *nsq.Consumer) error {
	if len(n.consumerLookupdAddrs) > 0 {
		if err := consumer.ConnectToNSQLookupds(n.consumerLookupdAddrs); err != nil {
			return fmt.Errorf("pkgmessage: nsq connect lookupd: %w", err)
		}
		return nil
	}

	if err := consumer.ConnectToNSQDs(n.consumerNSQDAddrs); err != nil {
		return fmt.Errorf("pkgmessage: nsq connect nsqd: %w", err)
	}
	return nil
}

func (n *NSQ) makeHandler(ctx context.Context, topic string, handler Handler, autoAck bool) nsq.HandlerFunc {
	return func(m *nsq.Message) error {
		m.DisableAutoResponse()

		wrapped := newNSQMessage(topic, m)
		herr := callHandlerWithRecover(ctx, "nsq", func() error {
			return handler(ctx, wrapped)
		})

		if wrapped.hasResponded() || !autoAck {
			return herr
		}

		if herr == nil {
			return wrapped.Ack(ctx)
		}
		return wrapped.Nack(ctx)
	}
}

func stopNSQConsumer(consumer *nsq.Consumer) {
	consumer.Stop()
	<-consumer.StopChan
}

type nsqMessage struct {
	topic string
	msg   *nsq.Message

	responded atomic.Bool
}

func newNSQMessage(topic string, msg *nsq.Message) *nsqMessage {
	return &nsqMessage{topic: topic, msg: msg}
}

func (m *nsqMessage) hasResponded() bool { return m.responded.Load() }

func (m *nsqMessage) Body() []byte { return m.msg.Body }

func (m *nsqMessage) Headers() []Header { return nil }

func (m *nsqMessage) ID() string { return fmt.Sprintf("%x", m.msg.ID) }

func (m *nsqMessage) Topic() string { return m.topic }

func (m *nsqMessage) Timestamp() time.Time { return time.Unix(0, m.msg.Timestamp) }

func (m *nsqMessage) Ack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.responded.Swap(true) {
		return nil
	}
	m.msg.Finish()
	return nil
}

func (m *nsqMessage) Nack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.responded.Swap(true) {
		return nil
	}
	m.msg.Requeue(0)
	return nil
}
