package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
)

var (
	// ErrKafkaTopicRequired is returned when the topic is empty.
	ErrKafkaTopicRequired = errors.New("pkgmessage: kafka topic is required")
	// ErrKafkaHandlerRequired is returned when Consume is called with a nil handler.
	ErrKafkaHandlerRequired = errors.New("pkgmessage: kafka handler is required")
	// ErrKafkaBrokersRequired is returned when no Kafka brokers are configured.
	ErrKafkaBrokersRequired = errors.New("pkgmessage: kafka brokers are required")
	// ErrKafkaGroupRequired is returned when a consumer group is not provided.
	ErrKafkaGroupRequired = errors.New("pkgmessage: kafka consumer group is required")
)

// KafkaConfig configures the Kafka implementation.
type KafkaConfig struct {
	// Brokers lists Kafka broker addresses.
	Brokers []string

	// Dialer configures broker connections.
	Dialer *kafka.Dialer
}

// Kafka is a messaging implementation backed by kafka-go. Writers are created
// lazily per topic and reused.
type Kafka struct {
	brokers []string
	dialer  *kafka.Dialer

	mu      sync.Mutex
	writers map[string]*kafka.Writer
	readers []*kafka.Reader
	closed  bool
}

// NewKafka constructs a Kafka messaging client.
func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrKafkaBrokersRequired
	}

	return &Kafka{
		brokers: append([]string{}, cfg.Brokers...),
		dialer:  cfg.Dialer,
		writers: map[string]*kafka.Writer{},
	}, nil
}

// Close shuts down all Kafka readers and writers.
func (k *Kafka) Close() error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return nil
	}
	k.closed = true
	writers := make([]*kafka.Writer, 0, len(k.writers))
	for _, w := range k.writers {
		writers = append(writers, w)
	}
	k.writers = nil
	readers := append([]*kafka.Reader{}, k.readers...)
	k.readers = nil
	k.mu.Unlock()

	var closeErr error
	for _, r := range readers {
		closeErr = errors.Join(closeErr, r.Close())
	}
	for _, w := range writers {
		closeErr = errors.Join(closeErr, w.Close())
	}
	return closeErr
}

// Publish sends a message to a Kafka topic.
func (k *Kafka) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrKafkaTopicRequired
	}

	writer, err := k.getWriter(destination)
	if err != nil {
		return PublishResult{}, err
	}

	kmsg := kafka.Message{
		Key:   msg.Key,
		Value: msg.Body,
		Time:  time.Now(),
	}
	for _, h := range msg.Headers {
		if h.Key == "" {
			continue
		}
		kmsg.Headers = append(kmsg.Headers, kafka.Header{Key: h.Key, Value: h.Value})
	}
	for key, v := range msg.Attributes {
		kmsg.Headers = append(kmsg.Headers, kafka.Header{Key: key, Value: []byte(v)})
	}

	if err := writer.WriteMessages(ctx, kmsg); err != nil {
		return PublishResult{}, fmt.Errorf("pkgmessage: kafka publish: %w", err)
	}

	return PublishResult{
		Topic:     destination,
		Timestamp: kmsg.Time,
	}, nil
}

// Consume starts consuming messages from a Kafka topic via a consumer group.
func (k *Kafka) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrKafkaTopicRequired
	}
	if handler == nil {
		return ErrKafkaHandlerRequired
	}

	co := newConsumeOptions(opts...)
	if co.group == "" {
		return ErrKafkaGroupRequired
	}

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  k.brokers,
		GroupID:  co.group,
		Topic:    source,
		MaxBytes: 10e6,
		Dialer:   k.dialer,
	})
	if err := k.addReader(reader); err != nil {
		return errors.Join(err, reader.Close())
	}

	concurrency := concurrencyOrDefault(co.concurrency)
	msgCh := make(chan kafka.Message)
	errCh := make(chan error, 1)

	go func() {
		defer close(msgCh)
		for {
			m, err := reader.FetchMessage(consumeCtx)
			if err != nil {
				trySendErr(errCh, err)
				return
			}
			select {
			case msgCh <- m:
			case <-consumeCtx.Done():
				trySendErr(errCh, consumeCtx.Err())
				return
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for range concurrency {
		go func() {
			defer wg.Done()
			for m := range msgCh {
				if err := handleKafkaMessage(consumeCtx, reader, m, handler, co.autoAck); err != nil {
					trySendErr(errCh, err)
					cancel()
					return
				}
			}
		}()
	}

	waitErr := waitKafkaConsume(ctx, errCh, &wg)
	k.removeReader(reader)
	if closeErr := reader.Close(); closeErr != nil {
		return errors.Join(waitErr, closeErr)
	}
	return waitErr
}

func (k *Kafka) getWriter(topic string) (*kafka.Writer, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return nil, io.ErrClosedPipe
	}
	if w, ok := k.writers[topic]; ok {
		return w, nil
	}

	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  k.brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		Dialer:   k.dialer,
	})
	k.writers[topic] = w
	return w, nil
}

func (k *Kafka) addReader(reader *kafka.Reader) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return io.ErrClosedPipe
	}
	k.readers = append(k.readers, reader)
	return nil
}

func (k *Kafka) removeReader(reader *kafka.Reader) {
	k.mu.Lock()
	defer k.mu.Unlock()

	for i := range k.readers {
		if k.readers[i] == reader {
			k.readers = append(k.readers[:i], k.readers[i+1:]...)
			return
		}
	}
}

func handleKafkaMessage(
	ctx context.Context,
	reader *kafka.Reader,
	m kafka.Message,
	handler Handler,
	autoAck bool,
) error {
	wrapped := newKafkaMessage(reader, m)
	herr := callHandlerWithRecover(ctx, "kafka", func() error {
		return handler(ctx, wrapped)
	})

	if wrapped.hasResponded() || !autoAck {
		return nil
	}
	if herr == nil {
		return wrapped.Ack(ctx)
	}
	return wrapped.Nack(ctx)
}

func trySendErr(ch chan<- error, err error) {
	if err == nil {
		return
	}
	select {
	case ch <- err:
	default:
	}
}

func waitKafkaConsume(ctx context.Context, errCh <-chan error, wg *sync.WaitGroup) error {
	select {
	case err := <-errCh:
		wg.Wait()
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("pkgmessage: kafka consume: %w", err)
	case <-ctx.Done():
		wg.Wait()
		return ctx.Err()
	}
}

type kafkaMessage struct {
	reader *kafka.Reader
	msg    kafka.Message

	responded atomic.Bool
}

func newKafkaMessage(reader *kafka.Reader, msg kafka.Message) *kafkaMessage {
	return &kafkaMessage{reader: reader, msg: msg}
}

func (m *kafkaMessage) hasResponded() bool { return m.responded.Load() }

func (m *kafkaMessage) Body() []byte { return m.msg.Value }

func (m *kafkaMessage) Headers() []Header {
	if len(m.msg.Headers) == 0 {
		return nil
	}
	out := make([]Header, 0, len(m.msg.Headers))
	for _, h := range m.msg.Headers {
		out = append(out, Header{Key: h.Key, Value: h.Value})
	}
	return out
}

func (m *kafkaMessage) ID() string {
	return fmt.Sprintf("%s/%d/%d", m.msg.Topic, m.msg.Partition, m.msg.Offset)
}

func (m *kafkaMessage) Topic() string { return m.msg.Topic }

func (m *kafkaMessage) Timestamp() time.Time { return m.msg.Time }

func (m *kafkaMessage) Ack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.responded.Swap(true) {
		return nil
	}
	return m.reader.CommitMessages(ctx, m.msg)
}

// Nack leaves the offset uncommitted so the group redelivers on rebalance.
func (m *kafkaMessage) Nack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.responded.Store(true)
	return nil
}
