package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"
)

var (
	// ErrNATSSubjectRequired is returned when the subject is empty.
	ErrNATSSubjectRequired = errors.New("pkgmessage: nats subject is required")
	// ErrNATSURLRequired is returned when the NATS server URL is missing.
	ErrNATSURLRequired = errors.New("pkgmessage: nats url is required")
	// ErrNATSHandlerRequired is returned when Consume is called with a nil handler.
	ErrNATSHandlerRequired = errors.New("pkgmessage: nats handler is required")
)

// NATSConfig configures the NATS implementation.
type NATSConfig struct {
	// URL is the NATS server address.
	URL string

	// Options are passed to the NATS client.
	Options []nats.Option
}

// NATS is a messaging implementation backed by NATS.
type NATS struct {
	conn *nats.Conn

	mu     sync.Mutex
	subs   []*nats.Subscription
	closed bool
}

// NewNATS constructs a NATS messaging client.
func NewNATS(cfg NATSConfig) (*NATS, error) {
	if cfg.URL == "" {
		return nil, ErrNATSURLRequired
	}

	conn, err := nats.Connect(cfg.URL, cfg.Options...)
	if err != nil {
		return nil, fmt.Errorf("pkgmessage: nats connect: %w", err)
	}

	return &NATS{conn: conn}, nil
}

// Close drains subscriptions and closes the NATS connection.
func (n *NATS) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	subs := append([]*nats.Subscription{}, n.subs...)
	n.mu.Unlock()

	var closeErr error
	for _, sub := range subs {
		if err := sub.Drain(); err != nil {
			closeErr = errors.Join(closeErr, err)
		}
	}

	if err := n.conn.Drain(); err != nil {
		closeErr = errors.Join(closeErr, err)
	}
	n.conn.Close()
	return closeErr
}

// Publish sends a message to a NATS subject.
func (n *NATS) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrNATSSubjectRequired
	}

	nmsg := nats.NewMsg(destination)
	nmsg.Data = msg.Body

	for _, h := range msg.Headers {
		if h.Key == "" {
			continue
		}
		nmsg.Header.Add(h.Key, string(h.Value))
	}
	for k, v := range msg.Attributes {
		nmsg.Header.Add(k, v)
	}

	if err := n.conn.PublishMsg(nmsg); err != nil {
		return PublishResult{}, fmt.Errorf("pkgmessage: nats publish: %w", err)
	}
	if err := n.conn.Flush(); err != nil {
		return PublishResult{}, fmt.Errorf("pkgmessage: nats flush: %w", err)
	}

	return PublishResult{
		Topic:     destination,
		Timestamp: time.Now(),
	}, nil
}

// Consume starts consuming messages from a NATS subject until ctx is done.
func (n *NATS) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrNATSSubjectRequired
	}
	if handler == nil {
		return ErrNATSHandlerRequired
	}

	co := newConsumeOptions(opts...)
	concurrency := concurrencyOrDefault(co.concurrency)

	msgCh := make(chan *nats.Msg, concurrency)
	var wg sync.WaitGroup

	sub, err := n.conn.QueueSubscribe(source, co.queueGroup, func(m *nats.Msg) {
		select {
		case msgCh <- m:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("pkgmessage: nats subscribe: %w", err)
	}

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for msg := range msgCh {
				wrapped := newNATSMessage(msg, time.Now())
				herr := callHandlerWithRecover(ctx, "nats", func() error {
					return handler(ctx, wrapped)
				})
				if wrapped.hasResponded() || !co.autoAck {
					continue
				}
				if herr == nil {
					_ = wrapped.Ack(ctx)
				} else {
					_ = wrapped.Nack(ctx)
				}
			}
		}()
	}

	if err := n.addSub(sub); err != nil {
		uerr := sub.Drain()
		close(msgCh)
		wg.Wait()
		return errors.Join(err, uerr)
	}

	if err := n.conn.Flush(); err != nil {
		uerr := sub.Drain()
		close(msgCh)
		wg.Wait()
		return errors.Join(fmt.Errorf("pkgmessage: nats flush: %w", err), uerr)
	}

	<-ctx.Done()
	uerr := sub.Drain()
	close(msgCh)
	wg.Wait()
	return errors.Join(ctx.Err(), uerr)
}

func (n *NATS) addSub(sub *nats.Subscription) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return io.ErrClosedPipe
	}
	n.subs = append(n.subs, sub)
	return nil
}

type natsMessage struct {
	msg        *nats.Msg
	receivedAt time.Time

	responded atomic.Bool
}

func newNATSMessage(msg *nats.Msg, receivedAt time.Time) *natsMessage {
	return &natsMessage{msg: msg, receivedAt: receivedAt}
}

func (m *natsMessage) hasResponded() bool { return m.responded.Load() }

func (m *natsMessage) Body() []byte { return m.msg.Data }

func (m *natsMessage) Headers() []Header {
	if len(m.msg.Header) == 0 {
		return nil
	}

	var headers []Header
	for k, values := range m.msg.Header {
		for _, v := range values {
			headers = append(headers, Header{Key: k, Value: []byte(v)})
		}
	}
	return headers
}

func (m *natsMessage) ID() string { return "" }

func (m *natsMessage) Topic() string { return m.msg.Subject }

func (m *natsMessage) Timestamp() time.Time { return m.receivedAt }

func (m *natsMessage) Ack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.responded.Swap(true) {
		return nil
	}
	if err := m.msg.Ack(); err != nil && !isNATSAckUnsupported(err) {
		return err
	}
	return nil
}

func (m *natsMessage) Nack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.responded.Swap(true) {
		return nil
	}
	if err := m.msg.Nak(); err != nil && !isNATSAckUnsupported(err) {
		return err
	}
	return nil
}

func isNATSAckUnsupported(err error) bool {
	return errors.Is(err, nats.ErrMsgNoReply) || errors.Is(err, nats.ErrMsgNotBound)
}
