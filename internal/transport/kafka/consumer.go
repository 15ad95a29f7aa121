package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/IBM/sarama"

	"marketplace-dispatch/internal/logx"
	"marketplace-dispatch/internal/service/orders"
)

// HandleFunc processes one decoded order event.
type HandleFunc func(context.Context, orders.Event) error

var newConsumerGroup = sarama.NewConsumerGroup

// Options configures the order events consumer.
type Options struct {
	Brokers  []string
	GroupID  string
	Topic    string
	ClientID string
	// StartFrom is "oldest" or "newest" and only matters for a group
	// without committed offsets.
	StartFrom string
	// Backoff is the first pause before a failed message is retried. It
	// doubles per consecutive failure up to MaxBackoff.
	Backoff    time.Duration
	MaxBackoff time.Duration
}

func (o Options) configured() bool {
	return len(o.Brokers) > 0 && strings.TrimSpace(o.Topic) != "" && strings.TrimSpace(o.GroupID) != ""
}

func (o Options) saramaConfig() (*sarama.Config, error) {
	cfg := sarama.NewConfig()
	cfg.Consumer.Return.Errors = false
	if o.ClientID != "" {
		cfg.ClientID = o.ClientID
	}
	switch strings.ToLower(strings.TrimSpace(o.StartFrom)) {
	case "", "oldest":
		cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	case "newest":
		cfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	default:
		return nil, fmt.Errorf("kafka: unknown start offset %q", o.StartFrom)
	}
	return cfg, nil
}

// Consumer feeds order events from a consumer group into a HandleFunc.
type Consumer struct {
	group      sarama.ConsumerGroup
	topic      string
	handler    HandleFunc
	logger     logx.Logger
	backoff    time.Duration
	maxBackoff time.Duration
}

// NewConsumer joins the consumer group described by opts. A nil consumer and
// nil error mean Kafka is not configured.
func NewConsumer(logger logx.Logger, opts Options, h HandleFunc) (*Consumer, error) {
	if !opts.configured() {
		return nil, nil
	}
	if logger == nil {
		logger = logx.Nop()
	}
	cfg, err := opts.saramaConfig()
	if err != nil {
		return nil, err
	}
	group, err := newConsumerGroup(opts.Brokers, opts.GroupID, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka: join group %s: %w", opts.GroupID, err)
	}

	backoff := opts.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}
	maxBackoff := opts.MaxBackoff
	if maxBackoff < backoff {
		maxBackoff = max(backoff, 30*time.Second)
	}
	return &Consumer{
		group:      group,
		topic:      opts.Topic,
		handler:    h,
		logger:     logger.With(logx.String("topic", opts.Topic), logx.String("group_id", opts.GroupID)),
		backoff:    backoff,
		maxBackoff: maxBackoff,
	}, nil
}

// Run consumes until ctx is done. A retryable handler error ends the session
// without committing the message; the group is rejoined after a pause that
// doubles with every consecutive failure, so the message is redelivered at
// most once per pause.
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	h := &claimHandler{handle: c.handler, logger: c.logger}
	c.logger.Info("kafka consumer started")

	failures := 0
	for {
		err := c.group.Consume(ctx, []string{c.topic}, h)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		retry := h.failed.Swap(false)
		if err != nil {
			c.logger.Warn("kafka consume error", logx.Err(err))
		}
		if err == nil && !retry {
			failures = 0
			continue
		}

		d := c.pauseFor(failures)
		failures++
		if retry {
			c.logger.Info("kafka redelivery scheduled", logx.Duration("after", d))
		}
		if err := sleep(ctx, d); err != nil {
			return err
		}
	}
}

// pauseFor returns backoff * 2^failures, capped at maxBackoff.
func (c *Consumer) pauseFor(failures int) time.Duration {
	d := c.backoff
	ceiling := max(c.maxBackoff, c.backoff)
	for i := 0; i < failures && d < ceiling; i++ {
		d *= 2
	}
	return min(d, ceiling)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Close leaves the consumer group.
func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.group.Close()
}

// claimHandler implements sarama.ConsumerGroupHandler.
type claimHandler struct {
	handle HandleFunc
	logger logx.Logger
	// failed is set when a claim stopped on a message that must be retried.
	failed atomic.Bool
}

func (h *claimHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *claimHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *claimHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log := h.logger.With(logx.Int64("partition", int64(claim.Partition())))
	for msg := range claim.Messages() {
		if err := h.process(sess.Context(), log, msg); err != nil {
			h.failed.Store(true)
			return err
		}
		sess.MarkMessage(msg, "")
	}
	return nil
}

// process returns an error only when msg must be redelivered.
func (h *claimHandler) process(ctx context.Context, log logx.Logger, msg *sarama.ConsumerMessage) error {
	log = log.With(logx.Int64("offset", msg.Offset))

	ev, err := decode(msg)
	if err != nil {
		log.Warn("kafka undecodable message", logx.Err(err))
		return nil
	}
	log = log.With(logx.Int64("order_id", ev.OrderID), logx.String("status", ev.Status))

	err = h.handle(ctx, ev)
	switch {
	case err == nil:
		return nil
	case IsPermanent(err) || errors.Is(err, orders.ErrBadEvent):
		log.Error("kafka event dropped", logx.Err(err))
		return nil
	default:
		log.Warn("kafka event failed, will retry", logx.Err(err))
		return err
	}
}

// decode parses the message value. Producers key messages by order id, so the
// key stands in when the payload omits order_id.
func decode(msg *sarama.ConsumerMessage) (orders.Event, error) {
	var dto EventDTO
	if err := json.Unmarshal(msg.Value, &dto); err != nil {
		return orders.Event{}, fmt.Errorf("decode payload: %w", err)
	}
	if dto.OrderID == "" && len(msg.Key) > 0 {
		dto.OrderID = json.Number(strings.TrimSpace(string(msg.Key)))
	}
	return ToDomain(dto)
}
