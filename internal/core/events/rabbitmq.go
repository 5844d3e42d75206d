package events

import (
	"context"
	"encoding/json"
	"net"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const bufferSize = 256

type RabbitMQ struct {
	url          string
	exchange     string
	exchangeType string
	log          *zap.Logger
	conn         *amqp091.Connection
	pubCh        *amqp091.Channel
	in           chan Event
}

func NewRabbitMQ(url, exchange, exchangeType string, l *zap.Logger) *RabbitMQ {
	return &RabbitMQ{
		url:          url,
		exchange:     exchange,
		exchangeType: exchangeType,
		log:          l,
		in:           make(chan Event, bufferSize),
	}
}

// Connect 建连并声明 exchange（durable）
func (r *RabbitMQ) Connect(ctx context.Context) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	var err error
	r.conn, err = amqp091.DialConfig(r.url, amqp091.Config{
		Heartbeat:  10 * time.Second,
		Locale:     "en_US",
		Properties: amqp091.Table{"connection_name": "shop-api"},
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
	})
	if err != nil {
		return err
	}
	if r.pubCh, err = r.conn.Channel(); err != nil {
		_ = r.conn.Close()
		return err
	}
	if err = r.pubCh.ExchangeDeclare(r.exchange, r.exchangeType, true, false, false, false, nil); err != nil {
		_ = r.pubCh.Close()
		_ = r.conn.Close()
		return err
	}
	r.log.Info("rabbitmq connected", zap.String("exchange", r.exchange))
	return nil
}

// Publish 缓冲满时丢弃并告警
func (r *RabbitMQ) Publish(e Event) {
	select {
	case r.in <- e:
	default:
		r.log.Warn("event buffer full, dropping", zap.String("type", e.Type), zap.String("entity_id", e.EntityID))
	}
}

func (r *RabbitMQ) Worker(ctx context.Context) {
	r.log.Info("event publisher started")
	defer r.log.Info("event publisher stopped")
	for {
		select {
		case e := <-r.in:
			if err := r.publish(ctx, e); err != nil {
				r.log.Error("event publish failed", zap.String("type", e.Type), zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}

func (r *RabbitMQ) publish(ctx context.Context, e Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return r.pubCh.PublishWithContext(ctx, r.exchange, e.Type, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    e.ID.String(),
		Timestamp:    e.TS,
		Type:         e.Type,
		Body:         b,
	})
}

func (r *RabbitMQ) Close() {
	if r.pubCh != nil {
		_ = r.pubCh.Close()
	}
	if r.conn != nil {
		_ = r.conn.Close()
	}
}
