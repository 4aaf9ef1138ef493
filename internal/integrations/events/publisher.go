// Package events публикует события бронирований тест-драйвов в RabbitMQ
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// defaultTimeout предел на подключение и отправку одного события
const defaultTimeout = 2 * time.Second

// Publisher публикует события в topic exchange.
// Соединение открывается лениво и переоткрывается после обрыва.
// Подключение идет вне мьютекса: пока оно не завершилось или после неудачной
// попытки (до retryAt) остальные публикации сразу получают ErrConnect.
// Нулевой *Publisher (RabbitMQ выключен) ничего не отправляет.
type Publisher struct {
	url      string
	exchange string
	timeout  time.Duration
	logger   Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	ch      *amqp.Channel
	retryAt time.Time
}

// NewPublisher создает новый publisher. timeout ограничивает каждую публикацию целиком.
func NewPublisher(url, exchange string, timeout time.Duration, logger Logger) *Publisher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Publisher{
		url:      url,
		exchange: exchange,
		timeout:  timeout,
		logger:   logger,
	}
}

// PublishBookingCreated отправляет событие testdrive.booked
func (p *Publisher) PublishBookingCreated(ctx context.Context, event BookingCreatedEvent) error {
	return p.publish(ctx, RoutingKeyBooked, event)
}

// PublishStatusChanged отправляет событие testdrive.status_changed
func (p *Publisher) PublishStatusChanged(ctx context.Context, event BookingStatusChangedEvent) error {
	return p.publish(ctx, RoutingKeyStatusChanged, event)
}

func (p *Publisher) publish(ctx context.Context, routingKey string, event interface{}) error {
	if p == nil {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, routingKey, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	ch, err := p.channel(ctx)
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.drop(ch)
		return fmt.Errorf("%w: %s: %v", ErrPublish, routingKey, err)
	}

	return nil
}

// channel возвращает открытый канал, при необходимости переподключаясь
func (p *Publisher) channel(ctx context.Context) (*amqp.Channel, error) {
	p.mu.Lock()
	if p.ch != nil && !p.ch.IsClosed() {
		ch := p.ch
		p.mu.Unlock()
		return ch, nil
	}
	if time.Now().Before(p.retryAt) {
		p.mu.Unlock()
		return nil, fmt.Errorf("%w: broker unavailable, retry after %s", ErrConnect, p.retryAt.Format(time.RFC3339))
	}
	p.retryAt = time.Now().Add(p.timeout)
	p.mu.Unlock()

	conn, ch, err := p.connect(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.retryAt = time.Now().Add(p.timeout)
		return nil, err
	}

	p.reset()
	p.conn, p.ch = conn, ch
	p.retryAt = time.Time{}
	p.logger.Info("Events: connected to broker, exchange=%s", p.exchange)

	return ch, nil
}

// connect открывает соединение, канал и объявляет exchange в пределах ctx
func (p *Publisher) connect(ctx context.Context) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Locale: "en_US",
		Dial:   dialContext(ctx),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, p.exchange, err)
	}

	return conn, ch, nil
}

// dialContext устанавливает TCP-соединение в пределах ctx.
// Срок ctx действует и на рукопожатие AMQP, после него библиотека снимает дедлайн.
func dialContext(ctx context.Context) func(network, addr string) (net.Conn, error) {
	return func(network, addr string) (net.Conn, error) {
		var d net.Dialer
		conn, err := d.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		if deadline, ok := ctx.Deadline(); ok {
			if err := conn.SetDeadline(deadline); err != nil {
				_ = conn.Close()
				return nil, err
			}
		}
		return conn, nil
	}
}

// drop закрывает канал после ошибки публикации, если его еще не заменили
func (p *Publisher) drop(ch *amqp.Channel) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == ch {
		p.reset()
	}
}

// reset закрывает текущие канал и соединение. Вызывается под p.mu.
func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Close закрывает соединение с брокером
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}
