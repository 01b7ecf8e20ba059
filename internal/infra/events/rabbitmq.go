package events

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Connection соединение и канал RabbitMQ
type Connection struct {
	Connection *amqp.Connection
	Channel    *amqp.Channel
}

// Connect устанавливает соединение с RabbitMQ и открывает канал
func Connect(url string) (*Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	return &Connection{
		Connection: conn,
		Channel:    ch,
	}, nil
}

// Close закрывает канал и соединение
func (c *Connection) Close() error {
	if c.Channel != nil {
		_ = c.Channel.Close()
	}
	if c.Connection != nil {
		return c.Connection.Close()
	}
	return nil
}
