// Package redisbus publica los cambios de entidad en un canal Redis pub/sub.
// Los clientes (la pantalla de obra abierta en varias tablets) se suscriben y
// refrescan solo la fila que cambió.
package redisbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/Fichajes-api/internal/application/events"
	"github.com/jhoicas/Fichajes-api/pkg/config"
)

var _ events.Publisher = (*Publisher)(nil)

// Publisher implementación de events.Publisher sobre Redis pub/sub.
type Publisher struct {
	client  *redis.Client
	channel string
}

// NewPublisher crea el cliente Redis y comprueba la conexión.
func NewPublisher(ctx context.Context, cfg config.RedisConfig) (*Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Publisher{client: client, channel: cfg.Channel}, nil
}

// Publish serializa el cambio a JSON y lo publica en el canal configurado.
func (p *Publisher) Publish(ctx context.Context, change events.Change) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish change: %w", err)
	}
	return nil
}

// Subscribe abre una suscripción al canal de cambios y devuelve el stream de
// mensajes decodificados. El canal se cierra cuando ctx se cancela.
func (p *Publisher) Subscribe(ctx context.Context) (<-chan events.Change, error) {
	sub := p.client.Subscribe(ctx, p.channel)
	if _, err := sub.Receive(ctx); err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	out := make(chan events.Change)
	msgs := sub.Channel()
	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var change events.Change
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					continue
				}
				// El envío también respeta la cancelación: un consumidor que
				// dejó de leer no deja la goroutine bloqueada para siempre.
				select {
				case out <- change:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Close cierra la conexión Redis.
func (p *Publisher) Close() error { return p.client.Close() }
