package redisbus

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Fichajes-api/internal/application/events"
	"github.com/jhoicas/Fichajes-api/pkg/config"
)

func newTestPublisher(t *testing.T) *Publisher {
	t.Helper()
	srv := miniredis.RunT(t)
	pub, err := NewPublisher(context.Background(), config.RedisConfig{
		Addr:    srv.Addr(),
		Channel: "obra.changes",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })
	return pub
}

func TestPublishSubscribe_EntregaElCambioDecodificado(t *testing.T) {
	pub := newTestPublisher(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := pub.Subscribe(ctx)
	require.NoError(t, err)

	change := events.Change{
		Entity:    events.EntitySession,
		ID:        "s-1",
		ProjectID: "p-1",
		Action:    events.ActionCreated,
		At:        time.Now().UTC(),
	}
	require.NoError(t, pub.Publish(ctx, change))

	select {
	case got := <-stream:
		assert.Equal(t, events.EntitySession, got.Entity)
		assert.Equal(t, "s-1", got.ID)
		assert.Equal(t, events.ActionCreated, got.Action)
	case <-time.After(2 * time.Second):
		t.Fatal("el cambio publicado no llegó al stream")
	}
}

func TestSubscribe_CancelarConConsumidorParadoCierraElStream(t *testing.T) {
	pub := newTestPublisher(t)
	ctx, cancel := context.WithCancel(context.Background())

	stream, err := pub.Subscribe(ctx)
	require.NoError(t, err)

	// Mensaje que nadie lee: la goroutine de reenvío queda en el envío.
	require.NoError(t, pub.Publish(context.Background(), events.Change{
		Entity: events.EntityTask, ID: "t-1", ProjectID: "p-1", Action: events.ActionUpdated,
	}))
	time.Sleep(50 * time.Millisecond)

	cancel()

	// Aunque el consumidor nunca drenó, cancelar debe cerrar el stream en vez
	// de dejar la goroutine bloqueada en el envío.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, open := <-stream:
			if !open {
				return
			}
		case <-deadline:
			t.Fatal("el stream no se cerró tras cancelar el contexto")
		}
	}
}
