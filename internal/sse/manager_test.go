package sse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blossomapp/blossom-server/internal/domain"
	"github.com/blossomapp/blossom-server/internal/logger"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(logger.Discard().Logger)
}

func TestManager_ConnectDisconnect(t *testing.T) {
	m := newTestManager(t)

	client, err := m.Connect()
	require.NoError(t, err)
	assert.NotEmpty(t, client.ID)
	assert.Equal(t, 1, m.ClientCount())

	m.Disconnect(client.ID)
	assert.Equal(t, 0, m.ClientCount())

	// Disconnecting twice is safe.
	m.Disconnect(client.ID)
}

func TestManager_BroadcastDeliversToAllClients(t *testing.T) {
	m := newTestManager(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	a, err := m.Connect()
	require.NoError(t, err)
	b, err := m.Connect()
	require.NoError(t, err)

	item := &domain.RegistryItem{ID: "item-1", Name: "Twin Stroller"}
	m.Emit(NewItemUpdatedEvent(item))

	for _, client := range []*Client{a, b} {
		select {
		case evt := <-client.EventChan:
			assert.Equal(t, EventItemUpdated, evt.Type)
		case <-time.After(2 * time.Second):
			t.Fatalf("client %s did not receive event", client.ID)
		}
	}
}

func TestManager_EmitIgnoresNonEvents(t *testing.T) {
	m := newTestManager(t)

	// Should not panic or queue anything.
	m.Emit("not an event")
	assert.Len(t, m.events, 0)
}

func TestManager_ShutdownClosesClients(t *testing.T) {
	m := newTestManager(t)

	ctx, cancel := context.WithCancel(context.Background())
	go m.Start(ctx)

	client, err := m.Connect()
	require.NoError(t, err)

	cancel()

	select {
	case <-client.Done:
	case <-time.After(2 * time.Second):
		t.Fatal("client was not closed on shutdown")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()
	require.NoError(t, m.Shutdown(shutdownCtx))

	// Events after shutdown are dropped silently.
	m.Emit(NewHeartbeatEvent())
}

func TestManager_ClientsIterator(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Connect()
	require.NoError(t, err)
	_, err = m.Connect()
	require.NoError(t, err)

	count := 0
	for range m.Clients() {
		count++
	}
	assert.Equal(t, 2, count)
}
