package http

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
)

func testEvent(jobID string) entities.ProgressEvent {
	return entities.ProgressEvent{
		JobID:     jobID,
		Stage:     entities.StageGenerating,
		Message:   "Generating slide content...",
		Timestamp: time.Now(),
	}
}

func waitForCount(t *testing.T, cm *ConnectionManager, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return cm.ConnectionCount() == want
	}, time.Second, 5*time.Millisecond)
}

func TestConnectionManager_RegisterAndBroadcast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cm := NewConnectionManager()
	go cm.Run(ctx)

	first := &Connection{ID: "a", Send: make(chan entities.ProgressEvent, 16)}
	second := &Connection{ID: "b", Send: make(chan entities.ProgressEvent, 16)}
	cm.RegisterConnection(first)
	cm.RegisterConnection(second)
	waitForCount(t, cm, 2)

	cm.Broadcast(testEvent("job-1"))

	for _, conn := range []*Connection{first, second} {
		select {
		case event := <-conn.Send:
			assert.Equal(t, "job-1", event.JobID)
		case <-time.After(time.Second):
			t.Fatalf("connection %s did not receive the event", conn.ID)
		}
	}
}

func TestConnectionManager_Unregister(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cm := NewConnectionManager()
	go cm.Run(ctx)

	conn := &Connection{ID: "a", Send: make(chan entities.ProgressEvent, 16)}
	cm.RegisterConnection(conn)
	waitForCount(t, cm, 1)

	cm.Unregister("a")
	waitForCount(t, cm, 0)

	// Send channel is closed on unregister
	_, open := <-conn.Send
	assert.False(t, open)
}

func TestConnectionManager_DropsSlowClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cm := NewConnectionManager()
	go cm.Run(ctx)

	// Unbuffered channel with no reader simulates a stalled client
	conn := &Connection{ID: "slow", Send: make(chan entities.ProgressEvent)}
	cm.RegisterConnection(conn)
	waitForCount(t, cm, 1)

	cm.Broadcast(testEvent("job-1"))
	waitForCount(t, cm, 0)
}

func TestConnectionManager_BroadcastNeverBlocks(t *testing.T) {
	cm := NewConnectionManager()

	// No Run loop draining; the buffered channel absorbs what it can and
	// the rest is dropped
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			cm.Broadcast(testEvent("job-1"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked without a running manager")
	}
}

func TestConnectionManager_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cm := NewConnectionManager()
	stopped := make(chan struct{})
	go func() {
		cm.Run(ctx)
		close(stopped)
	}()

	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on context cancellation")
	}

	// Registration after shutdown must not hang
	cm.RegisterConnection(&Connection{ID: "late", Send: make(chan entities.ProgressEvent, 1)})
}
