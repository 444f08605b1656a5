package stream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarweave/galaxysim/pkg/galaxy"
)

func TestPublishSubscribe(t *testing.T) {
	store, err := galaxy.NewStore(galaxy.GenerateNodes(8, 3, nil, 11))
	require.NoError(t, err)
	driver := galaxy.NewDriver(store, galaxy.DefaultPhysicsConfig(), galaxy.ModeContinuous, galaxy.StrategyEquilibrium, nil, nil)

	addr := "inproc://stream-test"
	publisher, err := NewPublisher(store, addr, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go publisher.Run(ctx)

	subscriber, err := NewSubscriber(addr)
	require.NoError(t, err)
	defer subscriber.Close()
	require.NoError(t, subscriber.SetRecvDeadline(2*time.Second))

	// Give the inproc pipe a moment to connect before publishing.
	time.Sleep(50 * time.Millisecond)

	now := time.Now()
	driver.Tick(now)

	snap, err := subscriber.Next()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), snap.Tick)
	assert.Len(t, snap.Nodes, 8)
	assert.Len(t, snap.Preferences, 3)

	driver.Tick(now.Add(16 * time.Millisecond))
	snap, err = subscriber.Next()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), snap.Tick)
}

func TestSubscriberRecvDeadline(t *testing.T) {
	store, err := galaxy.NewStore(galaxy.GenerateNodes(4, 2, nil, 1))
	require.NoError(t, err)

	addr := "inproc://stream-deadline-test"
	publisher, err := NewPublisher(store, addr, nil)
	require.NoError(t, err)
	defer publisher.Close()

	subscriber, err := NewSubscriber(addr)
	require.NoError(t, err)
	defer subscriber.Close()
	require.NoError(t, subscriber.SetRecvDeadline(20*time.Millisecond))

	_, err = subscriber.Next()
	assert.Error(t, err, "Next should time out with nothing published")
}
