// Package stream broadcasts simulation snapshots over a nanomsg PUB
// socket so out-of-process renderers can follow the simulation without
// polling the HTTP surface. Payloads are snappy-compressed JSON behind a
// topic prefix.
package stream

import (
	"context"
	"encoding/json"
	"time"

	"github.com/golang/snappy"
	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/pub"

	// Register all transports
	_ "go.nanomsg.org/mangos/v3/transport/all"

	"github.com/stellarweave/galaxysim/pkg/galaxy"
	"github.com/stellarweave/galaxysim/pkg/logging"
)

// TopicSnapshot prefixes every snapshot frame. Subscribers filter on it.
const TopicSnapshot = "snap "

// subscriberBuffer bounds how many snapshots queue for the broadcast
// loop before new ones are dropped.
const subscriberBuffer = 8

// Publisher fans simulation snapshots out to stream subscribers.
type Publisher struct {
	sock   mangos.Socket
	store  *galaxy.Store
	log    logging.Logger
	snaps  <-chan galaxy.Snapshot
	cancel func()
}

// NewPublisher opens a PUB socket on addr and registers with the store
// for per-tick snapshots. Call Run to start broadcasting.
func NewPublisher(store *galaxy.Store, addr string, log logging.Logger) (*Publisher, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}

	sock, err := pub.NewSocket()
	if err != nil {
		return nil, err
	}
	if err := sock.Listen(addr); err != nil {
		sock.Close()
		return nil, err
	}

	snaps, cancel := store.Subscribe(subscriberBuffer)
	return &Publisher{
		sock:   sock,
		store:  store,
		log:    log.With(logging.Component("stream")),
		snaps:  snaps,
		cancel: cancel,
	}, nil
}

// Run broadcasts snapshots until the context is cancelled or the store
// subscription closes.
func (p *Publisher) Run(ctx context.Context) error {
	defer p.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap, ok := <-p.snaps:
			if !ok {
				return nil
			}
			if err := p.send(snap); err != nil {
				// A send failure is a transport problem, not a reason
				// to stop simulating. Log and keep going.
				p.log.Warn("snapshot broadcast failed",
					logging.Tick(snap.Tick),
					logging.Error(err),
				)
			}
		}
	}
}

func (p *Publisher) send(snap galaxy.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	compressed := snappy.Encode(nil, payload)
	frame := make([]byte, 0, len(TopicSnapshot)+len(compressed))
	frame = append(frame, TopicSnapshot...)
	frame = append(frame, compressed...)
	return p.sock.Send(frame)
}

// Close tears down the socket and the store subscription. Safe to call
// more than once.
func (p *Publisher) Close() error {
	p.cancel()
	return p.sock.Close()
}

// SetSendDeadline bounds how long a broadcast may block.
func (p *Publisher) SetSendDeadline(d time.Duration) error {
	return p.sock.SetOption(mangos.OptionSendDeadline, d)
}
