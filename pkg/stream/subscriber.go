package stream

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang/snappy"
	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/sub"

	// Register all transports
	_ "go.nanomsg.org/mangos/v3/transport/all"

	"github.com/stellarweave/galaxysim/pkg/galaxy"
)

// Subscriber receives snapshots from a stream publisher.
type Subscriber struct {
	sock mangos.Socket
}

// NewSubscriber dials a publisher and subscribes to the snapshot topic.
func NewSubscriber(addr string) (*Subscriber, error) {
	sock, err := sub.NewSocket()
	if err != nil {
		return nil, err
	}
	if err := sock.Dial(addr); err != nil {
		sock.Close()
		return nil, err
	}
	if err := sock.SetOption(mangos.OptionSubscribe, []byte(TopicSnapshot)); err != nil {
		sock.Close()
		return nil, err
	}
	return &Subscriber{sock: sock}, nil
}

// SetRecvDeadline bounds how long Next may block.
func (s *Subscriber) SetRecvDeadline(d time.Duration) error {
	return s.sock.SetOption(mangos.OptionRecvDeadline, d)
}

// Next blocks for the next snapshot frame.
func (s *Subscriber) Next() (galaxy.Snapshot, error) {
	var snap galaxy.Snapshot

	frame, err := s.sock.Recv()
	if err != nil {
		return snap, err
	}
	if len(frame) < len(TopicSnapshot) {
		return snap, fmt.Errorf("short frame: %d bytes", len(frame))
	}

	payload, err := snappy.Decode(nil, frame[len(TopicSnapshot):])
	if err != nil {
		return snap, fmt.Errorf("decompressing snapshot: %w", err)
	}
	if err := json.Unmarshal(payload, &snap); err != nil {
		return snap, fmt.Errorf("decoding snapshot: %w", err)
	}
	return snap, nil
}

// Close tears down the socket.
func (s *Subscriber) Close() error {
	return s.sock.Close()
}
