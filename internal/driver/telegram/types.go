package telegram

import (
	"errors"
	"time"

	"github.com/gotd/td/tg"
)

var (
	// ErrPeerNotFound indicates a channel peer that no update has introduced yet.
	ErrPeerNotFound = errors.New("telegram: peer not found")
	// ErrUnsupportedPeer indicates a record peer reference that is not a gotd peer.
	ErrUnsupportedPeer = errors.New("telegram: unsupported peer reference")
	// ErrUnsupportedMarkup indicates reply markup the keyboard builder cannot map.
	ErrUnsupportedMarkup = errors.New("telegram: unsupported reply markup")
)

// gotdUpdateEnvelope is one flattened gotd update plus the chat entities
// delivered alongside it.
type gotdUpdateEnvelope struct {
	update      tg.UpdateClass
	occurredAt  time.Time
	chatsByID   map[int64]gotdChatInfo
	updateClass string
}

// gotdChatInfo is what the peer directory keeps about one chat or channel.
type gotdChatInfo struct {
	title   string
	channel bool
	forum   bool
}
