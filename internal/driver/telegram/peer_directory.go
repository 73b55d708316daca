package telegram

import (
	"fmt"
	"sync"

	"ex-tgnorm/pkg/tgnorm"

	"github.com/gotd/td/constant"
	"github.com/gotd/td/tg"
)

// PeerDirectory resolves gotd peers carried by message records.
//
// It learns chats and channels from the entity lists attached to update
// batches. User and basic chat peers resolve without prior knowledge; channel
// peers must have been introduced by an earlier batch because only the
// channel entity carries the forum flag.
type PeerDirectory struct {
	mu    sync.RWMutex
	chats map[int64]gotdChatInfo
}

// NewPeerDirectory creates an empty, concurrency-safe peer directory.
func NewPeerDirectory() *PeerDirectory {
	return &PeerDirectory{
		chats: make(map[int64]gotdChatInfo),
	}
}

// RememberChats ingests chat entities delivered with an update batch.
func (d *PeerDirectory) RememberChats(chats []tg.ChatClass) {
	d.remember(indexGotdChats(chats))
}

func (d *PeerDirectory) rememberEnvelope(envelope gotdUpdateEnvelope) {
	d.remember(envelope.chatsByID)
}

func (d *PeerDirectory) remember(chats map[int64]gotdChatInfo) {
	if d == nil || len(chats) == 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for id, chat := range chats {
		d.chats[id] = chat
	}
}

// ResolveChat resolves the record peer_id into chat context.
func (d *PeerDirectory) ResolveChat(record tgnorm.Record) (tgnorm.ChatInfo, error) {
	raw, ok := record.Lookup("peer_id")
	if !ok {
		return tgnorm.ChatInfo{}, fmt.Errorf("resolve chat: record has no peer_id")
	}
	peer, ok := raw.(tg.PeerClass)
	if !ok {
		return tgnorm.ChatInfo{}, fmt.Errorf("resolve chat peer %T: %w", raw, ErrUnsupportedPeer)
	}

	id, chat, err := d.lookup(peer)
	if err != nil {
		return tgnorm.ChatInfo{}, fmt.Errorf("resolve chat: %w", err)
	}

	return tgnorm.ChatInfo{ID: id, Forum: chat.forum}, nil
}

// ResolvePeerID maps a gotd peer to its Bot API style id.
func (d *PeerDirectory) ResolvePeerID(peer any) (int64, error) {
	typed, ok := peer.(tg.PeerClass)
	if !ok {
		return 0, fmt.Errorf("resolve peer %T: %w", peer, ErrUnsupportedPeer)
	}

	id, _, err := d.lookup(typed)
	if err != nil {
		return 0, fmt.Errorf("resolve peer: %w", err)
	}

	return id, nil
}

// Title returns the remembered title of a chat or channel by raw protocol id.
func (d *PeerDirectory) Title(id int64) (string, bool) {
	if d == nil {
		return "", false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	chat, ok := d.chats[id]
	if !ok || chat.title == "" {
		return "", false
	}

	return chat.title, true
}

func (d *PeerDirectory) lookup(peer tg.PeerClass) (int64, gotdChatInfo, error) {
	var id constant.TDLibPeerID

	switch typed := peer.(type) {
	case *tg.PeerUser:
		id.User(typed.UserID)
		return int64(id), gotdChatInfo{}, nil
	case *tg.PeerChat:
		id.Chat(typed.ChatID)
		return int64(id), d.chat(typed.ChatID), nil
	case *tg.PeerChannel:
		if d == nil {
			return 0, gotdChatInfo{}, fmt.Errorf("channel %d: %w", typed.ChannelID, ErrPeerNotFound)
		}
		d.mu.RLock()
		chat, ok := d.chats[typed.ChannelID]
		d.mu.RUnlock()
		if !ok || !chat.channel {
			return 0, gotdChatInfo{}, fmt.Errorf("channel %d: %w", typed.ChannelID, ErrPeerNotFound)
		}
		id.Channel(typed.ChannelID)
		return int64(id), chat, nil
	default:
		return 0, gotdChatInfo{}, fmt.Errorf("peer %T: %w", peer, ErrUnsupportedPeer)
	}
}

func (d *PeerDirectory) chat(id int64) gotdChatInfo {
	if d == nil {
		return gotdChatInfo{}
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.chats[id]
}

func indexGotdChats(chats []tg.ChatClass) map[int64]gotdChatInfo {
	if len(chats) == 0 {
		return nil
	}

	out := make(map[int64]gotdChatInfo, len(chats))
	for _, chat := range chats {
		if chat == nil {
			continue
		}

		switch typed := chat.(type) {
		case *tg.Chat:
			out[typed.ID] = gotdChatInfo{title: typed.Title}
		case *tg.ChatForbidden:
			out[typed.ID] = gotdChatInfo{title: typed.Title}
		case *tg.Channel:
			out[typed.ID] = gotdChatInfo{
				title:   typed.Title,
				channel: true,
				forum:   typed.Forum,
			}
		case *tg.ChannelForbidden:
			out[typed.ID] = gotdChatInfo{
				title:   typed.Title,
				channel: true,
			}
		}
	}

	return out
}

var _ tgnorm.PeerResolver = (*PeerDirectory)(nil)
