package telegram

import (
	"errors"
	"testing"

	"ex-tgnorm/pkg/tgnorm"

	"github.com/gotd/td/tg"
)

func TestPeerDirectoryResolvePeerID(t *testing.T) {
	t.Parallel()

	directory := NewPeerDirectory()
	directory.RememberChats([]tg.ChatClass{
		&tg.Channel{ID: 1234567890, Title: "News"},
		&tg.ChannelForbidden{ID: 55, Title: "Gone"},
	})

	tests := []struct {
		name    string
		peer    any
		want    int64
		wantErr error
	}{
		{name: "user", peer: &tg.PeerUser{UserID: 42}, want: 42},
		{name: "basic chat", peer: &tg.PeerChat{ChatID: 100}, want: -100},
		{name: "known channel", peer: &tg.PeerChannel{ChannelID: 1234567890}, want: -1001234567890},
		{name: "forbidden channel", peer: &tg.PeerChannel{ChannelID: 55}, want: -1000000000055},
		{name: "unknown channel", peer: &tg.PeerChannel{ChannelID: 77}, wantErr: ErrPeerNotFound},
		{name: "not a peer", peer: "P1", wantErr: ErrUnsupportedPeer},
		{name: "nil peer", peer: nil, wantErr: ErrUnsupportedPeer},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := directory.ResolvePeerID(testCase.peer)
			if testCase.wantErr != nil {
				if !errors.Is(err, testCase.wantErr) {
					t.Fatalf("error = %v, want %v", err, testCase.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve failed: %v", err)
			}
			if got != testCase.want {
				t.Fatalf("id = %d, want %d", got, testCase.want)
			}
		})
	}
}

func TestPeerDirectoryResolveChatForumFlag(t *testing.T) {
	t.Parallel()

	directory := NewPeerDirectory()
	directory.RememberChats([]tg.ChatClass{
		&tg.Channel{ID: 10, Title: "Forum", Megagroup: true, Forum: true},
		&tg.Channel{ID: 11, Title: "Plain", Megagroup: true},
		&tg.Chat{ID: 12, Title: "Basic"},
	})

	tests := []struct {
		name      string
		peer      tg.PeerClass
		wantID    int64
		wantForum bool
	}{
		{name: "forum supergroup", peer: &tg.PeerChannel{ChannelID: 10}, wantID: -1000000000010, wantForum: true},
		{name: "plain supergroup", peer: &tg.PeerChannel{ChannelID: 11}, wantID: -1000000000011},
		{name: "basic chat", peer: &tg.PeerChat{ChatID: 12}, wantID: -12},
		{name: "private chat", peer: &tg.PeerUser{UserID: 13}, wantID: 13},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			chat, err := directory.ResolveChat(tgnorm.Record{"peer_id": testCase.peer})
			if err != nil {
				t.Fatalf("resolve chat failed: %v", err)
			}
			if chat.ID != testCase.wantID || chat.Forum != testCase.wantForum {
				t.Fatalf("chat = %+v, want id %d forum %v", chat, testCase.wantID, testCase.wantForum)
			}
		})
	}
}

func TestPeerDirectoryResolveChatErrors(t *testing.T) {
	t.Parallel()

	directory := NewPeerDirectory()
	if _, err := directory.ResolveChat(tgnorm.Record{}); err == nil {
		t.Fatal("expected error for missing peer_id")
	}
	if _, err := directory.ResolveChat(tgnorm.Record{"peer_id": 5}); !errors.Is(err, ErrUnsupportedPeer) {
		t.Fatalf("error = %v, want ErrUnsupportedPeer", err)
	}
	if _, err := directory.ResolveChat(tgnorm.Record{"peer_id": &tg.PeerChannel{ChannelID: 1}}); !errors.Is(err, ErrPeerNotFound) {
		t.Fatalf("error = %v, want ErrPeerNotFound", err)
	}
}

func TestPeerDirectoryLaterBatchOverridesForumFlag(t *testing.T) {
	t.Parallel()

	directory := NewPeerDirectory()
	directory.RememberChats([]tg.ChatClass{&tg.Channel{ID: 10, Title: "Group"}})
	directory.RememberChats([]tg.ChatClass{&tg.Channel{ID: 10, Title: "Topics", Forum: true}})

	chat, err := directory.ResolveChat(tgnorm.Record{"peer_id": &tg.PeerChannel{ChannelID: 10}})
	if err != nil {
		t.Fatalf("resolve chat failed: %v", err)
	}
	if !chat.Forum {
		t.Fatal("forum = false, want true after update")
	}
	if title, ok := directory.Title(10); !ok || title != "Topics" {
		t.Fatalf("title = %q,%v, want Topics,true", title, ok)
	}
}
