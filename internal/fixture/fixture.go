// Package fixture loads gotd update batches from YAML or JSON files.
//
// Fixtures describe messages the way a Telegram client would receive them:
// batches of updates plus the chats those updates reference. They drive the
// tgrender command and end-to-end decoder tests without a network session.
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidFixture indicates a fixture that parses but cannot be mapped to gotd values.
var ErrInvalidFixture = errors.New("fixture: invalid fixture")

// File is one fixture document.
type File struct {
	Batches []Batch `yaml:"batches"`
}

// Batch becomes one *tg.Updates container.
type Batch struct {
	Date    int      `yaml:"date"`
	Chats   []Chat   `yaml:"chats"`
	Updates []Update `yaml:"updates"`
}

// Chat is a chat or channel entity delivered with a batch.
type Chat struct {
	ID        int64  `yaml:"id"`
	Type      string `yaml:"type"`
	Title     string `yaml:"title"`
	Forum     bool   `yaml:"forum"`
	Megagroup bool   `yaml:"megagroup"`
}

// Update is one message update inside a batch.
type Update struct {
	// Kind is new, edit, or scheduled. Empty means new.
	Kind    string  `yaml:"kind"`
	Message Message `yaml:"message"`
}

// Peer names exactly one of a user, a basic chat, or a channel.
type Peer struct {
	User    int64 `yaml:"user"`
	Chat    int64 `yaml:"chat"`
	Channel int64 `yaml:"channel"`
}

// Message is a gotd message described field by field.
type Message struct {
	ID            int          `yaml:"id"`
	Peer          Peer         `yaml:"peer"`
	From          *Peer        `yaml:"from"`
	Date          int          `yaml:"date"`
	Out           bool         `yaml:"out"`
	Text          string       `yaml:"text"`
	Mentioned     bool         `yaml:"mentioned"`
	Silent        bool         `yaml:"silent"`
	FromScheduled bool         `yaml:"from_scheduled"`
	Pinned        bool         `yaml:"pinned"`
	Noforwards    bool         `yaml:"noforwards"`
	ViaBotID      *int64       `yaml:"via_bot_id"`
	EditDate      *int         `yaml:"edit_date"`
	TTLPeriod     *int         `yaml:"ttl_period"`
	ReplyTo       *ReplyTo     `yaml:"reply_to"`
	FwdFrom       *FwdFrom     `yaml:"fwd_from"`
	Entities      []Entity     `yaml:"entities"`
	ReplyMarkup   *ReplyMarkup `yaml:"reply_markup"`
}

// ReplyTo is a message reply header.
type ReplyTo struct {
	MsgID      *int `yaml:"msg_id"`
	TopID      *int `yaml:"top_id"`
	ForumTopic bool `yaml:"forum_topic"`
	Scheduled  bool `yaml:"scheduled"`
}

// FwdFrom is a forward header.
type FwdFrom struct {
	Date           int     `yaml:"date"`
	From           *Peer   `yaml:"from"`
	FromName       *string `yaml:"from_name"`
	ChannelPost    *int    `yaml:"channel_post"`
	PostAuthor     *string `yaml:"post_author"`
	SavedFromPeer  *Peer   `yaml:"saved_from_peer"`
	SavedFromMsgID *int    `yaml:"saved_from_msg_id"`
	PSAType        *string `yaml:"psa_type"`
	Imported       bool    `yaml:"imported"`
}

// Entity is one text entity. Type uses the richtext entity type names.
type Entity struct {
	Type      string `yaml:"type"`
	Offset    int    `yaml:"offset"`
	Length    int    `yaml:"length"`
	URL       string `yaml:"url"`
	Language  string `yaml:"language"`
	UserID    int64  `yaml:"user_id"`
	EmojiID   int64  `yaml:"emoji_id"`
	Collapsed bool   `yaml:"collapsed"`
}

// ReplyMarkup is an inline keyboard, reply keyboard, or keyboard marker.
type ReplyMarkup struct {
	// Type is inline, reply, hide, or force_reply.
	Type        string     `yaml:"type"`
	Rows        [][]Button `yaml:"rows"`
	Resize      bool       `yaml:"resize"`
	SingleUse   bool       `yaml:"single_use"`
	Selective   bool       `yaml:"selective"`
	Persistent  bool       `yaml:"persistent"`
	Placeholder string     `yaml:"placeholder"`
}

// Button is one keyboard button. Kind uses the tgnorm button kind names.
type Button struct {
	Kind     string `yaml:"kind"`
	Text     string `yaml:"text"`
	URL      string `yaml:"url"`
	Data     string `yaml:"data"`
	Query    string `yaml:"query"`
	SamePeer bool   `yaml:"same_peer"`
	UserID   int64  `yaml:"user_id"`
}

// Load reads and parses a fixture file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load fixture %s: %w", path, err)
	}

	file, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load fixture %s: %w", path, err)
	}

	return file, nil
}

// Parse decodes a YAML or JSON fixture document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var file File
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse fixture: empty document: %w", ErrInvalidFixture)
		}
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if len(file.Batches) == 0 {
		return nil, fmt.Errorf("parse fixture: no batches: %w", ErrInvalidFixture)
	}

	return &file, nil
}
