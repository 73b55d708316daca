package tgnorm

import (
	"sync"
	"time"

	"ex-tgnorm/pkg/richtext"
)

// Message is an immutable snapshot of one incoming or outgoing message.
//
// All fields are fixed by Normalize. The only later state change is the
// one-time memoization of each HTML rendering mode.
type Message struct {
	header UpdateHeader
	id     int
	chatID int64
	sender int64
	date   int
	out    bool
	text   string

	replyToMsgID     *int
	topicID          *int
	threadID         *int
	replyToScheduled bool

	mentioned     bool
	silent        bool
	fromScheduled bool
	pinned        bool
	protected     bool
	imported      bool

	viaBotID  *int64
	editDate  *int
	ttlPeriod *int

	fwdInfo  *ForwardedInfo
	psaType  *string
	keyboard Keyboard

	entities     []richtext.Entity
	html         renderCell
	htmlTelegram renderCell
}

// renderCell memoizes one rendering mode.
type renderCell struct {
	once  sync.Once
	value string
}

// Header returns the dispatch-layer data the message was constructed with.
func (m *Message) Header() UpdateHeader {
	return m.header.clone()
}

// UpdateKind returns the dispatch category.
func (m *Message) UpdateKind() UpdateKind {
	return m.header.Kind
}

// UpdateID returns "tg:<kind>:<chat>:<id>", suffixed with the edit date for edits.
func (m *Message) UpdateID() string {
	if m.header.Kind == UpdateKindEditedMessage {
		return composeUpdateID(m.header.Kind, m.chatID, m.id, m.editDate)
	}
	return composeUpdateID(m.header.Kind, m.chatID, m.id)
}

// ID returns the protocol message id, scoped to the chat.
func (m *Message) ID() int { return m.id }

// ChatID returns the Bot API style id of the chat the message was sent to.
func (m *Message) ChatID() int64 { return m.chatID }

// SenderID returns the Bot API style id of the sender, or the chat id when the
// record names no sender.
func (m *Message) SenderID() int64 { return m.sender }

// Date returns the unix send time.
func (m *Message) Date() int { return m.date }

// Time returns the send time in UTC.
func (m *Message) Time() time.Time { return intToTimeUTC(m.date) }

// Out reports an outgoing message.
func (m *Message) Out() bool { return m.out }

// Text returns the raw message text.
func (m *Message) Text() string { return m.text }

// ReplyToMsgID returns the id of the replied message.
func (m *Message) ReplyToMsgID() (int, bool) { return derefInt(m.replyToMsgID) }

// TopicID returns the forum topic id. Forum messages without an explicit topic
// report GeneralTopicID.
func (m *Message) TopicID() (int, bool) { return derefInt(m.topicID) }

// ThreadID returns the reply thread root id outside forum topics.
func (m *Message) ThreadID() (int, bool) { return derefInt(m.threadID) }

// ReplyToScheduled reports a reply to a scheduled message.
func (m *Message) ReplyToScheduled() bool { return m.replyToScheduled }

// Mentioned reports whether the current account was mentioned.
func (m *Message) Mentioned() bool { return m.mentioned }

// Silent reports a message sent without notification.
func (m *Message) Silent() bool { return m.silent }

// FromScheduled reports a message sent from the scheduled queue.
func (m *Message) FromScheduled() bool { return m.fromScheduled }

// Pinned reports a pinned message.
func (m *Message) Pinned() bool { return m.pinned }

// Protected reports a message that cannot be forwarded or saved.
func (m *Message) Protected() bool { return m.protected }

// Imported reports a message imported from a foreign chat service.
func (m *Message) Imported() bool { return m.imported }

// ViaBotID returns the inline bot that generated the message.
func (m *Message) ViaBotID() (int64, bool) { return derefInt64(m.viaBotID) }

// EditDate returns the unix time of the last edit.
func (m *Message) EditDate() (int, bool) { return derefInt(m.editDate) }

// TTLPeriod returns the self-destruct period in seconds.
func (m *Message) TTLPeriod() (int, bool) { return derefInt(m.ttlPeriod) }

// FwdInfo returns forward provenance, or nil for messages that were not forwarded.
func (m *Message) FwdInfo() *ForwardedInfo { return m.fwdInfo }

// PSAType returns the public service announcement type of a forwarded message.
func (m *Message) PSAType() (string, bool) { return derefString(m.psaType) }

// Keyboard returns a copy of the attached keyboard, or nil.
func (m *Message) Keyboard() Keyboard { return cloneKeyboard(m.keyboard) }

// HTML renders the message text with its entities.
//
// allowTelegramTags enables tg-spoiler, tg-emoji, mention links and other
// Telegram-specific tags. Each mode is computed once and cached; concurrent
// callers are safe.
func (m *Message) HTML(allowTelegramTags bool) string {
	if len(m.entities) == 0 {
		return richtext.Escape(m.text)
	}

	cell := &m.html
	if allowTelegramTags {
		cell = &m.htmlTelegram
	}
	cell.once.Do(func() {
		cell.value = richtext.Render(m.text, m.entities, richtext.Options{TelegramTags: allowTelegramTags})
	})

	return cell.value
}

var _ Update = (*Message)(nil)
