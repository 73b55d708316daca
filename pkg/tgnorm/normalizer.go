package tgnorm

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ex-tgnorm/pkg/richtext"
)

// ErrNoKeyboardBuilder indicates a record with reply_markup reached a normalizer without a KeyboardBuilder.
var ErrNoKeyboardBuilder = errors.New("no keyboard builder configured")

// Option mutates Normalizer construction.
type Option func(*Normalizer)

// WithKeyboardBuilder configures how raw reply_markup becomes a Keyboard.
func WithKeyboardBuilder(builder KeyboardBuilder) Option {
	return func(normalizer *Normalizer) {
		normalizer.keyboards = builder
	}
}

// WithLogger configures structured logging. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(normalizer *Normalizer) {
		normalizer.logger = logger
	}
}

// WithClock overrides the clock used to stamp UpdateHeader.ReceivedAt.
func WithClock(now func() time.Time) Option {
	return func(normalizer *Normalizer) {
		if now != nil {
			normalizer.now = now
		}
	}
}

// Normalizer turns raw records into Message snapshots.
//
// A Normalizer holds no per-message state and is safe for concurrent use when
// its collaborators are.
type Normalizer struct {
	resolver  PeerResolver
	keyboards KeyboardBuilder
	logger    *slog.Logger
	now       func() time.Time
}

// NewNormalizer creates a normalizer backed by resolver.
func NewNormalizer(resolver PeerResolver, options ...Option) (*Normalizer, error) {
	if resolver == nil {
		return nil, fmt.Errorf("new normalizer: nil peer resolver")
	}

	normalizer := &Normalizer{
		resolver: resolver,
		logger:   slog.Default(),
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, option := range options {
		option(normalizer)
	}

	return normalizer, nil
}

// Normalize builds a new-message snapshot from raw. out reports an outgoing message.
func (n *Normalizer) Normalize(raw Record, out bool) (*Message, error) {
	return n.NormalizeUpdate(UpdateHeader{}, raw, out)
}

// NormalizeUpdate builds a snapshot from raw and composes header into it.
//
// Missing or mistyped required fields fail with a *FieldError matching
// ErrMalformedRecord. Resolver and keyboard builder failures fail with a
// *ResolutionError wrapping the collaborator error. No partial message is
// returned on failure.
func (n *Normalizer) NormalizeUpdate(header UpdateHeader, raw Record, out bool) (*Message, error) {
	if raw == nil {
		return nil, &FieldError{Field: "record", Reason: "nil record"}
	}

	fields, err := readMessageFields(raw)
	if err != nil {
		return nil, err
	}

	chat, err := n.resolver.ResolveChat(raw)
	if err != nil {
		return nil, &ResolutionError{Op: "resolve chat", Err: err}
	}

	sender := chat.ID
	if peer, ok := raw.Lookup("from_id"); ok {
		sender, err = n.resolver.ResolvePeerID(peer)
		if err != nil {
			return nil, &ResolutionError{Op: "resolve from_id", Err: err}
		}
	}

	keyboard, err := n.buildKeyboard(raw)
	if err != nil {
		return nil, err
	}

	linkage := ResolveLinkage(chat.Forum, fields.replyTo)

	fwdInfo, psaType, err := fields.fwdFrom.resolve(n.resolver)
	if err != nil {
		return nil, err
	}

	if header.Kind == "" {
		header.Kind = UpdateKindNewMessage
	}
	if header.ReceivedAt.IsZero() {
		header.ReceivedAt = n.now()
	}

	message := &Message{
		header:           header.clone(),
		id:               fields.id,
		chatID:           chat.ID,
		sender:           sender,
		date:             fields.date,
		out:              out,
		text:             fields.text,
		replyToMsgID:     linkage.ReplyToMsgID,
		topicID:          linkage.TopicID,
		threadID:         linkage.ThreadID,
		replyToScheduled: linkage.ReplyToScheduled,
		mentioned:        fields.mentioned,
		silent:           fields.silent,
		fromScheduled:    fields.fromScheduled,
		pinned:           fields.pinned,
		protected:        fields.noforwards,
		viaBotID:         fields.viaBotID,
		editDate:         fields.editDate,
		ttlPeriod:        fields.ttlPeriod,
		fwdInfo:          fwdInfo,
		keyboard:         keyboard,
		entities:         fields.entities,
	}
	if fwdInfo != nil {
		message.psaType = psaType
		message.imported = fwdInfo.imported
	}

	n.logDebug("normalized message",
		"update_id", message.UpdateID(),
		"chat_id", message.chatID,
		"message_id", message.id,
		"out", out,
		"entities", len(message.entities),
		"forwarded", fwdInfo != nil,
	)

	return message, nil
}

func (n *Normalizer) buildKeyboard(raw Record) (Keyboard, error) {
	markup, ok := raw.Lookup("reply_markup")
	if !ok {
		return nil, nil
	}
	if keyboard, ok := markup.(Keyboard); ok {
		return cloneKeyboard(keyboard), nil
	}
	if n.keyboards == nil {
		return nil, &ResolutionError{Op: "build keyboard", Err: ErrNoKeyboardBuilder}
	}

	keyboard, err := n.keyboards.BuildKeyboard(markup)
	if err != nil {
		return nil, &ResolutionError{Op: "build keyboard", Err: err}
	}

	return cloneKeyboard(keyboard), nil
}

func (n *Normalizer) logDebug(msg string, attrs ...any) {
	if n.logger == nil {
		return
	}
	n.logger.Debug(msg, attrs...)
}

// messageFields holds the record fields copied verbatim into a Message.
type messageFields struct {
	id            int
	date          int
	text          string
	mentioned     bool
	silent        bool
	fromScheduled bool
	pinned        bool
	noforwards    bool
	viaBotID      *int64
	editDate      *int
	ttlPeriod     *int
	replyTo       *ReplyHeader
	fwdFrom       *forwardHeader
	entities      []richtext.Entity
}

func readMessageFields(raw Record) (messageFields, error) {
	reader := newFieldReader(raw, "")
	var (
		fields messageFields
		err    error
	)

	if fields.id, err = reader.requiredInt("id"); err != nil {
		return messageFields{}, err
	}
	if fields.date, err = reader.requiredInt("date"); err != nil {
		return messageFields{}, err
	}
	if fields.text, _, err = reader.optionalString("message"); err != nil {
		return messageFields{}, err
	}

	flags := []struct {
		key    string
		target *bool
	}{
		{key: "mentioned", target: &fields.mentioned},
		{key: "silent", target: &fields.silent},
		{key: "from_scheduled", target: &fields.fromScheduled},
		{key: "pinned", target: &fields.pinned},
		{key: "noforwards", target: &fields.noforwards},
	}
	for _, flag := range flags {
		if *flag.target, err = reader.requiredBool(flag.key); err != nil {
			return messageFields{}, err
		}
	}

	if fields.viaBotID, err = optionalInt64Pointer(reader, "via_bot_id"); err != nil {
		return messageFields{}, err
	}
	if fields.editDate, err = optionalIntPointer(reader, "edit_date"); err != nil {
		return messageFields{}, err
	}
	if fields.ttlPeriod, err = optionalIntPointer(reader, "ttl_period"); err != nil {
		return messageFields{}, err
	}

	replyRecord, hasReply, err := reader.optionalRecord("reply_to")
	if err != nil {
		return messageFields{}, err
	}
	if hasReply {
		if fields.replyTo, err = parseReplyHeader(replyRecord); err != nil {
			return messageFields{}, err
		}
	}

	fwdRecord, _, err := reader.optionalRecord("fwd_from")
	if err != nil {
		return messageFields{}, err
	}
	if fields.fwdFrom, err = parseForwardHeader(fwdRecord); err != nil {
		return messageFields{}, err
	}
	if fields.entities, err = readEntities(raw); err != nil {
		return messageFields{}, err
	}

	return fields, nil
}
