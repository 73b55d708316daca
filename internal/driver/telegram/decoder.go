package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"ex-tgnorm/pkg/tgnorm"

	"github.com/gotd/td/tg"
)

// decoderConfig contains decoder collaborators that callers may override.
type decoderConfig struct {
	logger    *slog.Logger
	peers     *PeerDirectory
	keyboards tgnorm.KeyboardBuilder
}

// DecoderOption mutates Decoder construction.
type DecoderOption func(*decoderConfig)

// WithDecoderLogger configures structured logging for the decoder and its normalizer.
func WithDecoderLogger(logger *slog.Logger) DecoderOption {
	return func(cfg *decoderConfig) {
		cfg.logger = logger
	}
}

// WithPeerDirectory shares a peer directory across decoders.
func WithPeerDirectory(peers *PeerDirectory) DecoderOption {
	return func(cfg *decoderConfig) {
		if peers != nil {
			cfg.peers = peers
		}
	}
}

// WithKeyboardBuilder replaces the gotd keyboard builder.
func WithKeyboardBuilder(builder tgnorm.KeyboardBuilder) DecoderOption {
	return func(cfg *decoderConfig) {
		if builder != nil {
			cfg.keyboards = builder
		}
	}
}

// Decoder converts gotd update containers into normalized message snapshots.
type Decoder struct {
	peers      *PeerDirectory
	normalizer *tgnorm.Normalizer
	logger     *slog.Logger
}

// NewDecoder creates a decoder with its own peer directory unless one is supplied.
func NewDecoder(options ...DecoderOption) (*Decoder, error) {
	cfg := decoderConfig{
		logger:    slog.Default(),
		keyboards: NewGotdKeyboardBuilder(),
	}
	for _, option := range options {
		option(&cfg)
	}
	if cfg.peers == nil {
		cfg.peers = NewPeerDirectory()
	}

	normalizer, err := tgnorm.NewNormalizer(cfg.peers,
		tgnorm.WithKeyboardBuilder(cfg.keyboards),
		tgnorm.WithLogger(cfg.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("new telegram decoder: %w", err)
	}

	return &Decoder{
		peers:      cfg.peers,
		normalizer: normalizer,
		logger:     cfg.logger,
	}, nil
}

// Peers returns the directory the decoder resolves peers against.
func (d *Decoder) Peers() *PeerDirectory {
	return d.peers
}

// Decode flattens one gotd update container and normalizes every message
// update in it. Updates that carry no regular message are skipped.
func (d *Decoder) Decode(ctx context.Context, updates tg.UpdatesClass) ([]*tgnorm.Message, error) {
	batch, err := flattenGotdUpdates(updates)
	if err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}

	messages := make([]*tgnorm.Message, 0, len(batch))
	for _, envelope := range batch {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("decode updates: %w", err)
		}

		d.peers.rememberEnvelope(envelope)
		message, ok, err := d.decodeEnvelope(envelope)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", envelope.updateClass, err)
		}
		if ok {
			messages = append(messages, message)
		}
	}

	return messages, nil
}

func (d *Decoder) decodeEnvelope(envelope gotdUpdateEnvelope) (*tgnorm.Message, bool, error) {
	var (
		kind tgnorm.UpdateKind
		raw  tg.MessageClass
	)

	switch typed := envelope.update.(type) {
	case *tg.UpdateNewMessage:
		kind, raw = tgnorm.UpdateKindNewMessage, typed.Message
	case *tg.UpdateNewChannelMessage:
		kind, raw = tgnorm.UpdateKindNewMessage, typed.Message
	case *tg.UpdateEditMessage:
		kind, raw = tgnorm.UpdateKindEditedMessage, typed.Message
	case *tg.UpdateEditChannelMessage:
		kind, raw = tgnorm.UpdateKindEditedMessage, typed.Message
	case *tg.UpdateNewScheduledMessage:
		kind, raw = tgnorm.UpdateKindScheduledMessage, typed.Message
	default:
		d.logSkipped(envelope, "unsupported update")
		return nil, false, nil
	}

	message, ok := raw.(*tg.Message)
	if !ok || message == nil {
		d.logSkipped(envelope, "not a regular message")
		return nil, false, nil
	}

	header := tgnorm.UpdateHeader{
		Kind:       kind,
		ReceivedAt: envelope.occurredAt,
		Metadata:   newGotdMetadata(envelope, d.chatTitle(message.PeerID)),
	}
	normalized, err := d.normalizer.NormalizeUpdate(header, MapMessageRecord(message), message.Out)
	if err != nil {
		return nil, false, fmt.Errorf("normalize message %d: %w", message.ID, err)
	}

	return normalized, true, nil
}

func (d *Decoder) chatTitle(peer tg.PeerClass) string {
	var id int64
	switch typed := peer.(type) {
	case *tg.PeerChat:
		id = typed.ChatID
	case *tg.PeerChannel:
		id = typed.ChannelID
	default:
		return ""
	}

	title, _ := d.peers.Title(id)
	return title
}

func (d *Decoder) logSkipped(envelope gotdUpdateEnvelope, reason string) {
	if d.logger == nil {
		return
	}
	d.logger.Debug("skip gotd update",
		"update_class", envelope.updateClass,
		"reason", reason,
	)
}
