package tgnorm

import (
	"strconv"
	"strings"
	"time"
)

// UpdateKind identifies the dispatch category of an update.
type UpdateKind string

const (
	// UpdateKindNewMessage is a newly posted message.
	UpdateKindNewMessage UpdateKind = "message.new"
	// UpdateKindEditedMessage is an existing message after an edit.
	UpdateKindEditedMessage UpdateKind = "message.edited"
	// UpdateKindScheduledMessage is a message queued in the scheduled history.
	UpdateKindScheduledMessage UpdateKind = "message.scheduled"
)

// Update is the capability shared by every dispatched update.
type Update interface {
	// UpdateKind returns the dispatch category.
	UpdateKind() UpdateKind
	// UpdateID returns a stable identifier for this update instance.
	UpdateID() string
}

// UpdateHeader carries dispatch-layer data composed into every update value.
type UpdateHeader struct {
	// Kind selects the dispatch category. Empty means UpdateKindNewMessage.
	Kind UpdateKind
	// ReceivedAt is when the dispatch layer received the update.
	ReceivedAt time.Time
	// Metadata stores optional source-provided key/value context.
	Metadata map[string]string
}

func (h UpdateHeader) clone() UpdateHeader {
	cloned := h
	if len(h.Metadata) > 0 {
		cloned.Metadata = make(map[string]string, len(h.Metadata))
		for key, value := range h.Metadata {
			cloned.Metadata[key] = value
		}
	}

	return cloned
}

// composeUpdateID joins non-empty parts into a "tg:kind:..." identifier.
func composeUpdateID(kind UpdateKind, parts ...any) string {
	values := []string{"tg", string(kind)}
	for _, part := range parts {
		switch typed := part.(type) {
		case string:
			if typed != "" {
				values = append(values, typed)
			}
		case int:
			values = append(values, strconv.Itoa(typed))
		case int64:
			values = append(values, strconv.FormatInt(typed, 10))
		case *int:
			if typed != nil {
				values = append(values, strconv.Itoa(*typed))
			}
		}
	}

	return strings.Join(values, ":")
}

func intToTimeUTC(value int) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.Unix(int64(value), 0).UTC()
}
