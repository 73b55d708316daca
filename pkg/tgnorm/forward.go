package tgnorm

// ForwardedInfo is the provenance of a forwarded message. It is immutable.
type ForwardedInfo struct {
	date            int
	senderPeerID    *int64
	senderName      *string
	channelPost     *int
	postAuthor      *string
	savedFromPeerID *int64
	savedFromMsgID  *int
	imported        bool
}

// Date returns the unix time of the original message.
func (f *ForwardedInfo) Date() int {
	return f.date
}

// SenderPeerID returns the resolved id of the original sender.
func (f *ForwardedInfo) SenderPeerID() (int64, bool) {
	return derefInt64(f.senderPeerID)
}

// SenderName returns the original sender name when the sender hides their account.
func (f *ForwardedInfo) SenderName() (string, bool) {
	return derefString(f.senderName)
}

// ChannelPost returns the original channel post id.
func (f *ForwardedInfo) ChannelPost() (int, bool) {
	return derefInt(f.channelPost)
}

// PostAuthor returns the signature of the original channel post author.
func (f *ForwardedInfo) PostAuthor() (string, bool) {
	return derefString(f.postAuthor)
}

// SavedFromPeerID returns the resolved chat the message was saved from.
func (f *ForwardedInfo) SavedFromPeerID() (int64, bool) {
	return derefInt64(f.savedFromPeerID)
}

// SavedFromMsgID returns the message id in the chat the message was saved from.
func (f *ForwardedInfo) SavedFromMsgID() (int, bool) {
	return derefInt(f.savedFromMsgID)
}

// Imported reports a message imported from a foreign chat service.
func (f *ForwardedInfo) Imported() bool {
	return f.imported
}

// forwardHeader is a validated fwd_from record whose peers are not yet resolved.
type forwardHeader struct {
	info          *ForwardedInfo
	psaType       *string
	fromPeer      any
	savedFromPeer any
}

// parseForwardHeader validates every scalar of fwd_from. A nil record yields nil.
func parseForwardHeader(record Record) (*forwardHeader, error) {
	if record == nil {
		return nil, nil
	}
	fields := newFieldReader(record, "fwd_from")

	date, err := fields.requiredInt("date")
	if err != nil {
		return nil, err
	}
	info := &ForwardedInfo{date: date}

	if info.senderName, err = optionalStringPointer(fields, "from_name"); err != nil {
		return nil, err
	}
	if info.channelPost, err = optionalIntPointer(fields, "channel_post"); err != nil {
		return nil, err
	}
	if info.postAuthor, err = optionalStringPointer(fields, "post_author"); err != nil {
		return nil, err
	}
	if info.savedFromMsgID, err = optionalIntPointer(fields, "saved_from_msg_id"); err != nil {
		return nil, err
	}
	if info.imported, _, err = fields.optionalBool("imported"); err != nil {
		return nil, err
	}

	header := &forwardHeader{info: info}
	if header.psaType, err = optionalStringPointer(fields, "psa_type"); err != nil {
		return nil, err
	}
	header.fromPeer, _ = record.Lookup("from_id")
	header.savedFromPeer, _ = record.Lookup("saved_from_peer")

	return header, nil
}

// resolve looks up the forward peers that are present. A nil header yields no
// info and no PSA type.
func (h *forwardHeader) resolve(resolver PeerResolver) (*ForwardedInfo, *string, error) {
	if h == nil {
		return nil, nil, nil
	}

	info := h.info
	if h.fromPeer != nil {
		id, err := resolver.ResolvePeerID(h.fromPeer)
		if err != nil {
			return nil, nil, &ResolutionError{Op: "resolve fwd_from.from_id", Err: err}
		}
		info.senderPeerID = &id
	}
	if h.savedFromPeer != nil {
		id, err := resolver.ResolvePeerID(h.savedFromPeer)
		if err != nil {
			return nil, nil, &ResolutionError{Op: "resolve fwd_from.saved_from_peer", Err: err}
		}
		info.savedFromPeerID = &id
	}

	return info, h.psaType, nil
}

func optionalIntPointer(fields fieldReader, key string) (*int, error) {
	value, ok, err := fields.optionalInt(key)
	if err != nil || !ok {
		return nil, err
	}
	return &value, nil
}

func optionalInt64Pointer(fields fieldReader, key string) (*int64, error) {
	value, ok, err := fields.optionalInt64(key)
	if err != nil || !ok {
		return nil, err
	}
	return &value, nil
}

func optionalStringPointer(fields fieldReader, key string) (*string, error) {
	value, ok, err := fields.optionalString(key)
	if err != nil || !ok {
		return nil, err
	}
	return &value, nil
}

func derefInt(value *int) (int, bool) {
	if value == nil {
		return 0, false
	}
	return *value, true
}

func derefInt64(value *int64) (int64, bool) {
	if value == nil {
		return 0, false
	}
	return *value, true
}

func derefString(value *string) (string, bool) {
	if value == nil {
		return "", false
	}
	return *value, true
}
