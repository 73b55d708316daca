package tgnorm

// ChatInfo is the chat context of one raw record.
type ChatInfo struct {
	// ID is the Bot API style chat id.
	ID int64
	// Forum reports whether the chat partitions history into topics.
	Forum bool
}

// PeerResolver resolves opaque peer references carried by raw records.
//
// Implementations are treated as synchronous lookups. Errors are propagated to
// the caller of Normalize unmodified.
type PeerResolver interface {
	// ResolveChat returns the chat context of the record, usually derived from peer_id.
	ResolveChat(record Record) (ChatInfo, error)
	// ResolvePeerID maps one opaque peer reference to a Bot API style id.
	ResolvePeerID(peer any) (int64, error)
}
