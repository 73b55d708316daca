// Package tgnorm normalizes raw Telegram message records into immutable Message
// snapshots.
//
// A Normalizer reads a Record, asks a PeerResolver for chat and peer ids, asks
// a KeyboardBuilder for any attached keyboard, disambiguates reply, forum topic
// and thread placement with ResolveLinkage, and derives forward provenance.
// Message.HTML renders the text with its entities on demand.
package tgnorm
