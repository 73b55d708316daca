// Package richtext renders Telegram message text and its annotation spans into
// HTML. Span offsets are UTF-16 code units.
package richtext
