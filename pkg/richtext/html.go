package richtext

import (
	"html"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Options selects the rendering mode.
type Options struct {
	// TelegramTags enables Telegram-specific markup: tg-spoiler, tg-emoji,
	// tg://user mention links, and expandable blockquotes.
	TelegramTags bool
}

// Escape applies HTML escaping to literal text.
func Escape(text string) string {
	return html.EscapeString(text)
}

// Render converts text plus annotation spans into HTML.
//
// Spans that are unknown, empty, start outside the text, or cut through a
// surrogate pair are skipped and the covered text is rendered as plain escaped
// text. Crossing spans are split so the produced tags always nest. Invalid
// UTF-8 bytes count as one unit each and are copied through unchanged.
func Render(text string, entities []Entity, options Options) string {
	if len(entities) == 0 {
		return Escape(text)
	}

	offsets := unitOffsets(text)
	spans := collectSpans(text, offsets, entities, options)
	if len(spans) == 0 {
		return Escape(text)
	}

	var out strings.Builder
	out.Grow(len(text) + len(spans)*16)

	active := make([]*span, 0, len(spans))
	next := 0
	pos := 0
	for _, boundary := range spanBoundaries(spans) {
		out.WriteString(Escape(text[offsets[pos]:offsets[boundary]]))
		pos = boundary

		active = closeSpansAt(&out, active, boundary)
		for next < len(spans) && spans[next].start == boundary {
			out.WriteString(spans[next].open)
			active = append(active, &spans[next])
			next++
		}
	}
	out.WriteString(Escape(text[offsets[pos]:]))

	return out.String()
}

// unitOffsets maps every UTF-16 unit position of text, including the end, to
// its byte offset. The position between the two halves of a surrogate pair
// maps to -1.
func unitOffsets(text string) []int {
	offsets := make([]int, 0, len(text)+1)
	for index := 0; index < len(text); {
		r, size := utf8.DecodeRuneInString(text[index:])
		offsets = append(offsets, index)
		if utf16.RuneLen(r) == 2 {
			offsets = append(offsets, -1)
		}
		index += size
	}

	return append(offsets, len(text))
}

type span struct {
	start int
	end   int
	index int
	open  string
	close string
}

// collectSpans validates entities and orders them by open position, with outer
// spans before the spans they contain.
func collectSpans(text string, offsets []int, entities []Entity, options Options) []span {
	units := len(offsets) - 1
	spans := make([]span, 0, len(entities))
	for index, entity := range entities {
		start := entity.Offset
		end := entity.End()
		if entity.Length <= 0 || start < 0 || start >= units {
			continue
		}
		if end > units || end < start {
			end = units
		}
		if offsets[start] < 0 || offsets[end] < 0 {
			continue
		}

		open, closing, ok := entityTags(entity, text[offsets[start]:offsets[end]], options)
		if !ok {
			continue
		}
		spans = append(spans, span{
			start: start,
			end:   end,
			index: index,
			open:  open,
			close: closing,
		})
	}

	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		if spans[i].end != spans[j].end {
			return spans[i].end > spans[j].end
		}
		return spans[i].index < spans[j].index
	})

	return spans
}

func spanBoundaries(spans []span) []int {
	seen := make(map[int]struct{}, len(spans)*2)
	boundaries := make([]int, 0, len(spans)*2)
	for _, item := range spans {
		for _, offset := range [2]int{item.start, item.end} {
			if _, ok := seen[offset]; ok {
				continue
			}
			seen[offset] = struct{}{}
			boundaries = append(boundaries, offset)
		}
	}
	sort.Ints(boundaries)

	return boundaries
}

// closeSpansAt closes every active span ending at boundary. Spans opened after
// the lowest closing one but still running are closed and reopened.
func closeSpansAt(out *strings.Builder, active []*span, boundary int) []*span {
	lowest := -1
	for index, item := range active {
		if item.end == boundary {
			lowest = index
			break
		}
	}
	if lowest < 0 {
		return active
	}

	reopen := make([]*span, 0, len(active)-lowest)
	for index := len(active) - 1; index >= lowest; index-- {
		out.WriteString(active[index].close)
		if active[index].end != boundary {
			reopen = append(reopen, active[index])
		}
	}
	active = active[:lowest]

	for index := len(reopen) - 1; index >= 0; index-- {
		out.WriteString(reopen[index].open)
		active = append(active, reopen[index])
	}

	return active
}

// entityTags returns the open and close tag for one entity in the given mode.
// ok is false when the entity produces no markup.
func entityTags(entity Entity, covered string, options Options) (string, string, bool) {
	switch entity.Type {
	case EntityTypeBold:
		return "<b>", "</b>", true
	case EntityTypeItalic:
		return "<i>", "</i>", true
	case EntityTypeUnderline:
		return "<u>", "</u>", true
	case EntityTypeStrike:
		return "<s>", "</s>", true
	case EntityTypeCode:
		return "<code>", "</code>", true
	case EntityTypePre:
		if entity.Language == "" {
			return "<pre>", "</pre>", true
		}
		return `<pre><code class="language-` + Escape(entity.Language) + `">`, "</code></pre>", true
	case EntityTypeTextURL:
		if entity.URL == "" {
			return "", "", false
		}
		return link(entity.URL)
	case EntityTypeURL:
		return link(covered)
	case EntityTypeEmail:
		return link("mailto:" + covered)
	case EntityTypePhone:
		return link("tel:" + covered)
	case EntityTypeMention:
		username := strings.TrimPrefix(covered, "@")
		if username == "" {
			return "", "", false
		}
		return link("https://t.me/" + username)
	case EntityTypeBlockquote:
		if entity.Collapsed && options.TelegramTags {
			return "<blockquote expandable>", "</blockquote>", true
		}
		return "<blockquote>", "</blockquote>", true
	case EntityTypeSpoiler:
		if !options.TelegramTags {
			return "", "", false
		}
		return "<tg-spoiler>", "</tg-spoiler>", true
	case EntityTypeCustomEmoji:
		if !options.TelegramTags || entity.CustomEmojiID == 0 {
			return "", "", false
		}
		return `<tg-emoji emoji-id="` + strconv.FormatInt(entity.CustomEmojiID, 10) + `">`, "</tg-emoji>", true
	case EntityTypeMentionName:
		if !options.TelegramTags || entity.MentionUserID == 0 {
			return "", "", false
		}
		return link("tg://user?id=" + strconv.FormatInt(entity.MentionUserID, 10))
	default:
		// Hashtags, cashtags, bot commands, bank cards and unknown spans render as text.
		return "", "", false
	}
}

func link(href string) (string, string, bool) {
	return `<a href="` + Escape(href) + `">`, "</a>", true
}
