package richtext

import (
	"strings"
	"unicode"
)

// EntityType identifies the annotation class of one text span.
type EntityType string

const (
	// EntityTypeUnknown marks spans the protocol could not classify.
	EntityTypeUnknown EntityType = "unknown"
	// EntityTypeMention marks an @username mention.
	EntityTypeMention EntityType = "mention"
	// EntityTypeHashtag marks a #hashtag.
	EntityTypeHashtag EntityType = "hashtag"
	// EntityTypeCashtag marks a $CASHTAG.
	EntityTypeCashtag EntityType = "cashtag"
	// EntityTypeBotCommand marks a /command.
	EntityTypeBotCommand EntityType = "bot_command"
	// EntityTypeURL marks a bare URL.
	EntityTypeURL EntityType = "url"
	// EntityTypeEmail marks an email address.
	EntityTypeEmail EntityType = "email"
	// EntityTypePhone marks a phone number.
	EntityTypePhone EntityType = "phone"
	// EntityTypeBankCard marks a bank card number.
	EntityTypeBankCard EntityType = "bank_card"
	// EntityTypeBold marks bold text.
	EntityTypeBold EntityType = "bold"
	// EntityTypeItalic marks italic text.
	EntityTypeItalic EntityType = "italic"
	// EntityTypeUnderline marks underlined text.
	EntityTypeUnderline EntityType = "underline"
	// EntityTypeStrike marks strikethrough text.
	EntityTypeStrike EntityType = "strike"
	// EntityTypeCode marks inline monospace text.
	EntityTypeCode EntityType = "code"
	// EntityTypePre marks a preformatted block with optional Language.
	EntityTypePre EntityType = "pre"
	// EntityTypeTextURL marks text linked to URL.
	EntityTypeTextURL EntityType = "text_url"
	// EntityTypeMentionName marks a mention of MentionUserID without a username.
	EntityTypeMentionName EntityType = "mention_name"
	// EntityTypeBlockquote marks a quote block, optionally Collapsed.
	EntityTypeBlockquote EntityType = "blockquote"
	// EntityTypeSpoiler marks hidden spoiler text.
	EntityTypeSpoiler EntityType = "spoiler"
	// EntityTypeCustomEmoji marks a custom emoji identified by CustomEmojiID.
	EntityTypeCustomEmoji EntityType = "custom_emoji"
)

// Entity is one annotation span over message text.
//
// Offset and Length are measured in UTF-16 code units, matching the unit the
// Telegram protocol uses for message entities.
type Entity struct {
	// Type identifies the annotation class.
	Type EntityType
	// Offset is the zero-based UTF-16 offset of the span start.
	Offset int
	// Length is the span length in UTF-16 code units.
	Length int
	// URL is the link target for text_url spans.
	URL string
	// Language is the optional code language for pre spans.
	Language string
	// MentionUserID is the mentioned user for mention_name spans.
	MentionUserID int64
	// CustomEmojiID is the emoji document id for custom_emoji spans.
	CustomEmojiID int64
	// Collapsed reports whether a blockquote starts collapsed.
	Collapsed bool
}

// End returns the exclusive UTF-16 end offset of the span.
func (e Entity) End() int {
	return e.Offset + e.Length
}

var knownEntityTypes = map[EntityType]struct{}{
	EntityTypeMention:     {},
	EntityTypeHashtag:     {},
	EntityTypeCashtag:     {},
	EntityTypeBotCommand:  {},
	EntityTypeURL:         {},
	EntityTypeEmail:       {},
	EntityTypePhone:       {},
	EntityTypeBankCard:    {},
	EntityTypeBold:        {},
	EntityTypeItalic:      {},
	EntityTypeUnderline:   {},
	EntityTypeStrike:      {},
	EntityTypeCode:        {},
	EntityTypePre:         {},
	EntityTypeTextURL:     {},
	EntityTypeMentionName: {},
	EntityTypeBlockquote:  {},
	EntityTypeSpoiler:     {},
	EntityTypeCustomEmoji: {},
}

// ParseEntityType maps a type name such as "text_url" or a TL constructor name
// such as "messageEntityTextUrl" to an EntityType. Unrecognized names yield
// EntityTypeUnknown.
func ParseEntityType(raw string) EntityType {
	name := strings.TrimSpace(raw)
	if constructor, ok := strings.CutPrefix(name, "messageEntity"); ok {
		name = snakeCase(constructor)
	}

	entityType := EntityType(name)
	if _, ok := knownEntityTypes[entityType]; !ok {
		return EntityTypeUnknown
	}

	return entityType
}

func snakeCase(camel string) string {
	var out strings.Builder
	for index, r := range camel {
		if unicode.IsUpper(r) {
			if index > 0 {
				out.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		out.WriteRune(r)
	}

	return out.String()
}
