package telegram

import (
	"strings"

	"ex-tgnorm/pkg/richtext"
	"ex-tgnorm/pkg/tgnorm"

	"github.com/gotd/td/tg"
)

// MapMessageRecord projects a gotd message into the raw record consumed by
// tgnorm.Normalizer.
//
// Peers and reply markup stay gotd values; PeerDirectory and
// GotdKeyboardBuilder interpret them.
func MapMessageRecord(message *tg.Message) tgnorm.Record {
	if message == nil {
		return nil
	}

	record := tgnorm.Record{
		"id":             message.ID,
		"peer_id":        message.PeerID,
		"date":           message.Date,
		"message":        message.Message,
		"mentioned":      message.Mentioned,
		"silent":         message.Silent,
		"from_scheduled": message.FromScheduled,
		"pinned":         message.Pinned,
		"noforwards":     message.Noforwards,
	}

	if fromID, ok := message.GetFromID(); ok {
		record["from_id"] = fromID
	}
	if viaBotID, ok := message.GetViaBotID(); ok {
		record["via_bot_id"] = viaBotID
	}
	if editDate, ok := message.GetEditDate(); ok {
		record["edit_date"] = editDate
	}
	if ttlPeriod, ok := message.GetTTLPeriod(); ok {
		record["ttl_period"] = ttlPeriod
	}
	if markup, ok := message.GetReplyMarkup(); ok && markup != nil {
		record["reply_markup"] = markup
	}
	if replyTo, ok := message.GetReplyTo(); ok {
		if header := mapReplyHeader(replyTo); header != nil {
			record["reply_to"] = header
		}
	}
	if fwdFrom, ok := message.GetFwdFrom(); ok {
		record["fwd_from"] = mapForwardHeader(fwdFrom)
	}
	if entities, ok := message.GetEntities(); ok {
		if mapped := mapTextEntities(entities); len(mapped) > 0 {
			record["entities"] = mapped
		}
	}

	return record
}

// mapReplyHeader maps message replies. Story replies carry no message linkage.
func mapReplyHeader(replyTo tg.MessageReplyHeaderClass) tgnorm.Record {
	header, ok := replyTo.(*tg.MessageReplyHeader)
	if !ok || header == nil {
		return nil
	}

	record := tgnorm.Record{
		"reply_to_scheduled": header.ReplyToScheduled,
		"forum_topic":        header.ForumTopic,
	}
	if msgID, ok := header.GetReplyToMsgID(); ok {
		record["reply_to_msg_id"] = msgID
	}
	if topID, ok := header.GetReplyToTopID(); ok {
		record["reply_to_top_id"] = topID
	}

	return record
}

func mapForwardHeader(header tg.MessageFwdHeader) tgnorm.Record {
	record := tgnorm.Record{
		"date":     header.Date,
		"imported": header.Imported,
	}
	if fromID, ok := header.GetFromID(); ok {
		record["from_id"] = fromID
	}
	if fromName, ok := header.GetFromName(); ok {
		record["from_name"] = fromName
	}
	if channelPost, ok := header.GetChannelPost(); ok {
		record["channel_post"] = channelPost
	}
	if postAuthor, ok := header.GetPostAuthor(); ok {
		record["post_author"] = postAuthor
	}
	if savedFromPeer, ok := header.GetSavedFromPeer(); ok {
		record["saved_from_peer"] = savedFromPeer
	}
	if savedFromMsgID, ok := header.GetSavedFromMsgID(); ok {
		record["saved_from_msg_id"] = savedFromMsgID
	}
	if psaType, ok := header.GetPsaType(); ok {
		record["psa_type"] = psaType
	}

	return record
}

func mapTextEntities(entities []tg.MessageEntityClass) []richtext.Entity {
	if len(entities) == 0 {
		return nil
	}

	out := make([]richtext.Entity, 0, len(entities))
	for _, entity := range entities {
		if entity == nil {
			continue
		}
		out = append(out, mapTextEntity(entity))
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

func mapTextEntity(entity tg.MessageEntityClass) richtext.Entity {
	mapped := richtext.Entity{
		Type:   mapTextEntityType(entity),
		Offset: entity.GetOffset(),
		Length: entity.GetLength(),
	}

	switch typed := entity.(type) {
	case *tg.MessageEntityPre:
		mapped.Language = typed.Language
	case *tg.MessageEntityTextURL:
		mapped.URL = typed.URL
	case *tg.MessageEntityMentionName:
		mapped.MentionUserID = typed.UserID
	case *tg.MessageEntityCustomEmoji:
		mapped.CustomEmojiID = typed.DocumentID
	case *tg.MessageEntityBlockquote:
		mapped.Collapsed = typed.Collapsed
	}

	return mapped
}

func mapTextEntityType(entity tg.MessageEntityClass) richtext.EntityType {
	switch entity.(type) {
	case *tg.MessageEntityMention:
		return richtext.EntityTypeMention
	case *tg.MessageEntityHashtag:
		return richtext.EntityTypeHashtag
	case *tg.MessageEntityCashtag:
		return richtext.EntityTypeCashtag
	case *tg.MessageEntityBotCommand:
		return richtext.EntityTypeBotCommand
	case *tg.MessageEntityURL:
		return richtext.EntityTypeURL
	case *tg.MessageEntityEmail:
		return richtext.EntityTypeEmail
	case *tg.MessageEntityPhone:
		return richtext.EntityTypePhone
	case *tg.MessageEntityBankCard:
		return richtext.EntityTypeBankCard
	case *tg.MessageEntityBold:
		return richtext.EntityTypeBold
	case *tg.MessageEntityItalic:
		return richtext.EntityTypeItalic
	case *tg.MessageEntityUnderline:
		return richtext.EntityTypeUnderline
	case *tg.MessageEntityStrike:
		return richtext.EntityTypeStrike
	case *tg.MessageEntityCode:
		return richtext.EntityTypeCode
	case *tg.MessageEntityPre:
		return richtext.EntityTypePre
	case *tg.MessageEntityTextURL:
		return richtext.EntityTypeTextURL
	case *tg.MessageEntityMentionName:
		return richtext.EntityTypeMentionName
	case *tg.MessageEntityBlockquote:
		return richtext.EntityTypeBlockquote
	case *tg.MessageEntitySpoiler:
		return richtext.EntityTypeSpoiler
	case *tg.MessageEntityCustomEmoji:
		return richtext.EntityTypeCustomEmoji
	default:
		return richtext.EntityTypeUnknown
	}
}

// newGotdMetadata records where a decoded message came from.
func newGotdMetadata(envelope gotdUpdateEnvelope, chatTitle string) map[string]string {
	metadata := map[string]string{
		"gotd_update_class": strings.TrimSpace(envelope.updateClass),
	}
	if chatTitle != "" {
		metadata["chat_title"] = chatTitle
	}

	return metadata
}
