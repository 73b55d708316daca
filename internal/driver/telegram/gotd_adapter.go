package telegram

import (
	"fmt"
	"time"

	"github.com/gotd/td/tg"
)

func flattenGotdUpdates(updates tg.UpdatesClass) ([]gotdUpdateEnvelope, error) {
	if updates == nil {
		return nil, fmt.Errorf("flatten gotd updates: nil updates")
	}

	switch typed := updates.(type) {
	case *tg.Updates:
		return flattenGotdBatch(typed.Updates, typed.Date, typed.Chats)
	case *tg.UpdatesCombined:
		return flattenGotdBatch(typed.Updates, typed.Date, typed.Chats)
	case *tg.UpdateShort:
		return flattenSingleGotdUpdate(typed.Update, intToTimeUTC(typed.Date), nil)
	case *tg.UpdateShortMessage:
		return flattenShortMessage(typed)
	case *tg.UpdateShortChatMessage:
		return flattenShortChatMessage(typed)
	case *tg.UpdatesTooLong, *tg.UpdateShortSentMessage:
		return nil, nil
	default:
		return nil, fmt.Errorf("flatten gotd updates %s: unsupported container", updates.TypeName())
	}
}

func flattenGotdBatch(updates []tg.UpdateClass, date int, chats []tg.ChatClass) ([]gotdUpdateEnvelope, error) {
	occurredAt := intToTimeUTC(date)
	chatsByID := indexGotdChats(chats)

	batch := make([]gotdUpdateEnvelope, 0, len(updates))
	for _, update := range updates {
		items, err := flattenSingleGotdUpdate(update, occurredAt, chatsByID)
		if err != nil {
			return nil, fmt.Errorf("flatten gotd batch: %w", err)
		}

		batch = append(batch, items...)
	}

	return batch, nil
}

func flattenSingleGotdUpdate(
	update tg.UpdateClass,
	occurredAt time.Time,
	chatsByID map[int64]gotdChatInfo,
) ([]gotdUpdateEnvelope, error) {
	if update == nil {
		return nil, fmt.Errorf("flatten gotd update: nil update")
	}

	return []gotdUpdateEnvelope{
		{
			update:      update,
			occurredAt:  occurredAt,
			chatsByID:   chatsByID,
			updateClass: update.TypeName(),
		},
	}, nil
}

// flattenShortMessage expands a private short message into a full message.
// Outgoing short messages omit from_id because the sender is the current
// account, which the update does not name.
func flattenShortMessage(update *tg.UpdateShortMessage) ([]gotdUpdateEnvelope, error) {
	if update == nil {
		return nil, fmt.Errorf("flatten short message: nil update")
	}

	message := &tg.Message{
		ID:        update.ID,
		PeerID:    &tg.PeerUser{UserID: update.UserID},
		Date:      update.Date,
		Message:   update.Message,
		Out:       update.Out,
		Mentioned: update.Mentioned,
		Silent:    update.Silent,
	}
	if !update.Out {
		message.SetFromID(&tg.PeerUser{UserID: update.UserID})
	}
	copyShortMessageFields(message, update)

	return []gotdUpdateEnvelope{
		{
			update: &tg.UpdateNewMessage{
				Message:  message,
				Pts:      update.Pts,
				PtsCount: update.PtsCount,
			},
			occurredAt:  intToTimeUTC(update.Date),
			updateClass: update.TypeName(),
		},
	}, nil
}

func flattenShortChatMessage(update *tg.UpdateShortChatMessage) ([]gotdUpdateEnvelope, error) {
	if update == nil {
		return nil, fmt.Errorf("flatten short chat message: nil update")
	}

	message := &tg.Message{
		ID:        update.ID,
		PeerID:    &tg.PeerChat{ChatID: update.ChatID},
		Date:      update.Date,
		Message:   update.Message,
		Out:       update.Out,
		Mentioned: update.Mentioned,
		Silent:    update.Silent,
	}
	message.SetFromID(&tg.PeerUser{UserID: update.FromID})
	copyShortMessageFields(message, update)

	return []gotdUpdateEnvelope{
		{
			update: &tg.UpdateNewMessage{
				Message:  message,
				Pts:      update.Pts,
				PtsCount: update.PtsCount,
			},
			occurredAt:  intToTimeUTC(update.Date),
			updateClass: update.TypeName(),
		},
	}, nil
}

// shortMessage is the getter set shared by both short message constructors.
type shortMessage interface {
	GetFwdFrom() (tg.MessageFwdHeader, bool)
	GetReplyTo() (tg.MessageReplyHeaderClass, bool)
	GetEntities() ([]tg.MessageEntityClass, bool)
	GetViaBotID() (int64, bool)
	GetTTLPeriod() (int, bool)
}

func copyShortMessageFields(message *tg.Message, update shortMessage) {
	if fwdFrom, ok := update.GetFwdFrom(); ok {
		message.SetFwdFrom(fwdFrom)
	}
	if replyTo, ok := update.GetReplyTo(); ok {
		message.SetReplyTo(replyTo)
	}
	if entities, ok := update.GetEntities(); ok {
		message.SetEntities(entities)
	}
	if viaBotID, ok := update.GetViaBotID(); ok {
		message.SetViaBotID(viaBotID)
	}
	if ttlPeriod, ok := update.GetTTLPeriod(); ok {
		message.SetTTLPeriod(ttlPeriod)
	}
}

func intToTimeUTC(value int) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.Unix(int64(value), 0).UTC()
}
