package fixture

import (
	"fmt"

	"github.com/gotd/td/tg"
)

// Updates converts every batch into a gotd update container, in file order.
func (f *File) Updates() ([]tg.UpdatesClass, error) {
	out := make([]tg.UpdatesClass, 0, len(f.Batches))
	for index, batch := range f.Batches {
		updates, err := batch.updates()
		if err != nil {
			return nil, fmt.Errorf("batch %d: %w", index, err)
		}
		out = append(out, updates)
	}

	return out, nil
}

func (b Batch) updates() (*tg.Updates, error) {
	container := &tg.Updates{
		Date:    b.Date,
		Updates: make([]tg.UpdateClass, 0, len(b.Updates)),
		Chats:   make([]tg.ChatClass, 0, len(b.Chats)),
		Users:   []tg.UserClass{},
	}

	for _, chat := range b.Chats {
		mapped, err := chat.gotd()
		if err != nil {
			return nil, err
		}
		container.Chats = append(container.Chats, mapped)
	}

	for index, update := range b.Updates {
		mapped, err := update.gotd()
		if err != nil {
			return nil, fmt.Errorf("update %d: %w", index, err)
		}
		container.Updates = append(container.Updates, mapped)
	}

	return container, nil
}

func (c Chat) gotd() (tg.ChatClass, error) {
	switch c.Type {
	case "chat", "":
		return &tg.Chat{ID: c.ID, Title: c.Title}, nil
	case "channel":
		return &tg.Channel{
			ID:        c.ID,
			Title:     c.Title,
			Forum:     c.Forum,
			Megagroup: c.Megagroup,
			Broadcast: !c.Megagroup,
		}, nil
	default:
		return nil, fmt.Errorf("chat %d type %q: %w", c.ID, c.Type, ErrInvalidFixture)
	}
}

func (u Update) gotd() (tg.UpdateClass, error) {
	message, err := u.Message.gotd()
	if err != nil {
		return nil, fmt.Errorf("message %d: %w", u.Message.ID, err)
	}

	_, inChannel := message.PeerID.(*tg.PeerChannel)
	switch u.Kind {
	case "new", "":
		if inChannel {
			return &tg.UpdateNewChannelMessage{Message: message}, nil
		}
		return &tg.UpdateNewMessage{Message: message}, nil
	case "edit":
		if inChannel {
			return &tg.UpdateEditChannelMessage{Message: message}, nil
		}
		return &tg.UpdateEditMessage{Message: message}, nil
	case "scheduled":
		return &tg.UpdateNewScheduledMessage{Message: message}, nil
	default:
		return nil, fmt.Errorf("update kind %q: %w", u.Kind, ErrInvalidFixture)
	}
}

func (p Peer) gotd() (tg.PeerClass, error) {
	set := 0
	var peer tg.PeerClass
	if p.User != 0 {
		set++
		peer = &tg.PeerUser{UserID: p.User}
	}
	if p.Chat != 0 {
		set++
		peer = &tg.PeerChat{ChatID: p.Chat}
	}
	if p.Channel != 0 {
		set++
		peer = &tg.PeerChannel{ChannelID: p.Channel}
	}
	if set != 1 {
		return nil, fmt.Errorf("peer must name exactly one of user, chat, channel: %w", ErrInvalidFixture)
	}

	return peer, nil
}

func (m Message) gotd() (*tg.Message, error) {
	peer, err := m.Peer.gotd()
	if err != nil {
		return nil, fmt.Errorf("peer: %w", err)
	}

	message := &tg.Message{
		ID:            m.ID,
		PeerID:        peer,
		Date:          m.Date,
		Message:       m.Text,
		Out:           m.Out,
		Mentioned:     m.Mentioned,
		Silent:        m.Silent,
		FromScheduled: m.FromScheduled,
		Pinned:        m.Pinned,
		Noforwards:    m.Noforwards,
	}

	if m.From != nil {
		from, err := m.From.gotd()
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		message.SetFromID(from)
	}
	if m.ViaBotID != nil {
		message.SetViaBotID(*m.ViaBotID)
	}
	if m.EditDate != nil {
		message.SetEditDate(*m.EditDate)
	}
	if m.TTLPeriod != nil {
		message.SetTTLPeriod(*m.TTLPeriod)
	}
	if m.ReplyTo != nil {
		message.SetReplyTo(m.ReplyTo.gotd())
	}
	if m.FwdFrom != nil {
		forward, err := m.FwdFrom.gotd()
		if err != nil {
			return nil, fmt.Errorf("fwd_from: %w", err)
		}
		message.SetFwdFrom(forward)
	}
	if len(m.Entities) > 0 {
		entities, err := gotdEntities(m.Entities)
		if err != nil {
			return nil, err
		}
		message.SetEntities(entities)
	}
	if m.ReplyMarkup != nil {
		markup, err := m.ReplyMarkup.gotd()
		if err != nil {
			return nil, fmt.Errorf("reply_markup: %w", err)
		}
		message.SetReplyMarkup(markup)
	}

	return message, nil
}

func (r ReplyTo) gotd() *tg.MessageReplyHeader {
	header := &tg.MessageReplyHeader{
		ReplyToScheduled: r.Scheduled,
		ForumTopic:       r.ForumTopic,
	}
	if r.MsgID != nil {
		header.SetReplyToMsgID(*r.MsgID)
	}
	if r.TopID != nil {
		header.SetReplyToTopID(*r.TopID)
	}

	return header
}

func (f FwdFrom) gotd() (tg.MessageFwdHeader, error) {
	header := tg.MessageFwdHeader{Date: f.Date, Imported: f.Imported}

	if f.From != nil {
		from, err := f.From.gotd()
		if err != nil {
			return tg.MessageFwdHeader{}, fmt.Errorf("from: %w", err)
		}
		header.SetFromID(from)
	}
	if f.SavedFromPeer != nil {
		saved, err := f.SavedFromPeer.gotd()
		if err != nil {
			return tg.MessageFwdHeader{}, fmt.Errorf("saved_from_peer: %w", err)
		}
		header.SetSavedFromPeer(saved)
	}
	if f.FromName != nil {
		header.SetFromName(*f.FromName)
	}
	if f.ChannelPost != nil {
		header.SetChannelPost(*f.ChannelPost)
	}
	if f.PostAuthor != nil {
		header.SetPostAuthor(*f.PostAuthor)
	}
	if f.SavedFromMsgID != nil {
		header.SetSavedFromMsgID(*f.SavedFromMsgID)
	}
	if f.PSAType != nil {
		header.SetPsaType(*f.PSAType)
	}

	return header, nil
}

func gotdEntities(entities []Entity) ([]tg.MessageEntityClass, error) {
	out := make([]tg.MessageEntityClass, 0, len(entities))
	for index, entity := range entities {
		mapped, err := entity.gotd()
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", index, err)
		}
		out = append(out, mapped)
	}

	return out, nil
}

func (e Entity) gotd() (tg.MessageEntityClass, error) {
	offset, length := e.Offset, e.Length

	switch e.Type {
	case "unknown":
		return &tg.MessageEntityUnknown{Offset: offset, Length: length}, nil
	case "mention":
		return &tg.MessageEntityMention{Offset: offset, Length: length}, nil
	case "hashtag":
		return &tg.MessageEntityHashtag{Offset: offset, Length: length}, nil
	case "cashtag":
		return &tg.MessageEntityCashtag{Offset: offset, Length: length}, nil
	case "bot_command":
		return &tg.MessageEntityBotCommand{Offset: offset, Length: length}, nil
	case "url":
		return &tg.MessageEntityURL{Offset: offset, Length: length}, nil
	case "email":
		return &tg.MessageEntityEmail{Offset: offset, Length: length}, nil
	case "phone":
		return &tg.MessageEntityPhone{Offset: offset, Length: length}, nil
	case "bank_card":
		return &tg.MessageEntityBankCard{Offset: offset, Length: length}, nil
	case "bold":
		return &tg.MessageEntityBold{Offset: offset, Length: length}, nil
	case "italic":
		return &tg.MessageEntityItalic{Offset: offset, Length: length}, nil
	case "underline":
		return &tg.MessageEntityUnderline{Offset: offset, Length: length}, nil
	case "strike":
		return &tg.MessageEntityStrike{Offset: offset, Length: length}, nil
	case "code":
		return &tg.MessageEntityCode{Offset: offset, Length: length}, nil
	case "pre":
		return &tg.MessageEntityPre{Offset: offset, Length: length, Language: e.Language}, nil
	case "text_url":
		return &tg.MessageEntityTextURL{Offset: offset, Length: length, URL: e.URL}, nil
	case "mention_name":
		return &tg.MessageEntityMentionName{Offset: offset, Length: length, UserID: e.UserID}, nil
	case "blockquote":
		return &tg.MessageEntityBlockquote{Offset: offset, Length: length, Collapsed: e.Collapsed}, nil
	case "spoiler":
		return &tg.MessageEntitySpoiler{Offset: offset, Length: length}, nil
	case "custom_emoji":
		return &tg.MessageEntityCustomEmoji{Offset: offset, Length: length, DocumentID: e.EmojiID}, nil
	default:
		return nil, fmt.Errorf("entity type %q: %w", e.Type, ErrInvalidFixture)
	}
}

func (r ReplyMarkup) gotd() (tg.ReplyMarkupClass, error) {
	switch r.Type {
	case "hide":
		return &tg.ReplyKeyboardHide{Selective: r.Selective}, nil
	case "force_reply":
		markup := &tg.ReplyKeyboardForceReply{SingleUse: r.SingleUse, Selective: r.Selective}
		if r.Placeholder != "" {
			markup.SetPlaceholder(r.Placeholder)
		}
		return markup, nil
	case "inline":
		rows, err := gotdButtonRows(r.Rows)
		if err != nil {
			return nil, err
		}
		return &tg.ReplyInlineMarkup{Rows: rows}, nil
	case "reply":
		rows, err := gotdButtonRows(r.Rows)
		if err != nil {
			return nil, err
		}
		markup := &tg.ReplyKeyboardMarkup{
			Resize:     r.Resize,
			SingleUse:  r.SingleUse,
			Selective:  r.Selective,
			Persistent: r.Persistent,
			Rows:       rows,
		}
		if r.Placeholder != "" {
			markup.SetPlaceholder(r.Placeholder)
		}
		return markup, nil
	default:
		return nil, fmt.Errorf("markup type %q: %w", r.Type, ErrInvalidFixture)
	}
}

func gotdButtonRows(rows [][]Button) ([]tg.KeyboardButtonRow, error) {
	out := make([]tg.KeyboardButtonRow, 0, len(rows))
	for rowIndex, row := range rows {
		buttons := make([]tg.KeyboardButtonClass, 0, len(row))
		for buttonIndex, button := range row {
			mapped, err := button.gotd()
			if err != nil {
				return nil, fmt.Errorf("button %d/%d: %w", rowIndex, buttonIndex, err)
			}
			buttons = append(buttons, mapped)
		}
		out = append(out, tg.KeyboardButtonRow{Buttons: buttons})
	}

	return out, nil
}

func (b Button) gotd() (tg.KeyboardButtonClass, error) {
	switch b.Kind {
	case "text", "":
		return &tg.KeyboardButton{Text: b.Text}, nil
	case "url":
		return &tg.KeyboardButtonURL{Text: b.Text, URL: b.URL}, nil
	case "callback":
		return &tg.KeyboardButtonCallback{Text: b.Text, Data: []byte(b.Data)}, nil
	case "switch_inline":
		return &tg.KeyboardButtonSwitchInline{Text: b.Text, Query: b.Query, SamePeer: b.SamePeer}, nil
	case "game":
		return &tg.KeyboardButtonGame{Text: b.Text}, nil
	case "buy":
		return &tg.KeyboardButtonBuy{Text: b.Text}, nil
	case "request_phone":
		return &tg.KeyboardButtonRequestPhone{Text: b.Text}, nil
	case "request_location":
		return &tg.KeyboardButtonRequestGeoLocation{Text: b.Text}, nil
	case "user_profile":
		return &tg.KeyboardButtonUserProfile{Text: b.Text, UserID: b.UserID}, nil
	case "web_view":
		return &tg.KeyboardButtonWebView{Text: b.Text, URL: b.URL}, nil
	case "copy":
		return &tg.KeyboardButtonCopy{Text: b.Text, CopyText: b.Data}, nil
	default:
		return nil, fmt.Errorf("button kind %q: %w", b.Kind, ErrInvalidFixture)
	}
}
