package telegram

import (
	"fmt"

	"ex-tgnorm/pkg/tgnorm"

	"github.com/gotd/td/tg"
)

// GotdKeyboardBuilder maps gotd reply markup into tgnorm keyboards.
type GotdKeyboardBuilder struct{}

// NewGotdKeyboardBuilder creates a gotd keyboard builder.
func NewGotdKeyboardBuilder() GotdKeyboardBuilder {
	return GotdKeyboardBuilder{}
}

// BuildKeyboard maps inline and reply keyboards. Keyboard removal and
// force-reply markers carry no buttons and yield a nil keyboard.
func (GotdKeyboardBuilder) BuildKeyboard(markup any) (tgnorm.Keyboard, error) {
	switch typed := markup.(type) {
	case *tg.ReplyInlineMarkup:
		return &tgnorm.InlineKeyboard{ButtonRows: mapButtonRows(typed.Rows)}, nil
	case *tg.ReplyKeyboardMarkup:
		keyboard := &tgnorm.ReplyKeyboard{
			ButtonRows: mapButtonRows(typed.Rows),
			Resize:     typed.Resize,
			SingleUse:  typed.SingleUse,
			Selective:  typed.Selective,
			Persistent: typed.Persistent,
		}
		if placeholder, ok := typed.GetPlaceholder(); ok {
			keyboard.Placeholder = placeholder
		}
		return keyboard, nil
	case *tg.ReplyKeyboardHide, *tg.ReplyKeyboardForceReply:
		return nil, nil
	default:
		return nil, fmt.Errorf("build keyboard %T: %w", markup, ErrUnsupportedMarkup)
	}
}

func mapButtonRows(rows []tg.KeyboardButtonRow) [][]tgnorm.Button {
	if len(rows) == 0 {
		return nil
	}

	out := make([][]tgnorm.Button, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgnorm.Button, 0, len(row.Buttons))
		for _, button := range row.Buttons {
			if button == nil {
				continue
			}
			buttons = append(buttons, mapButton(button))
		}
		out = append(out, buttons)
	}

	return out
}

func mapButton(button tg.KeyboardButtonClass) tgnorm.Button {
	mapped := tgnorm.Button{
		Kind: tgnorm.ButtonKindUnknown,
		Text: button.GetText(),
	}

	switch typed := button.(type) {
	case *tg.KeyboardButton:
		mapped.Kind = tgnorm.ButtonKindText
	case *tg.KeyboardButtonURL:
		mapped.Kind = tgnorm.ButtonKindURL
		mapped.URL = typed.URL
	case *tg.KeyboardButtonCallback:
		mapped.Kind = tgnorm.ButtonKindCallback
		mapped.Data = append([]byte(nil), typed.Data...)
		mapped.RequiresPassword = typed.RequiresPassword
	case *tg.KeyboardButtonSwitchInline:
		mapped.Kind = tgnorm.ButtonKindSwitchInline
		mapped.Query = typed.Query
		mapped.SamePeer = typed.SamePeer
	case *tg.KeyboardButtonGame:
		mapped.Kind = tgnorm.ButtonKindGame
	case *tg.KeyboardButtonBuy:
		mapped.Kind = tgnorm.ButtonKindBuy
	case *tg.KeyboardButtonURLAuth:
		mapped.Kind = tgnorm.ButtonKindURLAuth
		mapped.URL = typed.URL
	case *tg.KeyboardButtonRequestPhone:
		mapped.Kind = tgnorm.ButtonKindRequestPhone
	case *tg.KeyboardButtonRequestGeoLocation:
		mapped.Kind = tgnorm.ButtonKindRequestLocation
	case *tg.KeyboardButtonRequestPoll:
		mapped.Kind = tgnorm.ButtonKindRequestPoll
	case *tg.KeyboardButtonUserProfile:
		mapped.Kind = tgnorm.ButtonKindUserProfile
		mapped.UserID = typed.UserID
	case *tg.KeyboardButtonWebView:
		mapped.Kind = tgnorm.ButtonKindWebView
		mapped.URL = typed.URL
	case *tg.KeyboardButtonSimpleWebView:
		mapped.Kind = tgnorm.ButtonKindWebView
		mapped.URL = typed.URL
	case *tg.KeyboardButtonCopy:
		mapped.Kind = tgnorm.ButtonKindCopy
		mapped.Data = []byte(typed.CopyText)
	}

	return mapped
}

var _ tgnorm.KeyboardBuilder = GotdKeyboardBuilder{}
