package telegram

import (
	"errors"
	"testing"

	"ex-tgnorm/pkg/tgnorm"

	"github.com/gotd/td/tg"
)

func TestGotdKeyboardBuilderInlineMarkup(t *testing.T) {
	t.Parallel()

	markup := &tg.ReplyInlineMarkup{Rows: []tg.KeyboardButtonRow{
		{Buttons: []tg.KeyboardButtonClass{
			&tg.KeyboardButtonURL{Text: "Site", URL: "https://example.com"},
			&tg.KeyboardButtonCallback{Text: "Vote", Data: []byte("v:1"), RequiresPassword: true},
		}},
		{Buttons: []tg.KeyboardButtonClass{
			&tg.KeyboardButtonSwitchInline{Text: "Share", Query: "q", SamePeer: true},
			&tg.KeyboardButtonUserProfile{Text: "Owner", UserID: 42},
			&tg.KeyboardButtonCopy{Text: "Copy", CopyText: "promo"},
		}},
	}}

	keyboard, err := NewGotdKeyboardBuilder().BuildKeyboard(markup)
	if err != nil {
		t.Fatalf("build keyboard failed: %v", err)
	}
	inline, ok := keyboard.(*tgnorm.InlineKeyboard)
	if !ok {
		t.Fatalf("keyboard = %T, want *tgnorm.InlineKeyboard", keyboard)
	}

	rows := inline.Rows()
	if len(rows) != 2 || len(rows[0]) != 2 || len(rows[1]) != 3 {
		t.Fatalf("rows = %+v, want 2x(2,3) grid", rows)
	}
	if rows[0][0].Kind != tgnorm.ButtonKindURL || rows[0][0].URL != "https://example.com" {
		t.Fatalf("button[0][0] = %+v, want url button", rows[0][0])
	}
	if rows[0][1].Kind != tgnorm.ButtonKindCallback || string(rows[0][1].Data) != "v:1" || !rows[0][1].RequiresPassword {
		t.Fatalf("button[0][1] = %+v, want password callback", rows[0][1])
	}
	if rows[1][0].Kind != tgnorm.ButtonKindSwitchInline || rows[1][0].Query != "q" || !rows[1][0].SamePeer {
		t.Fatalf("button[1][0] = %+v, want same-peer switch inline", rows[1][0])
	}
	if rows[1][1].Kind != tgnorm.ButtonKindUserProfile || rows[1][1].UserID != 42 {
		t.Fatalf("button[1][1] = %+v, want user profile 42", rows[1][1])
	}
	if rows[1][2].Kind != tgnorm.ButtonKindCopy || string(rows[1][2].Data) != "promo" {
		t.Fatalf("button[1][2] = %+v, want copy button", rows[1][2])
	}
}

func TestGotdKeyboardBuilderReplyMarkup(t *testing.T) {
	t.Parallel()

	markup := &tg.ReplyKeyboardMarkup{
		Resize:    true,
		SingleUse: true,
		Rows: []tg.KeyboardButtonRow{{Buttons: []tg.KeyboardButtonClass{
			&tg.KeyboardButton{Text: "Menu"},
			&tg.KeyboardButtonRequestPhone{Text: "Phone"},
			&tg.KeyboardButtonRequestGeoLocation{Text: "Where"},
		}}},
	}
	markup.SetPlaceholder("Pick one")

	keyboard, err := NewGotdKeyboardBuilder().BuildKeyboard(markup)
	if err != nil {
		t.Fatalf("build keyboard failed: %v", err)
	}
	reply, ok := keyboard.(*tgnorm.ReplyKeyboard)
	if !ok {
		t.Fatalf("keyboard = %T, want *tgnorm.ReplyKeyboard", keyboard)
	}
	if !reply.Resize || !reply.SingleUse || reply.Selective || reply.Persistent {
		t.Fatalf("reply flags = %+v, want resize and single use only", reply)
	}
	if reply.Placeholder != "Pick one" {
		t.Fatalf("placeholder = %q, want Pick one", reply.Placeholder)
	}

	wantKinds := []tgnorm.ButtonKind{tgnorm.ButtonKindText, tgnorm.ButtonKindRequestPhone, tgnorm.ButtonKindRequestLocation}
	for index, want := range wantKinds {
		if got := reply.ButtonRows[0][index].Kind; got != want {
			t.Fatalf("button[%d] kind = %s, want %s", index, got, want)
		}
	}
}

func TestGotdKeyboardBuilderMarkupWithoutButtons(t *testing.T) {
	t.Parallel()

	builder := NewGotdKeyboardBuilder()
	for _, markup := range []tg.ReplyMarkupClass{&tg.ReplyKeyboardHide{}, &tg.ReplyKeyboardForceReply{}} {
		keyboard, err := builder.BuildKeyboard(markup)
		if err != nil {
			t.Fatalf("build %T failed: %v", markup, err)
		}
		if keyboard != nil {
			t.Fatalf("keyboard for %T = %#v, want nil", markup, keyboard)
		}
	}
}

func TestGotdKeyboardBuilderUnsupportedMarkup(t *testing.T) {
	t.Parallel()

	if _, err := NewGotdKeyboardBuilder().BuildKeyboard("markup"); !errors.Is(err, ErrUnsupportedMarkup) {
		t.Fatalf("error = %v, want ErrUnsupportedMarkup", err)
	}
}
