package tgnorm

// ButtonKind identifies what pressing a keyboard button does.
type ButtonKind string

const (
	// ButtonKindText sends the button text as a message.
	ButtonKindText ButtonKind = "text"
	// ButtonKindURL opens URL.
	ButtonKindURL ButtonKind = "url"
	// ButtonKindCallback sends Data back to the bot.
	ButtonKindCallback ButtonKind = "callback"
	// ButtonKindSwitchInline starts an inline query with Query.
	ButtonKindSwitchInline ButtonKind = "switch_inline"
	// ButtonKindGame launches a game.
	ButtonKindGame ButtonKind = "game"
	// ButtonKindBuy opens a payment form.
	ButtonKindBuy ButtonKind = "buy"
	// ButtonKindURLAuth opens URL after a login prompt.
	ButtonKindURLAuth ButtonKind = "url_auth"
	// ButtonKindRequestPhone shares the user phone number.
	ButtonKindRequestPhone ButtonKind = "request_phone"
	// ButtonKindRequestLocation shares the user location.
	ButtonKindRequestLocation ButtonKind = "request_location"
	// ButtonKindRequestPoll asks the user to create a poll.
	ButtonKindRequestPoll ButtonKind = "request_poll"
	// ButtonKindUserProfile opens the profile of UserID.
	ButtonKindUserProfile ButtonKind = "user_profile"
	// ButtonKindWebView opens URL as a web app.
	ButtonKindWebView ButtonKind = "web_view"
	// ButtonKindCopy copies Data to the clipboard.
	ButtonKindCopy ButtonKind = "copy"
	// ButtonKindUnknown is any button the builder cannot classify.
	ButtonKindUnknown ButtonKind = "unknown"
)

// Button is one keyboard button.
type Button struct {
	Kind             ButtonKind
	Text             string
	URL              string
	Data             []byte
	Query            string
	SamePeer         bool
	UserID           int64
	RequiresPassword bool
}

// Keyboard is an attached keyboard: *InlineKeyboard or *ReplyKeyboard.
type Keyboard interface {
	// Rows returns a copy of the button grid.
	Rows() [][]Button
	keyboard()
}

// InlineKeyboard is a keyboard rendered under the message.
type InlineKeyboard struct {
	ButtonRows [][]Button
}

// Rows returns a copy of the button grid.
func (k *InlineKeyboard) Rows() [][]Button {
	return cloneRows(k.ButtonRows)
}

func (*InlineKeyboard) keyboard() {}

// ReplyKeyboard is a custom keyboard replacing the client keyboard.
type ReplyKeyboard struct {
	ButtonRows  [][]Button
	Resize      bool
	SingleUse   bool
	Selective   bool
	Persistent  bool
	Placeholder string
}

// Rows returns a copy of the button grid.
func (k *ReplyKeyboard) Rows() [][]Button {
	return cloneRows(k.ButtonRows)
}

func (*ReplyKeyboard) keyboard() {}

// KeyboardBuilder builds a keyboard from raw reply markup.
//
// A nil keyboard with a nil error means the markup carries no keyboard, for
// example a keyboard removal or force-reply marker.
type KeyboardBuilder interface {
	BuildKeyboard(markup any) (Keyboard, error)
}

// KeyboardBuilderFunc adapts a function to KeyboardBuilder.
type KeyboardBuilderFunc func(markup any) (Keyboard, error)

// BuildKeyboard calls f.
func (f KeyboardBuilderFunc) BuildKeyboard(markup any) (Keyboard, error) {
	return f(markup)
}

func cloneKeyboard(keyboard Keyboard) Keyboard {
	switch typed := keyboard.(type) {
	case *InlineKeyboard:
		if typed == nil {
			return nil
		}
		return &InlineKeyboard{ButtonRows: cloneRows(typed.ButtonRows)}
	case *ReplyKeyboard:
		if typed == nil {
			return nil
		}
		cloned := *typed
		cloned.ButtonRows = cloneRows(typed.ButtonRows)
		return &cloned
	default:
		return nil
	}
}

func cloneRows(rows [][]Button) [][]Button {
	if rows == nil {
		return nil
	}

	cloned := make([][]Button, len(rows))
	for rowIndex, row := range rows {
		cloned[rowIndex] = make([]Button, len(row))
		for buttonIndex, button := range row {
			button.Data = append([]byte(nil), button.Data...)
			cloned[rowIndex][buttonIndex] = button
		}
	}

	return cloned
}
