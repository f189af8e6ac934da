package bot

type Update struct {
	UpdateID int64          `json:"update_id"`
	Message  *Message       `json:"message,omitempty"`
	Callback *CallbackQuery `json:"callback_query,omitempty"`
}

type Message struct {
	MessageID int64    `json:"message_id"`
	From      *User    `json:"from"`
	Chat      *Chat    `json:"chat"`
	Text      string   `json:"text"`
	Contact   *Contact `json:"contact,omitempty"`
	ReplyTo   *Message `json:"reply_to_message,omitempty"`
}

type Chat struct {
	ID int64 `json:"id"`
}
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}
type Contact struct {
	PhoneNumber string `json:"phone_number"`
	UserID      int64  `json:"user_id"`
}

type CallbackQuery struct {
	ID      string   `json:"id"`
	From    *User    `json:"from"`
	Message *Message `json:"message"`
	Data    string   `json:"data"`
}

// View is the canonical flat form of an update: one struct regardless of
// whether the event arrived as a message or a button press.
type View struct {
	ChatID       int64
	UserID       int64
	Username     string
	Text         string
	ContactPhone string
	ReplyToText  string
	CallbackData string
	CallbackID   string
}

// Normalize flattens the update. ChatID is zero when neither the message
// nor the callback's origin message carries a chat.
func (u *Update) Normalize() View {
	var v View
	if m := u.Message; m != nil {
		if m.Chat != nil {
			v.ChatID = m.Chat.ID
		}
		if m.From != nil {
			v.UserID = m.From.ID
			v.Username = m.From.Username
		}
		v.Text = m.Text
		if m.Contact != nil {
			v.ContactPhone = m.Contact.PhoneNumber
		}
		if m.ReplyTo != nil {
			v.ReplyToText = m.ReplyTo.Text
		}
	}
	if cb := u.Callback; cb != nil {
		v.CallbackData = cb.Data
		v.CallbackID = cb.ID
		if cb.From != nil {
			v.UserID = cb.From.ID
			v.Username = cb.From.Username
		}
		if v.ChatID == 0 && cb.Message != nil && cb.Message.Chat != nil {
			v.ChatID = cb.Message.Chat.ID
		}
	}
	return v
}
