package bot

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shlayncha-dot/tgbot-SLS/internal/models"
	"github.com/shlayncha-dot/tgbot-SLS/internal/services"
	"github.com/shlayncha-dot/tgbot-SLS/internal/session"
	"github.com/shlayncha-dot/tgbot-SLS/internal/sheets"
)

// User-facing dialogue text. The phone-echo sentence doubles as the
// correlation anchor: the name step is recognized by the user replying to
// exactly this template, so its wording must stay parseable.
const (
	promptGreeting = "Привет! Для теста нажмите кнопку «Верификация»."
	promptDefault  = "Нажмите кнопку ниже для начала верификации"
	promptConfirm  = "Подтвердите, что хотите пройти верификацию."
	promptPhone    = "Отправьте ваш номер телефона кнопкой ниже, затем отправьте отдельным сообщением ваше имя."
	promptVerified = "Вы уже прошли верификацию ✅"

	phoneEchoPrefix = "Телефон получен: "
	phoneEchoSuffix = ". Теперь отправьте ваше имя."

	promptDoneFmt = "Имя получено: %s. Верификация завершена ✅"
)

// PhoneEcho renders the correlation-anchor sentence for a received phone.
func PhoneEcho(phone string) string {
	return phoneEchoPrefix + phone + phoneEchoSuffix
}

// parsePhoneEcho recovers the phone number from a phone-echo sentence.
// Anything that is not exactly the template shape does not match.
func parsePhoneEcho(text string) (string, bool) {
	if len(text) < len(phoneEchoPrefix)+len(phoneEchoSuffix) {
		return "", false
	}
	if !strings.HasPrefix(text, phoneEchoPrefix) || !strings.HasSuffix(text, phoneEchoSuffix) {
		return "", false
	}
	phone := text[len(phoneEchoPrefix) : len(text)-len(phoneEchoSuffix)]
	if phone == "" {
		return "", false
	}
	return phone, true
}

// Dispatcher routes inbound updates through the verification dialogue. It
// holds no per-chat state of its own: each update is self-describing, with
// the session store supplying the pending phone when one is on file.
type Dispatcher struct {
	c        *Client
	sessions session.Store
	writer   sheets.Writer
	ttl      time.Duration
	now      func() time.Time
}

func NewDispatcher(c *Client, sessions session.Store, writer sheets.Writer, ttl time.Duration) *Dispatcher {
	return &Dispatcher{
		c:        c,
		sessions: sessions,
		writer:   writer,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Handle routes one update. Every branch replies; routing itself never
// fails, and persistence failures surface only as chat messages.
func (d *Dispatcher) Handle(u *Update) {
	v := u.Normalize()

	if v.CallbackID != "" {
		if err := d.c.AnswerCallbackQuery(v.CallbackID); err != nil {
			slog.Warn("answer callback query", "error", err)
		}
	}
	if v.ChatID == 0 {
		return
	}

	switch {
	case v.CallbackData == CallbackStart:
		d.put(v.ChatID, models.StepAwaitingConfirm, "")
		d.reply(v.ChatID, promptConfirm, ConfirmKeyboard())

	case v.CallbackData == CallbackConfirm:
		d.put(v.ChatID, models.StepAwaitingPhone, "")
		d.reply(v.ChatID, promptPhone, ContactKeyboard())

	case v.CallbackData != "":
		// Unrecognized payload: already acked, nothing more to do.

	case v.ContactPhone != "":
		phone := services.NormPhone(v.ContactPhone)
		if phone == "" {
			phone = strings.TrimSpace(v.ContactPhone)
		}
		d.put(v.ChatID, models.StepAwaitingName, phone)
		// force_reply makes the next message arrive linked to this prompt.
		d.reply(v.ChatID, PhoneEcho(phone), ForceReply())

	case v.Text != "":
		d.handleText(v)

	default:
		d.reply(v.ChatID, promptDefault, VerifyKeyboard())
	}
}

func (d *Dispatcher) handleText(v View) {
	text := strings.TrimSpace(v.Text)

	// The name step exists only as a reply to the phone-echo prompt. Free
	// text without that linkage is never filed as a name.
	if phone, ok := parsePhoneEcho(v.ReplyToText); ok {
		if st, found := d.sessions.Get(v.ChatID); found && st.PendingPhone != "" {
			phone = st.PendingPhone
		}
		d.complete(v, phone, text)
		return
	}

	if strings.HasPrefix(text, "/start") {
		if v.UserID != 0 && services.IsVerified(v.UserID) {
			d.reply(v.ChatID, promptVerified, RemoveKeyboard())
			return
		}
		d.reply(v.ChatID, promptGreeting, VerifyKeyboard())
		return
	}

	// Catch-all: mid-flow silence, stray text, anything unrecognized.
	d.reply(v.ChatID, promptDefault, VerifyKeyboard())
}

func (d *Dispatcher) complete(v View, phone, name string) {
	rec := sheets.Record{
		Timestamp: d.now(),
		ChatID:    v.ChatID,
		Username:  v.Username,
		UserID:    v.UserID,
		Phone:     phone,
		Name:      name,
	}

	_, err := services.CompleteVerification(d.writer, rec)
	d.sessions.Delete(v.ChatID)

	msg := fmt.Sprintf(promptDoneFmt, name)
	if err != nil {
		slog.Error("persist verification", "error", err, "chat_id", v.ChatID)
		msg += "\n\n" + sheets.Diagnostic(err)
	}
	d.reply(v.ChatID, msg, RemoveKeyboard())
}

func (d *Dispatcher) put(chatID int64, step, phone string) {
	d.sessions.Put(chatID, session.State{
		Step:         step,
		PendingPhone: phone,
		ExpiresAt:    d.now().Add(d.ttl),
	})
}

func (d *Dispatcher) reply(chatID int64, text string, markup any) {
	if err := d.c.SendMessage(chatID, text, markup); err != nil {
		slog.Warn("send message", "error", err, "chat_id", chatID)
	}
}
