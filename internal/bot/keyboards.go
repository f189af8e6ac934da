package bot

// Callback payloads carried by the inline verification buttons.
const (
	CallbackStart   = "verification_start"
	CallbackConfirm = "verification_confirm"
)

func VerifyKeyboard() any {
	return map[string]any{
		"inline_keyboard": [][]map[string]any{
			{{"text": "Верификация", "callback_data": CallbackStart}},
		},
	}
}

func ConfirmKeyboard() any {
	return map[string]any{
		"inline_keyboard": [][]map[string]any{
			{{"text": "Подтверждаю", "callback_data": CallbackConfirm}},
		},
	}
}

func ContactKeyboard() any {
	return map[string]any{
		"keyboard": [][]map[string]any{
			{{"text": "Отправить телефон", "request_contact": true}},
		},
		"resize_keyboard":   true,
		"one_time_keyboard": true,
	}
}

// ForceReply makes the client attach the next message as a reply to this
// prompt, which is what lets the router correlate the name step.
func ForceReply() any {
	return map[string]any{"force_reply": true}
}

func RemoveKeyboard() any {
	return map[string]any{"remove_keyboard": true}
}
