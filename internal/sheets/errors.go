package sheets

import (
	"fmt"
	"strings"
)

// Kind classifies a persistence failure at the point it happens, so the
// user-facing message never has to be guessed from error text later.
type Kind int

const (
	KindUpstream Kind = iota // non-2xx with no more specific meaning
	KindCredentials          // missing or malformed credentials, 401, invalid_grant
	KindPermission           // 403: spreadsheet not shared with the service account
	KindNotFound             // 404: wrong spreadsheet, sheet or range
)

// Error is any failure on the spreadsheet write path.
type Error struct {
	Kind   Kind
	Status int    // upstream HTTP status, 0 for local failures
	Body   string // upstream response body, "" for local failures
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("sheets: %s (status %d): %s", e.Msg, e.Status, e.Body)
	}
	if e.Err != nil {
		return fmt.Sprintf("sheets: %s: %v", e.Msg, e.Err)
	}
	return "sheets: " + e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// classify maps an upstream status and body to a Kind. invalid_grant comes
// back as 400 from the token endpoint but still means bad credentials.
func classify(status int, body string) Kind {
	switch {
	case status == 401 || strings.Contains(body, "invalid_grant"):
		return KindCredentials
	case status == 403:
		return KindPermission
	case status == 404:
		return KindNotFound
	default:
		return KindUpstream
	}
}

// Diagnostic returns the user-facing text for a write failure, or "" for a
// nil error.
func Diagnostic(err error) string {
	if err == nil {
		return ""
	}
	kind := KindUpstream
	if se, ok := err.(*Error); ok {
		kind = se.Kind
	}
	switch kind {
	case KindCredentials:
		return "К сожалению, не удалось сохранить данные: доступ к таблице не настроен."
	case KindPermission:
		return "К сожалению, не удалось сохранить данные: сервисному аккаунту не открыт доступ к таблице."
	case KindNotFound:
		return "К сожалению, не удалось сохранить данные: таблица или лист не найдены."
	default:
		return "К сожалению, не удалось сохранить данные. Попробуйте позже."
	}
}
