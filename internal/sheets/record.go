package sheets

import (
	"strconv"
	"time"
)

// Record is one completed verification, headed for a single spreadsheet row.
type Record struct {
	Timestamp time.Time
	ChatID    int64
	Username  string // without the @ prefix; may be empty
	UserID    int64
	Phone     string
	Name      string
}

// Row serializes the record in the fixed six-column order the sheet expects:
// timestamp, chat id, username, user id, phone, name.
func (r Record) Row() []string {
	username := r.Username
	if username != "" {
		username = "@" + username
	}
	return []string{
		r.Timestamp.UTC().Format(time.RFC3339),
		strconv.FormatInt(r.ChatID, 10),
		username,
		strconv.FormatInt(r.UserID, 10),
		r.Phone,
		r.Name,
	}
}
