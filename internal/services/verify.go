package services

import (
	"fmt"
	"math/rand"

	"github.com/shlayncha-dot/tgbot-SLS/internal/db"
	"github.com/shlayncha-dot/tgbot-SLS/internal/events"
	"github.com/shlayncha-dot/tgbot-SLS/internal/models"
	"github.com/shlayncha-dot/tgbot-SLS/internal/sheets"
)

// CompleteVerification appends the record to the spreadsheet backend and,
// on success, stores the durable verified-user row and fires OnVerified.
// The returned VerifiedUser carries the generated pass code.
func CompleteVerification(w sheets.Writer, rec sheets.Record) (models.VerifiedUser, error) {
	if err := w.Write(rec); err != nil {
		return models.VerifiedUser{}, err
	}

	vu := models.VerifiedUser{
		UserID:     rec.UserID,
		ChatID:     rec.ChatID,
		Username:   rec.Username,
		Phone:      rec.Phone,
		Name:       rec.Name,
		Code:       generateVerCode(),
		VerifiedAt: rec.Timestamp,
	}
	if err := db.Conn().Create(&vu).Error; err != nil {
		// The sheet append already succeeded; the local copy is best effort.
		return vu, nil
	}

	if events.OnVerified != nil {
		events.OnVerified(vu)
	}
	return vu, nil
}

// IsVerified reports whether a user already completed the dialogue.
func IsVerified(userID int64) bool {
	var n int64
	_ = db.Conn().Model(&models.VerifiedUser{}).Where("user_id = ?", userID).Count(&n).Error
	return n > 0
}

// FindByCode looks up a verification by its pass code.
func FindByCode(code string) (*models.VerifiedUser, error) {
	var vu models.VerifiedUser
	if err := db.Conn().Where("code = ?", code).First(&vu).Error; err != nil {
		return nil, err
	}
	return &vu, nil
}

// generateVerCode creates a unique VER-xxxxxx code.
func generateVerCode() string {
	for i := 0; i < 20; i++ {
		code := fmt.Sprintf("VER-%06d", rand.Intn(1000000))
		var exists int64
		_ = db.Conn().Model(&models.VerifiedUser{}).Where("code = ?", code).Count(&exists).Error
		if exists == 0 {
			return code
		}
	}
	return ""
}
