// Package session keeps per-chat dialogue state in a keyed store. Entries
// are TTL-bounded so an abandoned verification never resumes weeks later.
package session

import (
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shlayncha-dot/tgbot-SLS/internal/models"
)

// State is the stored value for one chat.
type State struct {
	Step         string
	PendingPhone string
	ExpiresAt    time.Time
}

// Expired reports whether the state is past its TTL.
func (s State) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Store is a keyed session store. Implementations must treat expired
// entries as absent.
type Store interface {
	Get(chatID int64) (State, bool)
	Put(chatID int64, st State)
	Delete(chatID int64)
	// Sweep removes expired entries and returns how many were dropped.
	Sweep(now time.Time) int
}

// MemoryStore is a process-lifetime map. Fine for a single instance; lost
// on restart, at which point the router re-derives the step from the
// update's own correlation fields.
type MemoryStore struct {
	mu sync.Mutex
	m  map[int64]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[int64]State)}
}

func (s *MemoryStore) Get(chatID int64) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.m[chatID]
	if !ok || st.Expired(time.Now()) {
		return State{}, false
	}
	return st, true
}

func (s *MemoryStore) Put(chatID int64, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[chatID] = st
}

func (s *MemoryStore) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, chatID)
}

func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, st := range s.m {
		if st.Expired(now) {
			delete(s.m, id)
			n++
		}
	}
	return n
}

// DBStore persists sessions in the sessions table so state survives
// restarts and is shared across worker instances.
type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore { return &DBStore{db: db} }

func (s *DBStore) Get(chatID int64) (State, bool) {
	var row models.Session
	if err := s.db.Where("chat_id = ?", chatID).First(&row).Error; err != nil {
		return State{}, false
	}
	st := State{Step: row.Step, PendingPhone: row.PendingPhone, ExpiresAt: row.ExpiresAt}
	if st.Expired(time.Now()) {
		return State{}, false
	}
	return st, true
}

func (s *DBStore) Put(chatID int64, st State) {
	row := models.Session{
		ChatID:       chatID,
		Step:         st.Step,
		PendingPhone: st.PendingPhone,
		ExpiresAt:    st.ExpiresAt,
	}
	s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"step", "pending_phone", "expires_at", "updated_at"}),
	}).Create(&row)
}

func (s *DBStore) Delete(chatID int64) {
	s.db.Where("chat_id = ?", chatID).Delete(&models.Session{})
}

func (s *DBStore) Sweep(now time.Time) int {
	res := s.db.Where("expires_at <= ?", now).Delete(&models.Session{})
	return int(res.RowsAffected)
}
