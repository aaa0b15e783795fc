package usecase

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/vadjik31/procto-bo/internal/entity"
)

// resolveLead locates the record an event belongs to: exact email match
// first, telegram id second. When both keys are known and point at
// different rows that is a genuine inconsistency. The email match wins,
// deterministically, and both candidates are logged untouched.
func resolveLead(ctx context.Context, repo entity.LeadRepositoryInterface, email string, telegramID int64) (*entity.Lead, error) {
	var byEmail *entity.Lead
	var err error

	if email != "" {
		byEmail, err = repo.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
	}

	if telegramID == 0 {
		return byEmail, nil
	}

	byTelegram, err := repo.FindByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	if byEmail != nil {
		if byTelegram != nil && byTelegram.ID != byEmail.ID {
			log.Printf("⚠️ identity conflict: email %q is row %d but telegram_id %d is row %d, keeping email match",
				email, byEmail.ID, telegramID, byTelegram.ID)
		}
		return byEmail, nil
	}

	return byTelegram, nil
}

// LeadLocker serializes read-modify-write cycles per identity so a replayed
// webhook and an intake completion can't interleave on the same row.
type LeadLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLeadLocker() *LeadLocker {
	return &LeadLocker{locks: make(map[string]*sync.Mutex)}
}

// Lock takes the per-email lock and returns the unlock func. Lead volumes
// here are small, so entries are never evicted.
func (l *LeadLocker) Lock(email string) func() {
	key := strings.ToLower(strings.TrimSpace(email))

	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
