package usecase

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/vadjik31/procto-bo/internal/entity"
)

// fakeLeadStore is the in-memory store adapter the engine tests run
// against. It honors the same contract as the Postgres adapter: partial
// updates, created_at write-once, (nil, nil) when not found.
type fakeLeadStore struct {
	mu     sync.Mutex
	nextID int64
	rows   []*entity.Lead

	failFinds   bool
	failUpdates bool
}

func newFakeLeadStore() *fakeLeadStore {
	return &fakeLeadStore{nextID: 1}
}

func (f *fakeLeadStore) EnsureSchema(ctx context.Context) error { return nil }

func (f *fakeLeadStore) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFinds {
		return nil, errStoreDown
	}
	for _, l := range f.rows {
		if strings.EqualFold(l.Email, strings.TrimSpace(email)) {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeLeadStore) FindByTelegramID(ctx context.Context, telegramID int64) (*entity.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFinds {
		return nil, errStoreDown
	}
	for _, l := range f.rows {
		if l.TelegramID == telegramID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeLeadStore) Insert(ctx context.Context, fields entity.LeadFields) (*entity.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lead := &entity.Lead{ID: f.nextID}
	f.nextID++
	applyFields(lead, fields)
	f.rows = append(f.rows, lead)
	cp := *lead
	return &cp, nil
}

func (f *fakeLeadStore) Update(ctx context.Context, id int64, fields entity.LeadFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdates {
		return errStoreDown
	}
	for _, l := range f.rows {
		if l.ID == id {
			applyFields(l, fields)
			return nil
		}
	}
	return errRowMissing
}

func (f *fakeLeadStore) CountByStage(ctx context.Context) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[string]int)
	for _, l := range f.rows {
		counts[l.Stage]++
	}
	return counts, nil
}

func (f *fakeLeadStore) get(id int64) *entity.Lead {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.rows {
		if l.ID == id {
			cp := *l
			return &cp
		}
	}
	return nil
}

func (f *fakeLeadStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

func applyFields(lead *entity.Lead, fields entity.LeadFields) {
	for col, val := range fields {
		switch col {
		case entity.ColCreatedAt:
			if lead.CreatedAt == "" {
				lead.CreatedAt = val
			}
		case entity.ColUpdatedAt:
			lead.UpdatedAt = val
		case entity.ColTelegramID:
			lead.TelegramID, _ = strconv.ParseInt(val, 10, 64)
		case entity.ColEmail:
			lead.Email = val
		case entity.ColAge:
			lead.Age = val
		case entity.ColGender:
			lead.Gender = val
		case entity.ColCountry:
			lead.Country = val
		case entity.ColLanguage:
			lead.Language = val
		case entity.ColEnglishLevel:
			lead.EnglishLevel = val
		case entity.ColAmazonExperience:
			lead.AmazonExperience = val
		case entity.ColStage:
			lead.Stage = val
		case entity.ColLastEvent:
			lead.LastEvent = val
		case entity.ColLessonScore:
			lead.LessonScore = val
		case entity.ColLessonID:
			lead.LessonID = val
		case entity.ColCourseID:
			lead.CourseID = val
		}
	}
}

var (
	errStoreDown  = &DomainError{Code: ErrCodeStoreUnavailable, Message: "store down"}
	errRowMissing = &DomainError{Code: ErrCodeStoreUnavailable, Message: "row not found"}
)
