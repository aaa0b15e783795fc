package entity

import (
	"context"
)

// Funnel stages. NEW is implicit (no row in the store yet).
const (
	StageNew              = "NEW"
	StageProfileCollected = "PROFILE_COLLECTED"
	StageInvitedToCourse  = "INVITED_TO_COURSE"
	StageTestFailed       = "TEST_FAILED"
	StageTestPassed       = "TEST_PASSED"
	StageTestGreat        = "TEST_GREAT"
)

const (
	ColCreatedAt        = "created_at"
	ColUpdatedAt        = "updated_at"
	ColTelegramID       = "telegram_id"
	ColEmail            = "email"
	ColAge              = "age"
	ColGender           = "gender"
	ColCountry          = "country"
	ColLanguage         = "language"
	ColEnglishLevel     = "english_level"
	ColAmazonExperience = "amazon_experience"
	ColStage            = "stage"
	ColLastEvent        = "last_event"
	ColLessonScore      = "lesson_score"
	ColLessonID         = "lesson_id"
	ColCourseID         = "course_id"
)

// Columns is the canonical column set, in birth order. Schema migration is
// additive only: new columns go to the end, existing ones never move.
var Columns = []string{
	ColCreatedAt,
	ColUpdatedAt,
	ColTelegramID,
	ColEmail,
	ColAge,
	ColGender,
	ColCountry,
	ColLanguage,
	ColEnglishLevel,
	ColAmazonExperience,
	ColStage,
	ColLastEvent,
	ColLessonScore,
	ColLessonID,
	ColCourseID,
}

// Lead is one materialized row of the store. Everything keeps the string
// form it was written with; TelegramID is the exception because it is the
// secondary lookup key.
type Lead struct {
	ID               int64  `json:"-"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
	TelegramID       int64  `json:"telegram_id"`
	Email            string `json:"email"`
	Age              string `json:"age"`
	Gender           string `json:"gender"`
	Country          string `json:"country"`
	Language         string `json:"language"`
	EnglishLevel     string `json:"english_level"`
	AmazonExperience string `json:"amazon_experience"`
	Stage            string `json:"stage"`
	LastEvent        string `json:"last_event"`
	LessonScore      string `json:"lesson_score"`
	LessonID         string `json:"lesson_id"`
	CourseID         string `json:"course_id"`
}

// LeadFields is a partial update: only the columns present get written.
type LeadFields map[string]string

type LeadRepositoryInterface interface {
	// EnsureSchema creates the canonical column set when missing and
	// appends absent columns without touching existing ones.
	EnsureSchema(ctx context.Context) error

	// FindByEmail / FindByTelegramID return (nil, nil) when there is no row.
	FindByEmail(ctx context.Context, email string) (*Lead, error)
	FindByTelegramID(ctx context.Context, telegramID int64) (*Lead, error)

	// Insert appends a new row; absent columns become the empty string.
	Insert(ctx context.Context, fields LeadFields) (*Lead, error)

	// Update writes only the supplied columns. created_at is write-once:
	// when a non-empty value already exists the incoming one is ignored.
	Update(ctx context.Context, id int64, fields LeadFields) error

	CountByStage(ctx context.Context) (map[string]int, error)
}
