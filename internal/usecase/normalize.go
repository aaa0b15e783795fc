package usecase

import (
	"strings"
)

// NormalizedEvent is the canonical shape extracted from a raw webhook body.
// Absent fields stay at their zero value; Score is a pointer because 0 is a
// legitimate score.
type NormalizedEvent struct {
	Name       string
	Email      string
	TelegramID int64
	Score      *float64
	LessonID   string
	CourseID   string
}

var (
	eventNameKeys  = []string{"event", "event_name", "type", "name"}
	eventNameNest  = []string{"data", "event"}
	emailPaths     = [][]string{{"email"}, {"user_email"}, {"user", "email"}, {"student", "email"}, {"data", "email"}, {"data", "user", "email"}}
	scorePaths     = [][]string{{"lesson", "score"}, {"data", "lesson", "score"}}
	lessonIDPaths  = [][]string{{"lesson", "id"}, {"lesson_id"}, {"data", "lesson", "id"}}
	courseIDPaths  = [][]string{{"course", "id"}, {"course_id"}, {"data", "course", "id"}}
	telegramPaths  = [][]string{{"telegram_id"}, {"user", "telegram_id"}}
)

// NormalizeEvent never fails: a malformed payload yields an event with
// everything absent, and the caller decides what that means.
func NormalizeEvent(raw map[string]interface{}) NormalizedEvent {
	var ev NormalizedEvent

	for _, key := range eventNameKeys {
		if s, ok := digString(raw, key); ok && strings.TrimSpace(s) != "" {
			ev.Name = strings.TrimSpace(s)
			break
		}
	}
	if ev.Name == "" {
		if s, ok := digString(raw, eventNameNest...); ok && strings.TrimSpace(s) != "" {
			ev.Name = strings.TrimSpace(s)
		}
	}

	for _, path := range emailPaths {
		if s, ok := digString(raw, path...); ok && strings.TrimSpace(s) != "" {
			ev.Email = strings.TrimSpace(s)
			break
		}
	}

	for _, path := range scorePaths {
		if v, ok := digNumber(raw, path...); ok {
			ev.Score = normalizeScore(v)
			break
		}
	}

	// Identifiers: first *present* value wins, even a zero. A course id of
	// "0" is still a course id.
	for _, path := range lessonIDPaths {
		if s, ok := digString(raw, path...); ok {
			ev.LessonID = s
			break
		}
	}
	for _, path := range courseIDPaths {
		if s, ok := digString(raw, path...); ok {
			ev.CourseID = s
			break
		}
	}

	for _, path := range telegramPaths {
		if id, ok := digInt64(raw, path...); ok {
			ev.TelegramID = id
			break
		}
	}

	return ev
}

// normalizeScore converts fraction-scale scores to percentages. Values in
// [0.0, 1.0) are fractions and get multiplied by 100. Exactly 1.0 is kept
// as-is: the platform sends both "100%" and "1%" as a bare 1, and treating
// it as one percent is the safer read. Anything else is already a percentage.
func normalizeScore(v float64) *float64 {
	if v >= 0 && v < 1 {
		v *= 100
	}
	return &v
}
