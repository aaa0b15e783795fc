package usecase

import (
	"context"
)

// LeadProfile is what the intake form hands over once every question is
// answered. Optional answers may arrive as empty strings.
type LeadProfile struct {
	TelegramID       int64
	Email            string
	Age              string
	Gender           string
	Country          string
	Language         string
	EnglishLevel     string
	AmazonExperience string
}

// CourseInviter grants course access on the learning platform.
type CourseInviter interface {
	InviteStudent(ctx context.Context, email, name string) error
}

// Messenger delivers text to a chat identity. Failures are the caller's
// problem to log, never to propagate.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// EmailService notifies the funnel owner. Optional collaborator.
type EmailService interface {
	SendLeadAlert(leadEmail, stage string) error
}
