package usecase

import (
	"context"
	"log"
	"time"

	"github.com/vadjik31/procto-bo/internal/config"
	"github.com/vadjik31/procto-bo/internal/entity"
)

// EventResult is the webhook acknowledgment body. OK is true for anything
// past authentication: the platform retries on non-2xx and a retry storm
// helps nobody.
type EventResult struct {
	OK         bool   `json:"ok"`
	DeliveryID string `json:"delivery_id,omitempty"`
	Ignored    string `json:"ignored,omitempty"` // "event" or "course"
	Error      string `json:"error,omitempty"`   // "email_not_found", "lead_not_found", "store_error"
	Stage      string `json:"stage,omitempty"`
	Notified   bool   `json:"notified,omitempty"`
}

// ProcessEventUseCase is the webhook side of the lifecycle: normalize,
// match, classify, update, notify. Replayed deliveries converge to the
// same row state and never mint a second record.
type ProcessEventUseCase struct {
	Repo      entity.LeadRepositoryInterface
	Messenger Messenger
	Locker    *LeadLocker
	Cfg       *config.Config
}

func NewProcessEventUseCase(
	repo entity.LeadRepositoryInterface,
	messenger Messenger,
	locker *LeadLocker,
	cfg *config.Config,
) *ProcessEventUseCase {
	return &ProcessEventUseCase{
		Repo:      repo,
		Messenger: messenger,
		Locker:    locker,
		Cfg:       cfg,
	}
}

// Execute always returns a 200-shaped result; the error (when non-nil) is
// for the handler's log, not for the response status.
func (uc *ProcessEventUseCase) Execute(ctx context.Context, raw map[string]interface{}) (EventResult, error) {
	ev := NormalizeEvent(raw)

	if ev.Name != uc.Cfg.TestEventName {
		log.Printf("⏭️ event %q is not %q, ignoring", ev.Name, uc.Cfg.TestEventName)
		return EventResult{OK: true, Ignored: "event"}, nil
	}

	if ev.Email == "" {
		log.Printf("⚠️ %s event without a resolvable email, nothing to update", ev.Name)
		return EventResult{OK: true, Error: "email_not_found"}, nil
	}

	// Cross-course noise guard: only when both sides carry a course id.
	if uc.Cfg.ExpectedCourseID != "" && ev.CourseID != "" && ev.CourseID != uc.Cfg.ExpectedCourseID {
		log.Printf("⏭️ event for course %q, expecting %q, ignoring", ev.CourseID, uc.Cfg.ExpectedCourseID)
		return EventResult{OK: true, Ignored: "course"}, nil
	}

	unlock := uc.Locker.Lock(ev.Email)
	defer unlock()

	lead, err := resolveLead(ctx, uc.Repo, ev.Email, ev.TelegramID)
	if err != nil {
		return EventResult{OK: true, Error: "store_error"}, err
	}
	if lead == nil {
		// Unknown identities never create records here: only the intake
		// dialogue does. Acknowledge and move on.
		log.Printf("⚠️ %s event for unknown lead %q, discarding", ev.Name, ev.Email)
		return EventResult{OK: true, Error: "lead_not_found"}, nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	fields := entity.LeadFields{
		entity.ColUpdatedAt: now,
		entity.ColLastEvent: ev.Name,
		entity.ColLessonID:  ev.LessonID,
		entity.ColCourseID:  ev.CourseID,
	}

	stage := lead.Stage
	var outcome *Outcome
	if ev.Score != nil {
		o := ClassifyScore(*ev.Score, uc.Cfg.PassThreshold, uc.Cfg.GreatThreshold)
		outcome = &o
		stage = o.Stage()
		fields[entity.ColStage] = stage
		fields[entity.ColLessonScore] = formatScore(*ev.Score)
	}
	// No score: record the event and timestamp, leave stage and last score alone.

	if err := uc.Repo.Update(ctx, lead.ID, fields); err != nil {
		return EventResult{OK: true, Error: "store_error"}, err
	}
	scoreLog := "none"
	if ev.Score != nil {
		scoreLog = formatScore(*ev.Score)
	}
	log.Printf("📊 %s: %s -> %s (score %s)", ev.Email, lead.Stage, stage, scoreLog)

	result := EventResult{OK: true, Stage: stage}
	result.Notified = uc.notify(ctx, lead.TelegramID, outcome, ev.Score)
	return result, nil
}

// notify delivers the result to the lead's chat. Delivery failure is logged
// and swallowed: the webhook was already honored, a blocked bot must not
// turn into an upstream retry loop.
func (uc *ProcessEventUseCase) notify(ctx context.Context, telegramID int64, outcome *Outcome, score *float64) bool {
	if telegramID == 0 {
		log.Printf("ℹ️ lead has no telegram id on file, skipping notification")
		return false
	}

	msgCfg := MessageConfig{ContactInfo: uc.Cfg.ContactInfo, CourseLink: uc.Cfg.CourseLink}
	text := ComposeTestResult(outcome, score, msgCfg)

	if err := uc.Messenger.SendMessage(ctx, telegramID, text); err != nil {
		log.Printf("⚠️ result notification to %d failed: %v", telegramID, err)
		return false
	}
	return true
}
