package usecase

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/vadjik31/procto-bo/internal/config"
	"github.com/vadjik31/procto-bo/internal/entity"
)

// RegisterLeadUseCase handles intake completion: persists the profile,
// tries to enroll the lead into the course and builds the reply the bot
// sends back.
type RegisterLeadUseCase struct {
	Repo         entity.LeadRepositoryInterface
	Inviter      CourseInviter
	EmailService EmailService // nil when admin alerts are not configured
	Locker       *LeadLocker
	Cfg          *config.Config
}

func NewRegisterLeadUseCase(
	repo entity.LeadRepositoryInterface,
	inviter CourseInviter,
	emailService EmailService,
	locker *LeadLocker,
	cfg *config.Config,
) *RegisterLeadUseCase {
	return &RegisterLeadUseCase{
		Repo:         repo,
		Inviter:      inviter,
		EmailService: emailService,
		Locker:       locker,
		Cfg:          cfg,
	}
}

// Execute returns the user-facing reply text. A store failure is returned
// as an error; the bot falls back to StoreErrorReply.
func (uc *RegisterLeadUseCase) Execute(ctx context.Context, profile LeadProfile) (string, error) {
	unlock := uc.Locker.Lock(profile.Email)
	defer unlock()

	now := time.Now().UTC().Format(time.RFC3339)

	fields := entity.LeadFields{
		entity.ColCreatedAt:        now, // write-once, the adapter keeps an existing value
		entity.ColUpdatedAt:        now,
		entity.ColTelegramID:       strconv.FormatInt(profile.TelegramID, 10),
		entity.ColEmail:            profile.Email,
		entity.ColAge:              profile.Age,
		entity.ColGender:           profile.Gender,
		entity.ColCountry:          profile.Country,
		entity.ColLanguage:         profile.Language,
		entity.ColEnglishLevel:     profile.EnglishLevel,
		entity.ColAmazonExperience: profile.AmazonExperience,
		entity.ColStage:            entity.StageProfileCollected,
	}

	lead, err := resolveLead(ctx, uc.Repo, profile.Email, profile.TelegramID)
	if err != nil {
		return "", &DomainError{Code: ErrCodeStoreUnavailable, Message: "lead lookup failed: " + err.Error()}
	}

	if lead == nil {
		lead, err = uc.Repo.Insert(ctx, fields)
		if err != nil {
			return "", &DomainError{Code: ErrCodeStoreUnavailable, Message: "lead insert failed: " + err.Error()}
		}
		log.Printf("📋 lead registered: %s (telegram %d)", profile.Email, profile.TelegramID)
	} else {
		if err := uc.Repo.Update(ctx, lead.ID, fields); err != nil {
			return "", &DomainError{Code: ErrCodeStoreUnavailable, Message: "lead update failed: " + err.Error()}
		}
		log.Printf("📋 lead re-registered: %s (row %d)", profile.Email, lead.ID)
	}

	state, reason := uc.tryInvite(ctx, profile, lead.ID)

	if uc.EmailService != nil {
		go func(email, stage string) {
			if err := uc.EmailService.SendLeadAlert(email, stage); err != nil {
				log.Printf("⚠️ admin alert failed for %s: %v", email, err)
			}
		}(profile.Email, stageAfter(state))
	}

	msgCfg := MessageConfig{ContactInfo: uc.Cfg.ContactInfo, CourseLink: uc.Cfg.CourseLink}
	return ComposeRegistrationReply(state, reason, msgCfg), nil
}

// tryInvite attempts the course enrollment and advances the stage on
// success. Enrollment failure never fails the registration itself: the
// reason ends up in the reply text and an operator sorts it out.
func (uc *RegisterLeadUseCase) tryInvite(ctx context.Context, profile LeadProfile, leadID int64) (EnrollmentState, string) {
	if !uc.Cfg.InviteConfigured() {
		log.Printf("ℹ️ enrollment disabled, skipping invite for %s", profile.Email)
		return EnrollmentDisabled, ""
	}

	if err := uc.Inviter.InviteStudent(ctx, profile.Email, ""); err != nil {
		log.Printf("❌ skillspace invite failed for %s: %v", profile.Email, err)
		return EnrollmentFailed, err.Error()
	}

	fields := entity.LeadFields{
		entity.ColStage:     entity.StageInvitedToCourse,
		entity.ColUpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := uc.Repo.Update(ctx, leadID, fields); err != nil {
		// Invite went out; worst case the row lags one stage behind.
		log.Printf("⚠️ stage update failed after invite for %s: %v", profile.Email, err)
	}

	log.Printf("🎓 invited to course: %s", profile.Email)
	return EnrollmentDone, ""
}

func stageAfter(state EnrollmentState) string {
	if state == EnrollmentDone {
		return entity.StageInvitedToCourse
	}
	return entity.StageProfileCollected
}
