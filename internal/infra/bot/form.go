package bot

import (
	"context"
	"log"
	"strings"
	"unicode"

	"github.com/vadjik31/procto-bo/internal/usecase"
)

const greeting = "Привет! 👋\n\n" +
	"Я помогу записаться на курс и зафиксировать результат.\n" +
	"Ответь на пару вопросов — займёт меньше минуты 🙂\n\n" +
	"1/7 — Напиши email (который будешь использовать в Skillspace):"

// ChatAPI is the slice of the Telegram client the form needs.
type ChatAPI interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendChatAction(ctx context.Context, chatID int64, action string) error
}

// OnLeadCompleted receives the finished profile and returns the reply text.
type OnLeadCompleted func(ctx context.Context, profile usecase.LeadProfile) (string, error)

// FormService runs the intake dialogue: seven questions, one state per
// chat, validation with re-prompts. /start always restarts from scratch.
type FormService struct {
	api         ChatAPI
	sessions    SessionStore
	onCompleted OnLeadCompleted
}

func NewFormService(api ChatAPI, sessions SessionStore, onCompleted OnLeadCompleted) *FormService {
	return &FormService{api: api, sessions: sessions, onCompleted: onCompleted}
}

func (s *FormService) HandleMessage(ctx context.Context, chatID, fromID int64, text string) {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "/start") {
		s.sessions.Put(chatID, &Session{
			State:   StateEmail,
			Profile: usecase.LeadProfile{TelegramID: fromID},
		})
		s.reply(ctx, chatID, greeting)
		return
	}

	sess, ok := s.sessions.Get(chatID)
	if !ok {
		s.reply(ctx, chatID, "Чтобы начать, отправь /start 🙂")
		return
	}

	switch sess.State {
	case StateEmail:
		if !looksLikeEmail(text) {
			s.reply(ctx, chatID, "Похоже, email некорректный. Введи, пожалуйста, нормальный email:")
			return
		}
		sess.Profile.Email = text
		sess.State = StateAge
		s.reply(ctx, chatID, "2/7 — Возраст (только цифры):")

	case StateAge:
		if !isDigits(text) {
			s.reply(ctx, chatID, "Возраст нужен числом 🙂 Введи только цифры:")
			return
		}
		sess.Profile.Age = text
		sess.State = StateGender
		s.reply(ctx, chatID, "3/7 — Пол (М/Ж/Другое):")

	case StateGender:
		sess.Profile.Gender = text
		sess.State = StateCountry
		s.reply(ctx, chatID, "4/7 — Страна:")

	case StateCountry:
		sess.Profile.Country = text
		sess.State = StateLanguage
		s.reply(ctx, chatID, "5/7 — Язык общения (например RU или EN):")

	case StateLanguage:
		sess.Profile.Language = text
		sess.State = StateEnglishLevel
		s.reply(ctx, chatID, "6/7 — Уровень английского (A1/A2/B1/B2/C1/C2):")

	case StateEnglishLevel:
		sess.Profile.EnglishLevel = text
		sess.State = StateExperience
		s.reply(ctx, chatID, "7/7 — Опыт с Amazon (нет / немного / продаю / другое):")

	case StateExperience:
		sess.Profile.AmazonExperience = text
		s.finish(ctx, chatID, sess.Profile)
		return
	}

	s.sessions.Put(chatID, sess)
}

// finish does the slow part: reassure first, then register + invite, then
// the real reply. The session dies either way; a retry starts over.
func (s *FormService) finish(ctx context.Context, chatID int64, profile usecase.LeadProfile) {
	s.sessions.Delete(chatID)

	s.reply(ctx, chatID, "⏳ Принял(а)! Сейчас оформляю доступ к курсу… Это может занять до 1–2 минут. Пожалуйста, подожди 🙂")
	if err := s.api.SendChatAction(ctx, chatID, "typing"); err != nil {
		log.Printf("ℹ️ chat action failed for %d: %v", chatID, err)
	}

	reply, err := s.onCompleted(ctx, profile)
	if err != nil {
		log.Printf("❌ intake completion failed for %s: %v", profile.Email, err)
		reply = usecase.StoreErrorReply()
	}

	s.reply(ctx, chatID, reply)
}

func (s *FormService) reply(ctx context.Context, chatID int64, text string) {
	if err := s.api.SendMessage(ctx, chatID, text); err != nil {
		log.Printf("⚠️ reply to chat %d failed: %v", chatID, err)
	}
}

func looksLikeEmail(s string) bool {
	return strings.Contains(s, "@") && strings.Contains(s, ".")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
