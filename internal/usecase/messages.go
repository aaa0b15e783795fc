package usecase

import (
	"fmt"
	"strings"
)

// MessageConfig holds the externally supplied copy fragments. Both may be
// empty and every message must still read as a complete sentence.
type MessageConfig struct {
	ContactInfo string
	CourseLink  string
}

type EnrollmentState int

const (
	EnrollmentDone EnrollmentState = iota
	EnrollmentFailed
	EnrollmentDisabled
)

// ComposeRegistrationReply builds the final message of the intake dialogue.
// Pure function: no I/O, deterministic for its inputs.
func ComposeRegistrationReply(state EnrollmentState, reason string, cfg MessageConfig) string {
	var b strings.Builder
	b.WriteString("✅ Анкета заполнена, твои данные сохранены!\n\n")

	switch state {
	case EnrollmentDone:
		b.WriteString("🎓 Доступ к курсу открыт — приглашение уже отправлено на твой email.")
		if cfg.CourseLink != "" {
			b.WriteString(fmt.Sprintf("\nКурс здесь: %s", cfg.CourseLink))
		}
		b.WriteString("\n\nКогда пройдёшь тест, я пришлю результат прямо сюда 🙂")
	case EnrollmentFailed:
		b.WriteString("⚠️ Не получилось автоматически выдать доступ к курсу")
		if reason != "" {
			b.WriteString(fmt.Sprintf(" (%s)", reason))
		}
		b.WriteString(".\nДанные записаны, доступ выдадим вручную.")
		if cfg.ContactInfo != "" {
			b.WriteString(fmt.Sprintf("\nЕсли долго нет письма — напиши нам: %s", cfg.ContactInfo))
		}
	case EnrollmentDisabled:
		b.WriteString("ℹ️ Автоматическая запись на курс сейчас отключена — данные записаны, доступ оформим вручную.")
		if cfg.ContactInfo != "" {
			b.WriteString(fmt.Sprintf("\nВопросы — сюда: %s", cfg.ContactInfo))
		}
	}

	return b.String()
}

// ComposeTestResult builds the notification for a processed test event.
// outcome is nil when the event carried no score.
func ComposeTestResult(outcome *Outcome, score *float64, cfg MessageConfig) string {
	if outcome == nil || score == nil {
		msg := "📝 Платформа сообщила о прохождении теста, но балл в уведомлении не нашёлся. Мы проверим результат вручную."
		if cfg.ContactInfo != "" {
			msg += fmt.Sprintf("\nЕсли есть вопросы — напиши нам: %s", cfg.ContactInfo)
		}
		return msg
	}

	scoreText := formatScore(*score)

	var b strings.Builder
	switch *outcome {
	case OutcomeGreat:
		b.WriteString(fmt.Sprintf("🔥 Отличный результат — %s баллов! Ты в числе лучших.", scoreText))
		b.WriteString("\nМы свяжемся с тобой по поводу следующих шагов.")
	case OutcomePassed:
		b.WriteString(fmt.Sprintf("🎉 Поздравляю, тест пройден! Твой балл: %s.", scoreText))
		b.WriteString("\nСкоро расскажем, что дальше.")
	default:
		b.WriteString(fmt.Sprintf("😔 К сожалению, в этот раз не хватило баллов (результат: %s).", scoreText))
		b.WriteString("\nТест можно пройти ещё раз — материал курса остаётся доступным.")
		if cfg.CourseLink != "" {
			b.WriteString(fmt.Sprintf("\nКурс: %s", cfg.CourseLink))
		}
	}

	if cfg.ContactInfo != "" {
		b.WriteString(fmt.Sprintf("\n\nВопросы — сюда: %s", cfg.ContactInfo))
	}

	return b.String()
}

// StoreErrorReply is what the bot says when persistence let the user down.
func StoreErrorReply() string {
	return "😕 Что-то пошло не так при сохранении анкеты. Попробуй, пожалуйста, ещё раз чуть позже — командой /start."
}
