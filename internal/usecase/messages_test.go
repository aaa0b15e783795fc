package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeRegistrationReplyVariants(t *testing.T) {
	cfg := MessageConfig{ContactInfo: "@manager", CourseLink: "https://example.com/c"}

	done := ComposeRegistrationReply(EnrollmentDone, "", cfg)
	assert.Contains(t, done, "Доступ к курсу открыт")
	assert.Contains(t, done, "https://example.com/c")

	failed := ComposeRegistrationReply(EnrollmentFailed, "invite failed: 500 | boom", cfg)
	assert.Contains(t, failed, "invite failed: 500 | boom")
	assert.Contains(t, failed, "@manager")

	disabled := ComposeRegistrationReply(EnrollmentDisabled, "", cfg)
	assert.Contains(t, disabled, "отключена")
}

func TestComposeRegistrationReplyEmptyFragments(t *testing.T) {
	// Optional fragments missing must still give a complete message.
	for _, state := range []EnrollmentState{EnrollmentDone, EnrollmentFailed, EnrollmentDisabled} {
		msg := ComposeRegistrationReply(state, "", MessageConfig{})
		assert.NotEmpty(t, msg)
		assert.False(t, strings.Contains(msg, "%!"), "broken formatting in %q", msg)
	}
}

func TestComposeTestResultOutcomes(t *testing.T) {
	cfg := MessageConfig{ContactInfo: "@manager"}
	score := 92.0
	great := OutcomeGreat
	assert.Contains(t, ComposeTestResult(&great, &score, cfg), "92")

	score = 60
	passed := OutcomePassed
	assert.Contains(t, ComposeTestResult(&passed, &score, cfg), "тест пройден")

	score = 10
	failedOutcome := OutcomeFailed
	failed := ComposeTestResult(&failedOutcome, &score, cfg)
	assert.Contains(t, failed, "не хватило баллов")
	assert.Contains(t, failed, "10")
}

func TestComposeTestResultNoScore(t *testing.T) {
	msg := ComposeTestResult(nil, nil, MessageConfig{})
	assert.Contains(t, msg, "балл")
	assert.NotEmpty(t, msg)
}

func TestComposeTestResultDeterministic(t *testing.T) {
	score := 51.5
	o := OutcomePassed
	cfg := MessageConfig{ContactInfo: "x", CourseLink: "y"}
	assert.Equal(t, ComposeTestResult(&o, &score, cfg), ComposeTestResult(&o, &score, cfg))
}
