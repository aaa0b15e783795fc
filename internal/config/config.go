package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries everything the process needs, resolved once at startup and
// passed down explicitly. No package keeps its own os.Getenv calls.
type Config struct {
	Port        string
	DatabaseURL string

	TelegramToken string

	WebhookSecret string
	// TestEventName is the qualifying event; everything else is acked and ignored.
	TestEventName string
	// ExpectedCourseID, when set, drops events for other courses.
	ExpectedCourseID string

	SkillspaceAPIKey   string
	SkillspaceBaseURL  string
	SkillspaceCourseID string
	SkillspaceGroupID  string

	PassThreshold  float64
	GreatThreshold float64

	// Optional copy fragments for user-facing messages.
	ContactInfo string
	CourseLink  string

	// Optional admin alert on every new lead.
	AdminEmail string
	MailHost   string
	MailPort   int
	MailUser   string
	MailPass   string
}

// Load reads .env (when present) plus the environment. Missing required
// variables are a startup failure, not something to discover mid-request.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Port:        getenvDefault("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),

		WebhookSecret:    os.Getenv("SKILLSPACE_WEBHOOK_SECRET"),
		TestEventName:    getenvDefault("SKILLSPACE_TEST_EVENT", "test-end"),
		ExpectedCourseID: os.Getenv("SKILLSPACE_EXPECTED_COURSE_ID"),

		SkillspaceAPIKey:   os.Getenv("SKILLSPACE_API_KEY"),
		SkillspaceBaseURL:  getenvDefault("SKILLSPACE_BASE_URL", "https://skillspace.ru"),
		SkillspaceCourseID: os.Getenv("SKILLSPACE_COURSE_ID"),
		SkillspaceGroupID:  os.Getenv("SKILLSPACE_GROUP_ID"),

		ContactInfo: os.Getenv("CONTACT_INFO"),
		CourseLink:  os.Getenv("COURSE_LINK"),

		AdminEmail: os.Getenv("ADMIN_ALERT_EMAIL"),
		MailHost:   os.Getenv("MAIL_HOST"),
		MailUser:   os.Getenv("MAIL_USER"),
		MailPass:   os.Getenv("MAIL_PASS"),
	}

	var err error
	cfg.PassThreshold, err = floatEnv("PASS_THRESHOLD", 50)
	if err != nil {
		return nil, err
	}
	cfg.GreatThreshold, err = floatEnv("GREAT_THRESHOLD", 80)
	if err != nil {
		return nil, err
	}
	cfg.MailPort, err = intEnv("MAIL_PORT", 587)
	if err != nil {
		return nil, err
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.TelegramToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if cfg.WebhookSecret == "" {
		missing = append(missing, "SKILLSPACE_WEBHOOK_SECRET")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}

	if cfg.PassThreshold > cfg.GreatThreshold {
		return nil, fmt.Errorf("PASS_THRESHOLD (%.1f) must not exceed GREAT_THRESHOLD (%.1f)",
			cfg.PassThreshold, cfg.GreatThreshold)
	}

	return cfg, nil
}

// InviteConfigured tells whether automatic course enrollment can run at all.
func (c *Config) InviteConfigured() bool {
	return c.SkillspaceAPIKey != "" && c.SkillspaceCourseID != ""
}

// MailConfigured tells whether the admin lead alert can be sent.
func (c *Config) MailConfigured() bool {
	return c.AdminEmail != "" && c.MailHost != ""
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func floatEnv(key string, def float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", key, raw)
	}
	return v, nil
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return v, nil
}
