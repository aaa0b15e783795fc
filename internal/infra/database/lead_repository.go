package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/vadjik31/procto-bo/internal/entity"
)

// LeadRepository is the row-oriented store adapter over Postgres. Every
// lead column is TEXT: the table mirrors the spreadsheet this system grew
// out of, and partial updates stay generic over column names.
type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

var knownColumns = func() map[string]bool {
	m := make(map[string]bool, len(entity.Columns))
	for _, c := range entity.Columns {
		m[c] = true
	}
	return m
}()

// EnsureSchema is additive only. A fresh database gets the full canonical
// set; an older table gets the missing columns appended, with existing
// columns and data left exactly where they are.
func (r *LeadRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS leads (id BIGSERIAL PRIMARY KEY)`); err != nil {
		return fmt.Errorf("leads schema: %w", err)
	}

	for _, col := range entity.Columns {
		stmt := fmt.Sprintf(`ALTER TABLE leads ADD COLUMN IF NOT EXISTS %s TEXT NOT NULL DEFAULT ''`, col)
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("leads schema, column %s: %w", col, err)
		}
	}

	// One record per email once an email exists.
	idx := `CREATE UNIQUE INDEX IF NOT EXISTS leads_email_uniq ON leads (lower(email)) WHERE email <> ''`
	if _, err := r.DB.ExecContext(ctx, idx); err != nil {
		return fmt.Errorf("leads schema, email index: %w", err)
	}

	return nil
}

func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	if strings.TrimSpace(email) == "" {
		return nil, nil
	}
	query := selectLead + ` WHERE lower(email) = lower($1) LIMIT 1`
	return r.findOne(ctx, query, strings.TrimSpace(email))
}

func (r *LeadRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*entity.Lead, error) {
	if telegramID == 0 {
		return nil, nil
	}
	query := selectLead + ` WHERE telegram_id = $1 LIMIT 1`
	return r.findOne(ctx, query, strconv.FormatInt(telegramID, 10))
}

func (r *LeadRepository) Insert(ctx context.Context, fields entity.LeadFields) (*entity.Lead, error) {
	cols := make([]string, 0, len(entity.Columns))
	placeholders := make([]string, 0, len(entity.Columns))
	args := make([]interface{}, 0, len(entity.Columns))

	for i, col := range entity.Columns {
		cols = append(cols, col)
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, fields[col]) // absent keys read as ""
	}

	query := fmt.Sprintf(
		`INSERT INTO leads (%s) VALUES (%s) RETURNING id`,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)

	var id int64
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return nil, fmt.Errorf("leads insert: %w", err)
	}

	lead := leadFromFields(fields)
	lead.ID = id
	return lead, nil
}

// Update writes only the supplied columns. created_at is guarded in SQL so
// a concurrent writer can't resurrect it either: an existing non-empty
// value always wins.
func (r *LeadRepository) Update(ctx context.Context, id int64, fields entity.LeadFields) error {
	sets := make([]string, 0, len(fields))
	args := []interface{}{id}

	for _, col := range entity.Columns { // canonical order keeps the SQL deterministic
		val, ok := fields[col]
		if !ok {
			continue
		}
		args = append(args, val)
		n := len(args)
		if col == entity.ColCreatedAt {
			sets = append(sets, fmt.Sprintf("created_at = CASE WHEN leads.created_at = '' THEN $%d ELSE leads.created_at END", n))
		} else {
			sets = append(sets, fmt.Sprintf("%s = $%d", col, n))
		}
	}

	for col := range fields {
		if !knownColumns[col] {
			return fmt.Errorf("leads update: unknown column %q", col)
		}
	}

	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE leads SET %s WHERE id = $1`, strings.Join(sets, ", "))
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("leads update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("leads update: row %d not found", id)
	}
	return nil
}

func (r *LeadRepository) CountByStage(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT stage, COUNT(*) FROM leads GROUP BY stage`)
	if err != nil {
		return nil, fmt.Errorf("leads count: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var stage string
		var n int
		if err := rows.Scan(&stage, &n); err != nil {
			return nil, fmt.Errorf("leads count: %w", err)
		}
		counts[stage] = n
	}
	return counts, rows.Err()
}

const selectLead = `SELECT id, created_at, updated_at, telegram_id, email, age, gender, country,
	language, english_level, amazon_experience, stage, last_event, lesson_score, lesson_id, course_id
	FROM leads`

func (r *LeadRepository) findOne(ctx context.Context, query string, arg interface{}) (*entity.Lead, error) {
	var lead entity.Lead
	var telegramID string

	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&lead.ID,
		&lead.CreatedAt,
		&lead.UpdatedAt,
		&telegramID,
		&lead.Email,
		&lead.Age,
		&lead.Gender,
		&lead.Country,
		&lead.Language,
		&lead.EnglishLevel,
		&lead.AmazonExperience,
		&lead.Stage,
		&lead.LastEvent,
		&lead.LessonScore,
		&lead.LessonID,
		&lead.CourseID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leads lookup: %w", err)
	}

	lead.TelegramID, _ = strconv.ParseInt(telegramID, 10, 64)
	return &lead, nil
}

func leadFromFields(fields entity.LeadFields) *entity.Lead {
	tgID, _ := strconv.ParseInt(fields[entity.ColTelegramID], 10, 64)
	return &entity.Lead{
		CreatedAt:        fields[entity.ColCreatedAt],
		UpdatedAt:        fields[entity.ColUpdatedAt],
		TelegramID:       tgID,
		Email:            fields[entity.ColEmail],
		Age:              fields[entity.ColAge],
		Gender:           fields[entity.ColGender],
		Country:          fields[entity.ColCountry],
		Language:         fields[entity.ColLanguage],
		EnglishLevel:     fields[entity.ColEnglishLevel],
		AmazonExperience: fields[entity.ColAmazonExperience],
		Stage:            fields[entity.ColStage],
		LastEvent:        fields[entity.ColLastEvent],
		LessonScore:      fields[entity.ColLessonScore],
		LessonID:         fields[entity.ColLessonID],
		CourseID:         fields[entity.ColCourseID],
	}
}
