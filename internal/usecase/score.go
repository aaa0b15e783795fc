package usecase

import (
	"github.com/vadjik31/procto-bo/internal/entity"
)

type Outcome string

const (
	OutcomeFailed Outcome = "FAILED"
	OutcomePassed Outcome = "PASSED"
	OutcomeGreat  Outcome = "GREAT"
)

// ClassifyScore buckets a 0-100 score. A score exactly on a threshold
// belongs to the higher band.
func ClassifyScore(score, passThreshold, greatThreshold float64) Outcome {
	switch {
	case score >= greatThreshold:
		return OutcomeGreat
	case score >= passThreshold:
		return OutcomePassed
	default:
		return OutcomeFailed
	}
}

func (o Outcome) Stage() string {
	switch o {
	case OutcomeGreat:
		return entity.StageTestGreat
	case OutcomePassed:
		return entity.StageTestPassed
	default:
		return entity.StageTestFailed
	}
}
