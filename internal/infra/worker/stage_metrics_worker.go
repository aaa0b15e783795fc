package worker

import (
	"context"
	"log"
	"time"

	"github.com/vadjik31/procto-bo/internal/entity"
	"github.com/vadjik31/procto-bo/internal/infra/http/middleware"
)

// StageMetricsWorker refreshes the per-stage lead gauges so the funnel can
// be graphed without anyone hitting the stats endpoint.
type StageMetricsWorker struct {
	repo         entity.LeadRepositoryInterface
	tickInterval time.Duration
}

func NewStageMetricsWorker(repo entity.LeadRepositoryInterface) *StageMetricsWorker {
	return &StageMetricsWorker{
		repo:         repo,
		tickInterval: 1 * time.Minute,
	}
}

func (w *StageMetricsWorker) Start(ctx context.Context) {
	log.Println("🕒 stage metrics worker started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("🕒 stage metrics worker stopped")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *StageMetricsWorker) refresh(ctx context.Context) {
	counts, err := w.repo.CountByStage(ctx)
	if err != nil {
		log.Printf("⚠️ stage metrics refresh failed: %v", err)
		return
	}

	// Zero the stages with no rows so a drained stage doesn't freeze.
	for _, stage := range []string{
		entity.StageProfileCollected,
		entity.StageInvitedToCourse,
		entity.StageTestFailed,
		entity.StageTestPassed,
		entity.StageTestGreat,
	} {
		middleware.SetStageLeads(stage, counts[stage])
	}
}
