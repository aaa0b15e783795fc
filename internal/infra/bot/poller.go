package bot

import (
	"context"
	"log"
	"time"

	"github.com/vadjik31/procto-bo/internal/infra/integration/telegram"
)

// UpdatesSource is the polling side of the Telegram client.
type UpdatesSource interface {
	GetUpdates(ctx context.Context, offset int64, timeoutSec int) ([]telegram.Update, error)
	DeleteWebhook(ctx context.Context, dropPending bool) error
}

// Poller drives the intake form off long polling. Each update is handled in
// its own goroutine so one slow registration (Sheets-era trauma: invites can
// take a couple of minutes) never blocks other chats.
type Poller struct {
	source UpdatesSource
	form   *FormService
}

func NewPoller(source UpdatesSource, form *FormService) *Poller {
	return &Poller{source: source, form: form}
}

func (p *Poller) Run(ctx context.Context) {
	if err := p.source.DeleteWebhook(ctx, true); err != nil {
		log.Printf("⚠️ deleteWebhook failed, polling anyway: %v", err)
	}

	log.Println("🤖 bot polling started")

	var offset int64
	for {
		select {
		case <-ctx.Done():
			log.Println("🤖 bot polling stopped")
			return
		default:
		}

		updates, err := p.source.GetUpdates(ctx, offset, 30)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("⚠️ getUpdates failed: %v", err)
			time.Sleep(3 * time.Second)
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			if u.Message == nil || u.Message.From == nil {
				continue
			}

			msg := u.Message
			go p.form.HandleMessage(ctx, msg.Chat.ID, msg.From.ID, msg.Text)
		}
	}
}
