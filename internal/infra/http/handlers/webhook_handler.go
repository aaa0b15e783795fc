package handlers

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/vadjik31/procto-bo/internal/infra/http/middleware"
	"github.com/vadjik31/procto-bo/internal/usecase"
)

type EventProcessor interface {
	Execute(ctx context.Context, raw map[string]interface{}) (usecase.EventResult, error)
}

// SkillspaceWebhookHandler terminates the platform's webhook. Token check
// first, before the body is even read; after that the answer is always 200
// with {"ok": true, ...}; the platform retries on anything else and
// duplicate deliveries are already harmless downstream.
type SkillspaceWebhookHandler struct {
	UC     EventProcessor
	Secret string
}

func NewSkillspaceWebhookHandler(uc EventProcessor, secret string) *SkillspaceWebhookHandler {
	return &SkillspaceWebhookHandler{UC: uc, Secret: secret}
}

func (h *SkillspaceWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"ok": false, "error": "missing token"})
		return
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.Secret)) != 1 {
		writeJSON(w, http.StatusForbidden, map[string]interface{}{"ok": false, "error": "invalid token"})
		return
	}

	deliveryID := uuid.New().String()

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		// A broken body is just a payload with nothing extractable in it.
		log.Printf("⚠️ webhook %s: undecodable body: %v", deliveryID, err)
		payload = map[string]interface{}{}
	}

	result, err := h.UC.Execute(r.Context(), payload)
	if err != nil {
		log.Printf("❌ webhook %s: processing error: %v", deliveryID, err)
	}
	result.DeliveryID = deliveryID

	middleware.RecordTestEvent(eventLabel(result))
	if result.Stage != "" {
		status := "failed"
		if result.Notified {
			status = "sent"
		}
		middleware.RecordNotification(status)
	}

	writeJSON(w, http.StatusOK, result)
}

func eventLabel(result usecase.EventResult) string {
	switch {
	case result.Ignored != "":
		return "ignored_" + result.Ignored
	case result.Error != "":
		return result.Error
	default:
		return "processed"
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
