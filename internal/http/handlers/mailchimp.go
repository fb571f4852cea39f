package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hlcc-africa/site-api/internal/mailchimp"
	"github.com/hlcc-africa/site-api/pkg/logging"
)

// ListUpserter is the marketing-list dependency of the relay endpoint.
// *mailchimp.Client satisfies it.
type ListUpserter interface {
	Upsert(ctx context.Context, contact mailchimp.Contact, formType string) (*mailchimp.UpsertResult, error)
}

// MailchimpHandler relays website form contacts to the marketing list.
type MailchimpHandler struct {
	list   ListUpserter
	logger *logging.Logger
}

// NewMailchimpHandler creates the relay handler. list may be nil when
// the provider is not configured; requests then fail with a 500.
func NewMailchimpHandler(list ListUpserter, logger *logging.Logger) *MailchimpHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &MailchimpHandler{list: list, logger: logger}
}

type mailchimpRequest struct {
	Contact  mailchimp.Contact `json:"contact"`
	FormType string            `json:"formType"`
}

// Handle processes POST /api/mailchimp.
func (h *MailchimpHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req mailchimpRequest
	// A malformed body carries no email either way.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Contact.Email) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Email is required"})
		return
	}

	if h.list == nil {
		h.logger.Error("mailchimp relay called without provider credentials")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server configuration error"})
		return
	}

	res, err := h.list.Upsert(r.Context(), req.Contact, req.FormType)
	if err != nil {
		h.logger.Error("mailchimp upsert failed", "email", req.Contact.Email, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": res.Message,
	})
}
