package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hlcc-africa/site-api/internal/notify"
	"github.com/hlcc-africa/site-api/pkg/logging"
)

// SendEmailConfig holds the relay's addressing defaults.
type SendEmailConfig struct {
	ToEmail   string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

// SendEmailHandler relays transactional email for the website forms.
// The primary message decides the response; an optional courtesy copy
// to the submitter is attempted afterwards and never changes it.
type SendEmailHandler struct {
	sender notify.EmailSender
	cfg    SendEmailConfig
	logger *logging.Logger
}

// NewSendEmailHandler creates the relay handler. sender may be nil when
// no provider is configured; requests then fail with a 500.
func NewSendEmailHandler(sender notify.EmailSender, cfg SendEmailConfig, logger *logging.Logger) *SendEmailHandler {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SendEmailHandler{sender: sender, cfg: cfg, logger: logger}
}

type sendEmailRequest struct {
	To          string `json:"to"`
	Subject     string `json:"subject"`
	HTML        string `json:"html"`
	From        string `json:"from"`
	UserEmail   string `json:"userEmail"`
	UserSubject string `json:"userSubject"`
	UserHTML    string `json:"userHtml"`
}

// Handle processes POST /api/send-email.
func (h *SendEmailHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req sendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	if req.Subject == "" || req.HTML == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Subject and html are required"})
		return
	}

	if h.sender == nil {
		h.logger.Error("send-email relay called without provider credentials")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Server configuration error"})
		return
	}

	to := req.To
	if to == "" {
		to = h.cfg.ToEmail
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.Timeout)
	defer cancel()
	err := h.sender.Send(ctx, notify.EmailMessage{
		To:       to,
		From:     req.From,
		FromName: h.cfg.FromName,
		Subject:  req.Subject,
		HTML:     req.HTML,
	})
	if err != nil {
		h.logger.Error("send-email relay: primary send failed", "to", to, "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if req.UserEmail != "" && req.UserHTML != "" {
		h.sendCourtesy(req)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"id":      uuid.NewString(),
	})
}

// sendCourtesy delivers the acknowledgment copy to the submitter. A
// failure here is logged and swallowed.
func (h *SendEmailHandler) sendCourtesy(req sendEmailRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), h.cfg.Timeout)
	defer cancel()

	subject := req.UserSubject
	if subject == "" {
		subject = "Thank you for contacting HLCC"
	}
	err := h.sender.Send(ctx, notify.EmailMessage{
		To:       req.UserEmail,
		From:     h.cfg.FromEmail,
		FromName: h.cfg.FromName,
		Subject:  subject,
		HTML:     req.UserHTML,
	})
	if err != nil {
		h.logger.Error("send-email relay: courtesy send failed", "to", req.UserEmail, "error", err)
	}
}
