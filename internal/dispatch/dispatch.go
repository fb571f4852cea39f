package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hlcc-africa/site-api/internal/mailchimp"
	"github.com/hlcc-africa/site-api/internal/notify"
	"github.com/hlcc-africa/site-api/internal/observability/metrics"
	"github.com/hlcc-africa/site-api/pkg/logging"
)

// Purpose selects the courtesy-email template for a form.
type Purpose string

const (
	PurposeBooking     Purpose = "booking"
	PurposeApplication Purpose = "application"
	PurposeContact     Purpose = "contact"
)

// Entry is one submitted key/value pair. Entries keep the form's field
// order in the notification email.
type Entry struct {
	Key   string
	Value string
}

// Payload is a finalized form submission ready for dispatch.
type Payload struct {
	FormName string
	Purpose  Purpose
	Subject  string
	// To overrides the configured internal recipient when set.
	To      string
	Entries []Entry

	// UserEmail/UserName drive the courtesy acknowledgment. Empty
	// UserEmail skips it.
	UserEmail string
	UserName  string

	// Contact drives the marketing-list upsert for booking flows; a nil
	// Contact skips it. ListTag is the form-type tag the list client
	// prepends to the contact's own tags.
	Contact *mailchimp.Contact
	ListTag string
}

// Result is the user-visible outcome of a dispatch. Success tracks only
// the primary internal notification: the business must learn about the
// lead, everything else is best effort.
type Result struct {
	Success bool
	Message string
	Err     error
}

// SideEffect reports the outcome of one background side effect so
// operators can observe failures that never reach the user.
type SideEffect struct {
	Channel string
	Err     error
}

// ListUpserter is the marketing-list dependency of the dispatcher.
type ListUpserter interface {
	Upsert(ctx context.Context, contact mailchimp.Contact, formType string) (*mailchimp.UpsertResult, error)
}

// Config holds dispatcher addressing defaults.
type Config struct {
	ToEmail   string
	FromEmail string
	FromName  string
	// Timeout bounds each outbound provider call.
	Timeout time.Duration
}

// Dispatcher fans a completed submission out to the email provider and
// the marketing list.
type Dispatcher struct {
	email   notify.EmailSender
	list    ListUpserter
	cfg     Config
	metrics *metrics.DispatchMetrics
	logger  *logging.Logger
}

// NewDispatcher creates a dispatcher. list may be nil when the
// marketing list is not configured; metrics may be nil.
func NewDispatcher(email notify.EmailSender, list ListUpserter, cfg Config, m *metrics.DispatchMetrics, logger *logging.Logger) *Dispatcher {
	if email == nil {
		panic("dispatch: email sender required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{email: email, list: list, cfg: cfg, metrics: m, logger: logger}
}

// Dispatch sends the internal notification, then fires the courtesy
// email and the marketing-list upsert in the background. The returned
// channel is closed once both background effects have finished; callers
// may drain it for logging or discard it. Only a primary failure makes
// the result unsuccessful.
func (d *Dispatcher) Dispatch(ctx context.Context, p Payload) (Result, <-chan SideEffect) {
	effects := make(chan SideEffect, 2)

	primaryCtx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	to := p.To
	if to == "" {
		to = d.cfg.ToEmail
	}
	msg := notify.EmailMessage{
		To:       to,
		From:     d.cfg.FromEmail,
		FromName: d.cfg.FromName,
		Subject:  p.Subject,
		HTML:     renderInternalNotification(p, time.Now()),
	}
	if err := d.email.Send(primaryCtx, msg); err != nil {
		d.logger.Error("dispatch: internal notification failed", "form", p.FormName, "error", err)
		d.metrics.ObserveProviderCall("notification", "failure")
		d.metrics.ObserveSubmission(string(p.Purpose), "failure")
		close(effects)
		return Result{Err: fmt.Errorf("dispatch: internal notification: %w", err)}, effects
	}
	d.metrics.ObserveProviderCall("notification", "success")
	d.metrics.ObserveSubmission(string(p.Purpose), "success")

	// Secondary effects start only after the primary send succeeded.
	// They run on a detached context so a closed connection does not
	// cancel them; their results are observable but never change the
	// user-visible outcome.
	var wg sync.WaitGroup
	if p.UserEmail != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			effects <- SideEffect{Channel: "courtesy_email", Err: d.sendCourtesy(p)}
		}()
	}
	if p.Contact != nil && d.list != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			effects <- SideEffect{Channel: "list_upsert", Err: d.upsertContact(p)}
		}()
	}
	go func() {
		wg.Wait()
		close(effects)
	}()

	return Result{Success: true, Message: "Submission received"}, effects
}

func (d *Dispatcher) sendCourtesy(p Payload) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout)
	defer cancel()

	subject, html := courtesyTemplate(p.Purpose, p.UserName)
	err := d.email.Send(ctx, notify.EmailMessage{
		To:       p.UserEmail,
		ToName:   p.UserName,
		From:     d.cfg.FromEmail,
		FromName: d.cfg.FromName,
		Subject:  subject,
		HTML:     html,
	})
	if err != nil {
		d.logger.Error("dispatch: courtesy email failed", "to", p.UserEmail, "error", err)
		d.metrics.ObserveProviderCall("courtesy_email", "failure")
		return err
	}
	d.metrics.ObserveProviderCall("courtesy_email", "success")
	return nil
}

func (d *Dispatcher) upsertContact(p Payload) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout)
	defer cancel()

	res, err := d.list.Upsert(ctx, *p.Contact, p.ListTag)
	if err != nil {
		d.logger.Error("dispatch: list upsert failed", "email", p.Contact.Email, "error", err)
		d.metrics.ObserveProviderCall("list_upsert", "failure")
		return err
	}
	d.logger.Info("dispatch: list upsert done", "email", p.Contact.Email, "updated", res.Updated)
	d.metrics.ObserveProviderCall("list_upsert", "success")
	return nil
}
