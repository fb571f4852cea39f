package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hlcc-africa/site-api/internal/dispatch"
	"github.com/hlcc-africa/site-api/internal/forms"
	"github.com/hlcc-africa/site-api/internal/mailchimp"
	"github.com/hlcc-africa/site-api/internal/schedule"
)

// Step is the wizard's position. The wizard advances one step at a
// time, validating only the fields the current step owns.
type Step int

const (
	StepContact Step = iota + 1
	StepNeeds
	StepSchedule
	StepDone
)

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission has not finished. The wizard owns at most one in-flight
// submission.
var ErrSubmitInFlight = errors.New("booking: submission already in flight")

// Dispatcher is the submission sink. *dispatch.Dispatcher satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, p dispatch.Payload) (dispatch.Result, <-chan dispatch.SideEffect)
}

// Wizard drives the three-step booking flow. It is owned by a single
// caller and is not safe for concurrent use.
type Wizard struct {
	Draft Draft

	formType   Type
	step       Step
	submitting bool
	clock      func() time.Time
}

// New creates a wizard at the contact step with an empty draft.
func New(formType Type) *Wizard {
	return NewWithClock(formType, time.Now)
}

// NewWithClock creates a wizard with an injected clock. Tests pin the
// clock to exercise date defaulting and slot generation.
func NewWithClock(formType Type, clock func() time.Time) *Wizard {
	if clock == nil {
		clock = time.Now
	}
	return &Wizard{formType: formType, step: StepContact, clock: clock}
}

// Step returns the wizard's current position.
func (w *Wizard) Step() Step {
	return w.step
}

// Type returns the booking type the wizard was opened for.
func (w *Wizard) Type() Type {
	return w.formType
}

// Reset discards the draft and returns to the first step, as when the
// modal is closed and reopened.
func (w *Wizard) Reset() {
	w.Draft = Draft{}
	w.step = StepContact
	w.submitting = false
}

// Next validates the current step's fields and advances on success.
// Validation failure keeps the wizard in place and reports per-field
// errors; other steps' data is untouched either way.
func (w *Wizard) Next() forms.Errors {
	var errs forms.Errors
	switch w.step {
	case StepContact:
		errs = w.Draft.validateContact()
	case StepNeeds:
		errs = w.Draft.validateNeeds()
	default:
		return forms.Errors{}
	}
	if len(errs) > 0 {
		return errs
	}
	w.step++
	if w.step == StepSchedule {
		w.enterSchedule()
	}
	return errs
}

// Back moves one step back. Always allowed, never validates, and
// preserves everything entered so far.
func (w *Wizard) Back() {
	if w.step > StepContact && w.step != StepDone {
		w.step--
	}
}

// enterSchedule applies the step-3 defaults on first entry: the first
// available weekday when no date is picked yet, and the local timezone
// when none is set.
func (w *Wizard) enterSchedule() {
	now := w.clock()
	if w.Draft.PreferredDate == "" {
		w.Draft.PreferredDate = schedule.FirstAvailableDate(now).Format("2006-01-02")
	}
	if w.Draft.Timezone == "" {
		w.Draft.Timezone = now.Location().String()
	}
}

// SelectDate picks a new meeting date. A date change always clears the
// selected time so a slot from the previous date cannot leak through.
// Unavailable dates (weekends, past days) are rejected.
func (w *Wizard) SelectDate(date time.Time) bool {
	if !schedule.DateAvailable(date, w.clock()) {
		return false
	}
	w.Draft.PreferredDate = date.Format("2006-01-02")
	w.Draft.PreferredTime = ""
	return true
}

// SelectTime picks a slot time for the already selected date.
func (w *Wizard) SelectTime(slot schedule.Slot) {
	w.Draft.PreferredDate = slot.Time.Format("2006-01-02")
	w.Draft.PreferredTime = slot.Time.Format("15:04")
}

// Slots returns the grouped bookable slots for the currently selected
// date. The result is derived state, recomputed on every call.
func (w *Wizard) Slots() (schedule.Grouped, error) {
	date, err := time.ParseInLocation("2006-01-02", w.Draft.PreferredDate, w.clock().Location())
	if err != nil {
		return schedule.Grouped{}, err
	}
	return schedule.Group(schedule.Generate(date, w.clock())), nil
}

// Submit validates the full draft and hands it to the dispatcher. Only
// allowed from the schedule step. On primary success the wizard moves
// to StepDone even when secondary side effects fail; on primary failure
// it stays put with the draft intact so the user can retry.
func (w *Wizard) Submit(ctx context.Context, d Dispatcher) (dispatch.Result, <-chan dispatch.SideEffect, forms.Errors, error) {
	if w.step != StepSchedule {
		return dispatch.Result{}, nil, nil, errors.New("booking: submit is only valid from the schedule step")
	}
	if w.submitting {
		return dispatch.Result{}, nil, nil, ErrSubmitInFlight
	}
	if errs := w.Draft.validateAll(); len(errs) > 0 {
		return dispatch.Result{}, nil, errs, nil
	}

	w.submitting = true
	defer func() { w.submitting = false }()

	result, effects := d.Dispatch(ctx, w.payload())
	if result.Success {
		w.step = StepDone
	}
	return result, effects, nil, nil
}

// payload freezes the draft into a dispatchable submission.
func (w *Wizard) payload() dispatch.Payload {
	d := w.Draft
	firstName, lastName := forms.ParseName(d.Name)

	meeting := "Discovery Call"
	if w.formType == TypeConsultation {
		meeting = "Consultation"
	}

	return dispatch.Payload{
		FormName: "Booking Form",
		Purpose:  dispatch.PurposeBooking,
		Subject:  "New " + meeting + " Request - " + d.Name,
		Entries: []dispatch.Entry{
			{Key: "name", Value: d.Name},
			{Key: "email", Value: d.Email},
			{Key: "phone", Value: d.Phone},
			{Key: "company", Value: d.Company},
			{Key: "needs", Value: strings.Join(d.Needs, ", ")},
			{Key: "timeframe", Value: d.Timeframe},
			{Key: "contactMethod", Value: string(d.ContactMethod)},
			{Key: "preferredDate", Value: d.PreferredDate},
			{Key: "preferredTime", Value: d.PreferredTime},
			{Key: "timezone", Value: d.Timezone},
			{Key: "message", Value: d.Message},
			{Key: "howDidYouHear", Value: d.Referral},
			{Key: "bookingType", Value: string(w.formType)},
		},
		UserEmail: d.Email,
		UserName:  d.Name,
		Contact: &mailchimp.Contact{
			Email:     d.Email,
			FirstName: firstName,
			LastName:  lastName,
			Phone:     d.Phone,
			Company:   d.Company,
			Tags:      []string{"booking"},
			MergeFields: map[string]string{
				"NEEDS":          strings.Join(d.Needs, ", "),
				"TIMEFRAME":      d.Timeframe,
				"CONTACT_METHOD": string(d.ContactMethod),
				"PREFERRED_DATE": d.PreferredDate,
				"PREFERRED_TIME": d.PreferredTime,
				"TIMEZONE":       d.Timezone,
				"MESSAGE":        d.Message,
				"HOW_HEARD":      d.Referral,
				"BOOKING_TYPE":   string(w.formType),
			},
		},
		ListTag: w.formType.Tag(),
	}
}
