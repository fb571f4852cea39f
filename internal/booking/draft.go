package booking

import (
	"net/mail"
	"strings"

	"github.com/hlcc-africa/site-api/internal/forms"
)

// Type distinguishes the two bookable meeting kinds.
type Type string

const (
	TypeDiscovery    Type = "discovery"
	TypeConsultation Type = "consultation"
)

// Tag returns the marketing-list tag for the booking type.
func (t Type) Tag() string {
	if t == TypeConsultation {
		return "consultation"
	}
	return "discovery-call"
}

// ContactMethod is how the prospect wants to be reached.
type ContactMethod string

const (
	ContactEmail ContactMethod = "email"
	ContactPhone ContactMethod = "phone"
	ContactVideo ContactMethod = "video"
)

func (m ContactMethod) valid() bool {
	switch m {
	case ContactEmail, ContactPhone, ContactVideo:
		return true
	}
	return false
}

// Draft accumulates the wizard's state across steps. It is created
// empty when the wizard opens, mutated step by step, frozen on submit
// and discarded on reset.
type Draft struct {
	// Step 1: contact info.
	Name    string
	Email   string
	Phone   string
	Company string

	// Step 2: needs.
	Needs         []string
	Timeframe     string
	ContactMethod ContactMethod

	// Step 3: schedule.
	PreferredDate string // yyyy-mm-dd
	PreferredTime string // HH:MM
	Timezone      string
	Message       string
	Referral      string
	AgreeTerms    bool
}

// validateContact checks the step-1 slice of the draft.
func (d *Draft) validateContact() forms.Errors {
	errs := make(forms.Errors)
	if len(strings.TrimSpace(d.Name)) < 2 {
		errs["name"] = "Please enter your full name"
	}
	if _, err := mail.ParseAddress(d.Email); err != nil {
		errs["email"] = "Please enter a valid email address"
	}
	if len(strings.TrimSpace(d.Phone)) < 10 {
		errs["phone"] = "Please enter a valid phone number"
	}
	if len(strings.TrimSpace(d.Company)) < 2 {
		errs["company"] = "Please enter your company name"
	}
	return errs
}

// validateNeeds checks the step-2 slice of the draft.
func (d *Draft) validateNeeds() forms.Errors {
	errs := make(forms.Errors)
	if len(d.Needs) == 0 {
		errs["needs"] = "Please select at least one area of interest"
	}
	if d.Timeframe == "" {
		errs["timeframe"] = "Please select when you would like to start"
	}
	if !d.ContactMethod.valid() {
		errs["contactMethod"] = "Please select your preferred contact method"
	}
	return errs
}

// validateSchedule checks the step-3 slice of the draft.
func (d *Draft) validateSchedule() forms.Errors {
	errs := make(forms.Errors)
	if d.PreferredDate == "" {
		errs["preferredDate"] = "Please select a date for your meeting"
	}
	if d.PreferredTime == "" {
		errs["preferredTime"] = "Please select a time for your meeting"
	}
	if d.Referral == "" {
		errs["howDidYouHear"] = "Please let us know how you heard about us"
	}
	if !d.AgreeTerms {
		errs["agreeToTerms"] = "You must agree to the privacy policy to continue"
	}
	return errs
}

// validateAll runs every step's checks for final submission.
func (d *Draft) validateAll() forms.Errors {
	errs := d.validateContact()
	for k, v := range d.validateNeeds() {
		errs[k] = v
	}
	for k, v := range d.validateSchedule() {
		errs[k] = v
	}
	return errs
}
