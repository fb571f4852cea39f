package forms

import "fmt"

// Rule is the validation constraint for a single field.
type Rule struct {
	Required bool
	// Message is shown when a required field is empty.
	Message string
}

// Errors maps field names to validation messages. An empty map means
// the checked values passed.
type Errors map[string]string

// Rules is a field-level validation ruleset built from a schema.
type Rules map[string]Rule

// BuildRules derives a ruleset from the schema. Required fields must be
// non-empty; everything else is optional. Fields with an unknown kind
// contribute nothing. The ruleset must be rebuilt whenever the schema
// changes.
func BuildRules(s *Schema) Rules {
	rules := make(Rules)
	for _, f := range s.Fields() {
		if !f.Kind.Valid() {
			continue
		}
		rules[f.Name] = Rule{
			Required: f.Required,
			Message:  fmt.Sprintf("%s is required", f.Label),
		}
	}
	return rules
}

// Apply checks values against the ruleset. Only fields visible under
// the current values snapshot are validated: a hidden required field
// never blocks submission.
func (r Rules) Apply(s *Schema, values Values) Errors {
	errs := make(Errors)
	for _, sec := range s.Sections {
		for _, f := range sec.VisibleFields(values) {
			rule, ok := r[f.Name]
			if !ok || !rule.Required {
				continue
			}
			if values.Empty(f.Name) {
				errs[f.Name] = rule.Message
			}
		}
	}
	return errs
}

// SubmitValues filters values down to visible, known fields. Hidden
// fields are omitted from the submitted payload entirely.
func SubmitValues(s *Schema, values Values) Values {
	out := make(Values)
	for _, sec := range s.Sections {
		for _, f := range sec.VisibleFields(values) {
			if val, ok := values[f.Name]; ok {
				out[f.Name] = val
			}
		}
	}
	return out
}
