package forms

import "fmt"

// FieldKind is the closed set of input kinds a schema may use. Anything
// outside this set is skipped by the renderer and the validator.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindEmail    FieldKind = "email"
	KindTel      FieldKind = "tel"
	KindURL      FieldKind = "url"
	KindTextarea FieldKind = "textarea"
	KindSelect   FieldKind = "select"
	KindCheckbox FieldKind = "checkbox"
	KindSwitch   FieldKind = "switch"
	KindFile     FieldKind = "file"
	KindNumber   FieldKind = "number"
)

// Valid reports whether k is a known field kind.
func (k FieldKind) Valid() bool {
	switch k {
	case KindText, KindEmail, KindTel, KindURL, KindTextarea,
		KindSelect, KindCheckbox, KindSwitch, KindFile, KindNumber:
		return true
	}
	return false
}

// Condition decides whether a field is shown for the current values.
// Conditions must be pure: they are re-evaluated on every values change.
type Condition func(Values) bool

// Field describes one input in a form.
type Field struct {
	ID          string
	Name        string
	Label       string
	Kind        FieldKind
	Placeholder string
	Options     []string
	Required    bool
	Rows        int
	Description string
	Condition   Condition
}

// Visible reports whether the field should be rendered for the given
// values snapshot. Fields without a condition are always visible.
func (f Field) Visible(values Values) bool {
	if f.Condition == nil {
		return true
	}
	return f.Condition(values)
}

// Section is a named group of fields with an optional layout hint.
type Section struct {
	Group  string
	Layout string
	Fields []Field
}

// VisibleFields returns the section's fields that pass their visibility
// conditions and have a known kind, in declaration order.
func (s Section) VisibleFields(values Values) []Field {
	out := make([]Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		if !f.Kind.Valid() {
			continue
		}
		if f.Visible(values) {
			out = append(out, f)
		}
	}
	return out
}

// SubmitMode routes a completed form to its destination.
type SubmitMode string

const (
	// SubmitEndpoint posts the raw values to a generic HTTP endpoint.
	SubmitEndpoint SubmitMode = "endpoint"
	// SubmitMarketingList upserts the contact into the marketing list,
	// tagged with the schema's FormTag.
	SubmitMarketingList SubmitMode = "marketing-list"
)

// Schema is a declarative description of a form, interpreted at render
// time.
type Schema struct {
	Title       string
	Description string
	SubmitText  string
	Mode        SubmitMode
	// Endpoint is the POST target when Mode is SubmitEndpoint.
	Endpoint string
	// FormTag classifies the form's purpose when Mode is SubmitMarketingList.
	FormTag  string
	Sections []Section
}

// Validate checks structural invariants of the schema. A select field
// must carry at least one option.
func (s *Schema) Validate() error {
	for _, sec := range s.Sections {
		for _, f := range sec.Fields {
			if f.Kind == KindSelect && len(f.Options) == 0 {
				return fmt.Errorf("forms: select field %q has no options", f.Name)
			}
		}
	}
	return nil
}

// Fields returns every field in the schema, flattened across sections.
func (s *Schema) Fields() []Field {
	var out []Field
	for _, sec := range s.Sections {
		out = append(out, sec.Fields...)
	}
	return out
}
