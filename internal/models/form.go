package models

import "time"

// FieldType enumerates the palette of input kinds a template may contain.
type FieldType string

const (
	FieldTypeText          FieldType = "text"
	FieldTypeTextarea      FieldType = "textarea"
	FieldTypeSelect        FieldType = "select"
	FieldTypeCheckbox      FieldType = "checkbox"
	FieldTypeRadio         FieldType = "radio"
	FieldTypeDate          FieldType = "date"
	FieldTypeCheckboxGroup FieldType = "checkbox-group"
	FieldTypeToggle        FieldType = "toggle"
	FieldTypeButton        FieldType = "button"
)

// ValidationType names a validation rule kind. The lower-case literals are
// load-bearing: serialized templates carry them verbatim and rule matching is
// an exact string comparison.
type ValidationType string

const (
	ValidationRequired  ValidationType = "required"
	ValidationMinLength ValidationType = "minlength"
	ValidationMaxLength ValidationType = "maxlength"
	ValidationPattern   ValidationType = "pattern"
	ValidationMin       ValidationType = "min"
	ValidationMax       ValidationType = "max"
	ValidationEmail     ValidationType = "email"
)

// Option is one selectable choice of a select/radio/checkbox-group field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ValidationRule attaches one runtime check to a field. Value semantics
// depend on Type: numeric bound for min/max/minlength/maxlength, regex
// source for pattern, absent for required/email. A field may carry several
// rules of the same type; the last one wins during runtime translation.
type ValidationRule struct {
	Type    ValidationType `json:"type"`
	Value   any            `json:"value,omitempty"`
	Message string         `json:"message"`
}

// FormField is one input definition within a template. Order is the 1-based
// display position and stays contiguous after every builder mutation.
type FormField struct {
	ID           string           `json:"id"`
	Type         FieldType        `json:"type"`
	Label        string           `json:"label"`
	Name         string           `json:"name"`
	Required     bool             `json:"required"`
	Placeholder  string           `json:"placeholder,omitempty"`
	HelpText     string           `json:"helpText,omitempty"`
	DefaultValue any              `json:"defaultValue,omitempty"`
	Disabled     bool             `json:"disabled,omitempty"`
	Options      []Option         `json:"options,omitempty"`
	Validation   []ValidationRule `json:"validation,omitempty"`
	Order        int              `json:"order"`
}

// Clone returns a deep copy of the field.
func (f FormField) Clone() FormField {
	out := f
	if f.Options != nil {
		out.Options = make([]Option, len(f.Options))
		copy(out.Options, f.Options)
	}
	if f.Validation != nil {
		out.Validation = make([]ValidationRule, len(f.Validation))
		copy(out.Validation, f.Validation)
	}
	return out
}

// NeedsOptions reports whether the field type requires an options list.
func (t FieldType) NeedsOptions() bool {
	return t == FieldTypeSelect || t == FieldTypeRadio || t == FieldTypeCheckboxGroup
}

// FormTemplate is a named, ordered collection of field definitions. Templates
// are value-semantic: every change produces a new instance, never an in-place
// mutation.
type FormTemplate struct {
	ID          string      `json:"id"`
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description,omitempty"`
	Fields      []FormField `json:"fields"`
	CreatedBy   string      `json:"createdBy"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	IsActive    bool        `json:"isActive"`
}

// Clone returns a deep copy of the template.
func (t FormTemplate) Clone() FormTemplate {
	out := t
	out.Fields = CloneFields(t.Fields)
	return out
}

// CloneFields deep-copies a field list, preserving nil.
func CloneFields(fields []FormField) []FormField {
	if fields == nil {
		return nil
	}
	out := make([]FormField, len(fields))
	for i, f := range fields {
		out[i] = f.Clone()
	}
	return out
}

// TemplateDraft carries the caller-supplied parts of a new template; id and
// timestamps are assigned by the backend.
type TemplateDraft struct {
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description,omitempty"`
	Fields      []FormField `json:"fields"`
	CreatedBy   string      `json:"createdBy"`
	IsActive    bool        `json:"isActive"`
}

// TemplatePatch is a partial template update; nil members are left unchanged.
type TemplatePatch struct {
	Name        *string     `json:"name,omitempty"`
	Description *string     `json:"description,omitempty"`
	Fields      []FormField `json:"fields,omitempty"`
	IsActive    *bool       `json:"isActive,omitempty"`
}

// Apply merges the patch into a copy of the template.
func (p TemplatePatch) Apply(t FormTemplate) FormTemplate {
	out := t.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Fields != nil {
		out.Fields = CloneFields(p.Fields)
	}
	if p.IsActive != nil {
		out.IsActive = *p.IsActive
	}
	return out
}

// FieldPatch is a partial field update; nil members are left unchanged.
// HasDefaultValue disambiguates "set default to nil" from "leave it alone".
type FieldPatch struct {
	Type            *FieldType       `json:"type,omitempty"`
	Label           *string          `json:"label,omitempty"`
	Name            *string          `json:"name,omitempty"`
	Required        *bool            `json:"required,omitempty"`
	Placeholder     *string          `json:"placeholder,omitempty"`
	HelpText        *string          `json:"helpText,omitempty"`
	DefaultValue    any              `json:"defaultValue,omitempty"`
	HasDefaultValue bool             `json:"-"`
	Disabled        *bool            `json:"disabled,omitempty"`
	Options         []Option         `json:"options,omitempty"`
	Validation      []ValidationRule `json:"validation,omitempty"`
	Order           *int             `json:"order,omitempty"`
}

// Apply merges the patch into a copy of the field.
func (p FieldPatch) Apply(f FormField) FormField {
	out := f.Clone()
	if p.Type != nil {
		out.Type = *p.Type
	}
	if p.Label != nil {
		out.Label = *p.Label
	}
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Required != nil {
		out.Required = *p.Required
	}
	if p.Placeholder != nil {
		out.Placeholder = *p.Placeholder
	}
	if p.HelpText != nil {
		out.HelpText = *p.HelpText
	}
	if p.HasDefaultValue {
		out.DefaultValue = p.DefaultValue
	}
	if p.Disabled != nil {
		out.Disabled = *p.Disabled
	}
	if p.Options != nil {
		out.Options = make([]Option, len(p.Options))
		copy(out.Options, p.Options)
	}
	if p.Validation != nil {
		out.Validation = make([]ValidationRule, len(p.Validation))
		copy(out.Validation, p.Validation)
	}
	if p.Order != nil {
		out.Order = *p.Order
	}
	return out
}

// PatchFromField builds a full-replacement patch out of an edited field, the
// shape the properties sidebar emits after an edit gesture.
func PatchFromField(f FormField) FieldPatch {
	c := f.Clone()
	return FieldPatch{
		Type:            &c.Type,
		Label:           &c.Label,
		Name:            &c.Name,
		Required:        &c.Required,
		Placeholder:     &c.Placeholder,
		HelpText:        &c.HelpText,
		DefaultValue:    c.DefaultValue,
		HasDefaultValue: true,
		Disabled:        &c.Disabled,
		Options:         c.Options,
		Validation:      c.Validation,
		Order:           &c.Order,
	}
}

// FormSubmission records one user filling out a template. Immutable once
// created; the template name is denormalized so listings survive template
// deletion.
type FormSubmission struct {
	ID               string         `json:"id"`
	FormTemplateID   string         `json:"formTemplateId"`
	FormTemplateName string         `json:"formTemplateName"`
	Data             map[string]any `json:"data"`
	SubmittedBy      string         `json:"submittedBy,omitempty"`
	SubmittedAt      time.Time      `json:"submittedAt"`
}

// Clone returns a deep copy of the submission.
func (s FormSubmission) Clone() FormSubmission {
	out := s
	if s.Data != nil {
		out.Data = make(map[string]any, len(s.Data))
		for k, v := range s.Data {
			out.Data[k] = v
		}
	}
	return out
}

// CloneSubmissions deep-copies a submission list, preserving nil.
func CloneSubmissions(subs []FormSubmission) []FormSubmission {
	if subs == nil {
		return nil
	}
	out := make([]FormSubmission, len(subs))
	for i, s := range subs {
		out[i] = s.Clone()
	}
	return out
}
