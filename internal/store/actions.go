package store

import (
	"github.com/google/uuid"

	"github.com/noah-isme/form-builder/internal/models"
)

// Action is a tagged, immutable state-transition request. The set of
// implementations in this file is closed: reducers switch exhaustively over
// it and anything unknown passes state through unchanged.
type Action interface {
	Kind() string
	TraceID() string
}

// Meta carries the correlation trace shared by every action. Effects copy a
// request's trace onto the terminal success/failure action so callers can
// pair them up without assuming responses resolve in issuance order.
type Meta struct {
	Trace string
}

// TraceID returns the correlation trace, possibly empty.
func (m Meta) TraceID() string { return m.Trace }

// NewMeta mints a fresh trace for a request action.
func NewMeta() Meta {
	return Meta{Trace: uuid.NewString()}
}

// ReplyTo builds the Meta for a terminal action answering req.
func ReplyTo(req Action) Meta {
	return Meta{Trace: req.TraceID()}
}

// --- auth actions ---

type Login struct {
	Meta
	Username string
	Password string
}

type LoginSuccess struct {
	Meta
	User models.User
}

type LoginFailure struct {
	Meta
	Error string
}

type Logout struct{ Meta }

type LogoutSuccess struct{ Meta }

type LoadCurrentUser struct{ Meta }

type LoadCurrentUserSuccess struct {
	Meta
	User models.User
}

func (Login) Kind() string                  { return "[Auth] Login" }
func (LoginSuccess) Kind() string           { return "[Auth] Login Success" }
func (LoginFailure) Kind() string           { return "[Auth] Login Failure" }
func (Logout) Kind() string                 { return "[Auth] Logout" }
func (LogoutSuccess) Kind() string          { return "[Auth] Logout Success" }
func (LoadCurrentUser) Kind() string        { return "[Auth] Load Current User" }
func (LoadCurrentUserSuccess) Kind() string { return "[Auth] Load Current User Success" }

// --- template actions ---

type LoadTemplates struct{ Meta }

type LoadTemplatesSuccess struct {
	Meta
	Templates []models.FormTemplate
}

type LoadTemplatesFailure struct {
	Meta
	Error string
}

type LoadTemplate struct {
	Meta
	ID string
}

type LoadTemplateSuccess struct {
	Meta
	Template models.FormTemplate
}

type LoadTemplateFailure struct {
	Meta
	Error string
}

type CreateTemplate struct {
	Meta
	Draft models.TemplateDraft
}

type CreateTemplateSuccess struct {
	Meta
	Template models.FormTemplate
}

type CreateTemplateFailure struct {
	Meta
	Error string
}

type UpdateTemplate struct {
	Meta
	ID      string
	Updates models.TemplatePatch
}

type UpdateTemplateSuccess struct {
	Meta
	Template models.FormTemplate
}

type UpdateTemplateFailure struct {
	Meta
	Error string
}

type DeleteTemplate struct {
	Meta
	ID string
}

type DeleteTemplateSuccess struct {
	Meta
	ID string
}

type DeleteTemplateFailure struct {
	Meta
	Error string
}

func (LoadTemplates) Kind() string          { return "[Form Builder] Load Templates" }
func (LoadTemplatesSuccess) Kind() string   { return "[Form Builder] Load Templates Success" }
func (LoadTemplatesFailure) Kind() string   { return "[Form Builder] Load Templates Failure" }
func (LoadTemplate) Kind() string           { return "[Form Builder] Load Template" }
func (LoadTemplateSuccess) Kind() string    { return "[Form Builder] Load Template Success" }
func (LoadTemplateFailure) Kind() string    { return "[Form Builder] Load Template Failure" }
func (CreateTemplate) Kind() string         { return "[Form Builder] Create Template" }
func (CreateTemplateSuccess) Kind() string  { return "[Form Builder] Create Template Success" }
func (CreateTemplateFailure) Kind() string  { return "[Form Builder] Create Template Failure" }
func (UpdateTemplate) Kind() string         { return "[Form Builder] Update Template" }
func (UpdateTemplateSuccess) Kind() string  { return "[Form Builder] Update Template Success" }
func (UpdateTemplateFailure) Kind() string  { return "[Form Builder] Update Template Failure" }
func (DeleteTemplate) Kind() string         { return "[Form Builder] Delete Template" }
func (DeleteTemplateSuccess) Kind() string  { return "[Form Builder] Delete Template Success" }
func (DeleteTemplateFailure) Kind() string  { return "[Form Builder] Delete Template Failure" }

// --- field editing actions (synchronous, current template only) ---

type AddField struct {
	Meta
	Field models.FormField
}

type UpdateField struct {
	Meta
	ID      string
	Updates models.FieldPatch
}

type RemoveField struct {
	Meta
	ID string
}

// ReorderFields replaces the whole field list; ordering authority is the
// caller (the builder), not the reducer.
type ReorderFields struct {
	Meta
	Fields []models.FormField
}

func (AddField) Kind() string      { return "[Form Builder] Add Field" }
func (UpdateField) Kind() string   { return "[Form Builder] Update Field" }
func (RemoveField) Kind() string   { return "[Form Builder] Remove Field" }
func (ReorderFields) Kind() string { return "[Form Builder] Reorder Fields" }

// --- submission actions ---

type SubmitForm struct {
	Meta
	TemplateID  string
	Data        map[string]any
	SubmittedBy string
}

type SubmitFormSuccess struct {
	Meta
	Submission models.FormSubmission
}

type SubmitFormFailure struct {
	Meta
	Error string
}

type LoadSubmissions struct{ Meta }

type LoadSubmissionsSuccess struct {
	Meta
	Submissions []models.FormSubmission
}

type LoadSubmissionsFailure struct {
	Meta
	Error string
}

type LoadSubmissionsByTemplate struct {
	Meta
	TemplateID string
}

type LoadSubmissionsByTemplateSuccess struct {
	Meta
	Submissions []models.FormSubmission
}

type LoadSubmissionsByTemplateFailure struct {
	Meta
	Error string
}

func (SubmitForm) Kind() string        { return "[Form Builder] Submit Form" }
func (SubmitFormSuccess) Kind() string { return "[Form Builder] Submit Form Success" }
func (SubmitFormFailure) Kind() string { return "[Form Builder] Submit Form Failure" }
func (LoadSubmissions) Kind() string   { return "[Form Builder] Load Submissions" }
func (LoadSubmissionsSuccess) Kind() string {
	return "[Form Builder] Load Submissions Success"
}
func (LoadSubmissionsFailure) Kind() string {
	return "[Form Builder] Load Submissions Failure"
}
func (LoadSubmissionsByTemplate) Kind() string {
	return "[Form Builder] Load Submissions By Template"
}
func (LoadSubmissionsByTemplateSuccess) Kind() string {
	return "[Form Builder] Load Submissions By Template Success"
}
func (LoadSubmissionsByTemplateFailure) Kind() string {
	return "[Form Builder] Load Submissions By Template Failure"
}
