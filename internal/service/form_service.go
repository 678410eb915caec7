package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/form-builder/internal/models"
	"github.com/noah-isme/form-builder/pkg/config"
	appErrors "github.com/noah-isme/form-builder/pkg/errors"
)

// FormService simulates the form backend: templates and submissions live in
// memory behind a mutex and every call sleeps through a configured latency
// before resolving, so overlapping requests behave like real network calls.
type FormService struct {
	mu          sync.Mutex
	templates   []models.FormTemplate
	submissions []models.FormSubmission

	validator *validator.Validate
	logger    *zap.Logger
	delays    config.MockConfig
}

// NewFormService seeds the demo template set. Zero delays are legal and what
// tests use.
func NewFormService(validate *validator.Validate, logger *zap.Logger, delays config.MockConfig) *FormService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormService{
		templates: seedTemplates(),
		validator: validate,
		logger:    logger,
		delays:    delays,
	}
}

// ListTemplates returns a copy of every template.
func (s *FormService) ListTemplates(ctx context.Context) ([]models.FormTemplate, error) {
	if err := sleep(ctx, s.delays.ListDelay); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.FormTemplate, len(s.templates))
	for i, t := range s.templates {
		out[i] = t.Clone()
	}
	return out, nil
}

// GetTemplate returns the template with the given id.
func (s *FormService) GetTemplate(ctx context.Context, id string) (*models.FormTemplate, error) {
	if err := sleep(ctx, s.delays.GetDelay); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.templates {
		if t.ID == id {
			c := t.Clone()
			return &c, nil
		}
	}
	return nil, appErrors.ErrTemplateNotFound
}

// CreateTemplate assigns an id and timestamps to the draft and stores it.
func (s *FormService) CreateTemplate(ctx context.Context, draft models.TemplateDraft) (*models.FormTemplate, error) {
	if err := s.validator.Struct(draft); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid template payload")
	}
	if err := sleep(ctx, s.delays.WriteDelay); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tpl := models.FormTemplate{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Description: draft.Description,
		Fields:      models.CloneFields(draft.Fields),
		CreatedBy:   draft.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
		IsActive:    draft.IsActive,
	}
	if tpl.Fields == nil {
		tpl.Fields = []models.FormField{}
	}

	s.mu.Lock()
	s.templates = append(s.templates, tpl)
	s.mu.Unlock()

	s.logger.Debug("template created", zap.String("id", tpl.ID), zap.String("name", tpl.Name))
	out := tpl.Clone()
	return &out, nil
}

// UpdateTemplate merges the patch into the stored template and bumps
// UpdatedAt.
func (s *FormService) UpdateTemplate(ctx context.Context, id string, patch models.TemplatePatch) (*models.FormTemplate, error) {
	if err := sleep(ctx, s.delays.WriteDelay); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.templates {
		if t.ID != id {
			continue
		}
		updated := patch.Apply(t)
		updated.UpdatedAt = time.Now().UTC()
		s.templates[i] = updated
		out := updated.Clone()
		return &out, nil
	}
	return nil, appErrors.ErrTemplateNotFound
}

// DeleteTemplate removes the template with the given id.
func (s *FormService) DeleteTemplate(ctx context.Context, id string) error {
	if err := sleep(ctx, s.delays.WriteDelay); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.templates {
		if t.ID == id {
			s.templates = append(s.templates[:i], s.templates[i+1:]...)
			return nil
		}
	}
	return appErrors.ErrTemplateNotFound
}

// SubmitForm records a submission against an existing template, denormalizing
// the template name.
func (s *FormService) SubmitForm(ctx context.Context, templateID string, data map[string]any, submittedBy string) (*models.FormSubmission, error) {
	if err := sleep(ctx, s.delays.SubmitDelay); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var tpl *models.FormTemplate
	for i := range s.templates {
		if s.templates[i].ID == templateID {
			tpl = &s.templates[i]
			break
		}
	}
	if tpl == nil {
		return nil, appErrors.ErrTemplateNotFound
	}

	sub := models.FormSubmission{
		ID:               uuid.NewString(),
		FormTemplateID:   templateID,
		FormTemplateName: tpl.Name,
		Data:             data,
		SubmittedBy:      submittedBy,
		SubmittedAt:      time.Now().UTC(),
	}
	s.submissions = append(s.submissions, sub)

	out := sub.Clone()
	return &out, nil
}

// ListSubmissions returns a copy of every recorded submission.
func (s *FormService) ListSubmissions(ctx context.Context) ([]models.FormSubmission, error) {
	if err := sleep(ctx, s.delays.ListDelay); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneSubmissions(s.submissions), nil
}

// ListSubmissionsByTemplate filters submissions for one template.
func (s *FormService) ListSubmissionsByTemplate(ctx context.Context, templateID string) ([]models.FormSubmission, error) {
	if err := sleep(ctx, s.delays.ListDelay); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.FormSubmission{}
	for _, sub := range s.submissions {
		if sub.FormTemplateID == templateID {
			out = append(out, sub.Clone())
		}
	}
	return out, nil
}

// sleep blocks for the simulated latency, aborting early on context
// cancellation. A zero delay returns immediately.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// seedTemplates mirrors the demo data the UI shipped with.
func seedTemplates() []models.FormTemplate {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.FormTemplate{
		{
			ID:          "1",
			Name:        "Contact Form",
			Description: "A simple contact form",
			Fields: []models.FormField{
				{
					ID:          "field1",
					Type:        models.FieldTypeText,
					Label:       "Full Name",
					Name:        "fullName",
					Required:    true,
					Placeholder: "Enter your full name",
					Validation: []models.ValidationRule{
						{Type: models.ValidationRequired, Message: "Full name is required"},
						{Type: models.ValidationMinLength, Value: 2, Message: "Name must be at least 2 characters"},
					},
					Order: 1,
				},
				{
					ID:          "field3",
					Type:        models.FieldTypeTextarea,
					Label:       "Message",
					Name:        "message",
					Required:    true,
					Placeholder: "Enter your message",
					Validation: []models.ValidationRule{
						{Type: models.ValidationRequired, Message: "Message is required"},
						{Type: models.ValidationMinLength, Value: 10, Message: "Message must be at least 10 characters"},
					},
					Order: 3,
				},
			},
			CreatedBy: "1",
			CreatedAt: created,
			UpdatedAt: created,
			IsActive:  true,
		},
	}
}
