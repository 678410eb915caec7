package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/form-builder/internal/models"
	"github.com/noah-isme/form-builder/pkg/config"
	appErrors "github.com/noah-isme/form-builder/pkg/errors"
)

func newTestFormService() *FormService {
	return NewFormService(nil, nil, config.MockConfig{})
}

func TestFormServiceSeedsContactForm(t *testing.T) {
	svc := newTestFormService()

	templates, err := svc.ListTemplates(context.Background())
	require.NoError(t, err)
	require.Len(t, templates, 1)

	tpl := templates[0]
	assert.Equal(t, "1", tpl.ID)
	assert.Equal(t, "Contact Form", tpl.Name)
	require.Len(t, tpl.Fields, 2)
	assert.Equal(t, "fullName", tpl.Fields[0].Name)
	assert.Equal(t, 1, tpl.Fields[0].Order)
	assert.Equal(t, "message", tpl.Fields[1].Name)
	assert.Equal(t, 3, tpl.Fields[1].Order)
}

func TestFormServiceGetTemplateNotFound(t *testing.T) {
	svc := newTestFormService()

	_, err := svc.GetTemplate(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTemplateNotFound.Message, appErrors.FromError(err).Message)
}

func TestFormServiceCreateTemplate(t *testing.T) {
	svc := newTestFormService()

	created, err := svc.CreateTemplate(context.Background(), models.TemplateDraft{
		Name:      "Survey",
		CreatedBy: "1",
		Fields:    []models.FormField{{ID: "f1", Type: models.FieldTypeText, Label: "Q1", Order: 1}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Survey", created.Name)
	assert.False(t, created.CreatedAt.IsZero())

	templates, err := svc.ListTemplates(context.Background())
	require.NoError(t, err)
	assert.Len(t, templates, 2)
}

func TestFormServiceCreateTemplateRequiresName(t *testing.T) {
	svc := newTestFormService()

	_, err := svc.CreateTemplate(context.Background(), models.TemplateDraft{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestFormServiceUpdateTemplate(t *testing.T) {
	svc := newTestFormService()
	name := "Contact Form v2"

	updated, err := svc.UpdateTemplate(context.Background(), "1", models.TemplatePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Contact Form v2", updated.Name)
	// untouched members survive the patch
	assert.Equal(t, "A simple contact form", updated.Description)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestFormServiceDeleteTemplate(t *testing.T) {
	svc := newTestFormService()

	require.NoError(t, svc.DeleteTemplate(context.Background(), "1"))

	templates, err := svc.ListTemplates(context.Background())
	require.NoError(t, err)
	assert.Empty(t, templates)

	err = svc.DeleteTemplate(context.Background(), "1")
	require.Error(t, err)
}

func TestFormServiceSubmitForm(t *testing.T) {
	svc := newTestFormService()

	sub, err := svc.SubmitForm(context.Background(), "1", map[string]any{"field1": "Ada Lovelace"}, "admin")
	require.NoError(t, err)
	assert.Equal(t, "Contact Form", sub.FormTemplateName)
	assert.Equal(t, "admin", sub.SubmittedBy)
	assert.False(t, sub.SubmittedAt.IsZero())

	all, err := svc.ListSubmissions(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFormServiceSubmitFormUnknownTemplate(t *testing.T) {
	svc := newTestFormService()

	_, err := svc.SubmitForm(context.Background(), "missing", map[string]any{}, "admin")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTemplateNotFound.Message, appErrors.FromError(err).Message)
}

func TestFormServiceListSubmissionsByTemplate(t *testing.T) {
	svc := newTestFormService()
	_, err := svc.SubmitForm(context.Background(), "1", map[string]any{"field1": "Ada"}, "admin")
	require.NoError(t, err)

	forSeed, err := svc.ListSubmissionsByTemplate(context.Background(), "1")
	require.NoError(t, err)
	assert.Len(t, forSeed, 1)

	forOther, err := svc.ListSubmissionsByTemplate(context.Background(), "other")
	require.NoError(t, err)
	assert.Empty(t, forOther)
}

func TestFormServiceLatencyHonorsContext(t *testing.T) {
	svc := NewFormService(nil, nil, config.MockConfig{ListDelay: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := svc.ListTemplates(ctx)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestFormServiceResultsAreDetached(t *testing.T) {
	svc := newTestFormService()

	templates, err := svc.ListTemplates(context.Background())
	require.NoError(t, err)
	templates[0].Name = "mutated"

	again, err := svc.ListTemplates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Contact Form", again[0].Name)
}
