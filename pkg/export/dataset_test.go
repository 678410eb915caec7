package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/form-builder/internal/models"
)

func exportFixture() ([]models.FormSubmission, *models.FormTemplate) {
	template := &models.FormTemplate{
		ID:   "template-1",
		Name: "Contact Form",
		Fields: []models.FormField{
			{ID: "field1", Label: "Full Name", Order: 1},
			{ID: "field2", Label: "Age", Order: 2},
		},
	}
	subs := []models.FormSubmission{
		{
			ID:               "sub-1",
			FormTemplateID:   "template-1",
			FormTemplateName: "Contact Form",
			Data:             map[string]any{"field1": "Ada Lovelace", "field2": float64(36)},
			SubmittedBy:      "admin",
			SubmittedAt:      time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}
	return subs, template
}

func TestSubmissionsDatasetWithTemplate(t *testing.T) {
	subs, template := exportFixture()

	dataset := SubmissionsDataset(subs, template)

	assert.Equal(t, []string{"submission_id", "form", "submitted_by", "submitted_at", "Full Name", "Age"}, dataset.Headers)
	require.Len(t, dataset.Rows, 1)
	row := dataset.Rows[0]
	assert.Equal(t, "sub-1", row["submission_id"])
	assert.Equal(t, "Ada Lovelace", row["Full Name"])
	// JSON float ints render without a fraction
	assert.Equal(t, "36", row["Age"])
	assert.Equal(t, "2024-06-01T12:00:00Z", row["submitted_at"])
}

func TestSubmissionsDatasetWithoutTemplateUsesKeyUnion(t *testing.T) {
	subs := []models.FormSubmission{
		{ID: "sub-1", Data: map[string]any{"b": "2"}},
		{ID: "sub-2", Data: map[string]any{"a": "1"}},
	}

	dataset := SubmissionsDataset(subs, nil)

	assert.Equal(t, []string{"submission_id", "form", "submitted_by", "submitted_at", "a", "b"}, dataset.Headers)
}

func TestCSVExporterRender(t *testing.T) {
	subs, template := exportFixture()
	body, err := NewCSVExporter().Render(SubmissionsDataset(subs, template))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Full Name")
	assert.Contains(t, lines[1], "Ada Lovelace")
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	subs, template := exportFixture()
	body, err := NewPDFExporter().Render(SubmissionsDataset(subs, template), "Contact Form submissions")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", cellString(nil))
	assert.Equal(t, "plain", cellString("plain"))
	assert.Equal(t, "true", cellString(true))
	assert.Equal(t, "false", cellString(false))
	assert.Equal(t, "3", cellString(float64(3)))
	assert.Equal(t, "3.5", cellString(3.5))
}
