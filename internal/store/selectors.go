package store

import "github.com/noah-isme/form-builder/internal/models"

// Selectors are pure read projections over a state snapshot. They mirror the
// builder's and shell's read needs one-to-one; none of them mutate anything.

func SelectAllTemplates(s models.AppState) []models.FormTemplate {
	return s.FormBuilder.Templates
}

func SelectCurrentTemplate(s models.AppState) *models.FormTemplate {
	return s.FormBuilder.CurrentTemplate
}

func SelectCurrentTemplateFields(s models.AppState) []models.FormField {
	if s.FormBuilder.CurrentTemplate == nil {
		return []models.FormField{}
	}
	return s.FormBuilder.CurrentTemplate.Fields
}

func SelectTemplateByID(s models.AppState, id string) *models.FormTemplate {
	for i := range s.FormBuilder.Templates {
		if s.FormBuilder.Templates[i].ID == id {
			return &s.FormBuilder.Templates[i]
		}
	}
	return nil
}

func SelectAllSubmissions(s models.AppState) []models.FormSubmission {
	return s.FormBuilder.Submissions
}

func SelectSubmissionsByTemplateID(s models.AppState, templateID string) []models.FormSubmission {
	out := []models.FormSubmission{}
	for _, sub := range s.FormBuilder.Submissions {
		if sub.FormTemplateID == templateID {
			out = append(out, sub)
		}
	}
	return out
}

func SelectFormBuilderLoading(s models.AppState) bool {
	return s.FormBuilder.IsLoading
}

func SelectFormBuilderError(s models.AppState) string {
	return s.FormBuilder.Error
}

func SelectCurrentUser(s models.AppState) *models.User {
	return s.Auth.User
}

func SelectIsAuthenticated(s models.AppState) bool {
	return s.Auth.IsAuthenticated
}

func SelectIsAdmin(s models.AppState) bool {
	return s.Auth.User != nil && s.Auth.User.Role == models.RoleAdmin
}

func SelectIsUser(s models.AppState) bool {
	return s.Auth.User != nil && s.Auth.User.Role == models.RoleUser
}

func SelectAuthLoading(s models.AppState) bool {
	return s.Auth.IsLoading
}

func SelectAuthError(s models.AppState) string {
	return s.Auth.Error
}
