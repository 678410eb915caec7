package store

import "github.com/noah-isme/form-builder/internal/models"

// reduceFormBuilder maps (form-builder slice, action) to the next slice
// value. Copy-on-write throughout: changed arrays are always fresh slices so
// shallow comparison detects every transition.
func reduceFormBuilder(state models.FormBuilderState, action Action) models.FormBuilderState {
	switch a := action.(type) {
	case LoadTemplates, LoadTemplate, CreateTemplate, UpdateTemplate, DeleteTemplate,
		SubmitForm, LoadSubmissions, LoadSubmissionsByTemplate:
		next := state.Clone()
		next.IsLoading = true
		return next

	case LoadTemplatesSuccess:
		next := state.Clone()
		next.Templates = cloneTemplates(a.Templates)
		next.IsLoading = false
		next.Error = ""
		return next

	case LoadTemplateSuccess:
		next := state.Clone()
		t := a.Template.Clone()
		next.CurrentTemplate = &t
		next.IsLoading = false
		next.Error = ""
		return next

	case CreateTemplateSuccess:
		next := state.Clone()
		t := a.Template.Clone()
		next.Templates = append(cloneTemplates(state.Templates), t)
		cur := t.Clone()
		next.CurrentTemplate = &cur
		next.IsLoading = false
		next.Error = ""
		return next

	case UpdateTemplateSuccess:
		next := state.Clone()
		t := a.Template.Clone()
		next.Templates = replaceTemplate(state.Templates, t)
		cur := t.Clone()
		next.CurrentTemplate = &cur
		next.IsLoading = false
		next.Error = ""
		return next

	case DeleteTemplateSuccess:
		next := state.Clone()
		kept := make([]models.FormTemplate, 0, len(state.Templates))
		for _, t := range state.Templates {
			if t.ID != a.ID {
				kept = append(kept, t.Clone())
			}
		}
		next.Templates = kept
		if state.CurrentTemplate != nil && state.CurrentTemplate.ID == a.ID {
			next.CurrentTemplate = nil
		}
		next.IsLoading = false
		next.Error = ""
		return next

	case AddField:
		return withCurrentFields(state, func(fields []models.FormField) []models.FormField {
			return append(fields, a.Field.Clone())
		})

	case UpdateField:
		return withCurrentFields(state, func(fields []models.FormField) []models.FormField {
			out := make([]models.FormField, len(fields))
			for i, f := range fields {
				if f.ID == a.ID {
					out[i] = a.Updates.Apply(f)
				} else {
					out[i] = f.Clone()
				}
			}
			return out
		})

	case RemoveField:
		return withCurrentFields(state, func(fields []models.FormField) []models.FormField {
			out := make([]models.FormField, 0, len(fields))
			for _, f := range fields {
				if f.ID != a.ID {
					out = append(out, f.Clone())
				}
			}
			return out
		})

	case ReorderFields:
		return withCurrentFields(state, func([]models.FormField) []models.FormField {
			return models.CloneFields(a.Fields)
		})

	case SubmitFormSuccess:
		next := state.Clone()
		next.Submissions = append(models.CloneSubmissions(state.Submissions), a.Submission.Clone())
		next.IsLoading = false
		next.Error = ""
		return next

	case LoadSubmissionsSuccess:
		next := state.Clone()
		next.Submissions = models.CloneSubmissions(a.Submissions)
		next.IsLoading = false
		next.Error = ""
		return next

	case LoadSubmissionsByTemplateSuccess:
		next := state.Clone()
		next.Submissions = models.CloneSubmissions(a.Submissions)
		next.IsLoading = false
		next.Error = ""
		return next

	case LoadTemplatesFailure:
		return withFailure(state, a.Error)
	case LoadTemplateFailure:
		return withFailure(state, a.Error)
	case CreateTemplateFailure:
		return withFailure(state, a.Error)
	case UpdateTemplateFailure:
		return withFailure(state, a.Error)
	case DeleteTemplateFailure:
		return withFailure(state, a.Error)
	case SubmitFormFailure:
		return withFailure(state, a.Error)
	case LoadSubmissionsFailure:
		return withFailure(state, a.Error)
	case LoadSubmissionsByTemplateFailure:
		return withFailure(state, a.Error)

	default:
		return state
	}
}

// withCurrentFields applies a field-list transform to the current template.
// No current template means the action is a silent no-op. When the current
// template also lives in Templates, the list entry is replaced with the same
// updated value so the two never diverge.
func withCurrentFields(state models.FormBuilderState, fn func([]models.FormField) []models.FormField) models.FormBuilderState {
	if state.CurrentTemplate == nil {
		return state
	}

	updated := state.CurrentTemplate.Clone()
	updated.Fields = fn(state.CurrentTemplate.Fields)

	next := state.Clone()
	cur := updated.Clone()
	next.CurrentTemplate = &cur
	next.Templates = replaceTemplate(state.Templates, updated)
	return next
}

func withFailure(state models.FormBuilderState, msg string) models.FormBuilderState {
	next := state.Clone()
	next.IsLoading = false
	next.Error = msg
	return next
}

func cloneTemplates(ts []models.FormTemplate) []models.FormTemplate {
	out := make([]models.FormTemplate, len(ts))
	for i, t := range ts {
		out[i] = t.Clone()
	}
	return out
}

// replaceTemplate swaps the entry matching updated.ID; ids with no match
// leave the list content unchanged (still a fresh slice).
func replaceTemplate(ts []models.FormTemplate, updated models.FormTemplate) []models.FormTemplate {
	out := make([]models.FormTemplate, len(ts))
	for i, t := range ts {
		if t.ID == updated.ID {
			out[i] = updated.Clone()
		} else {
			out[i] = t.Clone()
		}
	}
	return out
}
