package models

// AuthState is the authentication slice. Error == "" encodes "no error".
type AuthState struct {
	User            *User  `json:"user"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	IsLoading       bool   `json:"isLoading"`
	Error           string `json:"error,omitempty"`
}

// InitialAuthState returns the slice value at application start and after a
// completed logout.
func InitialAuthState() AuthState {
	return AuthState{}
}

// Clone returns a deep copy of the slice.
func (s AuthState) Clone() AuthState {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}

// FormBuilderState is the form-builder slice: every known template, the one
// being edited or filled, and the loaded submissions.
type FormBuilderState struct {
	Templates       []FormTemplate   `json:"templates"`
	CurrentTemplate *FormTemplate    `json:"currentTemplate"`
	Submissions     []FormSubmission `json:"submissions"`
	IsLoading       bool             `json:"isLoading"`
	Error           string           `json:"error,omitempty"`
}

// InitialFormBuilderState returns the slice value at application start.
func InitialFormBuilderState() FormBuilderState {
	return FormBuilderState{Templates: []FormTemplate{}, Submissions: []FormSubmission{}}
}

// Clone returns a deep copy of the slice.
func (s FormBuilderState) Clone() FormBuilderState {
	out := s
	if s.Templates != nil {
		out.Templates = make([]FormTemplate, len(s.Templates))
		for i, t := range s.Templates {
			out.Templates[i] = t.Clone()
		}
	}
	out.Submissions = CloneSubmissions(s.Submissions)
	if s.CurrentTemplate != nil {
		t := s.CurrentTemplate.Clone()
		out.CurrentTemplate = &t
	}
	return out
}

// AppState composes the two slices into the process-wide state tree.
type AppState struct {
	Auth        AuthState        `json:"auth"`
	FormBuilder FormBuilderState `json:"formBuilder"`
}

// InitialAppState returns the state tree at application start.
func InitialAppState() AppState {
	return AppState{
		Auth:        InitialAuthState(),
		FormBuilder: InitialFormBuilderState(),
	}
}

// Clone returns a deep copy of the full tree.
func (s AppState) Clone() AppState {
	return AppState{
		Auth:        s.Auth.Clone(),
		FormBuilder: s.FormBuilder.Clone(),
	}
}
