package effects

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/form-builder/internal/models"
	"github.com/noah-isme/form-builder/internal/store"
	appErrors "github.com/noah-isme/form-builder/pkg/errors"
	"github.com/noah-isme/form-builder/pkg/nav"
)

type formBackendStub struct {
	mu          sync.Mutex
	templates   []models.FormTemplate
	submissions []models.FormSubmission
	getErr      error
	listCalls   int
}

func (s *formBackendStub) ListTemplates(ctx context.Context) ([]models.FormTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	return s.templates, nil
}

func (s *formBackendStub) GetTemplate(ctx context.Context, id string) (*models.FormTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, t := range s.templates {
		if t.ID == id {
			out := t.Clone()
			return &out, nil
		}
	}
	return nil, appErrors.ErrTemplateNotFound
}

func (s *formBackendStub) CreateTemplate(ctx context.Context, draft models.TemplateDraft) (*models.FormTemplate, error) {
	t := models.FormTemplate{ID: "created-1", Name: draft.Name, Fields: draft.Fields}
	return &t, nil
}

func (s *formBackendStub) UpdateTemplate(ctx context.Context, id string, patch models.TemplatePatch) (*models.FormTemplate, error) {
	for _, t := range s.templates {
		if t.ID == id {
			out := patch.Apply(t)
			return &out, nil
		}
	}
	return nil, appErrors.ErrTemplateNotFound
}

func (s *formBackendStub) DeleteTemplate(ctx context.Context, id string) error {
	return nil
}

func (s *formBackendStub) SubmitForm(ctx context.Context, templateID string, data map[string]any, submittedBy string) (*models.FormSubmission, error) {
	sub := models.FormSubmission{ID: "sub-1", FormTemplateID: templateID, Data: data, SubmittedBy: submittedBy}
	return &sub, nil
}

func (s *formBackendStub) ListSubmissions(ctx context.Context) ([]models.FormSubmission, error) {
	return s.submissions, nil
}

func (s *formBackendStub) ListSubmissionsByTemplate(ctx context.Context, templateID string) ([]models.FormSubmission, error) {
	out := make([]models.FormSubmission, 0)
	for _, sub := range s.submissions {
		if sub.FormTemplateID == templateID {
			out = append(out, sub)
		}
	}
	return out, nil
}

type authBackendStub struct {
	mu          sync.Mutex
	user        *models.User
	loginErr    error
	restored    *models.User
	logoutCalls int
}

func (s *authBackendStub) Login(ctx context.Context, username, password string) (*models.User, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	out := *s.user
	return &out, nil
}

func (s *authBackendStub) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoutCalls++
	return nil
}

func (s *authBackendStub) CurrentUser() *models.User {
	return s.restored
}

func demoTemplate() models.FormTemplate {
	return models.FormTemplate{ID: "template-1", Name: "Contact Form"}
}

func startEffects(t *testing.T, forms FormBackend, auth AuthBackend) (*store.Store, *nav.Recorder, func()) {
	t.Helper()
	st := store.New()
	recorder := nav.NewRecorder()
	fx := New(st, forms, auth, recorder, nil)
	fx.Start(context.Background())
	return st, recorder, fx.Stop
}

func waitForVisit(t *testing.T, recorder *nav.Recorder, path string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, visit := range recorder.Visits() {
			if visit.Path == path {
				return
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected navigation to %s, got %v", path, recorder.Visits())
}

func TestEffectsLoginSuccessFlow(t *testing.T) {
	user := models.User{ID: "1", Username: "admin", Role: models.RoleAdmin}
	st, recorder, stop := startEffects(t, &formBackendStub{}, &authBackendStub{user: &user})
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	reply, err := st.DispatchAndWait(ctx, store.Login{Meta: store.NewMeta(), Username: "admin", Password: "password"})
	require.NoError(t, err)

	success, ok := reply.(store.LoginSuccess)
	require.True(t, ok, "expected login success, got %s", reply.Kind())
	assert.Equal(t, "admin", success.User.Username)

	state := st.State()
	assert.True(t, state.Auth.IsAuthenticated)
	waitForVisit(t, recorder, "/dashboard")
}

func TestEffectsLoginFailureFlow(t *testing.T) {
	st, recorder, stop := startEffects(t, &formBackendStub{}, &authBackendStub{loginErr: appErrors.ErrInvalidCredentials})
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	reply, err := st.DispatchAndWait(ctx, store.Login{Meta: store.NewMeta(), Username: "admin", Password: "wrong"})
	require.NoError(t, err)

	failure, ok := reply.(store.LoginFailure)
	require.True(t, ok, "expected login failure, got %s", reply.Kind())
	assert.Equal(t, "Invalid credentials", failure.Error)

	state := st.State()
	assert.False(t, state.Auth.IsAuthenticated)
	assert.Equal(t, "Invalid credentials", state.Auth.Error)
	assert.Empty(t, recorder.Visits())
}

func TestEffectsLogoutNavigatesToLogin(t *testing.T) {
	auth := &authBackendStub{}
	st, recorder, stop := startEffects(t, &formBackendStub{}, auth)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	reply, err := st.DispatchAndWait(ctx, store.Logout{Meta: store.NewMeta()})
	require.NoError(t, err)
	assert.Equal(t, "[Auth] Logout Success", reply.Kind())

	waitForVisit(t, recorder, "/login")
	assert.Equal(t, models.InitialAuthState(), st.State().Auth)
}

func TestEffectsSessionRestore(t *testing.T) {
	user := models.User{ID: "2", Username: "user", Role: models.RoleUser}
	st, _, stop := startEffects(t, &formBackendStub{}, &authBackendStub{restored: &user})
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	reply, err := st.DispatchAndWait(ctx, store.LoadCurrentUser{Meta: store.NewMeta()})
	require.NoError(t, err)

	success, ok := reply.(store.LoadCurrentUserSuccess)
	require.True(t, ok, "expected restore success, got %s", reply.Kind())
	assert.Equal(t, "user", success.User.Username)
	assert.True(t, st.State().Auth.IsAuthenticated)
}

func TestEffectsSessionRestoreFallsBackToLogout(t *testing.T) {
	auth := &authBackendStub{}
	st, _, stop := startEffects(t, &formBackendStub{}, auth)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	reply, err := st.DispatchAndWait(ctx, store.LoadCurrentUser{Meta: store.NewMeta()})
	require.NoError(t, err)
	assert.Equal(t, "[Auth] Logout", reply.Kind())
}

func TestEffectsLoadTemplates(t *testing.T) {
	forms := &formBackendStub{templates: []models.FormTemplate{demoTemplate()}}
	st, _, stop := startEffects(t, forms, &authBackendStub{})
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	reply, err := st.DispatchAndWait(ctx, store.LoadTemplates{Meta: store.NewMeta()})
	require.NoError(t, err)

	success, ok := reply.(store.LoadTemplatesSuccess)
	require.True(t, ok)
	assert.Len(t, success.Templates, 1)
	assert.Len(t, st.State().FormBuilder.Templates, 1)
}

func TestEffectsLoadTemplateNotFound(t *testing.T) {
	st, _, stop := startEffects(t, &formBackendStub{}, &authBackendStub{})
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	reply, err := st.DispatchAndWait(ctx, store.LoadTemplate{Meta: store.NewMeta(), ID: "missing"})
	require.NoError(t, err)

	failure, ok := reply.(store.LoadTemplateFailure)
	require.True(t, ok)
	assert.Equal(t, "Template not found", failure.Error)
	assert.Equal(t, "Template not found", st.State().FormBuilder.Error)
}

func TestEffectsSubmitForm(t *testing.T) {
	st, _, stop := startEffects(t, &formBackendStub{}, &authBackendStub{})
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	reply, err := st.DispatchAndWait(ctx, store.SubmitForm{
		Meta:        store.NewMeta(),
		TemplateID:  "template-1",
		Data:        map[string]any{"field1": "Ada"},
		SubmittedBy: "admin",
	})
	require.NoError(t, err)

	success, ok := reply.(store.SubmitFormSuccess)
	require.True(t, ok)
	assert.Equal(t, "template-1", success.Submission.FormTemplateID)
	assert.Len(t, st.State().FormBuilder.Submissions, 1)
}

func TestEffectsOverlappingRequestsBothComplete(t *testing.T) {
	forms := &formBackendStub{templates: []models.FormTemplate{demoTemplate()}}
	st, _, stop := startEffects(t, forms, &authBackendStub{})
	defer stop()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_, errs[i] = st.DispatchAndWait(ctx, store.LoadTemplates{Meta: store.NewMeta()})
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, 2, forms.listCalls)
}
