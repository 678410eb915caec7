// Package effects hosts the orchestrators bridging request actions to the
// mock backend and back to terminal success/failure actions. It is the only
// side-effect boundary of the state container.
package effects

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/form-builder/internal/models"
	"github.com/noah-isme/form-builder/internal/store"
	appErrors "github.com/noah-isme/form-builder/pkg/errors"
	"github.com/noah-isme/form-builder/pkg/nav"
)

// FormBackend is the asynchronous form collaborator the orchestrators call.
type FormBackend interface {
	ListTemplates(ctx context.Context) ([]models.FormTemplate, error)
	GetTemplate(ctx context.Context, id string) (*models.FormTemplate, error)
	CreateTemplate(ctx context.Context, draft models.TemplateDraft) (*models.FormTemplate, error)
	UpdateTemplate(ctx context.Context, id string, patch models.TemplatePatch) (*models.FormTemplate, error)
	DeleteTemplate(ctx context.Context, id string) error
	SubmitForm(ctx context.Context, templateID string, data map[string]any, submittedBy string) (*models.FormSubmission, error)
	ListSubmissions(ctx context.Context) ([]models.FormSubmission, error)
	ListSubmissionsByTemplate(ctx context.Context, templateID string) ([]models.FormSubmission, error)
}

// AuthBackend is the authentication collaborator.
type AuthBackend interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser() *models.User
}

// Effects subscribes to the store's action feed and runs one backend call
// per request action on its own goroutine, so overlapping requests never
// block each other. Each accepted request produces exactly one terminal
// action, even when nobody is waiting for it anymore.
type Effects struct {
	store  *store.Store
	forms  FormBackend
	auth   AuthBackend
	nav    nav.Navigator
	logger *zap.Logger

	mu      sync.Mutex
	started bool
	ctx     context.Context
	cancel  context.CancelFunc
	unsub   func()
	wg      sync.WaitGroup
}

// New wires the orchestrators. A nil navigator or logger degrades to no-ops.
func New(st *store.Store, forms FormBackend, auth AuthBackend, navigator nav.Navigator, logger *zap.Logger) *Effects {
	if navigator == nil {
		navigator = nav.NewLog(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Effects{store: st, forms: forms, auth: auth, nav: navigator, logger: logger}
}

// Start begins consuming the action feed. Safe to call once.
func (e *Effects) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.ctx, e.cancel = context.WithCancel(ctx)

	feed, unsub := e.store.Subscribe(64)
	e.unsub = unsub

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		for {
			select {
			case <-e.ctx.Done():
				return
			case action, ok := <-feed:
				if !ok {
					return
				}
				e.wg.Add(1)
				go func(a store.Action) {
					defer e.wg.Done()
					e.handle(a)
				}(action)
			}
		}
	}()

	e.started = true
	e.logger.Info("effects started")
}

// Stop cancels in-flight backend calls and waits for workers to exit.
func (e *Effects) Stop() {
	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return
	}
	e.cancel()
	e.unsub()
	e.mu.Unlock()
	e.wg.Wait()
	e.logger.Info("effects stopped")
}

// handle maps one action to its side effect. Non-request actions mostly fall
// through; the two navigation listeners are the exception.
func (e *Effects) handle(action store.Action) {
	switch a := action.(type) {
	case store.Login:
		e.login(a)
	case store.LoginSuccess:
		e.nav.NavigateTo("/dashboard", nil)
	case store.Logout:
		e.logout(a)
	case store.LogoutSuccess:
		e.nav.NavigateTo("/login", nil)
	case store.LoadCurrentUser:
		e.loadCurrentUser(a)

	case store.LoadTemplates:
		e.loadTemplates(a)
	case store.LoadTemplate:
		e.loadTemplate(a)
	case store.CreateTemplate:
		e.createTemplate(a)
	case store.UpdateTemplate:
		e.updateTemplate(a)
	case store.DeleteTemplate:
		e.deleteTemplate(a)
	case store.SubmitForm:
		e.submitForm(a)
	case store.LoadSubmissions:
		e.loadSubmissions(a)
	case store.LoadSubmissionsByTemplate:
		e.loadSubmissionsByTemplate(a)
	}
}

func (e *Effects) login(a store.Login) {
	user, err := e.auth.Login(e.ctx, a.Username, a.Password)
	if err != nil {
		e.store.Dispatch(store.LoginFailure{Meta: store.ReplyTo(a), Error: failureMessage(err)})
		return
	}
	e.store.Dispatch(store.LoginSuccess{Meta: store.ReplyTo(a), User: *user})
}

func (e *Effects) logout(a store.Logout) {
	if err := e.auth.Logout(e.ctx); err != nil {
		e.logger.Warn("logout side effect failed", zap.Error(err))
	}
	e.store.Dispatch(store.LogoutSuccess{Meta: store.ReplyTo(a)})
}

// loadCurrentUser is the only place cold-start persistence is consulted: a
// restored record becomes a success action, anything else falls back to a
// logout.
func (e *Effects) loadCurrentUser(a store.LoadCurrentUser) {
	if user := e.auth.CurrentUser(); user != nil {
		e.store.Dispatch(store.LoadCurrentUserSuccess{Meta: store.ReplyTo(a), User: *user})
		return
	}
	e.store.Dispatch(store.Logout{Meta: store.ReplyTo(a)})
}

func (e *Effects) loadTemplates(a store.LoadTemplates) {
	templates, err := e.forms.ListTemplates(e.ctx)
	if err != nil {
		e.store.Dispatch(store.LoadTemplatesFailure{Meta: store.ReplyTo(a), Error: failureMessage(err)})
		return
	}
	e.store.Dispatch(store.LoadTemplatesSuccess{Meta: store.ReplyTo(a), Templates: templates})
}

func (e *Effects) loadTemplate(a store.LoadTemplate) {
	template, err := e.forms.GetTemplate(e.ctx, a.ID)
	if err != nil {
		e.store.Dispatch(store.LoadTemplateFailure{Meta: store.ReplyTo(a), Error: failureMessage(err)})
		return
	}
	e.store.Dispatch(store.LoadTemplateSuccess{Meta: store.ReplyTo(a), Template: *template})
}

func (e *Effects) createTemplate(a store.CreateTemplate) {
	template, err := e.forms.CreateTemplate(e.ctx, a.Draft)
	if err != nil {
		e.store.Dispatch(store.CreateTemplateFailure{Meta: store.ReplyTo(a), Error: failureMessage(err)})
		return
	}
	e.store.Dispatch(store.CreateTemplateSuccess{Meta: store.ReplyTo(a), Template: *template})
}

func (e *Effects) updateTemplate(a store.UpdateTemplate) {
	template, err := e.forms.UpdateTemplate(e.ctx, a.ID, a.Updates)
	if err != nil {
		e.store.Dispatch(store.UpdateTemplateFailure{Meta: store.ReplyTo(a), Error: failureMessage(err)})
		return
	}
	e.store.Dispatch(store.UpdateTemplateSuccess{Meta: store.ReplyTo(a), Template: *template})
}

func (e *Effects) deleteTemplate(a store.DeleteTemplate) {
	if err := e.forms.DeleteTemplate(e.ctx, a.ID); err != nil {
		e.store.Dispatch(store.DeleteTemplateFailure{Meta: store.ReplyTo(a), Error: failureMessage(err)})
		return
	}
	e.store.Dispatch(store.DeleteTemplateSuccess{Meta: store.ReplyTo(a), ID: a.ID})
}

func (e *Effects) submitForm(a store.SubmitForm) {
	submission, err := e.forms.SubmitForm(e.ctx, a.TemplateID, a.Data, a.SubmittedBy)
	if err != nil {
		e.store.Dispatch(store.SubmitFormFailure{Meta: store.ReplyTo(a), Error: failureMessage(err)})
		return
	}
	e.store.Dispatch(store.SubmitFormSuccess{Meta: store.ReplyTo(a), Submission: *submission})
}

func (e *Effects) loadSubmissions(a store.LoadSubmissions) {
	submissions, err := e.forms.ListSubmissions(e.ctx)
	if err != nil {
		e.store.Dispatch(store.LoadSubmissionsFailure{Meta: store.ReplyTo(a), Error: failureMessage(err)})
		return
	}
	e.store.Dispatch(store.LoadSubmissionsSuccess{Meta: store.ReplyTo(a), Submissions: submissions})
}

func (e *Effects) loadSubmissionsByTemplate(a store.LoadSubmissionsByTemplate) {
	submissions, err := e.forms.ListSubmissionsByTemplate(e.ctx, a.TemplateID)
	if err != nil {
		e.store.Dispatch(store.LoadSubmissionsByTemplateFailure{Meta: store.ReplyTo(a), Error: failureMessage(err)})
		return
	}
	e.store.Dispatch(store.LoadSubmissionsByTemplateSuccess{Meta: store.ReplyTo(a), Submissions: submissions})
}

// failureMessage reduces an error to the user-facing string stored on the
// slice.
func failureMessage(err error) string {
	if appErr := appErrors.FromError(err); appErr != nil {
		return appErr.Message
	}
	return err.Error()
}
