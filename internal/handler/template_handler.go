package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/form-builder/internal/models"
	"github.com/noah-isme/form-builder/internal/store"
	appErrors "github.com/noah-isme/form-builder/pkg/errors"
	"github.com/noah-isme/form-builder/pkg/response"
)

// TemplateHandler exposes template CRUD over the store's action cycle.
type TemplateHandler struct {
	store   *store.Store
	timeout time.Duration
}

// NewTemplateHandler constructs a template handler.
func NewTemplateHandler(st *store.Store, timeout time.Duration) *TemplateHandler {
	return &TemplateHandler{store: st, timeout: timeout}
}

// List godoc
// @Summary List form templates
// @Tags Templates
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	reply, err := h.store.DispatchAndWait(ctx, store.LoadTemplates{Meta: store.NewMeta()})
	if err != nil {
		response.Error(c, err)
		return
	}

	switch terminal := reply.(type) {
	case store.LoadTemplatesSuccess:
		response.JSON(c, http.StatusOK, terminal.Templates, nil)
	case store.LoadTemplatesFailure:
		response.Error(c, failureToError(terminal.Error))
	default:
		response.Error(c, appErrors.ErrInternal)
	}
}

// Get godoc
// @Summary Get one form template
// @Tags Templates
// @Produce json
// @Param id path string true "Template id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /templates/{id} [get]
func (h *TemplateHandler) Get(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	reply, err := h.store.DispatchAndWait(ctx, store.LoadTemplate{Meta: store.NewMeta(), ID: c.Param("id")})
	if err != nil {
		response.Error(c, err)
		return
	}

	switch terminal := reply.(type) {
	case store.LoadTemplateSuccess:
		response.JSON(c, http.StatusOK, terminal.Template, nil)
	case store.LoadTemplateFailure:
		response.Error(c, failureToError(terminal.Error))
	default:
		response.Error(c, appErrors.ErrInternal)
	}
}

// Create godoc
// @Summary Create a form template
// @Tags Templates
// @Accept json
// @Produce json
// @Param payload body models.TemplateDraft true "Template draft"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	var draft models.TemplateDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid template payload"))
		return
	}
	if claims := claimsFromContext(c); claims != nil && draft.CreatedBy == "" {
		draft.CreatedBy = claims.UserID
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	reply, err := h.store.DispatchAndWait(ctx, store.CreateTemplate{Meta: store.NewMeta(), Draft: draft})
	if err != nil {
		response.Error(c, err)
		return
	}

	switch terminal := reply.(type) {
	case store.CreateTemplateSuccess:
		response.Created(c, terminal.Template)
	case store.CreateTemplateFailure:
		response.Error(c, failureToError(terminal.Error))
	default:
		response.Error(c, appErrors.ErrInternal)
	}
}

// Update godoc
// @Summary Update a form template
// @Tags Templates
// @Accept json
// @Produce json
// @Param id path string true "Template id"
// @Param payload body models.TemplatePatch true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /templates/{id} [put]
func (h *TemplateHandler) Update(c *gin.Context) {
	var patch models.TemplatePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid template payload"))
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	reply, err := h.store.DispatchAndWait(ctx, store.UpdateTemplate{Meta: store.NewMeta(), ID: c.Param("id"), Updates: patch})
	if err != nil {
		response.Error(c, err)
		return
	}

	switch terminal := reply.(type) {
	case store.UpdateTemplateSuccess:
		response.JSON(c, http.StatusOK, terminal.Template, nil)
	case store.UpdateTemplateFailure:
		response.Error(c, failureToError(terminal.Error))
	default:
		response.Error(c, appErrors.ErrInternal)
	}
}

// Delete godoc
// @Summary Delete a form template
// @Tags Templates
// @Produce json
// @Param id path string true "Template id"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	reply, err := h.store.DispatchAndWait(ctx, store.DeleteTemplate{Meta: store.NewMeta(), ID: c.Param("id")})
	if err != nil {
		response.Error(c, err)
		return
	}

	switch terminal := reply.(type) {
	case store.DeleteTemplateSuccess:
		response.NoContent(c)
	case store.DeleteTemplateFailure:
		response.Error(c, failureToError(terminal.Error))
	default:
		response.Error(c, appErrors.ErrInternal)
	}
}
