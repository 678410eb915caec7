package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/form-builder/internal/models"
	"github.com/noah-isme/form-builder/internal/renderer"
	"github.com/noah-isme/form-builder/internal/store"
	appErrors "github.com/noah-isme/form-builder/pkg/errors"
	"github.com/noah-isme/form-builder/pkg/export"
	"github.com/noah-isme/form-builder/pkg/response"
)

// SubmissionHandler accepts form submissions, serves submission queries and
// renders exports. Submissions are validated against the template's rules
// before they enter the store cycle.
type SubmissionHandler struct {
	store   *store.Store
	timeout time.Duration
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
}

// NewSubmissionHandler constructs a submission handler.
func NewSubmissionHandler(st *store.Store, timeout time.Duration) *SubmissionHandler {
	return &SubmissionHandler{
		store:   st,
		timeout: timeout,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
	}
}

type submitPayload struct {
	Data map[string]any `json:"data" binding:"required"`
}

// template resolves a template through the store, loading it on a miss.
func (h *SubmissionHandler) template(c *gin.Context, id string) (*models.FormTemplate, *appErrors.Error) {
	if t := store.SelectTemplateByID(h.store.State(), id); t != nil {
		return t, nil
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	reply, err := h.store.DispatchAndWait(ctx, store.LoadTemplate{Meta: store.NewMeta(), ID: id})
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	switch terminal := reply.(type) {
	case store.LoadTemplateSuccess:
		t := terminal.Template
		return &t, nil
	case store.LoadTemplateFailure:
		return nil, failureToError(terminal.Error)
	default:
		return nil, appErrors.ErrInternal
	}
}

// Submit godoc
// @Summary Submit a filled form
// @Description Validate the payload against the template's rules and record the submission
// @Tags Submissions
// @Accept json
// @Produce json
// @Param id path string true "Template id"
// @Param payload body submitPayload true "Submission data keyed by field id"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /templates/{id}/submissions [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var payload submitPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid submission payload"))
		return
	}

	templateID := c.Param("id")
	template, appErr := h.template(c, templateID)
	if appErr != nil {
		response.Error(c, appErr)
		return
	}

	form := renderer.Compile(*template, payload.Data)
	if !form.Valid() {
		fieldErrors := make(map[string]string)
		for _, ctrl := range form.Controls() {
			if msg := form.FieldError(ctrl.Field.ID); msg != "" {
				fieldErrors[ctrl.Field.ID] = msg
			}
		}
		c.JSON(appErrors.ErrSubmissionRejected.Status, response.Envelope{
			Error: appErrors.ErrSubmissionRejected,
			Meta:  map[string]interface{}{"fieldErrors": fieldErrors},
		})
		return
	}

	submittedBy := ""
	if claims := claimsFromContext(c); claims != nil {
		submittedBy = claims.Username
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	reply, err := h.store.DispatchAndWait(ctx, store.SubmitForm{
		Meta:        store.NewMeta(),
		TemplateID:  templateID,
		Data:        form.Values(),
		SubmittedBy: submittedBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	switch terminal := reply.(type) {
	case store.SubmitFormSuccess:
		response.Created(c, terminal.Submission)
	case store.SubmitFormFailure:
		response.Error(c, failureToError(terminal.Error))
	default:
		response.Error(c, appErrors.ErrInternal)
	}
}

// Validate godoc
// @Summary Dry-run a submission
// @Description Run the template's validation rules without recording anything
// @Tags Submissions
// @Accept json
// @Produce json
// @Param id path string true "Template id"
// @Param payload body submitPayload true "Submission data keyed by field id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /templates/{id}/validate [post]
func (h *SubmissionHandler) Validate(c *gin.Context) {
	var payload submitPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid submission payload"))
		return
	}

	template, appErr := h.template(c, c.Param("id"))
	if appErr != nil {
		response.Error(c, appErr)
		return
	}

	form := renderer.Compile(*template, payload.Data)
	fieldErrors := make(map[string]string)
	for _, ctrl := range form.Controls() {
		if msg := form.FieldError(ctrl.Field.ID); msg != "" {
			fieldErrors[ctrl.Field.ID] = msg
		}
	}

	response.JSON(c, http.StatusOK, gin.H{"valid": len(fieldErrors) == 0, "fieldErrors": fieldErrors}, nil)
}

// List godoc
// @Summary List all submissions
// @Tags Submissions
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /submissions [get]
func (h *SubmissionHandler) List(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	reply, err := h.store.DispatchAndWait(ctx, store.LoadSubmissions{Meta: store.NewMeta()})
	if err != nil {
		response.Error(c, err)
		return
	}

	switch terminal := reply.(type) {
	case store.LoadSubmissionsSuccess:
		response.JSON(c, http.StatusOK, terminal.Submissions, nil)
	case store.LoadSubmissionsFailure:
		response.Error(c, failureToError(terminal.Error))
	default:
		response.Error(c, appErrors.ErrInternal)
	}
}

// ListByTemplate godoc
// @Summary List submissions for one template
// @Tags Submissions
// @Produce json
// @Param id path string true "Template id"
// @Success 200 {object} response.Envelope
// @Router /templates/{id}/submissions [get]
func (h *SubmissionHandler) ListByTemplate(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	reply, err := h.store.DispatchAndWait(ctx, store.LoadSubmissionsByTemplate{Meta: store.NewMeta(), TemplateID: c.Param("id")})
	if err != nil {
		response.Error(c, err)
		return
	}

	switch terminal := reply.(type) {
	case store.LoadSubmissionsByTemplateSuccess:
		response.JSON(c, http.StatusOK, terminal.Submissions, nil)
	case store.LoadSubmissionsByTemplateFailure:
		response.Error(c, failureToError(terminal.Error))
	default:
		response.Error(c, appErrors.ErrInternal)
	}
}

// Export godoc
// @Summary Export a template's submissions
// @Description Stream the submissions table as CSV or PDF
// @Tags Submissions
// @Produce octet-stream
// @Param id path string true "Template id"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /templates/{id}/submissions/export [get]
func (h *SubmissionHandler) Export(c *gin.Context) {
	templateID := c.Param("id")
	template, appErr := h.template(c, templateID)
	if appErr != nil {
		response.Error(c, appErr)
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	reply, err := h.store.DispatchAndWait(ctx, store.LoadSubmissionsByTemplate{Meta: store.NewMeta(), TemplateID: templateID})
	if err != nil {
		response.Error(c, err)
		return
	}

	var submissions []models.FormSubmission
	switch terminal := reply.(type) {
	case store.LoadSubmissionsByTemplateSuccess:
		submissions = terminal.Submissions
	case store.LoadSubmissionsByTemplateFailure:
		response.Error(c, failureToError(terminal.Error))
		return
	default:
		response.Error(c, appErrors.ErrInternal)
		return
	}

	dataset := export.SubmissionsDataset(submissions, template)
	switch c.DefaultQuery("format", "csv") {
	case "pdf":
		body, err := h.pdf.Render(dataset, template.Name+" submissions")
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", template.Name+"-submissions.pdf"))
		c.Data(http.StatusOK, "application/pdf", body)
	case "csv":
		body, err := h.csv.Render(dataset)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", template.Name+"-submissions.csv"))
		c.Data(http.StatusOK, "text/csv", body)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown export format"))
	}
}
