package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/form-builder/internal/models"
	"github.com/noah-isme/form-builder/internal/service"
	"github.com/noah-isme/form-builder/internal/store"
	appErrors "github.com/noah-isme/form-builder/pkg/errors"
	"github.com/noah-isme/form-builder/pkg/response"
)

// AuthHandler routes authentication requests through the store so the login
// flow runs the same dispatch/effect cycle as every other consumer.
type AuthHandler struct {
	store   *store.Store
	service *service.AuthService
	timeout time.Duration
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(st *store.Store, svc *service.AuthService, timeout time.Duration) *AuthHandler {
	return &AuthHandler{store: st, service: svc, timeout: timeout}
}

// Login godoc
// @Summary Authenticate user
// @Description Authenticate user by username and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	reply, err := h.store.DispatchAndWait(ctx, store.Login{
		Meta:     store.NewMeta(),
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	switch terminal := reply.(type) {
	case store.LoginSuccess:
		token, err := h.service.IssueToken(terminal.User)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, gin.H{"user": terminal.User, "token": token}, nil)
	case store.LoginFailure:
		response.Error(c, failureToError(terminal.Error))
	default:
		response.Error(c, appErrors.ErrInternal)
	}
}

// Logout godoc
// @Summary End current session
// @Description Clear the persisted session record
// @Tags Authentication
// @Produce json
// @Success 204 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if _, err := h.store.DispatchAndWait(ctx, store.Logout{Meta: store.NewMeta()}); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Me godoc
// @Summary Get current user
// @Description Returns the authenticated user's info
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, claims.User(), nil)
}
