package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mfiguera/product-api/internal/domain"
	"github.com/mfiguera/product-api/internal/metrics"
	"github.com/mfiguera/product-api/internal/transport/http/middleware"
	"github.com/mfiguera/product-api/internal/usecase"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, input usecase.RegisterInput) error
	Login(ctx context.Context, email, password string) (string, error)
}

type UserHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewUserHandler(authUsecase authUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "user_handler"),
	}
}

type registerRequest struct {
	Name     string `json:"name"     binding:"required,max=256"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// POST /api/user/register
// Returns 201 with no token; the client logs in afterwards.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.authUsecase.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errEmailTaken})
			return
		}
		h.logger.Error("register user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.RegistrationsTotal.Inc()
	c.JSON(http.StatusCreated, gin.H{"message": "user registered"})
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/user/login
// Unknown email and wrong password both return 400; only the message
// differs.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailNotRegistered):
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errEmailUnknown})
		case errors.Is(err, domain.ErrIncorrectPassword):
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errBadPassword})
		default:
			h.logger.Error("login user", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{"token": token})
}

type verifiedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// GET /api/user/verifytoken
// Runs behind the auth middleware; echoes the identity it decoded.
func (h *UserHandler) VerifyToken(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "token valid",
		"user": verifiedUser{
			ID:    c.GetString(middleware.CtxUserID),
			Email: c.GetString(middleware.CtxUserEmail),
		},
	})
}
