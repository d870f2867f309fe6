package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mfiguera/product-api/internal/domain"
	"github.com/mfiguera/product-api/internal/metrics"
	"github.com/mfiguera/product-api/internal/transport/http/middleware"
	"github.com/mfiguera/product-api/internal/usecase"
)

type productUsecaser interface {
	Create(ctx context.Context, input usecase.CreateProductInput) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, input usecase.UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id, userID string) error
}

type ProductHandler struct {
	uc     productUsecaser
	logger *slog.Logger
}

func NewProductHandler(uc productUsecaser, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: logger.With("component", "product_handler")}
}

// productRequest is shared by create and update: both require the full
// document. Price is a pointer so "absent" and "zero" both fail the
// required,gt=0 binding instead of silently defaulting.
type productRequest struct {
	Name        string   `json:"name"        binding:"required,max=256"`
	Description string   `json:"description" binding:"required,max=4096"`
	Price       *float64 `json:"price"       binding:"required,gt=0"`
}

type ownerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type productResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	OwnerID     string         `json:"owner_id"`
	Owner       *ownerResponse `json:"owner,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func toProductResponse(p *domain.Product) productResponse {
	resp := productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Owner != nil {
		resp.Owner = &ownerResponse{Name: p.Owner.Name, Email: p.Owner.Email}
	}
	return resp
}

// POST /api/product/create
func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.uc.Create(c.Request.Context(), usecase.CreateProductInput{
		OwnerID:     c.GetString(middleware.CtxUserID),
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
	})
	if err != nil {
		h.logger.Error("create product", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.ProductMutationsTotal.WithLabelValues("create").Inc()
	c.JSON(http.StatusCreated, toProductResponse(product))
}

// GET /api/product/readall
// Public: every product, with the owner's name/email joined in.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.uc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list products", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/product/readone/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	product, err := h.uc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errProductNotFound})
			return
		}
		h.logger.Error("get product", "product_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

// PUT /api/product/update/:id
// 404 when the product does not exist, 403 when it belongs to someone
// else — in that order.
func (h *ProductHandler) Update(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	product, err := h.uc.Update(c.Request.Context(), usecase.UpdateProductInput{
		ID:          id,
		UserID:      c.GetString(middleware.CtxUserID),
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
	})
	if err != nil {
		h.writeMutationError(c, id, "update product", err)
		return
	}

	metrics.ProductMutationsTotal.WithLabelValues("update").Inc()
	c.JSON(http.StatusOK, toProductResponse(product))
}

// DELETE /api/product/delete/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.uc.Delete(c.Request.Context(), id, c.GetString(middleware.CtxUserID))
	if err != nil {
		h.writeMutationError(c, id, "delete product", err)
		return
	}

	metrics.ProductMutationsTotal.WithLabelValues("delete").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (h *ProductHandler) writeMutationError(c *gin.Context, id, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errProductNotFound})
	case errors.Is(err, domain.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": errNotOwner})
	default:
		h.logger.Error(op, "product_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}
