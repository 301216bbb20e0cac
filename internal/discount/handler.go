package discount

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Handler struct {
	repo    Repository
	service Service
}

func NewHandler(db *sqlx.DB) *Handler {
	repo := NewRepository(db)
	return &Handler{
		repo:    repo,
		service: NewService(repo),
	}
}

// ListCodes godoc
// @Summary      List discount codes
// @Tags         discount-codes
// @Produce      json
// @Success      200  {array}   DiscountCode
// @Failure      500  {object}  gin.H
// @Router       /api/discount-codes [get]
func (h *Handler) ListCodes(c *gin.Context) {
	codes, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch discount codes"})
		return
	}

	c.JSON(http.StatusOK, codes)
}

// ValidateCode godoc
// @Summary      Validate a discount code
// @Description  Checks validity and eligibility of a code for a customer and course.
// @Tags         discount-codes
// @Accept       json
// @Produce      json
// @Param        request  body      ValidateRequest  true  "Code, customer email, course"
// @Success      200      {object}  ValidateResponse
// @Failure      400      {object}  gin.H
// @Router       /api/discount-codes/validate [post]
func (h *Handler) ValidateCode(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := h.service.Validate(c.Request.Context(), req.Code, req.Email, req.CourseID)
	if err != nil {
		var rejection *RejectionError
		if errors.As(err, &rejection) {
			c.JSON(http.StatusOK, ValidateResponse{Valid: false, Message: rejection.Message})
			return
		}
		c.JSON(http.StatusOK, ValidateResponse{Valid: false, Message: MsgValidationFailure})
		return
	}

	c.JSON(http.StatusOK, ValidateResponse{Valid: true, Code: code})
}

// UseCode godoc
// @Summary      Consume a discount code
// @Description  Increments the usage counter. Fire-and-forget; errors are logged only.
// @Tags         discount-codes
// @Produce      json
// @Param        codeID  path      string  true  "Code ID"
// @Success      200     {object}  gin.H
// @Router       /api/discount-codes/{codeID}/use [post]
func (h *Handler) UseCode(c *gin.Context) {
	h.service.Consume(c.Request.Context(), c.Param("codeID"))
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// CreateCode godoc
// @Summary      Create discount code
// @Tags         discount-codes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateCodeRequest  true  "Code data"
// @Success      201      {object}  DiscountCode
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /api/admin/discount-codes [post]
func (h *Handler) CreateCode(c *gin.Context) {
	var req CreateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code := &DiscountCode{
		ID:            fmt.Sprintf("code-%d", time.Now().UnixMilli()),
		Code:          req.Code,
		Type:          req.Type,
		Value:         req.Value,
		AssignedEmail: req.AssignedEmail,
		Active:        true,
		MaxUses:       req.MaxUses,
		Courses:       pq.StringArray(req.Courses),
	}

	created, err := h.repo.Create(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create discount code"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ToggleCode godoc
// @Summary      Toggle code active state
// @Tags         discount-codes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        codeID  path      string  true  "Code ID"
// @Success      200     {object}  gin.H
// @Failure      400     {object}  gin.H
// @Failure      404     {object}  gin.H
// @Router       /api/admin/discount-codes/{codeID} [put]
func (h *Handler) ToggleCode(c *gin.Context) {
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.repo.SetActive(c.Request.Context(), c.Param("codeID"), *req.Active); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discount code not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// DeleteCode godoc
// @Summary      Delete discount code
// @Tags         discount-codes
// @Security     BearerAuth
// @Produce      json
// @Param        codeID  path      string  true  "Code ID"
// @Success      200     {object}  gin.H
// @Failure      404     {object}  gin.H
// @Router       /api/admin/discount-codes/{codeID} [delete]
func (h *Handler) DeleteCode(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("codeID")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discount code not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Discount code deleted"})
}
