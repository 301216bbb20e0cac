package concept

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// GetConcept godoc
// @Summary      Get landing concept
// @Tags         concept
// @Produce      json
// @Success      200  {object}  Concept
// @Failure      500  {object}  gin.H
// @Router       /api/concept [get]
func (h *Handler) GetConcept(c *gin.Context) {
	concept, err := h.repo.GetConcept(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch concept"})
		return
	}

	c.JSON(http.StatusOK, concept)
}

// UpdateConcept godoc
// @Summary      Update landing concept
// @Tags         concept
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      UpdateConceptRequest  true  "Concept content"
// @Success      200      {object}  Concept
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /api/admin/concept [put]
func (h *Handler) UpdateConcept(c *gin.Context) {
	var req UpdateConceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.repo.UpdateConcept(c.Request.Context(), &Concept{
		Description:  req.Description,
		HeroImageURL: req.HeroImageURL,
		HeroVideoURL: req.HeroVideoURL,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update concept"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// GetConfig godoc
// @Summary      Get site theming
// @Tags         concept
// @Produce      json
// @Success      200  {object}  SiteConfig
// @Failure      500  {object}  gin.H
// @Router       /api/config [get]
func (h *Handler) GetConfig(c *gin.Context) {
	cfg, err := h.repo.GetConfig(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch config"})
		return
	}

	c.JSON(http.StatusOK, cfg)
}

// UpdateConfig godoc
// @Summary      Update site theming
// @Tags         concept
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      SiteConfig  true  "Site config"
// @Success      200      {object}  SiteConfig
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /api/admin/config [put]
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req SiteConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.repo.UpdateConfig(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update config"})
		return
	}

	c.JSON(http.StatusOK, updated)
}
