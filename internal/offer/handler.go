package offer

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// ListOffers godoc
// @Summary      List visible offers
// @Description  Returns offers selectable by customers.
// @Tags         offers
// @Produce      json
// @Success      200  {array}   Offer
// @Failure      500  {object}  gin.H
// @Router       /api/offers [get]
func (h *Handler) ListOffers(c *gin.Context) {
	offers, err := h.repo.GetVisible(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch offers"})
		return
	}

	c.JSON(http.StatusOK, offers)
}

// ListAllOffers godoc
// @Summary      List all offers
// @Description  Returns every offer including hidden ones. Coach only.
// @Tags         offers
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Offer
// @Failure      500  {object}  gin.H
// @Router       /api/admin/offers [get]
func (h *Handler) ListAllOffers(c *gin.Context) {
	offers, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch offers"})
		return
	}

	c.JSON(http.StatusOK, offers)
}

// CreateOffer godoc
// @Summary      Create offer
// @Tags         offers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateOfferRequest  true  "Offer data"
// @Success      201      {object}  Offer
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /api/admin/offers [post]
func (h *Handler) CreateOffer(c *gin.Context) {
	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	id := fmt.Sprintf("offer-%d", time.Now().UnixMilli())
	offer, err := h.repo.Create(c.Request.Context(), id, req.Name, req.Price, visible)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create offer"})
		return
	}

	c.JSON(http.StatusCreated, offer)
}

// UpdateOffer godoc
// @Summary      Update offer
// @Tags         offers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        offerID  path      string              true  "Offer ID"
// @Param        request  body      UpdateOfferRequest  true  "Offer data"
// @Success      200      {object}  Offer
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /api/admin/offers/{offerID} [put]
func (h *Handler) UpdateOffer(c *gin.Context) {
	var req UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	offer, err := h.repo.Update(c.Request.Context(), c.Param("offerID"), req.Name, req.Price, visible)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
		return
	}

	c.JSON(http.StatusOK, offer)
}

// DeleteOffer godoc
// @Summary      Delete offer
// @Tags         offers
// @Security     BearerAuth
// @Produce      json
// @Param        offerID  path      string  true  "Offer ID"
// @Success      200      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /api/admin/offers/{offerID} [delete]
func (h *Handler) DeleteOffer(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("offerID")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Offer deleted"})
}
