package reservation

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"afroboost/internal/logger"
	"afroboost/internal/metrics"
)

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

func NewHandlerWithRepo(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateReservation godoc
// @Summary      Create a reservation
// @Description  Persists a candidate booking. The id, reservationCode and createdAt are assigned by the server.
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        request  body      CreateRequest  true  "Candidate reservation"
// @Success      201      {object}  Reservation
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /api/reservations [post]
func (h *Handler) CreateReservation(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	datetime, err := time.Parse(time.RFC3339, req.Datetime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datetime must be RFC 3339"})
		return
	}

	created, err := h.repo.Create(c.Request.Context(), &Reservation{
		ID:              NewID(),
		ReservationCode: NewCode(),
		UserID:          req.UserID,
		UserName:        req.UserName,
		UserEmail:       req.UserEmail,
		UserWhatsapp:    req.UserWhatsapp,
		CourseID:        req.CourseID,
		CourseName:      req.CourseName,
		CourseTime:      req.CourseTime,
		Datetime:        datetime,
		OfferID:         req.OfferID,
		OfferName:       req.OfferName,
		Price:           req.Price,
		Quantity:        req.Quantity,
		TotalPrice:      req.TotalPrice,
		DiscountCode:    req.DiscountCode,
		DiscountType:    req.DiscountType,
		DiscountValue:   req.DiscountValue,
	})
	if err != nil {
		logger.Errorf("Failed to create reservation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la réservation"})
		return
	}

	metrics.RecordReservation("direct")
	c.JSON(http.StatusCreated, created)
}

// ListReservations godoc
// @Summary      List reservations
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Reservation
// @Failure      500  {object}  gin.H
// @Router       /api/reservations [get]
func (h *Handler) ListReservations(c *gin.Context) {
	reservations, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// ExportReservations godoc
// @Summary      Export reservations as CSV
// @Tags         reservations
// @Security     BearerAuth
// @Produce      text/csv
// @Success      200  {string}  string
// @Failure      500  {object}  gin.H
// @Router       /api/reservations/export [get]
func (h *Handler) ExportReservations(c *gin.Context) {
	reservations, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reservations"})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="reservations.csv"`)

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	w.Write([]string{
		"reservationCode", "name", "email", "whatsapp", "course", "datetime",
		"offer", "price", "quantity", "totalPrice", "discountCode", "createdAt",
	})

	for _, r := range reservations {
		discountCode := ""
		if r.DiscountCode != nil {
			discountCode = *r.DiscountCode
		}
		w.Write([]string{
			r.ReservationCode,
			r.UserName,
			r.UserEmail,
			r.UserWhatsapp,
			r.CourseName,
			r.Datetime.Format(time.RFC3339),
			r.OfferName,
			FormatAmount(r.Price),
			fmt.Sprintf("%d", r.Quantity),
			FormatAmount(r.TotalPrice),
			discountCode,
			r.CreatedAt.Format(time.RFC3339),
		})
	}
}
