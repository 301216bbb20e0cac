package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store    *Store
	workflow *Workflow
}

func NewHandler(store *Store, workflow *Workflow) *Handler {
	return &Handler{store: store, workflow: workflow}
}

// CreateSession godoc
// @Summary      Open a booking session
// @Tags         bookings
// @Produce      json
// @Success      201  {object}  gin.H
// @Router       /api/bookings [post]
func (h *Handler) CreateSession(c *gin.Context) {
	s := h.store.Create()
	c.JSON(http.StatusCreated, gin.H{
		"sessionId": s.ID(),
		"state":     s.Snapshot(),
	})
}

// GetSession godoc
// @Summary      Read a booking session
// @Tags         bookings
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  BookingState
// @Failure      404        {object}  gin.H
// @Router       /api/bookings/{sessionID} [get]
func (h *Handler) GetSession(c *gin.Context) {
	s, err := h.store.Get(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking session not found"})
		return
	}

	c.JSON(http.StatusOK, s.Snapshot())
}

// Select godoc
// @Summary      Update booking selections
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string         true  "Session ID"
// @Param        request    body      SelectRequest  true  "Partial selection update"
// @Success      200        {object}  BookingState
// @Failure      400        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Router       /api/bookings/{sessionID}/select [post]
func (h *Handler) Select(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.workflow.Select(c.Request.Context(), c.Param("sessionID"), req)
	h.respond(c, state, err)
}

// Submit godoc
// @Summary      Submit the booking
// @Description  Runs validation, then the free or paid path. Failures come back as the same state with a transient message.
// @Tags         bookings
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  BookingState
// @Failure      404        {object}  gin.H
// @Router       /api/bookings/{sessionID}/submit [post]
func (h *Handler) Submit(c *gin.Context) {
	state, err := h.workflow.Submit(c.Request.Context(), c.Param("sessionID"))
	h.respond(c, state, err)
}

// Confirm godoc
// @Summary      Confirm an external payment
// @Tags         bookings
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  BookingState
// @Failure      404        {object}  gin.H
// @Router       /api/bookings/{sessionID}/confirm [post]
func (h *Handler) Confirm(c *gin.Context) {
	state, err := h.workflow.Confirm(c.Request.Context(), c.Param("sessionID"))
	h.respond(c, state, err)
}

// Cancel godoc
// @Summary      Cancel a pending payment
// @Tags         bookings
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  BookingState
// @Failure      404        {object}  gin.H
// @Router       /api/bookings/{sessionID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	state, err := h.workflow.CancelPayment(c.Request.Context(), c.Param("sessionID"))
	h.respond(c, state, err)
}

// Dismiss godoc
// @Summary      Reset the session to idle
// @Tags         bookings
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  BookingState
// @Failure      404        {object}  gin.H
// @Router       /api/bookings/{sessionID}/dismiss [post]
func (h *Handler) Dismiss(c *gin.Context) {
	state, err := h.workflow.Dismiss(c.Request.Context(), c.Param("sessionID"))
	h.respond(c, state, err)
}

func (h *Handler) respond(c *gin.Context, state BookingState, err error) {
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Booking workflow failure"})
		return
	}

	c.JSON(http.StatusOK, state)
}
