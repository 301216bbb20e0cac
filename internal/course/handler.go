package course

import (
	"fmt"
	"net/http"
	"strconv"
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

// ListCourses godoc
// @Summary      List courses
// @Description  Returns all recurring course templates.
// @Tags         courses
// @Produce      json
// @Success      200  {array}   Course
// @Failure      500  {object}  gin.H
// @Router       /api/courses [get]
func (h *Handler) ListCourses(c *gin.Context) {
	courses, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch courses"})
		return
	}

	c.JSON(http.StatusOK, courses)
}

// ListOccurrences godoc
// @Summary      List upcoming occurrences
// @Description  Returns the next occurrence dates of a course, one week apart.
// @Tags         courses
// @Produce      json
// @Param        courseID  path      string  true   "Course ID"
// @Param        count     query     int     false  "Number of occurrences (default 4)"
// @Success      200       {object}  gin.H
// @Failure      400       {object}  gin.H
// @Failure      404       {object}  gin.H
// @Router       /api/courses/{courseID}/occurrences [get]
func (h *Handler) ListOccurrences(c *gin.Context) {
	course, err := h.repo.GetByID(c.Request.Context(), c.Param("courseID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	count := DefaultOccurrenceCount
	if raw := c.Query("count"); raw != "" {
		count, err = strconv.Atoi(raw)
		if err != nil || count < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a positive integer"})
			return
		}
	}

	dates := NextOccurrences(time.Now(), course.Weekday, count)
	occurrences := make([]gin.H, 0, len(dates))
	for _, d := range dates {
		session, err := SessionTime(d, course.Time)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid course time"})
			return
		}
		occurrences = append(occurrences, gin.H{
			"sessionId": fmt.Sprintf("%s-%d", course.ID, session.UnixMilli()),
			"date":      d.Format("2006-01-02"),
			"datetime":  session.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{"courseId": course.ID, "occurrences": occurrences})
}

// CreateCourse godoc
// @Summary      Create course
// @Description  Creates a recurring course template. Coach only.
// @Tags         courses
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateCourseRequest  true  "Course data"
// @Success      201      {object}  Course
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /api/admin/courses [post]
func (h *Handler) CreateCourse(c *gin.Context) {
	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := fmt.Sprintf("course-%d", time.Now().UnixMilli())
	course, err := h.repo.Create(c.Request.Context(), id, req.Name, req.Weekday, req.Time, req.LocationName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course"})
		return
	}

	c.JSON(http.StatusCreated, course)
}

// UpdateCourse godoc
// @Summary      Update course
// @Tags         courses
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        courseID  path      string               true  "Course ID"
// @Param        request   body      UpdateCourseRequest  true  "Course data"
// @Success      200       {object}  Course
// @Failure      400       {object}  gin.H
// @Failure      404       {object}  gin.H
// @Router       /api/admin/courses/{courseID} [put]
func (h *Handler) UpdateCourse(c *gin.Context) {
	var req UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course, err := h.repo.Update(c.Request.Context(), c.Param("courseID"), req.Name, req.Weekday, req.Time, req.LocationName)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	c.JSON(http.StatusOK, course)
}

// DeleteCourse godoc
// @Summary      Delete course
// @Tags         courses
// @Security     BearerAuth
// @Produce      json
// @Param        courseID  path      string  true  "Course ID"
// @Success      200       {object}  gin.H
// @Failure      404       {object}  gin.H
// @Router       /api/admin/courses/{courseID} [delete]
func (h *Handler) DeleteCourse(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("courseID")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course deleted"})
}
