package course

import "time"

// Course is a weekly recurring class template, not a concrete instance.
// Weekday follows time.Weekday numbering: 0 = Sunday.
type Course struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Weekday      int       `db:"weekday" json:"weekday"`
	Time         string    `db:"time" json:"time"`
	LocationName string    `db:"location_name" json:"locationName"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

type CreateCourseRequest struct {
	Name         string `json:"name" binding:"required"`
	Weekday      int    `json:"weekday" binding:"min=0,max=6"`
	Time         string `json:"time" binding:"required"`
	LocationName string `json:"locationName"`
}

type UpdateCourseRequest struct {
	Name         string `json:"name" binding:"required"`
	Weekday      int    `json:"weekday" binding:"min=0,max=6"`
	Time         string `json:"time" binding:"required"`
	LocationName string `json:"locationName"`
}
