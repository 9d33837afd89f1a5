package domain

import "time"

type SubmissionStatus string

const (
	SubmissionCreated      SubmissionStatus = "created"       // no amenities requested
	SubmissionAssigned     SubmissionStatus = "assigned"
	SubmissionAssignFailed SubmissionStatus = "assign_failed" // hotel exists without its amenities
	SubmissionCreateFailed SubmissionStatus = "create_failed"
)

type Submission struct {
	ID         int64            `json:"id"`
	HotelID    *string          `json:"hotelId"`
	HotelName  string           `json:"hotelName"`
	AmenityIDs []string         `json:"amenityIds"`
	Status     SubmissionStatus `json:"status"`
	Error      *string          `json:"error,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
}
