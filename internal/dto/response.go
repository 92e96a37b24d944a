package dto

import "github.com/Eursukkul/devevent/internal/models"

const (
	MsgEventCreated      = "Event created successfully"
	MsgEventsFetched     = "Events fetched successfully"
	MsgEventCreateFailed = "Event Creation Failed"
	MsgEventFetchFailed  = "Event Fetching Failed"
	MsgInvalidForm       = "Invalid form data"
	MsgImageRequired     = "Image file is required"
	MsgInvalidTags       = "Invalid tags format"
	MsgInvalidAgenda     = "Invalid agenda format"
)

type EventResponse struct {
	Message string        `json:"message"`
	Event   *models.Event `json:"event"`
}

type EventsResponse struct {
	Message string         `json:"message"`
	Events  []models.Event `json:"events"`
}

// ErrorResponse carries Error only for server-side failures.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
