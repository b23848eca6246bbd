package model

import "time"

// Operation is the top-level investigation case grouping channels and links.
type Operation struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	SuspectedActor string    `json:"suspected_actor"`
	Region         string    `json:"region"`
	TimeRange      string    `json:"time_range"`
	DateCreated    time.Time `json:"date_created"`
}

// OperationRequest is the API request body for creating an operation.
type OperationRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	SuspectedActor string `json:"suspected_actor"`
	Region         string `json:"region"`
	TimeRange      string `json:"time_range"`
}

// OperationDetail is the API response for a single operation with its channels.
type OperationDetail struct {
	Operation Operation `json:"operation"`
	Channels  []Channel `json:"channels"`
}

// CreatedResponse is returned by every create endpoint.
type CreatedResponse struct {
	ID int64 `json:"id"`
}
