package model

import "time"

// Channel is a monitored outlet (account, site, group) under investigation.
type Channel struct {
	ID          int64     `json:"id"`
	OperationID int64     `json:"operation_id"`
	Name        string    `json:"name"`
	Platform    string    `json:"platform"`
	URL         string    `json:"url"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChannelRequest is the API request body for adding a channel to an operation.
type ChannelRequest struct {
	OperationID int64  `json:"operation_id"`
	Name        string `json:"name"`
	Platform    string `json:"platform"`
	URL         string `json:"url"`
	Notes       string `json:"notes"`
}

// ChannelDetail is the API response for a channel and the indicators attached to it.
type ChannelDetail struct {
	Channel    Channel     `json:"channel"`
	Indicators []Indicator `json:"indicators"`
}
