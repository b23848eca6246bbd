package model

import "time"

// Link is a directed, typed relationship asserted between two channels of one operation.
type Link struct {
	ID            int64      `json:"id"`
	OperationID   int64      `json:"operation_id"`
	FromChannelID int64      `json:"from_channel_id"`
	ToChannelID   int64      `json:"to_channel_id"`
	LinkType      string     `json:"link_type"`
	Confidence    Confidence `json:"confidence"`
	Evidence      string     `json:"evidence"`
	CreatedAt     time.Time  `json:"created_at"`
}

// LinkRequest is the API request body for adding a link.
type LinkRequest struct {
	OperationID   int64      `json:"operation_id"`
	FromChannelID int64      `json:"from_channel_id"`
	ToChannelID   int64      `json:"to_channel_id"`
	LinkType      string     `json:"link_type"`
	Confidence    Confidence `json:"confidence"`
	Evidence      string     `json:"evidence"`
}
