package model

import "time"

// Confidence is the analyst's confidence in a piece of evidence.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Valid reports whether c is one of the three known levels.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// Group types of the indicator taxonomy, strongest affiliation first.
const (
	GroupOfficial   = "Official"
	GroupControlled = "Controlled"
	GroupLinked     = "Linked"
	GroupAligned    = "Aligned"
)

// IndicatorType is one entry of the indicator taxonomy (group -> category -> subtype).
type IndicatorType struct {
	ID                int64      `json:"id" yaml:"-"`
	GroupType         string     `json:"group_type" yaml:"group"`
	Category          string     `json:"category" yaml:"category"`
	Subtype           string     `json:"subtype" yaml:"subtype"`
	DefaultWeight     float64    `json:"default_weight" yaml:"weight"`
	DefaultConfidence Confidence `json:"default_confidence" yaml:"confidence"`
}

// Indicator is a single piece of weighted evidence attached to a channel.
// Type and Name hold the group type and subtype at creation time; they are
// free text and need not resolve to a known IndicatorType.
type Indicator struct {
	ID         int64      `json:"id"`
	ChannelID  int64      `json:"channel_id"`
	Type       string     `json:"type"`
	Name       string     `json:"name"`
	Weight     float64    `json:"weight"`
	Confidence Confidence `json:"confidence"`
	Evidence   string     `json:"evidence"`
	SourceType string     `json:"source_type"`
	CreatedAt  time.Time  `json:"created_at"`
}

// IndicatorRequest is the API request body for adding an indicator.
// When TypeID is set, Type, Name, Weight and Confidence default from the
// taxonomy entry; Weight and Confidence may still be overridden.
type IndicatorRequest struct {
	ChannelID  int64      `json:"channel_id"`
	TypeID     int64      `json:"type_id,omitempty"`
	Type       string     `json:"type,omitempty"`
	Name       string     `json:"name,omitempty"`
	Weight     *float64   `json:"weight,omitempty"`
	Confidence Confidence `json:"confidence,omitempty"`
	Evidence   string     `json:"evidence"`
	SourceType string     `json:"source_type"`
}
