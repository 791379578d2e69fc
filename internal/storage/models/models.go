package models

import "time"

// QueryRecord is one completed chat exchange. Rows are append-only.
type QueryRecord struct {
	ID             string
	SessionID      string
	Message        string
	Language       string
	EnglishMessage string
	Response       string
	Confidence     float64
	Fallback       bool
	LatencyMS      int
	CreatedAt      time.Time
}

// StatsReport is derived on demand from the queries table; never stored.
type StatsReport struct {
	TotalQueries         int            `json:"total_queries"`
	AverageAccuracy      float64        `json:"average_accuracy"`
	LanguageDistribution map[string]int `json:"language_distribution"`
	AccuracyDistribution map[string]int `json:"accuracy_distribution"`
	RecentQueries        []RecentQuery  `json:"recent_queries"`
	GeneratedAt          time.Time      `json:"generated_at"`
}

type RecentQuery struct {
	Timestamp  time.Time `json:"timestamp"`
	Message    string    `json:"message"`
	Language   string    `json:"language"`
	Confidence float64   `json:"confidence"`
}
