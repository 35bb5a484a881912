package models

import "time"

// Credits is the account balance as last reported by the server.
// The client treats it as stale-tolerant: the UI may show a placeholder
// until the first successful fetch.
type Credits struct {
	Credits   float64   `json:"credits"`
	Plan      string    `json:"plan,omitempty"`
	ExpiresAt string    `json:"expires_at,omitempty"`
	FetchedAt time.Time `json:"fetchedAt"`
}
