package model

import "time"

// Post represents a short text post owned by a single user.
type Post struct {
	ID        int64
	UserID    int64
	Text      string
	CreatedAt time.Time
}

// PostRequest represents a post create or update request body.
type PostRequest struct {
	Text string `json:"text"`
}

// PostResponse represents a post in API responses.
type PostResponse struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Text   string `json:"text"`
}
