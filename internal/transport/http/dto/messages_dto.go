package dto

import "time"

type PostMessageRequest struct {
	MatchID int64  `json:"match_id"`
	Content string `json:"content"`
}

type MessageResponse struct {
	ID              int64     `json:"id"`
	MatchID         int64     `json:"match_id"`
	SenderProfileID int64     `json:"sender_profile_id"`
	Content         string    `json:"content"`
	IsRead          bool      `json:"is_read"`
	CreatedAt       time.Time `json:"created_at"`
}

type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
}
