package dto

type SwipeRequest struct {
	Direction   string `json:"direction"`
	JobID       int64  `json:"job_id"`
	JobSeekerID int64  `json:"job_seeker_id"`
}

type SwipeResponse struct {
	OK      bool   `json:"ok"`
	Matched bool   `json:"matched"`
	MatchID int64  `json:"match_id,omitempty"`
	Message string `json:"message"`
}
