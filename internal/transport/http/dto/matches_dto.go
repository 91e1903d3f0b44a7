package dto

import "time"

type MatchResponse struct {
	ID              int64     `json:"id"`
	JobID           int64     `json:"job_id"`
	JobTitle        string    `json:"job_title"`
	CompanyName     string    `json:"company_name"`
	JobSeekerID     int64     `json:"job_seeker_id"`
	CandidateName   string    `json:"candidate_name"`
	RecruiterViewed bool      `json:"recruiter_viewed"`
	JobSeekerViewed bool      `json:"job_seeker_viewed"`
	CreatedAt       time.Time `json:"created_at"`
}

type MatchListResponse struct {
	Matches []MatchResponse `json:"matches"`
}

type MatchActionResponse struct {
	OK bool `json:"ok"`
}
