package dto

import "time"

type JobRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Requirements    string `json:"requirements"`
	Location        string `json:"location"`
	JobType         string `json:"job_type"`
	ExperienceLevel string `json:"experience_level"`
	SalaryMin       *int   `json:"salary_min"`
	SalaryMax       *int   `json:"salary_max"`
	IsRemote        bool   `json:"is_remote"`
	SkillsRequired  string `json:"skills_required"`
}

type JobResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	CompanyName     string    `json:"company_name"`
	Description     string    `json:"description"`
	Requirements    string    `json:"requirements"`
	Location        string    `json:"location"`
	JobType         string    `json:"job_type"`
	ExperienceLevel string    `json:"experience_level"`
	SalaryMin       *int      `json:"salary_min"`
	SalaryMax       *int      `json:"salary_max"`
	IsRemote        bool      `json:"is_remote"`
	SkillsRequired  string    `json:"skills_required"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

type JobListResponse struct {
	Jobs []JobResponse `json:"jobs"`
}

type ApplyRequest struct {
	CoverLetter string `json:"cover_letter"`
}

type ApplicationResponse struct {
	ID            int64     `json:"id"`
	JobID         int64     `json:"job_id"`
	JobTitle      string    `json:"job_title,omitempty"`
	CandidateName string    `json:"candidate_name,omitempty"`
	Status        string    `json:"status"`
	CoverLetter   string    `json:"cover_letter"`
	CreatedAt     time.Time `json:"created_at"`
}

type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
}

type UpdateApplicationRequest struct {
	Status string `json:"status"`
}
