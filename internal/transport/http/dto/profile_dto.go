package dto

type RecruiterSection struct {
	CompanyName        string `json:"company_name"`
	Position           string `json:"position"`
	CompanyDescription string `json:"company_description"`
	CompanyWebsite     string `json:"company_website"`
	Industry           string `json:"industry"`
}

type JobSeekerSection struct {
	Skills          string `json:"skills"`
	ExperienceYears int    `json:"experience_years"`
	Education       string `json:"education"`
	DesiredPosition string `json:"desired_position"`
	DesiredSalary   *int   `json:"desired_salary"`
}

type ProfileResponse struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
	Location string `json:"location"`

	Recruiter *RecruiterSection `json:"recruiter,omitempty"`
	JobSeeker *JobSeekerSection `json:"job_seeker,omitempty"`
}

type UpdateProfileRequest struct {
	Bio      string `json:"bio"`
	Location string `json:"location"`

	Recruiter *RecruiterSection `json:"recruiter"`
	JobSeeker *JobSeekerSection `json:"job_seeker"`
}
