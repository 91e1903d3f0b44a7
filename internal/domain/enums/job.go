package enums

type JobType string

const (
	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceExecutive ExperienceLevel = "executive"
)

func ParseJobType(value string) (JobType, bool) {
	switch JobType(value) {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return JobType(value), true
	default:
		return "", false
	}
}

func ParseExperienceLevel(value string) (ExperienceLevel, bool) {
	switch ExperienceLevel(value) {
	case ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceExecutive:
		return ExperienceLevel(value), true
	default:
		return "", false
	}
}
