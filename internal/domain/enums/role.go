package enums

type Role string

const (
	RoleRecruiter Role = "recruiter"
	RoleJobSeeker Role = "job_seeker"
)

func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleRecruiter, RoleJobSeeker:
		return Role(value), true
	default:
		return "", false
	}
}
