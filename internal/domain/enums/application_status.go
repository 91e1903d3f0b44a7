package enums

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationReviewing ApplicationStatus = "reviewing"
	ApplicationInterview ApplicationStatus = "interview"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
)

func ParseApplicationStatus(value string) (ApplicationStatus, bool) {
	switch ApplicationStatus(value) {
	case ApplicationPending, ApplicationReviewing, ApplicationInterview,
		ApplicationAccepted, ApplicationRejected:
		return ApplicationStatus(value), true
	default:
		return "", false
	}
}
