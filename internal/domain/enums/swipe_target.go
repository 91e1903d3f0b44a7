package enums

// SwipeTargetKind tags what a swipe points at. A swipe targets either a
// job (job seeker browsing jobs) or a candidate profile (recruiter
// browsing candidates), never both.
type SwipeTargetKind string

const (
	SwipeTargetJob       SwipeTargetKind = "job"
	SwipeTargetCandidate SwipeTargetKind = "candidate"
)
