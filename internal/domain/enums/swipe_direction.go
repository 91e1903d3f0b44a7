package enums

type SwipeDirection string

const (
	SwipeLeft  SwipeDirection = "left"
	SwipeRight SwipeDirection = "right"
)

func ParseSwipeDirection(value string) (SwipeDirection, bool) {
	switch SwipeDirection(value) {
	case SwipeLeft, SwipeRight:
		return SwipeDirection(value), true
	default:
		return "", false
	}
}
