package employee

const (
	StatusActive     = "active"
	StatusTerminated = "terminated"
)

func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusTerminated
}
