package usecase

const (
	ErrCodeStoreUnavailable = "STORE_UNAVAILABLE"
	ErrCodeEnrollmentFailed = "ENROLLMENT_FAILED"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}
