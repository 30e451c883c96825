package ledger

import "fmt"

// ValidationError reports malformed or logically invalid input local to one
// operation. The caller can correct the input and retry.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// DuplicateBillingError reports that a reading already exists for the
// requested subscriber and billing period.
type DuplicateBillingError struct {
	SubscriberID uint
	Year         int
	Month        int
}

func (e *DuplicateBillingError) Error() string {
	return fmt.Sprintf("subscriber %d already has a reading for period %d-%02d", e.SubscriberID, e.Year, e.Month)
}

// PermissionError reports a posting, period-lock or role violation. It carries
// a human-readable reason for the caller to present.
type PermissionError struct {
	Reason string
}

func (e *PermissionError) Error() string {
	return "permission denied: " + e.Reason
}

// NotFoundError reports a missing referenced entity.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func validationf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func permissionf(format string, args ...any) error {
	return &PermissionError{Reason: fmt.Sprintf(format, args...)}
}
