package services

import (
	"errors"
	"fmt"
)

var (
	ErrAnalyticsGenerationFailed = errors.New("analytics generation failed")
	// ErrDivisionUndefined is returned instead of a NaN availability rate
	// when the sensor dataset is empty.
	ErrDivisionUndefined = errors.New("availability rate undefined for zero sensors")
)

// AnalyticsError wraps the cause of a failed aggregation. errors.Is matches
// both ErrAnalyticsGenerationFailed and the wrapped cause.
type AnalyticsError struct {
	Op  string
	Err error
}

func (e *AnalyticsError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrAnalyticsGenerationFailed, e.Op, e.Err)
}

func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

func (e *AnalyticsError) Is(target error) bool {
	return target == ErrAnalyticsGenerationFailed
}
