package health

import (
	"errors"
	"fmt"
)

// ErrNoRecognizedMetrics is returned when none of the supplied keys is a known metric.
var ErrNoRecognizedMetrics = errors.New("no recognized health metric supplied")

// Reason classifies a validation failure.
type Reason string

const (
	ReasonNotNumeric Reason = "not_numeric"
	ReasonOutOfRange Reason = "out_of_range"
)

// ValidationError reports a metric that could not be accepted.
type ValidationError struct {
	Metric      Metric
	DisplayName string
	Value       string
	Min         float64
	Max         float64
	Reason      Reason
}

// Error returns the user-facing message for the failure.
func (e *ValidationError) Error() string {
	if e.Reason == ReasonNotNumeric {
		return fmt.Sprintf("%sは数値で入力してください", e.DisplayName)
	}
	return fmt.Sprintf("%sは%s〜%sの範囲で入力してください", e.DisplayName, formatNumber(e.Min), formatNumber(e.Max))
}
