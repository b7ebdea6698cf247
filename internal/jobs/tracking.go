package jobs

import (
	"errors"

	"github.com/marketbytes-devops/alameinmovers/internal/util"
)

// Tracking codes are the public shipment identifiers customers use for lookup.
// Shape: fixed prefix + 6 random decimal digits (e.g. allm482913). Uniqueness
// is enforced by the DB constraint: we insert, catch the unique violation,
// regenerate and retry a bounded number of times, then widen the code space
// instead of looping forever.
const (
	TrackingPrefix = "allm"

	trackingDigits       = 6
	trackingDigitsWide   = 8
	trackingAttempts     = 5 // at the normal width
	trackingAttemptsWide = 2 // at the widened width
)

// ErrTrackingExhausted means every candidate collided, which at expected
// volumes signals something badly wrong with the jobs table.
var ErrTrackingExhausted = errors.New("could not allocate a unique tracking code")

// NewTrackingCode returns a fresh candidate code of the given digit width.
func NewTrackingCode(digits int) (string, error) {
	n, err := util.GenerateNumericCode(digits)
	if err != nil {
		return "", err
	}
	return TrackingPrefix + n, nil
}

// errCodeTaken is returned by an insert func when the candidate collided.
var errCodeTaken = errors.New("tracking code taken")

// allocateTracking drives the insert-retry loop. insert must attempt to persist
// with the candidate code and return errCodeTaken on a tracking-code collision;
// any other error aborts the loop unchanged.
func allocateTracking(insert func(code string) error) (string, error) {
	total := trackingAttempts + trackingAttemptsWide
	for attempt := 0; attempt < total; attempt++ {
		digits := trackingDigits
		if attempt >= trackingAttempts {
			digits = trackingDigitsWide
		}
		code, err := NewTrackingCode(digits)
		if err != nil {
			return "", err
		}
		err = insert(code)
		if errors.Is(err, errCodeTaken) {
			continue
		}
		if err != nil {
			return "", err
		}
		return code, nil
	}
	return "", ErrTrackingExhausted
}
