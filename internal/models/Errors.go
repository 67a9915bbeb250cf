package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCity      = errors.New("city name is empty")
	ErrCityNotFound   = errors.New("city not found")
	ErrNoObservations = errors.New("no hourly observations")
	ErrUnordered      = errors.New("hourly observations are not in chronological order")
)

// FetchError wraps a failed or malformed upstream call.
type FetchError struct {
	Stage string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Stage, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// EmptyGroupError reports a calendar date that ended up with no observations.
type EmptyGroupError struct {
	Date string
}

func (e *EmptyGroupError) Error() string {
	return fmt.Sprintf("no observations for %s", e.Date)
}

// IncompleteDayError reports local hours missing from a calendar date.
type IncompleteDayError struct {
	Date    string
	Missing []int
}

func (e *IncompleteDayError) Error() string {
	hours := make([]string, len(e.Missing))
	for i, h := range e.Missing {
		hours[i] = fmt.Sprintf("%02d:00", h)
	}
	return fmt.Sprintf("incomplete hourly data for %s: missing %s", e.Date, strings.Join(hours, ", "))
}

// NotifyError is a failed delivery. It never aborts a run.
type NotifyError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *NotifyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("notification failed: %v", e.Err)
	}
	return fmt.Sprintf("notification rejected (status %d): %s", e.StatusCode, e.Body)
}

func (e *NotifyError) Unwrap() error {
	return e.Err
}
