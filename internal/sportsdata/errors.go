package sportsdata

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	ErrorKindTransport ErrorKind = iota + 1
	ErrorKindStatus
	ErrorKindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindTransport:
		return "transport"
	case ErrorKindStatus:
		return "status"
	case ErrorKindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// FetchError describes a failed standings request.
// StatusCode is 0 and Body is empty when no response was received.
type FetchError struct {
	Kind       ErrorKind
	URL        string
	Season     string
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("failed to fetch standings for season %s (%s)", e.Season, e.Kind)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s, status=%d", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err.Error())
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func AsFetchError(err error) (*FetchError, bool) {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr, true
	}
	return nil, false
}
