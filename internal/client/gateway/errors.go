package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/arcaives/internal/common"
)

var (
	ErrUnavailable = errors.New("gateway unavailable")
	ErrRemote      = errors.New("gateway error")
)

// RemoteError is a non-2xx answer from the gateway. It matches ErrRemote and,
// where one applies, the common sentinel for its status.
type RemoteError struct {
	Status  int
	Message string
	Field   string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %d %s", ErrRemote, e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("%s: %d %s", ErrRemote, e.Status, e.Message)
}

func (e *RemoteError) Unwrap() []error {
	errs := []error{ErrRemote}
	switch e.Status {
	case http.StatusNotFound:
		errs = append(errs, common.ErrorNotFound)
	case http.StatusBadRequest:
		if e.Field != "" {
			errs = append(errs, common.NewValidationError(e.Field, e.Message))
		} else {
			errs = append(errs, common.ErrValidation)
		}
	case http.StatusUnauthorized, http.StatusForbidden:
		errs = append(errs, common.ErrorUnauthorized)
	case http.StatusRequestEntityTooLarge:
		errs = append(errs, common.ErrPayloadTooLarge)
	case http.StatusUnsupportedMediaType:
		errs = append(errs, common.ErrUnsupportedMediaType)
	}
	return errs
}
