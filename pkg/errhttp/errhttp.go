// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/lostfound/pkg/httpx"
	"github.com/ghuser/lostfound/services/listing/application/views"
	listingdomain "github.com/ghuser/lostfound/services/listing/domain"
)

// ErrorResponse is the body of every error response. Message carries the
// prompt to show the visitor when a submission was rejected.
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid price"`
	Message string `json:"message,omitempty" example:"Please enter a valid price for items for sale."`
} // @name ErrorResponse

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors, whose
// details are never sent to the client.
func WriteError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	httpx.JSON(w, status, ErrorResponse{
		Error:   httpx.SafeError(err, status, true),
		Message: listingdomain.UserMessage(err),
	})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, listingdomain.ErrListingNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, listingdomain.ErrInvalidFilter), errors.Is(err, views.ErrUnknownPage):
		return http.StatusBadRequest // 400
	case listingdomain.IsValidationError(err):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}
