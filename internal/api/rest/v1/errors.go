package v1

import (
	"errors"
	"net/http"

	"github.com/MGTheTrain/fips-provider/internal/app"
	"github.com/MGTheTrain/fips-provider/internal/domain/fips"

	"github.com/gin-gonic/gin"
)

// statusFor maps a service error to the HTTP status reported to the client
func statusFor(err error) int {
	switch {
	case errors.Is(err, app.ErrInvalidKey),
		errors.Is(err, app.ErrSigningUnsupported),
		errors.Is(err, fips.ErrUnknownAlgorithm),
		errors.Is(err, fips.ErrConversion):
		return http.StatusBadRequest
	case errors.Is(err, fips.ErrRecordNotFound),
		errors.Is(err, fips.ErrContextNotFound):
		return http.StatusNotFound
	case errors.Is(err, fips.ErrSignatureMismatch):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(ctx *gin.Context, status int, message string) {
	var errorResponse ErrorResponse
	errorResponse.Message = message
	ctx.JSON(status, errorResponse)
}
