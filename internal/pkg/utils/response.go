package utils

import (
	"claimsbridge-service/internal/pkg/constvars"
	"claimsbridge-service/internal/pkg/dto/responses"
	"claimsbridge-service/internal/pkg/exceptions"
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	response := responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// BuildErrorResponse renders any error as the API error envelope. Typed EDI
// errors keep their diagnostic context (offset, field, direction) in the dev
// message so operators can remediate the transaction.
func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	customErr := asCustomError(err)

	for _, location := range customErr.Locations {
		log.Error(customErr.DevMessage,
			zap.String("file", location.File),
			zap.Int("line", location.Line),
			zap.String("function_name", location.FunctionName),
		)
	}
	if len(customErr.Locations) == 0 {
		log.Error(customErr.DevMessage)
	}

	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(customErr.StatusCode)

	response := exceptions.CustomError{
		StatusCode:    customErr.StatusCode,
		Success:       false,
		ClientMessage: customErr.ClientMessage,
	}
	if GetEnvString("APP_ENV", "development") != "production" {
		response.DevMessage = customErr.DevMessage
	}
	json.NewEncoder(w).Encode(response)
}

func asCustomError(err error) *exceptions.CustomError {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return customErr
	}

	var decodeErr *exceptions.DecodeError
	if errors.As(err, &decodeErr) {
		return exceptions.ErrEDIDecode(decodeErr)
	}
	var mappingErr *exceptions.MappingError
	if errors.As(err, &mappingErr) {
		return exceptions.ErrEDIMapping(mappingErr)
	}
	var directionErr *exceptions.DirectionError
	if errors.As(err, &directionErr) {
		return exceptions.ErrEDIDirection(directionErr)
	}

	return &exceptions.CustomError{
		StatusCode:    constvars.StatusInternalServerError,
		ClientMessage: constvars.ErrClientSomethingWrongWithApplication,
		DevMessage:    err.Error(),
	}
}
