package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/utils/platformerrors"
)

// ErrorResponse represents an error response with platform error details
type ErrorResponse struct {
	Code          string `json:"code"` // UUID from PlatformError
	Error         string `json:"error"`
	Message       string `json:"message,omitempty"`
	ErrorInstance error  `json:"-"`
	RequestID     string `json:"request_id,omitempty"`
}

// HandleError handles domain errors and returns appropriate HTTP responses.
// Client errors report the innermost platform message; server errors report
// message only.
func HandleError(reqCtx *gin.Context, err error, message string) {
	var domainErr *platformerrors.PlatformError
	if errors.As(err, &domainErr) {
		statusCode := platformerrors.ErrorTypeToHTTPStatus(domainErr.GetErrorType())

		detail := message
		if statusCode < http.StatusInternalServerError {
			detail = rootMessage(domainErr)
		}

		_ = reqCtx.Error(err)
		reqCtx.AbortWithStatusJSON(statusCode, ErrorResponse{
			Code:          domainErr.GetUUID(),
			Error:         detail,
			Message:       detail,
			ErrorInstance: domainErr,
			RequestID:     requestID(reqCtx, domainErr.GetRequestID()),
		})
		return
	}

	_ = reqCtx.Error(err)
	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error:         message,
		Message:       message,
		ErrorInstance: err,
		RequestID:     requestID(reqCtx, ""),
	})
}

// HandleNewError creates a new typed error at the route layer and handles it
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string, uuid string) {
	ctx := reqCtx.Request.Context()
	err := platformerrors.NewError(ctx, platformerrors.LayerRoute, errorType, message, nil, uuid)

	reqCtx.AbortWithStatusJSON(platformerrors.ErrorTypeToHTTPStatus(err.GetErrorType()), ErrorResponse{
		Code:          err.GetUUID(),
		Error:         message,
		Message:       message,
		ErrorInstance: err,
		RequestID:     requestID(reqCtx, err.GetRequestID()),
	})
}

func rootMessage(err *platformerrors.PlatformError) string {
	root := err
	for {
		var inner *platformerrors.PlatformError
		if !errors.As(root.Err, &inner) {
			return root.Message
		}
		root = inner
	}
}

func requestID(c *gin.Context, fromErr string) string {
	if fromErr != "" {
		return fromErr
	}
	return platformerrors.RequestIDFromContext(c.Request.Context())
}
