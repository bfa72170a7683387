package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/apperror"
	"github.com/miracle7662/Miracle-Account-sub000/pkg/pagination"
)

// APIResponse is the envelope of every API response
type APIResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    interface{}           `json:"data,omitempty"`
	Errors  []apperror.FieldError `json:"errors,omitempty"`
	Meta    Meta                  `json:"meta"`
}

// Meta ties a response to the request log line that produced it
type Meta struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

func newMeta(c *gin.Context) Meta {
	requestID := c.GetString("request_id")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-ID")
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return Meta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
}

func write(c *gin.Context, status int, body APIResponse) {
	body.Meta = newMeta(c)
	c.JSON(status, body)
}

// OK sends a 200 with data
func OK(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusOK, APIResponse{Success: true, Message: message, Data: data})
}

// Created sends a 201 with the created resource
func Created(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusCreated, APIResponse{Success: true, Message: message, Data: data})
}

// Paginated sends one page of a list with its pagination metadata
func Paginated[T any](c *gin.Context, message string, result *pagination.PaginatedResult[T]) {
	write(c, http.StatusOK, APIResponse{Success: true, Message: message, Data: result})
}

// Error maps err to its AppError status. Errors that are not AppErrors are
// reported as 500 without their text.
func Error(c *gin.Context, err error) {
	appErr := apperror.GetAppError(err)
	write(c, appErr.Code, APIResponse{Message: appErr.Message, Errors: appErr.Errors})
}

// BindError sends the response for a request body or query that failed to bind
func BindError(c *gin.Context, err error) {
	Error(c, apperror.FromBindError(err))
}

// ErrorWithCode sends a message-only error
func ErrorWithCode(c *gin.Context, status int, message string) {
	write(c, status, APIResponse{Message: message})
}

func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusNotFound, message)
}

func TooManyRequests(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusTooManyRequests, message)
}
