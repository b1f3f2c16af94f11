package pkg

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Reusable errors
var (
	ErrNotFound = errors.New("record not found")
	SqlError    = errors.New("sql error")
)

// AppError is a request-terminal error carrying the status it should be
// rendered with. Anything that is not an AppError renders as 500.
type AppError struct {
	Status  int
	Message string // public-facing message
	Cause   error  // internal cause (wrapped)
}

func (e AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}
func (e AppError) Unwrap() error { return e.Cause }

func NewAppError(status int, msg string, cause error) error {
	return AppError{Status: status, Message: msg, Cause: cause}
}

// NewAuthenticationError covers bad/missing/replayed credentials or tokens.
func NewAuthenticationError(msg string) error {
	return AppError{Status: http.StatusUnauthorized, Message: msg}
}

// NewAuthorizationError covers insufficient permissions. The API deliberately
// does not distinguish 401 from 403.
func NewAuthorizationError(msg string) error {
	return AppError{Status: http.StatusUnauthorized, Message: msg}
}

func NewValidationError(msg string) error {
	return AppError{Status: http.StatusBadRequest, Message: msg}
}

func NewMethodNotAllowedError() error {
	return AppError{Status: http.StatusMethodNotAllowed, Message: "Method not allowed."}
}

// WriteError renders err on the response and aborts the request.
// Classified errors keep their status and render {"error":{"message":...}};
// everything else renders {"message":...} with 500.
func WriteError(c *gin.Context, logger *zap.Logger, err error) {
	traceID := c.GetString(TraceId)
	var appErr AppError
	if errors.As(err, &appErr) {
		logger.Warn("request failed",
			zap.String(TraceId, traceID),
			zap.Int("status", appErr.Status),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(appErr.Status, gin.H{"error": gin.H{"message": appErr.Message}})
		return
	}
	logger.Error("unclassified error", zap.String(TraceId, traceID), zap.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
}

// HandleSQLError maps pg errors -> errors the layers above can classify.
func HandleSQLError(logger *zap.Logger, traceID string, err error) error {
	var pgErr *pgconn.PgError
	if errors.Is(err, pgx.ErrNoRows) {
		logger.Warn("sql error : no records found", zap.String(TraceId, traceID))
		return ErrNotFound
	}
	if !errors.As(err, &pgErr) {
		logger.Error("sql error : unknown", zap.String(TraceId, traceID), zap.Error(err))
		return fmt.Errorf("%w: %v", SqlError, err)
	}

	logger.Error("sql error",
		zap.String(TraceId, traceID),
		zap.String("code", pgErr.Code),
		zap.String("message", pgErr.Message),
		zap.String("detail", pgErr.Detail),
		zap.String("table", pgErr.TableName),
		zap.String("constraint", pgErr.ConstraintName),
	)

	switch pgErr.Code {
	case "22P02": // invalid_text_representation
		return NewValidationError("Invalid input syntax.")
	case "22003": // numeric_value_out_of_range
		return NewValidationError("Numeric value out of range.")
	case "23503": // foreign_key_violation
		return NewValidationError("Referenced record does not exist.")
	case "23514": // check_violation
		return NewValidationError("Invalid payload.")
	default:
		return fmt.Errorf("%w: %s", SqlError, pgErr.Code)
	}
}
