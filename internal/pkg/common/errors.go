package common

import (
	"errors"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is matches any CustomError with the same code, so wrapped copies still
// satisfy errors.Is against the predefined values.
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	return ok && t.Code == e.Code
}

// Wrap returns a copy of e carrying err as its cause.
func (e *CustomError) Wrap(err error) *CustomError {
	return &CustomError{Code: e.Code, Message: e.Message, Status: e.Status, Err: err}
}

// Response renders the error for an API client. Details carry the cause only
// when debug is set.
func (e *CustomError) Response(debug bool) ErrorResponse {
	resp := ErrorResponse{Code: e.Code, Message: e.Message}
	if debug && e.Err != nil {
		resp.Details = e.Err.Error()
	}
	return resp
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ValidationError 表示驗證錯誤
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// 預定義錯誤代碼
const (
	ErrCodeInvalidRequest   = "INVALID_REQUEST"   // 400
	ErrCodeValidationFailed = "VALIDATION_FAILED" // 400
	ErrCodeNotFound         = "NOT_FOUND"         // 404
	ErrCodeBodyTooLarge     = "REQUEST_TOO_LARGE" // 413
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS" // 429
	ErrCodeInternalError    = "INTERNAL_ERROR"    // 500
	ErrCodeBadGateway       = "BAD_GATEWAY"       // 502
	ErrCodeServiceDisabled  = "SERVICE_DISABLED"  // 503
	ErrCodeGatewayTimeout   = "GATEWAY_TIMEOUT"   // 504
)

// 預定義錯誤
var (
	ErrInvalidRequest   = NewError(ErrCodeInvalidRequest, "invalid request", http.StatusBadRequest, nil)
	ErrNotFound         = NewError(ErrCodeNotFound, "recipe not found", http.StatusNotFound, nil)
	ErrRequestTimeout   = NewError(ErrCodeGatewayTimeout, "request timeout", http.StatusGatewayTimeout, nil)
	ErrTooManyRequests  = NewError(ErrCodeTooManyRequests, "too many requests", http.StatusTooManyRequests, nil)
	ErrInternalError    = NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, nil)
	ErrRemoteSuggestion = NewError(ErrCodeBadGateway, "remote suggestion failed", http.StatusBadGateway, nil)
	ErrRemoteDisabled   = NewError(ErrCodeServiceDisabled, "remote suggestion disabled", http.StatusServiceUnavailable, nil)
	ErrBodyTooLarge     = NewError(ErrCodeBodyTooLarge, "request body too large", http.StatusRequestEntityTooLarge, nil)

	ErrCacheFull     = errors.New("cache is full")
	ErrCacheMiss     = errors.New("cache miss")
	ErrCacheDisabled = errors.New("cache is disabled")
	ErrRateLimited   = errors.New("request rate limit exceeded")
)
