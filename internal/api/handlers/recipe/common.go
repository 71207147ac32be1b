package recipe

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-catalog/internal/core/recipe"
	"recipe-catalog/internal/pkg/common"
)

// toCustomError 將領域錯誤轉換為 API 錯誤
func toCustomError(err error) *common.CustomError {
	var ce *common.CustomError
	switch {
	case errors.As(err, &ce):
		return ce
	case errors.Is(err, recipe.ErrNotFound):
		return common.ErrNotFound.Wrap(err)
	case errors.Is(err, recipe.ErrInvalid), common.IsValidationError(err):
		return common.NewError(common.ErrCodeValidationFailed, err.Error(), http.StatusBadRequest, err)
	case errors.Is(err, common.ErrRateLimited):
		return common.ErrTooManyRequests.Wrap(err)
	case errors.Is(err, context.DeadlineExceeded):
		return common.ErrRequestTimeout.Wrap(err)
	default:
		return common.ErrInternalError.Wrap(err)
	}
}

// RespondError writes err as a JSON error body and aborts the chain.
func RespondError(c *gin.Context, err error) {
	ce := toCustomError(err)
	_ = c.Error(err)

	fields := []zap.Field{
		zap.String("request_id", requestid.Get(c)),
		zap.String("code", ce.Code),
		zap.Error(err),
	}
	if ce.Status >= http.StatusInternalServerError {
		common.LogError("Request failed", fields...)
	} else {
		common.LogDebug("Request rejected", fields...)
	}

	c.AbortWithStatusJSON(ce.Status, ce.Response(gin.IsDebugging()))
}

// BindJSON 解析請求體，失敗時回應 400 或 413
func BindJSON(c *gin.Context, v interface{}) bool {
	if err := common.DecodeJSON(c.Request.Body, v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondError(c, common.ErrBodyTooLarge.Wrap(err))
		} else {
			RespondError(c, common.ErrInvalidRequest.Wrap(err))
		}
		return false
	}
	return true
}
