package handler

import (
	"net/http"

	"github.com/blues/ncp/internal/core"
	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Code    int         `json:"code,omitempty"` // 领域错误码（100-108）
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
	})
}

// DomainErrorResponse 领域错误响应，错误码逐位保持与合约一致
func DomainErrorResponse(c *gin.Context, err error) {
	code, ok := core.CodeOf(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	c.JSON(httpStatusForCode(code), Response{
		Success: false,
		Code:    int(code),
		Message: err.Error(),
	})
}

// httpStatusForCode 领域错误码到HTTP状态码的映射
func httpStatusForCode(code core.Code) int {
	switch code {
	case core.CodeOwnerOnly, core.CodeNotTokenOwner:
		return http.StatusForbidden
	case core.CodeTokenNotFound, core.CodeCampaignNotFound, core.CodeListingNotFound:
		return http.StatusNotFound
	case core.CodeInvalidPrice, core.CodeInvalidParameter:
		return http.StatusBadRequest
	case core.CodeInsufficientFunds:
		return http.StatusPaymentRequired
	case core.CodePaused:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
