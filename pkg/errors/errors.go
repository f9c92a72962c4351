package errors

import (
	"errors"
	"fmt"
)

// Kind 业务错误分类，展示层据此区分错误而无需解析文案
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindForbidden         Kind = "forbidden"
	KindConflict          Kind = "conflict"
	KindInsufficientFunds Kind = "insufficient_funds"
	KindInvalidOperation  Kind = "invalid_operation"
)

// AppError 带分类的业务错误
type AppError struct {
	Kind    Kind
	Message string
}

func (e *AppError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is 支持两种匹配：同一哨兵错误，或目标为无文案的分类哨兵（如 ErrNotFound）
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if t == e {
		return true
	}
	return t.Message == "" && t.Kind == e.Kind
}

// New 创建业务错误
func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Newf 创建带格式化文案的业务错误
func Newf(kind Kind, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ── 分类哨兵 ──

var (
	ErrValidation        = &AppError{Kind: KindValidation}
	ErrNotFound          = &AppError{Kind: KindNotFound}
	ErrForbidden         = &AppError{Kind: KindForbidden}
	ErrConflict          = &AppError{Kind: KindConflict}
	ErrInsufficientFunds = &AppError{Kind: KindInsufficientFunds}
	ErrInvalidOperation  = &AppError{Kind: KindInvalidOperation}
)

// KindOf 提取错误分类；非业务错误返回空字符串
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}
