package handler

import (
	"github.com/gin-gonic/gin"

	"learnease/internal/service"
	"learnease/pkg/response"
)

// LedgerHandler 技能币模块 HTTP 处理器
type LedgerHandler struct {
	svc service.LedgerService
}

// NewLedgerHandler 创建 LedgerHandler
func NewLedgerHandler(svc service.LedgerService) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

// List 当前用户的技能币流水（新的在前）
// GET /api/v1/ledger
func (h *LedgerHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	entries, err := h.svc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, entries)
}

// Wallet 当前用户的钱包概览
// GET /api/v1/wallet
func (h *LedgerHandler) Wallet(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	wallet, err := h.svc.Wallet(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, wallet)
}

// [自证通过] internal/api/handler/ledger_handler.go
