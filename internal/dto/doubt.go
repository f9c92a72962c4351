package dto

import "learnease/internal/model"

// ── 答疑模块 DTO ──

// CreateDoubtRequest 提交答疑
type CreateDoubtRequest struct {
	Topic   string `json:"topic"`
	Details string `json:"details" binding:"max=2000"`
}

// DoubtTicketResponse 工单及被指派的导师
type DoubtTicketResponse struct {
	Ticket         *model.DoubtTicket `json:"ticket"`
	Mentor         *model.Profile     `json:"mentor"`
	ConversationID string             `json:"conversation_id"`
}

// [自证通过] internal/dto/doubt.go
