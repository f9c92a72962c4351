package model

// Match 匹配结果（按请求即时计算，不持久化）
type Match struct {
	UserID              string   `json:"user_id"`
	Score               int      `json:"score"`
	ILearn              []string `json:"i_learn"`              // 我能从对方学到的技能
	ITeach              []string `json:"i_teach"`              // 我能教给对方的技能
	AvailabilityOverlap int      `json:"availability_overlap"` // 每周重叠分钟数
}

// [自证通过] internal/model/match.go
