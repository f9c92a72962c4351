package model

import "time"

// ── 社区模块实体（核心引擎之外，随快照一起持久化与种子填充） ──

// MatchRecord 种子演示用的匹配记录，不由匹配引擎维护
type MatchRecord struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	MatchedUserID string    `json:"matched_user_id"`
	Score         int       `json:"score"`
	CreatedAt     time.Time `json:"created_at"`
}

// Message 会话消息
type Message struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversation 两人会话
type Conversation struct {
	ID             string    `json:"id"`
	ParticipantIDs []string  `json:"participant_ids"`
	Messages       []Message `json:"messages"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasParticipant 是否为会话成员
func (c *Conversation) HasParticipant(userID string) bool {
	for _, id := range c.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Clone 深拷贝
func (c *Conversation) Clone() *Conversation {
	out := *c
	out.ParticipantIDs = append([]string{}, c.ParticipantIDs...)
	out.Messages = append([]Message{}, c.Messages...)
	return &out
}

// Post 动态
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// Club 社团
type Club struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	MemberIDs   []string `json:"member_ids"`
}

// Event 校园活动
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	HostID      string    `json:"host_id"`
	AttendeeIDs []string  `json:"attendee_ids"`
}

// Project 协作项目
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	OwnerID     string   `json:"owner_id"`
	Skills      []string `json:"skills"`
	MemberIDs   []string `json:"member_ids"`
}

// Question 问答
type Question struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags"`
	Answers   int       `json:"answers"`
	CreatedAt time.Time `json:"created_at"`
}
