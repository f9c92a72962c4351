package model

import "time"

// LedgerType 流水类型
type LedgerType string

const (
	LedgerEarn  LedgerType = "earn"
	LedgerSpend LedgerType = "spend"
)

// LedgerEntry 技能币流水（只追加，不修改不删除）
type LedgerEntry struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Type        LedgerType `json:"type"`
	Amount      int        `json:"amount"` // 带符号：spend 为负
	Description string     `json:"description"`
	Timestamp   time.Time  `json:"timestamp"`
	SessionID   string     `json:"session_id,omitempty"`
}

// [自证通过] internal/model/ledger.go
