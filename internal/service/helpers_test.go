package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"learnease/config"
	"learnease/internal/model"
	"learnease/internal/repository"
)

// ── 测试辅助 ──

var baseTime = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// newTestRepo 空种子 + 内存存储 + 每次调用前进一分钟的时钟 + 顺序 ID
func newTestRepo(t *testing.T) *repository.StateRepository {
	t.Helper()
	tick := 0
	seq := 0
	return repository.NewStateRepository(repository.NewMemoryStore(), zap.NewNop(), repository.Options{
		Seed: repository.EmptySeed,
		Clock: func() time.Time {
			tick++
			return baseTime.Add(time.Duration(tick) * time.Minute)
		},
		IDGen: func() string {
			seq++
			return fmt.Sprintf("%03d", seq)
		},
	})
}

type profileOpt func(p *model.Profile)

func teaches(skills ...string) profileOpt {
	return func(p *model.Profile) { p.Teach = skills }
}

func learnsSkills(skills ...string) profileOpt {
	return func(p *model.Profile) { p.Learn = skills }
}

func withRating(r float64) profileOpt {
	return func(p *model.Profile) { p.Rating = r }
}

func withCoins(c int) profileOpt {
	return func(p *model.Profile) { p.Coins = c }
}

func withAvailability(a model.Availability) profileOpt {
	return func(p *model.Profile) { p.Availability = a }
}

// addProfile 直接写入用户与资料
func addProfile(t *testing.T, repo *repository.StateRepository, id string, opts ...profileOpt) {
	t.Helper()
	err := repo.Update(context.Background(), func(s *model.State) error {
		p := model.NewProfile(id, "Name "+id, 50)
		for _, o := range opts {
			o(p)
		}
		s.Users[id] = &model.User{ID: id, Email: id + "@learnease.edu", CreatedAt: baseTime}
		s.Profiles[id] = p
		return nil
	})
	if err != nil {
		t.Fatalf("写入测试资料失败: %v", err)
	}
}

func snapshot(t *testing.T, repo *repository.StateRepository) *model.State {
	t.Helper()
	s, err := repo.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot 失败: %v", err)
	}
	return s
}

func testEngineConfig() *config.EngineConfig {
	return &config.EngineConfig{MinSessionBalance: 10, SessionCost: 10, SignupCoins: 50}
}

// [自证通过] internal/service/helpers_test.go
