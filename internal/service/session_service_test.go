package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"learnease/internal/dto"
	"learnease/internal/model"
	"learnease/internal/repository"
	apperrors "learnease/pkg/errors"
)

func newSessionFixture(t *testing.T) (*repository.StateRepository, SessionService) {
	t.Helper()
	repo := newTestRepo(t)
	addProfile(t, repo, "student", withCoins(40))
	addProfile(t, repo, "teacher", teaches("Go"), withCoins(5))
	addProfile(t, repo, "poor", withCoins(9))
	return repo, NewSessionService(repo, testEngineConfig(), zap.NewNop())
}

func scheduleReq(teacher string, duration int) *dto.ScheduleSessionRequest {
	return &dto.ScheduleSessionRequest{TeacherID: teacher, Skill: "Go", ScheduledTime: baseTime.AddDate(0, 0, 1), Duration: duration}
}

func mustSchedule(t *testing.T, svc SessionService, student, teacher string, duration int) *model.Session {
	t.Helper()
	s, err := svc.Schedule(context.Background(), student, scheduleReq(teacher, duration))
	if err != nil {
		t.Fatalf("Schedule 失败: %v", err)
	}
	return s
}

func mustComplete(t *testing.T, svc SessionService, id string, rating float64) *model.Session {
	t.Helper()
	s, err := svc.Complete(context.Background(), id, "", &dto.CompleteSessionRequest{Rating: rating})
	if err != nil {
		t.Fatalf("Complete 失败: %v", err)
	}
	return s
}

// ═══════════════════════════════════════════════════════════
// Schedule
// ═══════════════════════════════════════════════════════════

func TestSchedule_AdmissionCheckDoesNotDebit(t *testing.T) {
	repo, svc := newSessionFixture(t)

	s := mustSchedule(t, svc, "student", "teacher", 2)
	if s.Status != model.SessionScheduled || s.Cost != 10 {
		t.Errorf("期望 scheduled 且 cost=10，实际 %+v", s)
	}
	if coins := snapshot(t, repo).Profiles["student"].Coins; coins != 40 {
		t.Errorf("预约不应扣费，期望 40，实际 %d", coins)
	}
}

func TestSchedule_Errors(t *testing.T) {
	repo, svc := newSessionFixture(t)
	ctx := context.Background()

	if _, err := svc.Schedule(ctx, "poor", scheduleReq("teacher", 1)); !errors.Is(err, apperrors.ErrInsufficientFunds) {
		t.Errorf("余额不足: 期望 InsufficientFunds，实际 %v", err)
	}
	if _, err := svc.Schedule(ctx, "student", scheduleReq("ghost", 1)); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("未知导师: 期望 NotFound，实际 %v", err)
	}
	if _, err := svc.Schedule(ctx, "student", scheduleReq("student", 1)); !errors.Is(err, ErrSessionSelf) {
		t.Errorf("自己预约自己: 期望 ErrSessionSelf，实际 %v", err)
	}
	if _, err := svc.Schedule(ctx, "student", scheduleReq("teacher", 0)); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("时长为 0: 期望 ValidationError，实际 %v", err)
	}
	if len(snapshot(t, repo).Sessions) != 0 {
		t.Error("失败的预约不应写入")
	}
}

// ═══════════════════════════════════════════════════════════
// Complete
// ═══════════════════════════════════════════════════════════

func TestComplete_SettlementIsAtomic(t *testing.T) {
	repo, svc := newSessionFixture(t)
	s := mustSchedule(t, svc, "student", "teacher", 2)

	done := mustComplete(t, svc, s.ID, 4)
	if done.Status != model.SessionCompleted || done.Rating == nil || *done.Rating != 4 || done.CompletedAt == nil {
		t.Errorf("期望课程已完成并记录评分，实际 %+v", done)
	}

	state := snapshot(t, repo)
	student, teacher := state.Profiles["student"], state.Profiles["teacher"]
	if student.Coins != 30 || teacher.Coins != 15 {
		t.Errorf("期望 student=30 teacher=15，实际 student=%d teacher=%d", student.Coins, teacher.Coins)
	}

	spend := state.Ledgers["student"]
	earn := state.Ledgers["teacher"]
	if len(spend) != 1 || spend[0].Type != model.LedgerSpend || spend[0].Amount != -10 || spend[0].SessionID != s.ID {
		t.Errorf("期望学生 1 条 spend -10 流水，实际 %+v", spend)
	}
	if len(earn) != 1 || earn[0].Type != model.LedgerEarn || earn[0].Amount != 10 || earn[0].SessionID != s.ID {
		t.Errorf("期望导师 1 条 earn +10 流水，实际 %+v", earn)
	}

	if teacher.SessionsCompleted != 1 || teacher.HoursTaught != 2 || student.HoursLearned != 2 {
		t.Errorf("计数错误: teacher=%+v student=%+v", teacher, student)
	}
}

func TestComplete_GuardsDoubleSettlement(t *testing.T) {
	repo, svc := newSessionFixture(t)
	s := mustSchedule(t, svc, "student", "teacher", 1)
	mustComplete(t, svc, s.ID, 5)

	_, err := svc.Complete(context.Background(), s.ID, "", &dto.CompleteSessionRequest{Rating: 5})
	if !errors.Is(err, apperrors.ErrInvalidOperation) {
		t.Fatalf("期望 InvalidOperation，实际 %v", err)
	}
	state := snapshot(t, repo)
	if state.Profiles["student"].Coins != 30 || len(state.Ledgers["student"]) != 1 {
		t.Error("重复结算不应再次转账或记账")
	}
}

func TestComplete_LookupPrecedesRatingCheck(t *testing.T) {
	_, svc := newSessionFixture(t)
	ctx := context.Background()
	s := mustSchedule(t, svc, "student", "teacher", 1)
	mustComplete(t, svc, s.ID, 5)

	if _, err := svc.Complete(ctx, "session-missing", "", &dto.CompleteSessionRequest{Rating: 0}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("未知课程 + 非法评分: 期望 NotFound，实际 %v", err)
	}
	if _, err := svc.Complete(ctx, s.ID, "", &dto.CompleteSessionRequest{Rating: 0}); !errors.Is(err, apperrors.ErrInvalidOperation) {
		t.Errorf("已完成课程 + 非法评分: 期望 InvalidOperation，实际 %v", err)
	}
}

func TestComplete_Errors(t *testing.T) {
	_, svc := newSessionFixture(t)
	ctx := context.Background()
	s := mustSchedule(t, svc, "student", "teacher", 1)

	if _, err := svc.Complete(ctx, "session-missing", "", &dto.CompleteSessionRequest{Rating: 5}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("期望 NotFound，实际 %v", err)
	}
	if _, err := svc.Complete(ctx, s.ID, "", &dto.CompleteSessionRequest{Rating: 6}); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("评分越界: 期望 ValidationError，实际 %v", err)
	}
	if _, err := svc.Complete(ctx, s.ID, "teacher", &dto.CompleteSessionRequest{Rating: 5}); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("导师自评: 期望 Forbidden，实际 %v", err)
	}
	if _, err := svc.Complete(ctx, s.ID, "student", &dto.CompleteSessionRequest{Rating: 5}); err != nil {
		t.Errorf("学生完成课程应成功，实际 %v", err)
	}
}

func TestComplete_AllowsNegativeBalance(t *testing.T) {
	repo := newTestRepo(t)
	addProfile(t, repo, "student", withCoins(10))
	addProfile(t, repo, "teacher")
	svc := NewSessionService(repo, testEngineConfig(), zap.NewNop())

	first := mustSchedule(t, svc, "student", "teacher", 1)
	second := mustSchedule(t, svc, "student", "teacher", 1)
	mustComplete(t, svc, first.ID, 5)
	mustComplete(t, svc, second.ID, 5)

	if coins := snapshot(t, repo).Profiles["student"].Coins; coins != -10 {
		t.Errorf("期望余额 -10，实际 %d", coins)
	}
}

func TestComplete_RatingIsMeanRoundedToOneDecimal(t *testing.T) {
	repo, svc := newSessionFixture(t)
	for _, r := range []float64{5, 5} {
		s := mustSchedule(t, svc, "student", "teacher", 1)
		mustComplete(t, svc, s.ID, r)
	}
	s := mustSchedule(t, svc, "student", "teacher", 1)
	mustComplete(t, svc, s.ID, 4)

	if rating := snapshot(t, repo).Profiles["teacher"].Rating; rating != 4.7 {
		t.Errorf("期望评分 4.7，实际 %v", rating)
	}
}

func TestComplete_BadgesAreMonotonic(t *testing.T) {
	repo := newTestRepo(t)
	addProfile(t, repo, "student", withCoins(1000))
	addProfile(t, repo, "teacher")
	svc := NewSessionService(repo, testEngineConfig(), zap.NewNop())

	for i := 0; i < 10; i++ {
		s := mustSchedule(t, svc, "student", "teacher", 1)
		mustComplete(t, svc, s.ID, 5)
	}
	teacher := snapshot(t, repo).Profiles["teacher"]
	for _, b := range []string{model.BadgeTopMentor, model.BadgeSkillStreak, model.BadgeHelpfulTeacher} {
		if !teacher.HasBadge(b) {
			t.Errorf("期望获得徽章 %s", b)
		}
	}

	// 连续低分把平均分拉到 4.5 以下，徽章仍保留
	for i := 0; i < 10; i++ {
		s := mustSchedule(t, svc, "student", "teacher", 1)
		mustComplete(t, svc, s.ID, 1)
	}
	teacher = snapshot(t, repo).Profiles["teacher"]
	if teacher.Rating > 4.5 {
		t.Fatalf("前置条件: 期望评分降到 4.5 以下，实际 %v", teacher.Rating)
	}
	if !teacher.HasBadge(model.BadgeTopMentor) || !teacher.HasBadge(model.BadgeHelpfulTeacher) {
		t.Error("徽章一旦获得不应被撤销")
	}
	if len(teacher.Badges) != 3 {
		t.Errorf("徽章不应重复追加，实际 %v", teacher.Badges)
	}
}

func TestComplete_SkillStreakAtFive(t *testing.T) {
	repo := newTestRepo(t)
	addProfile(t, repo, "student", withCoins(1000))
	addProfile(t, repo, "teacher")
	svc := NewSessionService(repo, testEngineConfig(), zap.NewNop())

	for i := 0; i < 4; i++ {
		s := mustSchedule(t, svc, "student", "teacher", 1)
		mustComplete(t, svc, s.ID, 3)
	}
	if snapshot(t, repo).Profiles["teacher"].HasBadge(model.BadgeSkillStreak) {
		t.Fatal("4 节课不应获得 skill-streak")
	}
	s := mustSchedule(t, svc, "student", "teacher", 1)
	mustComplete(t, svc, s.ID, 3)

	teacher := snapshot(t, repo).Profiles["teacher"]
	if !teacher.HasBadge(model.BadgeSkillStreak) {
		t.Error("第 5 节课后应获得 skill-streak")
	}
	if teacher.HasBadge(model.BadgeHelpfulTeacher) || teacher.HasBadge(model.BadgeTopMentor) {
		t.Errorf("不应获得其他徽章，实际 %v", teacher.Badges)
	}
}

func TestSessionListByUser(t *testing.T) {
	_, svc := newSessionFixture(t)
	mustSchedule(t, svc, "student", "teacher", 1)

	for _, id := range []string{"student", "teacher"} {
		list, err := svc.ListByUser(context.Background(), id)
		if err != nil || len(list) != 1 {
			t.Errorf("%s: 期望 1 节课，实际 %d (%v)", id, len(list), err)
		}
	}
}

// [自证通过] internal/service/session_service_test.go
