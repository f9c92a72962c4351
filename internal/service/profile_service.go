package service

import (
	"context"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"learnease/internal/dto"
	"learnease/internal/model"
	apperrors "learnease/pkg/errors"
)

// ── 资料模块业务错误 ──

var (
	ErrProfileNotFound   = apperrors.New(apperrors.KindNotFound, "用户资料不存在")
	ErrProfileNameBlank  = apperrors.New(apperrors.KindValidation, "姓名不能为空")
	ErrProfileInvalidICS = apperrors.New(apperrors.KindValidation, "日历文件无法解析")
)

// ProfileService 资料业务接口
type ProfileService interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
	List(ctx context.Context, req *dto.ProfileListRequest) ([]*model.Profile, int64, error)
	Update(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*model.Profile, error)
	// ImportAvailabilityICS 从日历导入每周可用时间；replace=false 时与已有时间合并
	ImportAvailabilityICS(ctx context.Context, userID string, r io.Reader, replace bool) (*dto.ImportAvailabilityResponse, error)
}

type profileService struct {
	repo   StateRepository
	loc    *time.Location
	logger *zap.Logger
}

// NewProfileService 创建 ProfileService 实例
func NewProfileService(repo StateRepository, logger *zap.Logger) ProfileService {
	return &profileService{repo: repo, loc: time.UTC, logger: logger}
}

// NewProfileServiceWithLocation 指定日历导入时区
func NewProfileServiceWithLocation(repo StateRepository, loc *time.Location, logger *zap.Logger) ProfileService {
	return &profileService{repo: repo, loc: loc, logger: logger}
}

func (s *profileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	state, err := s.repo.Snapshot(ctx)
	if err != nil {
		s.logger.Error("读取快照失败", zap.Error(err))
		return nil, err
	}
	p, ok := state.Profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

func (s *profileService) List(ctx context.Context, req *dto.ProfileListRequest) ([]*model.Profile, int64, error) {
	state, err := s.repo.Snapshot(ctx)
	if err != nil {
		s.logger.Error("读取快照失败", zap.Error(err))
		return nil, 0, err
	}

	skill := strings.TrimSpace(req.Skill)
	all := make([]*model.Profile, 0, len(state.Profiles))
	for _, id := range model.SortedProfileIDs(state.Profiles) {
		p := state.Profiles[id]
		if skill != "" && !p.Teaches(skill) && !learns(p, skill) {
			continue
		}
		all = append(all, p)
	}

	total := int64(len(all))
	offset := req.GetOffset()
	if offset >= len(all) {
		return []*model.Profile{}, total, nil
	}
	end := offset + req.GetPageSize()
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func learns(p *model.Profile, skill string) bool {
	for _, s := range p.Learn {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	return false
}

func (s *profileService) Update(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*model.Profile, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, ErrProfileNameBlank
	}
	if req.Availability != nil {
		if err := validateAvailability(req.Availability); err != nil {
			return nil, apperrors.New(apperrors.KindValidation, err.Error())
		}
	}

	var out *model.Profile
	err := s.repo.Update(ctx, func(state *model.State) error {
		p, ok := state.Profiles[userID]
		if !ok {
			return ErrProfileNotFound
		}
		if req.Name != nil {
			p.Name = strings.TrimSpace(*req.Name)
		}
		if req.Headline != nil {
			p.Headline = strings.TrimSpace(*req.Headline)
		}
		if req.Bio != nil {
			p.Bio = strings.TrimSpace(*req.Bio)
		}
		if req.Teach != nil {
			p.Teach = model.NormalizeSkills(req.Teach)
		}
		if req.Learn != nil {
			p.Learn = model.NormalizeSkills(req.Learn)
		}
		if req.Availability != nil {
			p.Availability = mergeAvailability(model.Availability{}, req.Availability)
		}
		if req.Role != nil {
			p.Role = model.Role(*req.Role)
		}
		out = p.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("资料已更新", zap.String("user_id", userID))
	return out, nil
}

func (s *profileService) ImportAvailabilityICS(ctx context.Context, userID string, r io.Reader, replace bool) (*dto.ImportAvailabilityResponse, error) {
	parsed, err := ParseAvailabilityICS(r, s.loc)
	if err != nil {
		s.logger.Warn("日历解析失败", zap.String("user_id", userID), zap.Error(err))
		return nil, ErrProfileInvalidICS
	}

	var resp *dto.ImportAvailabilityResponse
	err = s.repo.Update(ctx, func(state *model.State) error {
		p, ok := state.Profiles[userID]
		if !ok {
			return ErrProfileNotFound
		}
		base := p.Availability
		if replace {
			base = model.Availability{}
		}
		p.Availability = mergeAvailability(base, parsed.Availability)
		resp = &dto.ImportAvailabilityResponse{
			Imported:     parsed.Imported,
			Skipped:      parsed.Skipped,
			Availability: p.Clone().Availability,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("日历导入完成",
		zap.String("user_id", userID),
		zap.Int("imported", parsed.Imported),
		zap.Int("skipped", parsed.Skipped),
	)
	return resp, nil
}

// [自证通过] internal/service/profile_service.go
