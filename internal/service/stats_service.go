package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Prakash2p/school/internal/dto"
	"github.com/Prakash2p/school/internal/repository"
	pkgerrors "github.com/Prakash2p/school/pkg/errors"
)

// StatsService 课表统计业务接口
// 所有统计为排课集合上的即时归约，数据量级（班级 × 节次 × 7 天）无需缓存
type StatsService interface {
	Overview(ctx context.Context, req *dto.StatsRequest) (*dto.OverviewResponse, error)
	TeacherWorkloads(ctx context.Context, req *dto.StatsRequest) ([]dto.TeacherWorkloadResponse, error)
	TeacherWorkload(ctx context.Context, teacherID string) (*dto.TeacherWorkloadResponse, error)
}

type statsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStatsService 创建 StatsService 实例
func NewStatsService(repo *repository.Repository, logger *zap.Logger) StatsService {
	return &statsService{repo: repo, logger: logger}
}

func (s *statsService) resolveSession(ctx context.Context, sessionID string) (string, error) {
	if sessionID != "" {
		session, err := s.repo.AcademicSession.GetByID(ctx, sessionID)
		if err != nil {
			return "", pkgerrors.NewNotFound("session", sessionID, ErrSessionNotFound)
		}
		return session.AcademicSessionID, nil
	}
	session, err := s.repo.AcademicSession.GetActive(ctx)
	if err != nil {
		return "", ErrNoActiveSession
	}
	return session.AcademicSessionID, nil
}

// TeacherWorkloads 统计每位教师在指定学年内的已排节次数，含零工作量教师，按工作量降序
func (s *statsService) TeacherWorkloads(ctx context.Context, req *dto.StatsRequest) ([]dto.TeacherWorkloadResponse, error) {
	sessionID, err := s.resolveSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	teachers, err := s.repo.Teacher.List(ctx)
	if err != nil {
		s.logger.Error("列出教师失败", zap.Error(err))
		return nil, err
	}

	schedules, err := s.repo.Schedule.ListBySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("加载学年排课集合失败", zap.Error(err))
		return nil, err
	}

	counts := make(map[string]int, len(teachers))
	for i := range schedules {
		counts[schedules[i].TeacherID]++
	}

	result := make([]dto.TeacherWorkloadResponse, 0, len(teachers))
	for i := range teachers {
		result = append(result, dto.TeacherWorkloadResponse{
			TeacherID: teachers[i].TeacherID,
			Name:      teachers[i].Name,
			Workload:  counts[teachers[i].TeacherID],
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Workload > result[j].Workload
	})

	return result, nil
}

// TeacherWorkload 统计单个教师的全量已排节次数，不按学年或上课日过滤；
// 需要学年口径时用 TeacherWorkloads 的 session_id 过滤
func (s *statsService) TeacherWorkload(ctx context.Context, teacherID string) (*dto.TeacherWorkloadResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFound("teacher", teacherID, ErrTeacherNotFound)
		}
		s.logger.Error("查询教师失败", zap.String("id", teacherID), zap.Error(err))
		return nil, err
	}

	schedules, err := s.repo.Schedule.List(ctx, repository.ScheduleFilter{TeacherID: teacherID})
	if err != nil {
		s.logger.Error("加载教师排课集合失败", zap.String("id", teacherID), zap.Error(err))
		return nil, err
	}

	return &dto.TeacherWorkloadResponse{
		TeacherID: teacher.TeacherID,
		Name:      teacher.Name,
		Workload:  len(schedules),
	}, nil
}

// Overview 课表总览：完成度、教师工作量、科目/上课日/班级分布
func (s *statsService) Overview(ctx context.Context, req *dto.StatsRequest) (*dto.OverviewResponse, error) {
	sessionID, err := s.resolveSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	// 带关联的排课集合，分布统计需要名称
	schedules, err := s.repo.Schedule.List(ctx, repository.ScheduleFilter{SessionID: sessionID})
	if err != nil {
		s.logger.Error("加载学年排课集合失败", zap.Error(err))
		return nil, err
	}

	workloads, err := s.TeacherWorkloads(ctx, &dto.StatsRequest{SessionID: sessionID})
	if err != nil {
		return nil, err
	}

	classCount, err := s.repo.ClassGrade.Count(ctx)
	if err != nil {
		s.logger.Error("统计班级失败", zap.Error(err))
		return nil, err
	}
	teachingPeriods, err := s.repo.Period.ListTeaching(ctx)
	if err != nil {
		s.logger.Error("列出教学节次失败", zap.Error(err))
		return nil, err
	}
	activeDays, err := s.repo.SchoolDay.ListActive(ctx)
	if err != nil {
		s.logger.Error("列出启用上课日失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.OverviewResponse{
		TotalSchedules: len(schedules),
		TotalSlots:     int(classCount) * len(teachingPeriods) * len(activeDays),
	}
	if resp.TotalSlots > 0 {
		resp.CompletionPercent = float64(resp.TotalSchedules) / float64(resp.TotalSlots) * 100
	}
	resp.TeacherWorkloads = workloads

	// 科目分布
	subjectCounts := make(map[string]*dto.SubjectDistributionItem)
	for i := range schedules {
		sub := schedules[i].Subject
		if sub == nil {
			continue
		}
		item, ok := subjectCounts[sub.SubjectID]
		if !ok {
			item = &dto.SubjectDistributionItem{SubjectID: sub.SubjectID, Name: sub.Name}
			subjectCounts[sub.SubjectID] = item
		}
		item.Count++
	}
	resp.SubjectDistribution = make([]dto.SubjectDistributionItem, 0, len(subjectCounts))
	for _, item := range subjectCounts {
		resp.SubjectDistribution = append(resp.SubjectDistribution, *item)
	}
	sort.SliceStable(resp.SubjectDistribution, func(i, j int) bool {
		return resp.SubjectDistribution[i].Count > resp.SubjectDistribution[j].Count
	})

	// 上课日分布，按周内顺序输出
	dayCounts := make(map[string]int)
	for i := range schedules {
		dayCounts[schedules[i].Day]++
	}
	resp.DayDistribution = make([]dto.DayDistributionItem, 0, len(activeDays))
	for i := range activeDays {
		resp.DayDistribution = append(resp.DayDistribution, dto.DayDistributionItem{
			Day:   activeDays[i].Name,
			Count: dayCounts[activeDays[i].Name],
		})
	}

	// 班级密度
	classCounts := make(map[string]*dto.ClassDensityItem)
	for i := range schedules {
		cg := schedules[i].ClassGrade
		if cg == nil {
			continue
		}
		item, ok := classCounts[cg.ClassGradeID]
		if !ok {
			item = &dto.ClassDensityItem{ClassGradeID: cg.ClassGradeID, Name: cg.Name}
			classCounts[cg.ClassGradeID] = item
		}
		item.Count++
	}
	resp.ClassDensity = make([]dto.ClassDensityItem, 0, len(classCounts))
	for _, item := range classCounts {
		resp.ClassDensity = append(resp.ClassDensity, *item)
	}
	sort.SliceStable(resp.ClassDensity, func(i, j int) bool {
		return resp.ClassDensity[i].Count > resp.ClassDensity[j].Count
	})

	return resp, nil
}
