package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/Prakash2p/school/internal/model"
	"github.com/Prakash2p/school/internal/repository"
)

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	teachers map[string]*model.Teacher
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{teachers: make(map[string]*model.Teacher)}
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	if teacher.TeacherID == "" {
		teacher.TeacherID = "t-" + teacher.Name
	}
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) List(_ context.Context) ([]model.Teacher, error) {
	result := make([]model.Teacher, 0, len(m.teachers))
	for _, t := range m.teachers {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockTeacherRepo) Update(_ context.Context, teacher *model.Teacher) error {
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) Delete(_ context.Context, id string) error {
	delete(m.teachers, id)
	return nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	if subject.SubjectID == "" {
		subject.SubjectID = "sub-" + subject.Name
	}
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) List(_ context.Context) ([]model.Subject, error) {
	result := make([]model.Subject, 0, len(m.subjects))
	for _, s := range m.subjects {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockSubjectRepo) Update(_ context.Context, subject *model.Subject) error {
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id string) error {
	delete(m.subjects, id)
	return nil
}

// ── Mock ClassGradeRepository ──

type mockClassGradeRepo struct {
	classes map[string]*model.ClassGrade
}

func newMockClassGradeRepo() *mockClassGradeRepo {
	return &mockClassGradeRepo{classes: make(map[string]*model.ClassGrade)}
}

func (m *mockClassGradeRepo) Create(_ context.Context, class *model.ClassGrade) error {
	if class.ClassGradeID == "" {
		class.ClassGradeID = "cg-" + class.Name
	}
	m.classes[class.ClassGradeID] = class
	return nil
}

func (m *mockClassGradeRepo) GetByID(_ context.Context, id string) (*model.ClassGrade, error) {
	if c, ok := m.classes[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassGradeRepo) List(_ context.Context) ([]model.ClassGrade, error) {
	result := make([]model.ClassGrade, 0, len(m.classes))
	for _, c := range m.classes {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockClassGradeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.classes)), nil
}

func (m *mockClassGradeRepo) Update(_ context.Context, class *model.ClassGrade) error {
	m.classes[class.ClassGradeID] = class
	return nil
}

func (m *mockClassGradeRepo) Delete(_ context.Context, id string) error {
	delete(m.classes, id)
	return nil
}

// ── Mock PeriodRepository ──

type mockPeriodRepo struct {
	periods map[string]*model.Period
}

func newMockPeriodRepo() *mockPeriodRepo {
	return &mockPeriodRepo{periods: make(map[string]*model.Period)}
}

func (m *mockPeriodRepo) Create(_ context.Context, period *model.Period) error {
	if period.PeriodID == "" {
		period.PeriodID = "p-" + period.Name
	}
	m.periods[period.PeriodID] = period
	return nil
}

func (m *mockPeriodRepo) GetByID(_ context.Context, id string) (*model.Period, error) {
	if p, ok := m.periods[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPeriodRepo) List(_ context.Context) ([]model.Period, error) {
	result := make([]model.Period, 0, len(m.periods))
	for _, p := range m.periods {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime < result[j].StartTime })
	return result, nil
}

func (m *mockPeriodRepo) ListTeaching(_ context.Context) ([]model.Period, error) {
	result := make([]model.Period, 0, len(m.periods))
	for _, p := range m.periods {
		if !p.IsInterval {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime < result[j].StartTime })
	return result, nil
}

func (m *mockPeriodRepo) Update(_ context.Context, period *model.Period) error {
	m.periods[period.PeriodID] = period
	return nil
}

func (m *mockPeriodRepo) Delete(_ context.Context, id string) error {
	delete(m.periods, id)
	return nil
}

// ── Mock SchoolDayRepository ──

type mockSchoolDayRepo struct {
	days map[string]*model.SchoolDay
}

// newMockSchoolDayRepo 预置七天行，周日至周五启用、周六停用
func newMockSchoolDayRepo() *mockSchoolDayRepo {
	names := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	days := make(map[string]*model.SchoolDay, len(names))
	for i, name := range names {
		days[name] = &model.SchoolDay{Name: name, Active: name != "Saturday", SortOrder: i + 1}
	}
	return &mockSchoolDayRepo{days: days}
}

func (m *mockSchoolDayRepo) GetByName(_ context.Context, name string) (*model.SchoolDay, error) {
	if d, ok := m.days[name]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolDayRepo) List(_ context.Context) ([]model.SchoolDay, error) {
	result := make([]model.SchoolDay, 0, len(m.days))
	for _, d := range m.days {
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SortOrder < result[j].SortOrder })
	return result, nil
}

func (m *mockSchoolDayRepo) ListActive(_ context.Context) ([]model.SchoolDay, error) {
	result := make([]model.SchoolDay, 0, len(m.days))
	for _, d := range m.days {
		if d.Active {
			result = append(result, *d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SortOrder < result[j].SortOrder })
	return result, nil
}

func (m *mockSchoolDayRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, d := range m.days {
		if d.Active {
			n++
		}
	}
	return n, nil
}

func (m *mockSchoolDayRepo) Update(_ context.Context, day *model.SchoolDay) error {
	m.days[day.Name] = day
	return nil
}

// ── Mock AcademicSessionRepository ──

type mockAcademicSessionRepo struct {
	sessions map[string]*model.AcademicSession
}

func newMockAcademicSessionRepo() *mockAcademicSessionRepo {
	return &mockAcademicSessionRepo{sessions: make(map[string]*model.AcademicSession)}
}

func (m *mockAcademicSessionRepo) Create(_ context.Context, session *model.AcademicSession) error {
	if session.AcademicSessionID == "" {
		session.AcademicSessionID = "as-" + session.Name
	}
	m.sessions[session.AcademicSessionID] = session
	return nil
}

func (m *mockAcademicSessionRepo) GetByID(_ context.Context, id string) (*model.AcademicSession, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAcademicSessionRepo) GetActive(_ context.Context) (*model.AcademicSession, error) {
	for _, s := range m.sessions {
		if s.IsActive {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAcademicSessionRepo) GetLatestExcept(_ context.Context, excludeID string) (*model.AcademicSession, error) {
	var latest *model.AcademicSession
	for _, s := range m.sessions {
		if s.AcademicSessionID == excludeID {
			continue
		}
		if latest == nil || s.StartDate.After(latest.StartDate) {
			latest = s
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (m *mockAcademicSessionRepo) List(_ context.Context) ([]model.AcademicSession, error) {
	result := make([]model.AcademicSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.After(result[j].StartDate) })
	return result, nil
}

func (m *mockAcademicSessionRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.sessions)), nil
}

func (m *mockAcademicSessionRepo) Update(_ context.Context, session *model.AcademicSession) error {
	m.sessions[session.AcademicSessionID] = session
	return nil
}

func (m *mockAcademicSessionRepo) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *mockAcademicSessionRepo) ClearActive(_ context.Context) error {
	for _, s := range m.sessions {
		s.IsActive = false
	}
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	schedules map[string]*model.Schedule
	seq       int
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[string]*model.Schedule)}
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.Schedule) error {
	if schedule.ScheduleID == "" {
		m.seq++
		schedule.ScheduleID = fmt.Sprintf("sch-%03d", m.seq)
	}
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	if s, ok := m.schedules[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) List(_ context.Context, filter repository.ScheduleFilter) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, s := range m.schedules {
		if filter.SessionID != "" && s.AcademicSessionID != filter.SessionID {
			continue
		}
		if filter.Day != "" && s.Day != filter.Day {
			continue
		}
		if filter.ClassGradeID != "" && s.ClassGradeID != filter.ClassGradeID {
			continue
		}
		if filter.TeacherID != "" && s.TeacherID != filter.TeacherID {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ScheduleID < result[j].ScheduleID })
	return result, nil
}

func (m *mockScheduleRepo) ListBySession(_ context.Context, sessionID string) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, s := range m.schedules {
		if s.AcademicSessionID == sessionID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ScheduleID < result[j].ScheduleID })
	return result, nil
}

func (m *mockScheduleRepo) CountByPeriod(_ context.Context, periodID string) (int64, error) {
	var count int64
	for _, s := range m.schedules {
		if s.PeriodID == periodID {
			count++
		}
	}
	return count, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, schedule *model.Schedule) error {
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	delete(m.schedules, id)
	return nil
}

func (m *mockScheduleRepo) DeleteByTeacher(_ context.Context, teacherID string) error {
	for id, s := range m.schedules {
		if s.TeacherID == teacherID {
			delete(m.schedules, id)
		}
	}
	return nil
}

func (m *mockScheduleRepo) DeleteBySubject(_ context.Context, subjectID string) error {
	for id, s := range m.schedules {
		if s.SubjectID == subjectID {
			delete(m.schedules, id)
		}
	}
	return nil
}

func (m *mockScheduleRepo) DeleteByClassGrade(_ context.Context, classGradeID string) error {
	for id, s := range m.schedules {
		if s.ClassGradeID == classGradeID {
			delete(m.schedules, id)
		}
	}
	return nil
}

func (m *mockScheduleRepo) DeleteByPeriod(_ context.Context, periodID string) error {
	for id, s := range m.schedules {
		if s.PeriodID == periodID {
			delete(m.schedules, id)
		}
	}
	return nil
}

func (m *mockScheduleRepo) DeleteBySession(_ context.Context, sessionID string) error {
	for id, s := range m.schedules {
		if s.AcademicSessionID == sessionID {
			delete(m.schedules, id)
		}
	}
	return nil
}

// ── Mock AdminUserRepository ──

type mockAdminUserRepo struct {
	users map[string]*model.AdminUser
}

func newMockAdminUserRepo() *mockAdminUserRepo {
	return &mockAdminUserRepo{users: make(map[string]*model.AdminUser)}
}

func (m *mockAdminUserRepo) Create(_ context.Context, user *model.AdminUser) error {
	if user.AdminUserID == "" {
		user.AdminUserID = "admin-" + user.Username
	}
	m.users[user.AdminUserID] = user
	return nil
}

func (m *mockAdminUserRepo) GetByID(_ context.Context, id string) (*model.AdminUser, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminUserRepo) GetByUsername(_ context.Context, username string) (*model.AdminUser, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminUserRepo) List(_ context.Context) ([]model.AdminUser, error) {
	result := make([]model.AdminUser, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

func (m *mockAdminUserRepo) Update(_ context.Context, user *model.AdminUser) error {
	m.users[user.AdminUserID] = user
	return nil
}

func (m *mockAdminUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	if u, ok := m.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

func (m *mockAdminUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

// ── 聚合构造 ──

// newMockRepository 以全套 Mock 构建 Repository 聚合；db 为空，BeginTx 返回 nil 事务
func newMockRepository() *repository.Repository {
	return &repository.Repository{
		Teacher:         newMockTeacherRepo(),
		Subject:         newMockSubjectRepo(),
		ClassGrade:      newMockClassGradeRepo(),
		Period:          newMockPeriodRepo(),
		SchoolDay:       newMockSchoolDayRepo(),
		AcademicSession: newMockAcademicSessionRepo(),
		Schedule:        newMockScheduleRepo(),
		AdminUser:       newMockAdminUserRepo(),
	}
}
