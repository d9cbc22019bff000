package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Prakash2p/school/config"
	"github.com/Prakash2p/school/internal/api/handler"
	"github.com/Prakash2p/school/internal/api/middleware"
	"github.com/Prakash2p/school/pkg/jwt"
	"github.com/Prakash2p/school/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// 读操作（课表浏览、统计、导出）公开访问，供展示屏与家长端直接调用；
// 全部写操作需要登录，管理员账号管理仅 SuperAdmin 可用。
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录接口单独限流防爆破）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 公开读路由：课表及其维度数据对外可见
		v1.GET("/teachers", h.Teacher.ListTeachers)
		v1.GET("/teachers/:id", h.Teacher.GetTeacher)
		v1.GET("/teachers/:id/workload", h.Stats.GetTeacherWorkload)
		v1.GET("/subjects", h.Subject.ListSubjects)
		v1.GET("/subjects/:id", h.Subject.GetSubject)
		v1.GET("/class-grades", h.ClassGrade.ListClassGrades)
		v1.GET("/class-grades/:id", h.ClassGrade.GetClassGrade)
		v1.GET("/periods", h.Period.ListPeriods)
		v1.GET("/periods/:id", h.Period.GetPeriod)
		v1.GET("/school-days", h.SchoolDay.ListSchoolDays)
		v1.GET("/school-days/active", h.SchoolDay.ListActiveSchoolDays)
		v1.GET("/academic-sessions", h.AcademicSession.ListSessions)
		v1.GET("/academic-sessions/active", h.AcademicSession.GetActiveSession)
		v1.GET("/academic-sessions/:id", h.AcademicSession.GetSession)
		v1.GET("/schedules", h.Schedule.ListSchedules)
		v1.GET("/schedules/:id", h.Schedule.GetSchedule)
		v1.POST("/schedules/check-conflicts", h.Schedule.CheckConflicts)
		v1.GET("/stats/overview", h.Stats.GetOverview)
		v1.GET("/stats/teacher-workloads", h.Stats.GetTeacherWorkloads)
		v1.GET("/export/class-timetable", h.Export.ExportClassTimetable)
		v1.GET("/export/teacher-calendar", h.Export.ExportTeacherCalendar)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Admin.GetMe)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 教师模块
			authorized.POST("/teachers", h.Teacher.CreateTeacher)
			authorized.PUT("/teachers/:id", h.Teacher.UpdateTeacher)
			authorized.DELETE("/teachers/:id", h.Teacher.DeleteTeacher)

			// 科目模块
			authorized.POST("/subjects", h.Subject.CreateSubject)
			authorized.PUT("/subjects/:id", h.Subject.UpdateSubject)
			authorized.DELETE("/subjects/:id", h.Subject.DeleteSubject)

			// 班级模块
			authorized.POST("/class-grades", h.ClassGrade.CreateClassGrade)
			authorized.PUT("/class-grades/:id", h.ClassGrade.UpdateClassGrade)
			authorized.DELETE("/class-grades/:id", h.ClassGrade.DeleteClassGrade)

			// 节次模块
			authorized.POST("/periods", h.Period.CreatePeriod)
			authorized.PUT("/periods/:id", h.Period.UpdatePeriod)
			authorized.DELETE("/periods/:id", h.Period.DeletePeriod)

			// 上课日模块（固定七天，仅切换启用状态）
			authorized.PUT("/school-days/:name", h.SchoolDay.UpdateSchoolDay)

			// 学年模块
			authorized.POST("/academic-sessions", h.AcademicSession.CreateSession)
			authorized.PUT("/academic-sessions/:id", h.AcademicSession.UpdateSession)
			authorized.PUT("/academic-sessions/:id/activate", h.AcademicSession.ActivateSession)
			authorized.DELETE("/academic-sessions/:id", h.AcademicSession.DeleteSession)

			// 排课模块
			authorized.POST("/schedules", h.Schedule.CreateSchedule)
			authorized.PUT("/schedules/:id", h.Schedule.UpdateSchedule)
			authorized.DELETE("/schedules/:id", h.Schedule.DeleteSchedule)

			// 管理员账号模块（仅超级管理员）
			admins := authorized.Group("/admins")
			admins.Use(middleware.RoleAuth("SuperAdmin"))
			{
				admins.GET("", h.Admin.ListAdmins)
				admins.GET("/:id", h.Admin.GetAdmin)
				admins.POST("", h.Admin.CreateAdmin)
				admins.PUT("/:id", h.Admin.UpdateAdmin)
				admins.DELETE("/:id", h.Admin.DeleteAdmin)
			}
		}
	}

	return r
}
