package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/config"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/api/handler"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/api/middleware"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/internal/model"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/pkg/jwt"
	"github.com/sullinsje/CSCI-4250-Student-Tracker-App/pkg/redis"
)

// loginRateLimit 登录接口速率限制：每 IP 每分钟 10 次
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
	maxBodyBytes    = 1 << 20
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── 认证模块（无需认证） ──
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimit(rdb, loginRateLimit, loginRateWindow), h.Auth.Login)
		auth.POST("/register/:roleName", h.Auth.Register)
	}

	// 认证模块（需要认证）
	authAuthorized := r.Group("/auth")
	authAuthorized.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		authAuthorized.POST("/logout", h.Auth.Logout)
		authAuthorized.GET("/me", h.Auth.GetCurrentUser)
	}

	// ── API（需要认证） ──
	api := r.Group("/api")
	api.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		// 学生模块
		student := api.Group("/student")
		{
			student.GET("/all", h.Student.ListStudents)
			student.GET("/one/:id", h.Student.GetStudent)
			student.POST("/create", h.Student.CreateStudent)
			student.PUT("/update", h.Student.UpdateStudent)
			student.DELETE("/delete/:id", h.Student.DeleteStudent)
			student.POST("/attendanceRecord/add", h.Student.AddAttendanceRecord)
			student.GET("/:id/attendance", h.Student.GetAttendanceHistory)
		}

		// 用户管理模块（仅管理员）
		user := api.Group("/user")
		user.Use(middleware.RoleAuth(model.RoleAdmin))
		{
			user.GET("/all", h.User.ListUsers)
			user.GET("/one/:id", h.User.GetUser)
			user.GET("/roles", h.User.ListRoles)
			user.POST("/create", h.User.CreateUser)
			user.PUT("/:id", h.User.UpdateUser)
			user.DELETE("/:id", h.User.DeleteUser)
			user.PUT("/:id/role", h.User.AssignRole)
		}

		// 导出模块（管理员与教师）
		export := api.Group("/export")
		export.Use(middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher))
		{
			export.GET("/attendance/:id/xlsx", h.Export.ExportAttendanceXLSX)
			export.GET("/attendance/:id/ics", h.Export.ExportAttendanceICS)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
