package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/isluportal/internal/app/controllers"
	"github.com/yigit/isluportal/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth    *controllers.AuthController
	Student *controllers.StudentController
	Records *controllers.RecordsController
	Payment *controllers.PaymentController
	Export  *controllers.ExportController
	Faculty *controllers.FacultyController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.POST("/auth/logout", ctrl.Auth.Logout)

	me := authenticated.Group("/me")
	{
		me.GET("", ctrl.Student.GetMe)
		me.GET("/profile", ctrl.Student.GetProfile)
		me.PUT("/profile", ctrl.Student.UpdateProfile)
		me.PUT("/password", ctrl.Auth.ChangePassword)

		me.GET("/schedule", ctrl.Student.GetSchedule)
		me.GET("/timetable", ctrl.Student.GetTimetable)

		me.GET("/attendance", ctrl.Records.ListAttendance)
		me.GET("/attendance/summary", ctrl.Records.AttendanceSummary)
		me.GET("/attendance/overall", ctrl.Records.OverallAttendance)
		me.GET("/attendance/absences", ctrl.Records.Absences)
		me.POST("/attendance/reason", ctrl.Records.SubmitReason)

		me.GET("/grades", ctrl.Records.CurrentGrades)
		me.GET("/transcript", ctrl.Records.Transcript)

		me.GET("/payments", ctrl.Payment.ListPayments)
		me.POST("/payments", ctrl.Payment.Pay)
		me.GET("/statement", ctrl.Payment.Statement)
		me.POST("/statement/refresh", ctrl.Payment.RefreshStatement)

		// Downloads
		me.GET("/statement.pdf", ctrl.Export.StatementPDF)
		me.GET("/transcript.pdf", ctrl.Export.TranscriptPDF)
		me.GET("/schedule.xlsx", ctrl.Export.ScheduleXLSX)
	}

	faculty := authenticated.Group("/faculty")
	{
		faculty.PUT("/attendance", ctrl.Faculty.UpdateAttendance)
		faculty.PUT("/grades", ctrl.Faculty.UpdateGrade)
	}
}
