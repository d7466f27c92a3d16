package routes

import (
	"net/http"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/controllers"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/websocket"
	"github.com/gin-gonic/gin"
)

// Controllers groups every HTTP handler the router serves
type Controllers struct {
	Auth       *controllers.AuthController
	Students   *controllers.StudentController
	Courses    *controllers.CourseController
	Lecturers  *controllers.LecturerController
	Files      *controllers.FileController
	Popularity *controllers.PopularityController
	WebSocket  *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API version group
	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.POST("/logout", c.Auth.Logout)
		auth.GET("/me", c.Auth.Me)
	}

	students := v1.Group("/students")
	{
		students.GET("", c.Students.GetAllStudents)
		students.POST("", c.Students.CreateStudent)
		students.POST("/random", c.Students.GenerateRandomStudent)
		students.GET("/:id", c.Students.GetStudentByID)
		students.PUT("/:id", c.Students.UpdateStudent)
		students.DELETE("/:id", c.Students.DeleteStudent)
	}

	courses := v1.Group("/courses")
	{
		courses.GET("", c.Courses.GetAllCourses)
		courses.POST("", c.Courses.CreateCourse)
		courses.POST("/random", c.Courses.GenerateRandomCourse)
		courses.GET("/:id", c.Courses.GetCourseByID)
		courses.PUT("/:id", c.Courses.UpdateCourse)
		courses.DELETE("/:id", c.Courses.DeleteCourse)
		courses.PUT("/:id/lecturer", c.Courses.AssignLecturer)
		courses.GET("/:id/details", c.Courses.GetCourseDetails)
		courses.POST("/:id/views", c.Courses.RecordView)
	}

	lecturers := v1.Group("/lecturers")
	{
		lecturers.GET("", c.Lecturers.GetAllLecturers)
		lecturers.POST("", c.Lecturers.CreateLecturer)
		lecturers.POST("/random", c.Lecturers.GenerateRandomLecturer)
		lecturers.GET("/:id", c.Lecturers.GetLecturerByID)
		lecturers.PUT("/:id", c.Lecturers.UpdateLecturer)
		lecturers.DELETE("/:id", c.Lecturers.DeleteLecturer)
		lecturers.PUT("/:id/courses", c.Lecturers.SetLecturerCourses)
		lecturers.PUT("/:id/semesters", c.Lecturers.SetLecturerSemesters)
		lecturers.GET("/:id/details", c.Lecturers.GetLecturerDetails)
	}

	files := v1.Group("/files")
	{
		files.GET("", c.Files.GetAllFiles)
		files.POST("", c.Files.CreateFile)
		files.POST("/random", c.Files.GenerateRandomFile)
		files.GET("/:id", c.Files.GetFileByID)
		files.PUT("/:id", c.Files.UpdateFile)
		files.DELETE("/:id", c.Files.DeleteFile)
		files.PUT("/:id/status", c.Files.UpdateFileStatus)
		files.POST("/:id/views", c.Files.RecordView)
	}

	v1.GET("/popular", c.Popularity.GetPopular)
	v1.GET("/ws", c.WebSocket.HandleConnection)
}
