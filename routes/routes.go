package routes

import (
	"bootcamper/controllers"
	"bootcamper/middleware"
	"bootcamper/models"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the route surface. Every route names its own
// capability chain explicitly; nothing is inherited implicitly beyond the
// group prefix.
func RegisterRoutes(r *gin.Engine) {

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
			auth.GET("/logout", middleware.RequireAuth(), controllers.Logout)
			auth.GET("/current-loggedin", middleware.RequireAuth(), controllers.CurrentLoggedIn)
			auth.POST("/forgot-password", controllers.ForgotPassword)
			auth.PUT("/reset-password/:resetToken", controllers.ResetPassword)
		}

		bootcamp := api.Group("/bootcamp")
		{
			bootcamp.GET("", controllers.GetBootcamps)
			bootcamp.GET("/:bootcampId", controllers.GetBootcamp)
			bootcamp.GET("/radius/:zipcode/:distance", controllers.GetBootcampsInRadius)

			bootcamp.POST("",
				middleware.RequireAuth(),
				middleware.RequireRoles(models.RolePublisher, models.RoleAdmin),
				controllers.CreateBootcamp)
			bootcamp.PUT("/:bootcampId",
				middleware.RequireAuth(),
				middleware.RequireRoles(models.RolePublisher, models.RoleAdmin),
				controllers.UpdateBootcamp)
			bootcamp.PUT("/:bootcampId/photo",
				middleware.RequireAuth(),
				middleware.RequireRoles(models.RolePublisher, models.RoleAdmin),
				controllers.UploadBootcampPhoto)
			bootcamp.DELETE("/:bootcampId",
				middleware.RequireAuth(),
				middleware.RequireRoles(models.RolePublisher, models.RoleAdmin),
				controllers.DeleteBootcamp)

			// Nested resources.
			bootcamp.GET("/:bootcampId/course", controllers.GetCourses)
			bootcamp.POST("/:bootcampId/course",
				middleware.RequireAuth(),
				middleware.RequireRoles(models.RolePublisher, models.RoleAdmin),
				controllers.CreateCourse)
			bootcamp.GET("/:bootcampId/review", controllers.GetReviews)
			bootcamp.POST("/:bootcampId/review",
				middleware.RequireAuth(),
				middleware.RequireRoles(models.RoleUser),
				controllers.CreateReview)
		}

		course := api.Group("/course")
		{
			course.GET("", controllers.GetCourses)
			course.GET("/:courseId", controllers.GetCourse)
			course.PUT("/:courseId",
				middleware.RequireAuth(),
				middleware.RequireRoles(models.RolePublisher, models.RoleAdmin),
				controllers.UpdateCourse)
			course.DELETE("/:courseId",
				middleware.RequireAuth(),
				middleware.RequireRoles(models.RolePublisher, models.RoleAdmin),
				controllers.DeleteCourse)
		}

		review := api.Group("/review")
		{
			review.GET("", controllers.GetReviews)
			review.GET("/:reviewId", controllers.GetReview)
			review.PATCH("/:reviewId",
				middleware.RequireAuth(),
				middleware.RequireRoles(models.RoleUser),
				controllers.UpdateReview)
			review.DELETE("/:reviewId",
				middleware.RequireAuth(),
				middleware.RequireRoles(models.RoleUser, models.RoleAdmin),
				controllers.DeleteReview)
		}

		user := api.Group("/user")
		user.Use(middleware.RequireAuth())
		{
			user.PATCH("/update-user", controllers.UpdateUserDetails)
			user.PATCH("/update-password", controllers.UpdateUserPassword)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(), middleware.RequireRoles(models.RoleAdmin))
		{
			admin.GET("/users", controllers.GetAllUsers)
			admin.POST("/users", controllers.CreateUser)
			admin.PATCH("/users/:userId", controllers.UpdateUser)
			admin.DELETE("/users/:userId", controllers.DeleteUser)
		}
	}
}
