package routes

import (
	"github.com/gin-gonic/gin"

	config "github.com/hopebridge/ngo-backend-go/config"
	controllers "github.com/hopebridge/ngo-backend-go/controllers"
	middleware "github.com/hopebridge/ngo-backend-go/middleware"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	auth := middleware.AuthMiddleware(cfg)
	admin := middleware.RequireAdmin()

	api := r.Group("/api")

	// auth
	api.POST("/auth/register", controllers.Register(cfg))
	api.POST("/auth/login", controllers.Login(cfg))

	// donations
	donations := api.Group("/donations")
	{
		donations.POST("", middleware.OptionalAuth(cfg), controllers.CreateDonation(cfg))
		donations.GET("/all", auth, admin, controllers.ListDonations(cfg))
		donations.GET("/unapproved", auth, admin, controllers.ListUnapprovedDonations(cfg))
		donations.GET("/:id", controllers.GetDonation(cfg))
		donations.PUT("/:id/approve", auth, admin, controllers.ApproveDonation(cfg))
		donations.PUT("/reject/:id", auth, admin, controllers.RejectDonation(cfg))
	}

	// cases
	cases := api.Group("/cases")
	{
		cases.GET("", controllers.ListCases(cfg))
		cases.GET("/:id", controllers.GetCase(cfg))
		cases.POST("", auth, admin, controllers.CreateCase(cfg))
		cases.PUT("/:id", auth, admin, controllers.UpdateCase(cfg))
		cases.DELETE("/:id", auth, admin, controllers.DeleteCase(cfg))
		cases.PATCH("/:id/status", auth, admin, controllers.UpdateCaseStatus(cfg))
	}

	// events (paths kept as the admin frontend expects them)
	events := api.Group("/events")
	{
		events.GET("/getallevent", controllers.ListEvents(cfg))
		events.POST("/create/event", auth, admin, controllers.CreateEvent(cfg))
		events.PUT("/update/:id", auth, admin, controllers.UpdateEvent(cfg))
		events.DELETE("/delete/:id", auth, admin, controllers.DeleteEvent(cfg))
		events.POST("/:id/join", auth, controllers.JoinEvent(cfg))
		events.POST("/:id/leave", auth, controllers.LeaveEvent(cfg))
	}

	// programs
	programs := api.Group("/programs")
	{
		programs.GET("", controllers.ListPrograms(cfg))
		programs.POST("", auth, admin, controllers.CreateProgram(cfg))
		programs.PUT("/:id", auth, admin, controllers.UpdateProgram(cfg))
		programs.DELETE("/:id", auth, admin, controllers.DeleteProgram(cfg))
	}

	// volunteers
	volunteers := api.Group("/volunteers")
	{
		volunteers.POST("", controllers.ApplyVolunteer(cfg))
		volunteers.GET("", auth, admin, controllers.ListVolunteers(cfg))
		volunteers.PATCH("/:id/status", auth, admin, controllers.UpdateVolunteerStatus(cfg))
	}

	// contact messages
	contacts := api.Group("/contacts")
	{
		contacts.POST("", controllers.CreateContactMessage(cfg))
		contacts.GET("", auth, admin, controllers.ListContactMessages(cfg))
		contacts.PATCH("/:id/read", auth, admin, controllers.MarkContactMessageRead(cfg))
	}

	// dashboard
	api.GET("/dashboard/stats", auth, admin, controllers.DashboardStats(cfg))
}
