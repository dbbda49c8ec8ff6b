// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/makaohomes/makao-backend/internal/cache"
	"github.com/makaohomes/makao-backend/internal/config"
	"github.com/makaohomes/makao-backend/internal/handlers"
	"github.com/makaohomes/makao-backend/internal/middleware"
	"github.com/makaohomes/makao-backend/internal/services"
	"github.com/makaohomes/makao-backend/internal/utils"
)

func Initialize(db *gorm.DB, listingCache *cache.Cache, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(cfg)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg, notificationService)
	propertyService := services.NewPropertyService(db, listingCache)
	imageService := services.NewImageService(db, storageService, listingCache)
	pageService := services.NewPageService(db)
	userService := services.NewUserService(db)
	reviewService := services.NewReviewService(db)
	inquiryService := services.NewInquiryService(db, notificationService)
	appointmentService := services.NewAppointmentService(db)
	favoriteService := services.NewFavoriteService(db)
	searchService := services.NewSearchService(db)
	blogService := services.NewBlogService(db)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	propertyHandler := handlers.NewPropertyHandler(propertyService, imageService, reviewService, notificationService)
	pageHandler := handlers.NewPageHandler(pageService, imageService)
	engagementHandler := handlers.NewEngagementHandler(inquiryService, reviewService, appointmentService, favoriteService, searchService)
	blogHandler := handlers.NewBlogHandler(blogService)
	adminHandler := handlers.NewAdminHandler(adminService, userService, inquiryService, reviewService, appointmentService, storageService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Public listing routes
		properties := v1.Group("/properties")
		{
			properties.GET("", propertyHandler.ListProperties)
			properties.GET("/featured", propertyHandler.ListFeatured)
			properties.GET("/:id", propertyHandler.GetProperty)
			properties.GET("/:id/reviews", propertyHandler.ListPropertyReviews)
			properties.GET("/:id/features", propertyHandler.ListFeatures)
		}

		// Public content routes
		v1.GET("/pages", pageHandler.ListPages)
		v1.GET("/pages/:slug", pageHandler.GetPageBySlug)
		v1.GET("/blog", blogHandler.ListPosts)
		v1.GET("/blog/:slug", blogHandler.GetPostBySlug)
		v1.GET("/agents", func(c *gin.Context) {
			agents, err := userService.ListAgents()
			if err != nil {
				utils.InternalErrorResponse(c, "")
				return
			}
			utils.SuccessResponse(c, agents)
		})

		// Visitor engagement
		v1.POST("/inquiries", middleware.InquiryRateLimit(), middleware.OptionalAuth(), engagementHandler.CreateInquiry)

		// Signed-in user routes
		me := v1.Group("/me")
		me.Use(middleware.AuthRequired())
		{
			me.GET("/favorites", engagementHandler.MyFavorites)
			me.PUT("/favorites/:propertyId", engagementHandler.AddFavorite)
			me.DELETE("/favorites/:propertyId", engagementHandler.RemoveFavorite)
			me.GET("/appointments", engagementHandler.MyAppointments)
			me.GET("/viewings", engagementHandler.MyViewings)
			me.GET("/searches", engagementHandler.MySearches)
			me.POST("/searches", engagementHandler.SaveSearch)
			me.DELETE("/searches/:id", engagementHandler.DeleteSearch)
			me.GET("/alerts", engagementHandler.MyAlerts)
			me.POST("/alerts", engagementHandler.CreateAlert)
			me.PUT("/alerts/:id", engagementHandler.UpdateAlert)
			me.DELETE("/alerts/:id", engagementHandler.DeleteAlert)
		}
		v1.POST("/reviews", middleware.AuthRequired(), engagementHandler.SubmitReview)
		v1.POST("/appointments", middleware.AuthRequired(), engagementHandler.BookAppointment)
		v1.POST("/viewings", middleware.AuthRequired(), engagementHandler.BookViewing)

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(), middleware.ActivityLogMiddleware(db))
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)
			admin.GET("/activity", adminHandler.GetActivityLogs)

			admin.POST("/properties", propertyHandler.CreateProperty)
			admin.PUT("/properties/:id", propertyHandler.UpdateProperty)
			admin.DELETE("/properties/:id", propertyHandler.DeleteProperty)
			admin.PATCH("/properties/:id/featured", propertyHandler.SetFeatured)
			admin.POST("/properties/:id/images", propertyHandler.AttachImage)
			admin.DELETE("/properties/images/:imageId", propertyHandler.DetachImage)
			admin.POST("/properties/:id/features", propertyHandler.AddFeature)
			admin.PUT("/properties/features/:featureId", propertyHandler.UpdateFeature)
			admin.DELETE("/properties/features/:featureId", propertyHandler.RemoveFeature)

			admin.POST("/pages", pageHandler.CreatePage)
			admin.PUT("/pages/:id", pageHandler.UpdatePage)
			admin.PATCH("/pages/:id/status", pageHandler.UpdatePageStatus)
			admin.DELETE("/pages/:id", pageHandler.DeletePage)
			admin.GET("/pages/:id/images", pageHandler.ListContentImages)
			admin.POST("/pages/:id/images", pageHandler.AttachContentImage)
			admin.DELETE("/pages/images/:imageId", pageHandler.DetachContentImage)

			admin.GET("/users", adminHandler.ListUsers)
			admin.POST("/users", adminHandler.CreateUser)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.PUT("/users/:id", adminHandler.UpdateUser)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)

			admin.GET("/inquiries", adminHandler.ListInquiries)
			admin.PUT("/inquiries/:id", adminHandler.UpdateInquiry)
			admin.DELETE("/inquiries/:id", adminHandler.DeleteInquiry)

			admin.GET("/reviews", adminHandler.ListReviews)
			admin.PATCH("/reviews/:id/status", adminHandler.ModerateReview)
			admin.DELETE("/reviews/:id", adminHandler.DeleteReview)

			admin.GET("/appointments", adminHandler.ListAppointments)
			admin.PUT("/appointments/:id", adminHandler.UpdateAppointment)
			admin.GET("/viewings", adminHandler.ListViewings)
			admin.PUT("/viewings/:id", adminHandler.UpdateViewing)

			admin.POST("/blog", blogHandler.CreatePost)
			admin.PUT("/blog/:id", blogHandler.UpdatePost)
			admin.PATCH("/blog/:id/status", blogHandler.UpdatePostStatus)
			admin.DELETE("/blog/:id", blogHandler.DeletePost)

			admin.POST("/uploads", middleware.UploadRateLimit(), adminHandler.UploadFile)
			admin.GET("/uploads/presign", adminHandler.PresignDownload)
		}
	}

	return r
}
