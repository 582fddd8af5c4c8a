package routes

import (
	"time"

	"github.com/fredneedsausername/FreDiet/cache"
	"github.com/fredneedsausername/FreDiet/config"
	"github.com/fredneedsausername/FreDiet/controllers"
	"github.com/fredneedsausername/FreDiet/middlewares"
	"github.com/fredneedsausername/FreDiet/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupRouter wires services, controllers and middleware. rdb may be nil, in
// which case summary caching is disabled.
func SetupRouter(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "Cookie"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	var summaryCache *cache.SummaryCache
	if rdb != nil {
		summaryCache = cache.NewSummaryCache(rdb, cfg.SummaryCacheTTL)
	}

	authSvc := services.NewAuthService(db, cfg.SessionTTL, summaryCache)
	mealSvc := services.NewMealService(db, cfg.Timezone, summaryCache)
	summarySvc := services.NewSummaryService(db, cfg.Timezone, summaryCache)

	authCtl := controllers.NewAuthController(authSvc, cfg)
	mealCtl := controllers.NewMealController(mealSvc, cfg.Timezone)
	summaryCtl := controllers.NewSummaryController(summarySvc, cfg.Timezone)
	userCtl := controllers.NewUserController(authSvc)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
		auth.POST("/logout", authCtl.Logout)
	}

	// Protected routes
	protected := r.Group("")
	protected.Use(middlewares.AuthMiddleware(authSvc, []byte(cfg.JWTSecret)))
	{
		protected.POST("/meals", mealCtl.AddMeal)
		protected.GET("/meals", mealCtl.ListMeals)
		protected.DELETE("/meals/:id", mealCtl.DeleteMeal)

		protected.GET("/summary", summaryCtl.GetDailySummary)

		protected.GET("/user/profile", userCtl.GetProfile)
		protected.POST("/user/password", userCtl.ChangePassword)
		protected.DELETE("/user", userCtl.DeleteAccount)
	}

	return r
}
