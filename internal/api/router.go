package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aurorahq/akfeed/internal/auth"
	"github.com/aurorahq/akfeed/internal/config"
	"github.com/aurorahq/akfeed/internal/store"
)

// NewRouter assembles the gin engine with CORS, health and metrics
// endpoints, and the versioned API routes.
func NewRouter(cfg *config.Config, h *Handler, issuer *auth.Issuer, users store.UserStore) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.GET("/front-page", h.FrontPage)

		v1.GET("/regions", h.ListRegions)
		v1.GET("/regions/:slug", h.GetRegion)
		v1.GET("/regions/:slug/news", h.RegionNews)
		v1.GET("/regions/:slug/businesses", h.RegionBusinesses)
		v1.GET("/regions/:slug/resources", h.RegionResources)

		v1.GET("/communities/:slug", h.GetCommunity)
		v1.GET("/communities/:slug/weather", h.CommunityWeather)
		v1.GET("/weather", h.Weather)

		v1.GET("/map/regions", h.MapRegions)
		v1.GET("/map/businesses", h.MapBusinesses)
		v1.GET("/map/resources", h.MapResources)

		v1.GET("/media/*path", h.GetMedia)

		v1.GET("/weekly-reports", h.ListWeeklyReports)
		v1.GET("/weekly-reports/latest", h.LatestWeeklyReport)
		v1.GET("/resources/featured", h.FeaturedResources)

		v1.POST("/auth/signup", h.Signup)
		v1.POST("/auth/signin", h.Signin)
	}

	authed := v1.Group("")
	authed.Use(auth.RequireAuth(issuer))
	{
		authed.GET("/auth/me", h.Me)
		authed.GET("/favorites", h.ListFavorites)
		authed.POST("/favorites/:id", h.AddFavorite)
		authed.DELETE("/favorites/:id", h.RemoveFavorite)
	}

	admin := v1.Group("/admin")
	admin.Use(auth.RequireAuth(issuer), auth.RequireAdmin(users))
	{
		admin.POST("/news", h.CreateNews)
		admin.PUT("/news/:id", h.UpdateNews)
		admin.DELETE("/news/:id", h.DeleteNews)
		admin.POST("/news/:id/summary", h.SummarizeNews)

		admin.POST("/businesses", h.CreateBusiness)
		admin.PUT("/businesses/:id", h.UpdateBusiness)
		admin.DELETE("/businesses/:id", h.DeleteBusiness)

		admin.POST("/resources", h.CreateResource)
		admin.PUT("/resources/:id", h.UpdateResource)
		admin.DELETE("/resources/:id", h.DeleteResource)

		admin.POST("/weekly-reports", h.CreateWeeklyReport)
		admin.PUT("/weekly-reports/:id", h.UpdateWeeklyReport)
		admin.DELETE("/weekly-reports/:id", h.DeleteWeeklyReport)

		admin.POST("/media/*path", h.UploadMedia)
		admin.DELETE("/media/*path", h.DeleteMedia)

		admin.PUT("/users/:id/role", h.SetUserRole)
	}

	return r
}
