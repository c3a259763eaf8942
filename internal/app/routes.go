package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stackfolio/core/internal/middleware"
	"github.com/stackfolio/core/internal/modules/auth"
	"github.com/stackfolio/core/internal/modules/note"
	"github.com/stackfolio/core/internal/modules/portfolio"
	"github.com/stackfolio/core/internal/modules/product"
	"github.com/stackfolio/core/internal/modules/user"
	"github.com/stackfolio/core/internal/pkg/mail"
	"github.com/stackfolio/core/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	api := r.Group("/api")
	api.Use(middleware.OptionalAuth())
	if a.rc != nil {
		// Anonymous traffic rate limiting requires Redis.
		api.Use(middleware.RateLimit(a.rc.Raw()))
	}

	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })

	// Auth & profile
	auth.NewHandler(auth.NewService(a.st.Users)).RegisterRoutes(api)
	user.NewHandler(user.NewService(a.st.Users)).RegisterRoutes(api, authMW)

	// Smart notes
	note.NewHandler(note.NewService(a.st.Notes)).RegisterRoutes(api, authMW)

	// Portfolio site
	sender := mail.New(a.cfg.Mail)
	portfolioSvc := portfolio.NewService(a.st.Projects, a.st.Contacts, sender, a.logger)
	portfolio.NewHandler(portfolioSvc).RegisterRoutes(api, authMW)

	// Storefront
	product.NewHandler(product.NewService(a.st.Products)).RegisterRoutes(api, authMW)
}
