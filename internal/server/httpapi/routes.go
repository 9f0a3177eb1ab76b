package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type route struct {
	method       string
	path         string
	handler      gin.HandlerFunc
	requiresAuth bool
}

func (s *Server) routes() []route {
	return []route{
		{http.MethodGet, "/", s.handleRoot, false},
		{http.MethodGet, "/favicon.ico", s.handleFavicon, false},
		{http.MethodPost, "/api/auth/signup", s.handleSignup, false},
		{http.MethodPost, "/api/auth/login", s.handleLogin, false},
		{http.MethodGet, "/api/auth/me", s.handleMe, true},
		{http.MethodGet, "/api/admin/users", s.handleListUsers, s.adminRequiresAuth},
		{http.MethodGet, "/api/inventory", s.handleListItems, true},
		{http.MethodPost, "/api/inventory", s.handleCreateItem, true},
		{http.MethodDelete, "/api/inventory/:id", s.handleDeleteItem, true},
	}
}

func (s *Server) buildEngine() *gin.Engine {
	registerJSONFieldNames()

	r := gin.New()
	r.Use(s.requestIDMiddleware(), s.recoveryMiddleware())
	if len(s.allowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     s.allowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeaderName},
			ExposeHeaders:    []string{requestIDHeaderName},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	auth := s.authMiddleware()
	ctx := context.Background()
	for _, rt := range s.routes() {
		handlers := []gin.HandlerFunc{rt.handler}
		if rt.requiresAuth {
			handlers = []gin.HandlerFunc{auth, rt.handler}
		}
		r.Handle(rt.method, rt.path, handlers...)
		s.logger.Info(ctx, "route registered", "method", rt.method, "path", rt.path, "auth", rt.requiresAuth)
	}

	if !s.adminRequiresAuth {
		s.logger.Warn(ctx, "GET /api/admin/users is not protected; any caller can list users")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Detail: "Not Found"})
	})

	return r
}
