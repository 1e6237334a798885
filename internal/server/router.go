package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the HTTP routes. The CORS origin mirrors the deployment
// config: "*" for a permissive policy, or one specific frontend origin.
func NewRouter(h *Handler, corsOrigin string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if corsOrigin == "" || corsOrigin == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{corsOrigin}
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	r.POST("/upload", h.Upload)
	r.GET("/status/:file_id", h.Status)
	r.GET("/download/:file_id", h.Download)
	r.GET("/health", h.Health)

	return r
}
