package server

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/godwish/build-portal/internal/config"
)

type Server struct {
	Addr   string
	Engine *gin.Engine
}

func NewServer(addr string, cfg *config.Config) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		Addr:   addr,
		Engine: gin.Default(),
	}

	// Without this gin trusts every peer's X-Forwarded-For header, which
	// would let external callers spoof an internal origin. Network
	// classification must operate on the actual remote address.
	_ = s.Engine.SetTrustedProxies(nil)

	if cfg.MaxUploadMB > 0 {
		limit := cfg.MaxUploadMB << 20
		s.Engine.Use(func(c *gin.Context) {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		})
	}

	// Artifacts are served read-only straight off the store directory.
	s.Engine.Static("/builds", cfg.DataDir)

	// Portal UI (external collaborator).
	s.Engine.StaticFile("/", filepath.Join(cfg.PublicDir, "index.html"))
	s.Engine.Static("/js", filepath.Join(cfg.PublicDir, "js"))

	return s
}

func (s *Server) Run() error {
	return s.Engine.Run(s.Addr)
}
