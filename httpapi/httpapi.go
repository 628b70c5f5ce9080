package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/semafind/closepairs/httpapi/middleware"
	"github.com/semafind/closepairs/session"
)

type HttpApiConfig struct {
	Debug bool `yaml:"debug"`
	// ---------------------------
	HttpHost string `yaml:"httpHost"`
	HttpPort int    `yaml:"httpPort"`
	// ---------------------------
	EnableMetrics   bool `yaml:"enableMetrics"`
	MetricsHttpPort int  `yaml:"metricsHttpPort"`
	// ---------------------------
	// Optional secret a fronting proxy must send
	ProxySecret  string   `yaml:"proxySecret"`
	WhiteListIPs []string `yaml:"whiteListIPs" env:"WHITE_LIST_IPS"`
	// ---------------------------
	// Seconds a live connection may stay silent before it is closed
	LiveReadTimeout int `yaml:"liveReadTimeout"`
	// Serve the embedded browser page
	ServeWebPage bool `yaml:"serveWebPage"`
}

func DefaultHttpApiConfig() HttpApiConfig {
	return HttpApiConfig{
		HttpHost:        "localhost",
		HttpPort:        8081,
		EnableMetrics:   false,
		MetricsHttpPort: 8091,
		WhiteListIPs:    []string{"*"},
		LiveReadTimeout: 300,
		ServeWebPage:    true,
	}
}

// ---------------------------

func pongHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong from closepairs",
	})
}

func setupRouter(cfg HttpApiConfig, manager *session.Manager) *gin.Engine {
	router := gin.New()
	v1 := router.Group("/v1")
	v1.GET("/ping", pongHandler)
	// ---------------------------
	h := &Handlers{cfg: cfg, manager: manager}
	v1.GET("/catalog", h.GetCatalog)
	v1.GET("/points", h.GetPoints)
	v1.POST("/sessions", h.CreateSession)
	sesRoutes := v1.Group("/sessions/:sessionId", h.SessionURIMiddleware())
	sesRoutes.GET("", h.GetSession)
	sesRoutes.DELETE("", h.DeleteSession)
	// Gestures, each returns the new session state
	sesRoutes.PUT("/n", h.SetN)
	sesRoutes.POST("/wheel", h.Wheel)
	sesRoutes.POST("/drag/start", h.DragStart)
	sesRoutes.POST("/drag/move", h.DragMove)
	sesRoutes.POST("/drag/end", h.DragEnd)
	sesRoutes.POST("/leave", h.PointerLeave)
	sesRoutes.POST("/reset", h.Reset)
	sesRoutes.POST("/resize", h.Resize)
	// Output
	sesRoutes.GET("/scene", h.GetScene)
	sesRoutes.GET("/render.svg", h.RenderSVG)
	sesRoutes.GET("/live", h.Live)
	// ---------------------------
	if cfg.ServeWebPage {
		setupWebRoutes(router)
	}
	return router
}

// NewHandler builds the full handler chain, metrics may be nil.
func NewHandler(cfg HttpApiConfig, manager *session.Manager, metrics *middleware.HttpMetrics) http.Handler {
	var handler http.Handler = setupRouter(cfg, manager)
	handler = middleware.Recover(handler)
	handler = middleware.ProxySecret(cfg.ProxySecret, handler)
	handler = middleware.WhiteListIP(cfg.WhiteListIPs, handler)
	handler = middleware.ZeroLoggerMetrics(metrics, handler)
	return handler
}

func RunHTTPServer(cfg HttpApiConfig, manager *session.Manager) (*http.Server, *http.Server) {
	// ---------------------------
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	// ---------------------------
	var metrics *middleware.HttpMetrics
	var metricsServer *http.Server
	if cfg.EnableMetrics {
		reg := prometheus.NewRegistry()
		metrics = middleware.NewHttpMetrics()
		metrics.Register(reg)
		manager.RegisterMetrics(reg)
		metricsServer = runMetricsServer(cfg, reg)
	}
	// ---------------------------
	server := &http.Server{
		Addr:    cfg.HttpHost + ":" + strconv.Itoa(cfg.HttpPort),
		Handler: NewHandler(cfg, manager, metrics),
	}
	go func() {
		log.Info().Str("httpAddr", server.Addr).Msg("HTTPAPI.Serve")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start http server")
		}
	}()
	return server, metricsServer
}
