package stub

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/printshop-console/api/swagger"

	"github.com/noah-isme/printshop-console/internal/dto"
	"github.com/noah-isme/printshop-console/internal/models"
	"github.com/noah-isme/printshop-console/internal/repository"
	"github.com/noah-isme/printshop-console/internal/service"
	"github.com/noah-isme/printshop-console/pkg/logger"
	corsmiddleware "github.com/noah-isme/printshop-console/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/printshop-console/pkg/middleware/requestid"
)

// Options configures the development backend.
type Options struct {
	AllowedOrigins []string
	Metrics        *service.MetricsService
	Logger         *zap.Logger
	Validator      *validator.Validate
	// Docs serves the Swagger UI under /docs.
	Docs bool
}

// Server is the in-memory inventory backend.
type Server struct {
	DieCuts      *Table[models.DieCut]
	RawMaterials *Table[models.RawMaterial]
	Inks         *Table[models.Ink]

	opts Options
}

// NewServer builds an empty backend.
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Validator == nil {
		opts.Validator = service.NewValidator()
	}
	return &Server{
		DieCuts:      NewTable(func(d models.DieCut) int64 { return d.ID }, func(d *models.DieCut, id int64) { d.ID = id }),
		RawMaterials: NewTable(func(r models.RawMaterial) int64 { return r.ID }, func(r *models.RawMaterial, id int64) { r.ID = id }),
		Inks:         NewTable(func(i models.Ink) int64 { return i.ID }, func(i *models.Ink, id int64) { i.ID = id }),
		opts:         opts,
	}
}

// Router wires middleware and routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(s.opts.Logger))
	r.Use(metricsMiddleware(s.opts.Metrics))
	r.Use(corsmiddleware.New(s.opts.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(s.opts.Metrics.Handler()))
	if s.opts.Docs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	dieCuts := newResourceHandler[models.DieCut, dto.DieCutPayload](dieCutSpec(), s.DieCuts, s.opts.Validator, s.opts.Logger)
	rawMaterials := newResourceHandler[models.RawMaterial, dto.RawMaterialPayload](rawMaterialSpec(), s.RawMaterials, s.opts.Validator, s.opts.Logger)
	inks := newResourceHandler[models.Ink, dto.InkPayload](inkSpec(), s.Inks, s.opts.Validator, s.opts.Logger)

	register(r.Group(repository.DieCutsPath), dieCuts)
	rm := r.Group(repository.RawMaterialsPath)
	rm.GET("/search", rawMaterials.List)
	register(rm, rawMaterials)
	register(r.Group(repository.InksPath), inks)

	return r
}

func register[T any, P any](g *gin.RouterGroup, h *ResourceHandler[T, P]) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// metricsMiddleware records every request under its route pattern.
func metricsMiddleware(metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metrics.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
