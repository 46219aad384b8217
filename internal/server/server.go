package server

import (
	"context"
	"net/http"
	"time"

	clasificaciondomain "github.com/estudioandino/cobranza/internal/clasificacion/domain"
	"github.com/estudioandino/cobranza/internal/config"
	cronogramadomain "github.com/estudioandino/cobranza/internal/cronograma/domain"
	procesodomain "github.com/estudioandino/cobranza/internal/proceso/domain"
	"github.com/estudioandino/cobranza/internal/recibo"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(reg *prometheus.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return r
}

type Server struct {
	engine *gin.Engine
	log    *zap.Logger
	cfg    config.Config
	db     *gorm.DB

	procesoSvc       procesodomain.Service
	procesoRepo      procesodomain.Repository
	clasificacionSvc clasificaciondomain.Service
	cronogramaSvc    cronogramadomain.Service
	reciboSvc        recibo.Service
}

type ServerParams struct {
	fx.In

	Gin              *gin.Engine
	Log              *zap.Logger
	Cfg              config.Config
	DB               *gorm.DB
	ProcesoSvc       procesodomain.Service
	ProcesoRepo      procesodomain.Repository
	ClasificacionSvc clasificaciondomain.Service
	CronogramaSvc    cronogramadomain.Service
	ReciboSvc        recibo.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:           p.Gin,
		log:              p.Log.Named("server"),
		cfg:              p.Cfg,
		db:               p.DB,
		procesoSvc:       p.ProcesoSvc,
		procesoRepo:      p.ProcesoRepo,
		clasificacionSvc: p.ClasificacionSvc,
		cronogramaSvc:    p.CronogramaSvc,
		reciboSvc:        p.ReciboSvc,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")

	api.POST("/proceso/ejecutar", s.ejecutarProceso)
	api.GET("/proceso/logs", s.listLogsProceso)

	api.GET("/clasificacion", s.previewClasificacion)
	api.POST("/clasificacion/aplicar", s.aplicarClasificacion)

	api.GET("/cronograma/:anio/:digito", s.getCronograma)

	api.GET("/pagos/:id/recibo", s.descargarRecibo)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server escuchando", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server detenido", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
