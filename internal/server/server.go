package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/veriscan/casedesk/internal/config"
	escalationdomain "github.com/veriscan/casedesk/internal/escalation/domain"
	obslogger "github.com/veriscan/casedesk/internal/observability/logger"
	obsmetrics "github.com/veriscan/casedesk/internal/observability/metrics"
	obstracing "github.com/veriscan/casedesk/internal/observability/tracing"
	submissiondomain "github.com/veriscan/casedesk/internal/submission/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
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

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	genID         *snowflake.Node
	submissionSvc submissiondomain.Service
	escalationSvc escalationdomain.Service
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	GenID         *snowflake.Node
	SubmissionSvc submissiondomain.Service
	EscalationSvc escalationdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		genID:         p.GenID,
		submissionSvc: p.SubmissionSvc,
		escalationSvc: p.EscalationSvc,
	}

	svc.registerAPIRoutes()
	svc.registerInternalRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1", s.OrgContext())

	// Public intake: reporters are anonymous, no reviewer identity.
	v1.POST("/submissions", s.CreateSubmission)

	cases := v1.Group("/submissions", s.ReviewerContext())
	{
		cases.GET("", s.ListSubmissions)
		cases.GET("/:id", s.GetSubmissionByID)
		cases.POST("/:id/review", s.SaveReview)
		cases.POST("/:id/close", s.CloseCase)
		cases.POST("/:id/actions", s.LogAction)
		cases.GET("/:id/reviews", s.ListCaseReviews)
		cases.GET("/:id/actions", s.ListCaseActions)
	}
}

func (s *Server) registerInternalRoutes() {
	internal := s.engine.Group("/internal", s.CronSecret())

	internal.POST("/escalations/run", s.RunEscalations)
}
