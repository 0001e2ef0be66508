// Package server exposes the HTTP surface: auth, admin CRUD and the job
// lifecycle endpoints.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/framehaus/studioflow/internal/audit/domain"
	authdomain "github.com/framehaus/studioflow/internal/auth/domain"
	"github.com/framehaus/studioflow/internal/auth/session"
	"github.com/framehaus/studioflow/internal/authorization"
	catalogdomain "github.com/framehaus/studioflow/internal/catalog/domain"
	"github.com/framehaus/studioflow/internal/config"
	jobdomain "github.com/framehaus/studioflow/internal/job/domain"
	"github.com/framehaus/studioflow/internal/observability"
	"github.com/framehaus/studioflow/internal/ratelimit"
	staffdomain "github.com/framehaus/studioflow/internal/staff/domain"
	ratedomain "github.com/framehaus/studioflow/internal/staffrate/domain"
	vendordomain "github.com/framehaus/studioflow/internal/vendors/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	log          *zap.Logger
	genID        *snowflake.Node
	sessions     *session.Manager
	authsvc      authdomain.Service
	authzSvc     authorization.Service
	auditSvc     auditdomain.Service
	catalogSvc   catalogdomain.ServiceAPI
	vendorSvc    vendordomain.Service
	staffSvc     staffdomain.Service
	rateSvc      ratedomain.Service
	jobSvc       jobdomain.Service
	loginLimiter *ratelimit.LoginLimiter
	metrics      *observability.Metrics
}

type ServerParams struct {
	fx.In

	Engine       *gin.Engine
	Cfg          config.Config
	Log          *zap.Logger
	GenID        *snowflake.Node
	Sessions     *session.Manager
	AuthSvc      authdomain.Service
	AuthzSvc     authorization.Service
	AuditSvc     auditdomain.Service
	CatalogSvc   catalogdomain.ServiceAPI
	VendorSvc    vendordomain.Service
	StaffSvc     staffdomain.Service
	RateSvc      ratedomain.Service
	JobSvc       jobdomain.Service
	LoginLimiter *ratelimit.LoginLimiter `optional:"true"`
	Metrics      *observability.Metrics  `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:       p.Engine,
		cfg:          p.Cfg,
		log:          p.Log.Named("server"),
		genID:        p.GenID,
		sessions:     p.Sessions,
		authsvc:      p.AuthSvc,
		authzSvc:     p.AuthzSvc,
		auditSvc:     p.AuditSvc,
		catalogSvc:   p.CatalogSvc,
		vendorSvc:    p.VendorSvc,
		staffSvc:     p.StaffSvc,
		rateSvc:      p.RateSvc,
		jobSvc:       p.JobSvc,
		loginLimiter: p.LoginLimiter,
		metrics:      p.Metrics,
	}
	s.registerRoutes()
	return s
}

func NewEngine(reg *prometheus.Registry, httpMetrics *observability.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.GinTracing())
	r.Use(httpMetrics.Middleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return r
}

func (s *Server) registerRoutes() {
	auth := s.engine.Group("/auth")
	{
		auth.POST("/login", s.handleLogin)
		auth.POST("/logout", s.handleLogout)

		authed := auth.Group("", s.SessionAuthRequired())
		authed.GET("/me", s.handleMe)
		authed.POST("/change-password", s.handleChangePassword)
		authed.GET("/navigation", s.handleNavigation)
	}

	admin := s.engine.Group("/admin", s.SessionAuthRequired())
	{
		services := admin.Group("/services")
		services.GET("", s.authorize(authorization.ObjectService, authorization.ActionView), s.handleListServices)
		services.GET("/:id", s.authorize(authorization.ObjectService, authorization.ActionView), s.handleGetService)
		services.POST("", s.authorize(authorization.ObjectService, authorization.ActionCreate), s.handleCreateService)
		services.PATCH("/:id", s.authorize(authorization.ObjectService, authorization.ActionUpdate), s.handleUpdateService)
		services.DELETE("/:id", s.authorize(authorization.ObjectService, authorization.ActionDelete), s.handleDeleteService)

		vendors := admin.Group("/vendors")
		vendors.GET("", s.authorize(authorization.ObjectVendor, authorization.ActionView), s.handleListVendors)
		vendors.GET("/:id", s.authorize(authorization.ObjectVendor, authorization.ActionView), s.handleGetVendor)
		vendors.POST("", s.authorize(authorization.ObjectVendor, authorization.ActionCreate), s.handleCreateVendor)
		vendors.PATCH("/:id", s.authorize(authorization.ObjectVendor, authorization.ActionUpdate), s.handleUpdateVendor)
		vendors.DELETE("/:id", s.authorize(authorization.ObjectVendor, authorization.ActionDelete), s.handleDeleteVendor)

		staff := admin.Group("/staff", s.RequireRole(staffdomain.RoleAdmin))
		staff.GET("", s.authorize(authorization.ObjectStaff, authorization.ActionView), s.handleListStaff)
		staff.GET("/:id", s.authorize(authorization.ObjectStaff, authorization.ActionView), s.handleGetStaff)
		staff.POST("", s.authorize(authorization.ObjectStaff, authorization.ActionCreate), s.handleCreateStaff)
		staff.PATCH("/:id", s.authorize(authorization.ObjectStaff, authorization.ActionUpdate), s.handleUpdateStaff)
		staff.DELETE("/:id", s.authorize(authorization.ObjectStaff, authorization.ActionDelete), s.handleDeleteStaff)

		rates := admin.Group("/staff-rates")
		rates.GET("/eligible", s.authorize(authorization.ObjectStaffRate, authorization.ActionView), s.handleEligibleStaff)
		rates.GET("/staff/:staffId", s.authorize(authorization.ObjectStaffRate, authorization.ActionView), s.handleListStaffRates)
		rates.POST("", s.authorize(authorization.ObjectStaffRate, authorization.ActionCreate), s.handleCreateStaffRate)
		rates.PATCH("/:id", s.authorize(authorization.ObjectStaffRate, authorization.ActionUpdate), s.handleUpdateStaffRate)
		rates.DELETE("/:id", s.authorize(authorization.ObjectStaffRate, authorization.ActionDelete), s.handleDeleteStaffRate)

		jobs := admin.Group("/jobs")
		jobs.GET("", s.authorize(authorization.ObjectJob, authorization.ActionView), s.handleListJobs)
		jobs.GET("/:id", s.authorize(authorization.ObjectJob, authorization.ActionView), s.handleGetJob)
		jobs.POST("", s.authorize(authorization.ObjectJob, authorization.ActionCreate), s.handleCreateJob)
		jobs.PATCH("/:id", s.authorize(authorization.ObjectJob, authorization.ActionUpdate), s.handleUpdateJob)
		jobs.DELETE("/:id", s.authorize(authorization.ObjectJob, authorization.ActionDelete), s.handleDeleteJob)
		jobs.POST("/:id/status", s.authorize(authorization.ObjectJob, authorization.ActionJobTransition), s.handleTransitionJob)
	}
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, engine *gin.Engine, _ *Server) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
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

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(run),
)
