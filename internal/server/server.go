package server

import (
	"context"
	"net/http"
	"time"

	"github.com/coopaguas/facturador/internal/config"
	"github.com/coopaguas/facturador/internal/customer"
	customerdomain "github.com/coopaguas/facturador/internal/customer/domain"
	"github.com/coopaguas/facturador/internal/invoice"
	invoicedomain "github.com/coopaguas/facturador/internal/invoice/domain"
	"github.com/coopaguas/facturador/internal/observability"
	obsmiddleware "github.com/coopaguas/facturador/internal/observability/logger"
	obsmetrics "github.com/coopaguas/facturador/internal/observability/metrics"
	obstracing "github.com/coopaguas/facturador/internal/observability/tracing"
	"github.com/coopaguas/facturador/internal/payment"
	paymentdomain "github.com/coopaguas/facturador/internal/payment/domain"
	"github.com/coopaguas/facturador/internal/zone"
	zonedomain "github.com/coopaguas/facturador/internal/zone/domain"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	zone.Module,
	customer.Module,
	invoice.Module,
	payment.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg))
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func corsMiddleware(cfg config.Config) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	return cors.New(corsCfg)
}

func registerGin(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(cfg, obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
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
	engine      *gin.Engine
	zoneSvc     zonedomain.Service
	customerSvc customerdomain.Service
	invoiceSvc  invoicedomain.Service
	paymentSvc  paymentdomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	ZoneSvc     zonedomain.Service
	CustomerSvc customerdomain.Service
	InvoiceSvc  invoicedomain.Service
	PaymentSvc  paymentdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		zoneSvc:     p.ZoneSvc,
		customerSvc: p.CustomerSvc,
		invoiceSvc:  p.InvoiceSvc,
		paymentSvc:  p.PaymentSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	zonas := api.Group("/zonas")
	zonas.GET("", s.ListZones)
	zonas.GET("/:id", s.GetZoneByID)

	clientes := api.Group("/clientes")
	clientes.GET("", s.ListCustomers)
	clientes.GET("/all", s.ListAllCustomers)
	// cleanup before /:id so gin does not treat it as an id.
	clientes.DELETE("/cleanup", s.CleanupCustomers)
	clientes.GET("/:id", s.GetCustomerByID)
	clientes.POST("", s.CreateCustomer)
	clientes.PUT("/:id", s.UpdateCustomer)
	clientes.DELETE("/:id", s.DeleteCustomer)
	clientes.PATCH("/:id/restore", s.RestoreCustomer)
	clientes.PATCH("/:id/deactivate", s.DeactivateCustomer)

	facturas := api.Group("/facturas")
	facturas.GET("", s.ListInvoices)
	facturas.GET("/cliente/:id", s.ListInvoicesByCustomer)
	facturas.GET("/:id", s.GetInvoiceByID)
	facturas.POST("", s.CreateInvoice)
	facturas.PATCH("/:id/pagar", s.MarkInvoicePaid)

	pagos := api.Group("/pagos")
	pagos.GET("", s.ListPayments)
	pagos.POST("", s.RegisterPayment)
}
