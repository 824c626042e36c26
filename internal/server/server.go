package server

import (
	"context"
	"net/http"

	accountdomain "github.com/atriumhq/atrium/internal/account/domain"
	boardmemberdomain "github.com/atriumhq/atrium/internal/boardmember/domain"
	companydomain "github.com/atriumhq/atrium/internal/company/domain"
	"github.com/atriumhq/atrium/internal/config"
	dealdomain "github.com/atriumhq/atrium/internal/deal/domain"
	employmentdomain "github.com/atriumhq/atrium/internal/employment/domain"
	investmentdomain "github.com/atriumhq/atrium/internal/investment/domain"
	investordomain "github.com/atriumhq/atrium/internal/investor/domain"
	metricdomain "github.com/atriumhq/atrium/internal/metric/domain"
	persondomain "github.com/atriumhq/atrium/internal/person/domain"
	portfoliodomain "github.com/atriumhq/atrium/internal/portfolio/domain"
	"github.com/atriumhq/atrium/internal/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module wires the HTTP server into the application lifecycle.
var Module = fx.Module("server",
	fx.Provide(New),
	fx.Invoke(Register),
)

type Params struct {
	fx.In

	Config       config.Config
	Log          *zap.Logger
	DB           *gorm.DB
	Metrics      *telemetry.HTTPMetrics
	Accounts     accountdomain.Service
	People       persondomain.Service
	Companies    companydomain.Service
	Employments  employmentdomain.Service
	BoardMembers boardmemberdomain.Service
	Investors    investordomain.Service
	Investments  investmentdomain.Service
	Metric       metricdomain.Service
	Deals        dealdomain.Service
	Portfolio    portfoliodomain.Service
}

type Server struct {
	cfg          config.Config
	log          *zap.Logger
	db           *gorm.DB
	engine       *gin.Engine
	accounts     accountdomain.Service
	people       persondomain.Service
	companies    companydomain.Service
	employments  employmentdomain.Service
	boardMembers boardmemberdomain.Service
	investors    investordomain.Service
	investments  investmentdomain.Service
	metrics      metricdomain.Service
	deals        dealdomain.Service
	portfolio    portfoliodomain.Service
}

func New(p Params) *Server {
	if p.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:          p.Config,
		log:          p.Log.Named("server"),
		db:           p.DB,
		accounts:     p.Accounts,
		people:       p.People,
		companies:    p.Companies,
		employments:  p.Employments,
		boardMembers: p.BoardMembers,
		investors:    p.Investors,
		investments:  p.Investments,
		metrics:      p.Metric,
		deals:        p.Deals,
		portfolio:    p.Portfolio,
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		telemetry.GinMiddleware(p.Metrics),
		ErrorHandlingMiddleware(s.log),
	)
	s.engine = engine
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.engine.Group("/v1", TenantMiddleware(s.cfg))

	v1.GET("/account", s.getAccount)
	v1.GET("/account/users", s.listAccountUsers)

	people := v1.Group("/people")
	{
		people.POST("", s.createPerson)
		people.GET("", s.listPeople)
		people.GET("/:id", s.getPerson)
		people.PATCH("/:id", s.updatePerson)
		people.DELETE("/:id", s.deletePerson)
		people.GET("/:id/experience", s.personExperience)
		people.GET("/:id/tags", s.listPersonTags)
		people.POST("/:id/tags", s.addPersonTag)
		people.DELETE("/:id/tags/:tag", s.removePersonTag)
	}

	companies := v1.Group("/companies")
	{
		companies.POST("", s.createCompany)
		companies.GET("", s.listCompanies)
		companies.GET("/:id", s.getCompany)
		companies.PATCH("/:id", s.updateCompany)
		companies.DELETE("/:id", s.deleteCompany)
		companies.GET("/:id/tags", s.listCompanyTags)
		companies.POST("/:id/tags", s.addCompanyTag)
		companies.DELETE("/:id/tags/:tag", s.removeCompanyTag)
		companies.GET("/:id/investments", s.listCompanyInvestments)
		companies.GET("/:id/metrics", s.listCompanyMetrics)
		companies.POST("/:id/metrics", s.ingestMetrics)
		companies.GET("/:id/team", s.companyTeam)
		companies.GET("/:id/board", s.companyBoard)
		companies.GET("/:id/card", s.companyCard)
	}

	employments := v1.Group("/employments")
	{
		employments.POST("", s.createEmployment)
		employments.PATCH("/:id", s.updateEmployment)
		employments.DELETE("/:id", s.deleteEmployment)
		employments.PUT("/current", s.setCurrentEmployment)
	}

	board := v1.Group("/board-members")
	{
		board.POST("", s.createBoardMember)
		board.PATCH("/:id", s.updateBoardMember)
		board.DELETE("/:id", s.deleteBoardMember)
	}

	investors := v1.Group("/investors")
	{
		investors.POST("", s.createInvestor)
		investors.GET("", s.listInvestors)
		investors.GET("/:id", s.getInvestor)
		investors.DELETE("/:id", s.deleteInvestor)
		investors.GET("/:id/portfolio", s.investorPortfolio)
	}

	investments := v1.Group("/investments")
	{
		investments.POST("", s.upsertInvestment)
		investments.GET("/:id", s.getInvestment)
		investments.DELETE("/:id", s.deleteInvestment)
		investments.POST("/:id/investors", s.addParticipant)
		investments.DELETE("/participants/:id", s.removeParticipant)
	}

	metrics := v1.Group("/metric-series")
	{
		metrics.DELETE("/:id", s.deleteMetric)
	}

	deals := v1.Group("/deals")
	{
		deals.POST("", s.createDeal)
		deals.GET("", s.listDeals)
		deals.GET("/:id", s.getDeal)
		deals.PATCH("/:id", s.updateDeal)
		deals.DELETE("/:id", s.deleteDeal)
	}

	if !s.cfg.IsProduction() {
		v1.POST("/test/cleanup", s.testCleanup)
	}
}

// Register starts the server when the application starts and shuts it down
// gracefully on stop.
func Register(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.log.Info("http server starting", zap.String("addr", s.cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
