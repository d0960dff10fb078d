package api

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/festivefusion/festival-api/docs"
	v1 "github.com/festivefusion/festival-api/internal/api/handler/v1"
	"github.com/festivefusion/festival-api/internal/api/middleware"
	"github.com/festivefusion/festival-api/internal/config"
	"github.com/festivefusion/festival-api/internal/domain"
	"github.com/festivefusion/festival-api/internal/repository"
	"github.com/festivefusion/festival-api/internal/repository/dao"
	"github.com/festivefusion/festival-api/internal/repository/dao/mongodao"
	"github.com/festivefusion/festival-api/internal/service"
)

// DAOs is one storage backend. Every repository is built on top of it.
type DAOs struct {
	Festivals repository.FestivalDAO
	Users     repository.UserDAO
	Visits    repository.VisitDAO
}

func PostgresDAOs(db *gorm.DB) DAOs {
	return DAOs{
		Festivals: dao.NewFestivalDAO(db),
		Users:     dao.NewUserDAO(db),
		Visits:    dao.NewVisitDAO(db),
	}
}

func MongoDAOs(db *mongo.Database) DAOs {
	return DAOs{
		Festivals: mongodao.NewFestivalDAO(db),
		Users:     mongodao.NewUserDAO(db),
		Visits:    mongodao.NewVisitDAO(db),
	}
}

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, daos DAOs, tokens service.TokenStore) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	festivalRepo := repository.NewFestivalRepository(daos.Festivals)
	visitRepo := repository.NewVisitRepository(daos.Visits, festivalRepo)
	userRepo := repository.NewUserRepository(daos.Users)

	authSvc := service.NewAuthService(userRepo, tokens, s.Config.API, s.Config.Auth)
	userSvc := service.NewUserService(userRepo, festivalRepo)

	authHandler := v1.NewAuthHandler(authSvc, userSvc)
	userHandler := v1.NewUserHandler(userSvc)
	festivalHandler := v1.NewFestivalHandler(service.NewFestivalService(festivalRepo, visitRepo))
	visitHandler := v1.NewVisitHandler(service.NewVisitService(visitRepo, festivalRepo))

	s.MountHandlers(middleware.NewAuthenticator(authSvc), authHandler, userHandler, festivalHandler, visitHandler)

	return s
}

// HTTPServer wraps the router with the configured timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.Config.API.Port,
		Handler:      s.Router,
		ReadTimeout:  s.Config.API.ReadTimeout,
		WriteTimeout: s.Config.API.WriteTimeout,
		IdleTimeout:  s.Config.API.IdleTimeout,
	}
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.LogRequests())
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authenticator *middleware.Authenticator,
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	festivalHandler *v1.FestivalHandler,
	visitHandler *v1.VisitHandler,
) {
	const basePath = "/api"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/register", authHandler.HandleRegister)
		public.POST("/auth/login", authHandler.HandleLogin)

		public.GET("/festivals", festivalHandler.HandleListFestivals)
		public.GET("/festivals/hidden-gems", festivalHandler.HandleListHiddenGems)
		public.GET("/festivals/upcoming", festivalHandler.HandleListUpcoming)
		public.GET("/festivals/:id", festivalHandler.HandleGetFestival)
	}

	authed := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		authed.POST("/auth/logout", authHandler.HandleLogout)
		authed.GET("/auth/me", authHandler.HandleMe)

		authed.GET("/planned-visits/user", visitHandler.HandleListUserVisits)
		authed.POST("/planned-visits", visitHandler.HandleCreateVisit)
		authed.PUT("/planned-visits/:id", visitHandler.HandleUpdateVisit)
		authed.DELETE("/planned-visits/:id", visitHandler.HandleDeleteVisit)

		authed.PUT("/users/me/preferences", userHandler.HandleUpdatePreferences)
		authed.GET("/users/me/saved-festivals", userHandler.HandleListSavedFestivals)
		authed.POST("/users/me/saved-festivals/:festivalId", userHandler.HandleSaveFestival)
		authed.DELETE("/users/me/saved-festivals/:festivalId", userHandler.HandleUnsaveFestival)
	}

	admin := s.Router.Group(basePath, authenticator.VerifyJWT(), authenticator.RequireRole(domain.RoleAdmin))
	{
		admin.POST("/festivals", festivalHandler.HandleCreateFestival)
		admin.PUT("/festivals/:id", festivalHandler.HandleUpdateFestival)
		admin.DELETE("/festivals/:id", festivalHandler.HandleDeleteFestival)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Festive Fusion API"
	docs.SwaggerInfo.Description = "Discover Indian festivals and plan visits to them."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
