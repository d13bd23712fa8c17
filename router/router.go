package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"virtualta/controllers"
	"virtualta/middleware"
	"virtualta/services"
)

type Deps struct {
	ServiceName string
	Version     string
	QA          *services.QAService
	Logger      *zap.Logger
}

func SetupRouter(dep Deps) *gin.Engine {
	logger := dep.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"*"},
		AllowHeaders:    []string{"*"},
	}))
	r.Use(middleware.RequestID(logger))

	qa := controllers.NewQAController(dep.QA, logger)
	r.POST("/", qa.AnswerQuestion)

	health := controllers.NewHealthController(dep.ServiceName, dep.Version, dep.QA.CorpusSize())
	r.GET("/health", health.HealthCheck)
	r.GET("/healthz", health.HealthCheck)

	return r
}
