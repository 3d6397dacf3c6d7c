package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"

	"novelforge-server/internal/delivery/http/middleware"
)

// NewRouter собирает маршрутизатор сервера: middleware, метрики и все
// маршруты API под базовым путем.
func NewRouter(handler *Handler, basePath string, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.ZapLogger(handler.logger))

	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	p := ginprometheus.NewPrometheus("novelforge")
	p.Use(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group(basePath)
	handler.RegisterRoutes(api)
	return router
}

// RegisterRoutes регистрирует маршруты API в переданной группе.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	projects := api.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
		projects.GET("/:id", h.getProject)
		projects.PUT("/:id", h.updateProject)
		projects.DELETE("/:id", h.deleteProject)
	}

	outlineNodes := api.Group("/outline-nodes")
	{
		outlineNodes.POST("", h.createOutlineNode)
		outlineNodes.GET("", h.listOutlineNodes)
		outlineNodes.GET("/project/:project_id", h.getOutlineTree)
		outlineNodes.GET("/:id", h.getOutlineNode)
		outlineNodes.PUT("/:id", h.updateOutlineNode)
		outlineNodes.DELETE("/:id", h.deleteOutlineNode)
	}

	characters := api.Group("/characters")
	{
		characters.POST("", h.createCharacter)
		characters.GET("", h.listCharacters)
		characters.GET("/:id", h.getCharacter)
		characters.PUT("/:id", h.updateCharacter)
		characters.DELETE("/:id", h.deleteCharacter)
	}

	conversations := api.Group("/conversations")
	{
		conversations.POST("", h.createConversation)
		conversations.GET("", h.listConversations)
		conversations.GET("/:id", h.getConversation)
		conversations.PUT("/:id", h.updateConversation)
		conversations.DELETE("/:id", h.deleteConversation)
	}

	settings := api.Group("/settings")
	{
		worldviews := settings.Group("/worldviews")
		{
			worldviews.POST("", h.createWorldview)
			worldviews.GET("", h.listWorldviews)
			worldviews.GET("/:id", h.getWorldview)
			worldviews.PUT("/:id", h.updateWorldview)
			worldviews.DELETE("/:id", h.deleteWorldview)
		}

		writingStyles := settings.Group("/writing-styles")
		{
			writingStyles.POST("", h.createWritingStyle)
			writingStyles.GET("", h.listWritingStyles)
			writingStyles.GET("/:id", h.getWritingStyle)
			writingStyles.PUT("/:id", h.updateWritingStyle)
			writingStyles.DELETE("/:id", h.deleteWritingStyle)
		}

		promptTemplates := settings.Group("/prompt-templates")
		{
			promptTemplates.POST("", h.createPromptTemplate)
			promptTemplates.GET("", h.listPromptTemplates)
			promptTemplates.GET("/:id", h.getPromptTemplate)
			promptTemplates.PUT("/:id", h.updatePromptTemplate)
			promptTemplates.DELETE("/:id", h.deletePromptTemplate)
		}

		aiModels := settings.Group("/ai-models")
		{
			aiModels.POST("", h.createAIModel)
			aiModels.GET("", h.listAIModels)
			aiModels.GET("/:id", h.getAIModel)
			aiModels.PUT("/:id", h.updateAIModel)
			aiModels.DELETE("/:id", h.deleteAIModel)
			aiModels.POST("/:id/test-connection", h.testAIModelConnection)
		}

		generatedOutlines := settings.Group("/generated-outlines")
		{
			generatedOutlines.POST("", h.createGeneratedOutline)
			generatedOutlines.GET("/project/:project_id", h.listGeneratedOutlines)
			generatedOutlines.GET("/:id", h.getGeneratedOutline)
			generatedOutlines.DELETE("/:id", h.deleteGeneratedOutline)
		}

		promptPresets := settings.Group("/prompt-presets")
		{
			promptPresets.POST("", h.createPromptPreset)
			promptPresets.GET("", h.listPromptPresets)
			promptPresets.GET("/:id", h.getPromptPreset)
			promptPresets.PUT("/:id", h.updatePromptPreset)
			promptPresets.DELETE("/:id", h.deletePromptPreset)
		}
	}

	ai := api.Group("/ai")
	{
		ai.POST("/get-initial-prompt", h.getInitialPrompt)
		ai.POST("/generate-outline-stream", h.generateOutlineStream)
		ai.POST("/generate-outline", h.generateOutline)
		ai.POST("/chat-stream", h.chatStream)
	}
}
