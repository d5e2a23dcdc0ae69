package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	authDelivery "fundraise-backend/internal/auth/delivery"
	authRepo "fundraise-backend/internal/auth/repository"
	authUsecase "fundraise-backend/internal/auth/usecase"
	chatbotDelivery "fundraise-backend/internal/chatbot/delivery"
	chatbotUsecase "fundraise-backend/internal/chatbot/usecase"
	crmDelivery "fundraise-backend/internal/crm/delivery"
	crmRepo "fundraise-backend/internal/crm/repository"
	crmUsecase "fundraise-backend/internal/crm/usecase"
	mailDelivery "fundraise-backend/internal/mail/delivery"
	mailUsecase "fundraise-backend/internal/mail/usecase"
	"fundraise-backend/pkg/ai"
	"fundraise-backend/pkg/config"
	"fundraise-backend/pkg/mailer"
	"fundraise-backend/pkg/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	logger   *zap.Logger
	settings *RuntimeSettings

	authUsecase    authUsecase.AuthUsecase
	chatbotUsecase chatbotUsecase.ChatbotUsecase

	authHandler      *authDelivery.AuthHandler
	investorHandler  *crmDelivery.InvestorHandler
	artifactHandler  *crmDelivery.ArtifactHandler
	draftHandler     *crmDelivery.DraftHandler
	responseHandler  *crmDelivery.ResponseHandler
	dashboardHandler *crmDelivery.DashboardHandler
	mailHandler      *mailDelivery.MailHandler
	chatbotHandler   *chatbotDelivery.ChatbotHandler
	settingsHandler  *SettingsHandler
}

// NewHandler wires repositories, usecases and HTTP handlers on top of db.
// A missing AI configuration is not fatal; the chatbot then answers
// free-form questions with its help text.
func NewHandler(ctx context.Context, db *gorm.DB, cfg *config.Config, logger *zap.Logger) (*Handler, error) {
	files, err := storage.NewFileStorage(cfg.MediaRoot)
	if err != nil {
		return nil, err
	}

	transport, err := mailer.NewTransport(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mail transport: %w", err)
	}

	settings := NewRuntimeSettings(cfg.OllamaBaseURL, cfg.OllamaModel)
	completion, err := ai.NewCompletionService(ctx, ai.Config{
		Provider:      ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey:  cfg.GeminiApiKey,
		GeminiModel:   cfg.GeminiModel,
		OllamaBaseURL: settings.OllamaBaseURL,
		OllamaModel:   settings.OllamaModel,
	}, logger)
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		logger.Warn("AI completion disabled", zap.Error(err))
		completion = nil
	case err != nil:
		return nil, fmt.Errorf("failed to initialize AI service: %w", err)
	default:
		logger.Info("AI service initialized", zap.String("provider", cfg.AIProvider))
	}

	// Repositories
	userRepository := authRepo.NewUserRepository(db)
	investorRepository := crmRepo.NewInvestorRepository(db)
	artifactRepository := crmRepo.NewArtifactRepository(db)
	draftRepository := crmRepo.NewDraftRepository(db)
	communicationRepository := crmRepo.NewCommunicationRepository(db)
	responseRepository := crmRepo.NewResponseRepository(db)

	// Usecases
	authUc := authUsecase.NewAuthUsecase(userRepository, cfg)
	investorUc := crmUsecase.NewInvestorUsecase(investorRepository, communicationRepository, responseRepository)
	artifactUc := crmUsecase.NewArtifactUsecase(artifactRepository, files, logger)
	draftUc := crmUsecase.NewDraftUsecase(draftRepository, artifactRepository)
	responseUc := crmUsecase.NewResponseUsecase(responseRepository, communicationRepository)
	dashboardUc := crmUsecase.NewDashboardUsecase(investorRepository, artifactRepository, draftRepository, communicationRepository, responseRepository)
	mailUc := mailUsecase.NewMailUsecase(transport, files, investorRepository, draftRepository, artifactRepository, communicationRepository, cfg.DefaultFromEmail, logger)
	chatbotUc := chatbotUsecase.NewChatbotUsecase(
		investorRepository, artifactRepository, draftRepository, communicationRepository,
		mailUc, completion, cfg.AITimeout, logger,
	)

	return &Handler{
		logger:   logger,
		settings: settings,

		authUsecase:    authUc,
		chatbotUsecase: chatbotUc,

		authHandler:      authDelivery.NewAuthHandler(authUc),
		investorHandler:  crmDelivery.NewInvestorHandler(investorUc),
		artifactHandler:  crmDelivery.NewArtifactHandler(artifactUc, cfg.MaxUploadBytes),
		draftHandler:     crmDelivery.NewDraftHandler(draftUc),
		responseHandler:  crmDelivery.NewResponseHandler(responseUc),
		dashboardHandler: crmDelivery.NewDashboardHandler(dashboardUc),
		mailHandler:      mailDelivery.NewMailHandler(mailUc),
		chatbotHandler:   chatbotDelivery.NewChatbotHandler(chatbotUc, logger),
		settingsHandler:  NewSettingsHandler(settings, logger),
	}, nil
}

// Chatbot exposes the interpreter for the command line.
func (h *Handler) Chatbot() chatbotUsecase.ChatbotUsecase {
	return h.chatbotUsecase
}

// Router builds the gin engine with CORS and every route mounted.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h)
	return r
}

func (h *Handler) Start(addr string) error {
	h.logger.Info("server starting", zap.String("addr", addr))
	return h.Router().Run(addr)
}
