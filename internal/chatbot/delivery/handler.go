package delivery

import (
	"net/http"
	"strings"

	authdelivery "fundraise-backend/internal/auth/delivery"
	"fundraise-backend/internal/chatbot/usecase"
	"fundraise-backend/internal/crm/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the wire form of an interpreter response.
type ChatResponse struct {
	Type    usecase.Kind `json:"type"`
	Message string       `json:"message"`
	Data    *ChatData    `json:"data,omitempty"`
}

type ChatData struct {
	Investors []InvestorView `json:"investors,omitempty"`
	Artifacts []ArtifactView `json:"artifacts,omitempty"`
	Keywords  []string       `json:"keywords,omitempty"`
	Investor  *InvestorView  `json:"investor,omitempty"`
	Draft     *DraftView     `json:"draft,omitempty"`
}

type InvestorView struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Amount float64 `json:"amount"`
}

type ArtifactView struct {
	ID   string              `json:"id"`
	Name string              `json:"name"`
	Type domain.ArtifactType `json:"type"`
}

type DraftView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
}

// NewChatResponse flattens resp for JSON output.
func NewChatResponse(resp usecase.Response) ChatResponse {
	out := ChatResponse{Type: resp.Kind(), Message: resp.Text()}

	switch r := resp.(type) {
	case *usecase.SearchResultsResponse:
		data := &ChatData{
			Investors: make([]InvestorView, 0, len(r.Investors)),
			Artifacts: make([]ArtifactView, 0, len(r.Artifacts)),
			Keywords:  r.Keywords,
		}
		for _, inv := range r.Investors {
			data.Investors = append(data.Investors, investorView(inv))
		}
		for _, a := range r.Artifacts {
			data.Artifacts = append(data.Artifacts, ArtifactView{ID: a.ID, Name: a.Name, Type: a.Type})
		}
		out.Data = data
	case *usecase.SuccessResponse:
		data := &ChatData{}
		if r.Investor != nil {
			v := investorView(r.Investor)
			data.Investor = &v
		}
		if r.Draft != nil {
			data.Draft = &DraftView{ID: r.Draft.ID, Name: r.Draft.Name, Subject: r.Draft.Subject}
		}
		out.Data = data
	}
	return out
}

func investorView(inv *domain.Investor) InvestorView {
	return InvestorView{ID: inv.ID, Name: inv.Name, Email: inv.Email, Amount: inv.Amount.InexactFloat64()}
}

type ChatbotHandler struct {
	chatbotUsecase usecase.ChatbotUsecase
	logger         *zap.Logger
}

func NewChatbotHandler(chatbotUsecase usecase.ChatbotUsecase, logger *zap.Logger) *ChatbotHandler {
	return &ChatbotHandler{chatbotUsecase: chatbotUsecase, logger: logger.Named("chatbot_handler")}
}

const internalErrorMessage = "Something went wrong, please try again."

// Chat runs one message through the interpreter. Input problems are reported
// as error-typed bodies with status 200 so the chat widget can show them.
// POST /api/chatbot
func (h *ChatbotHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, ChatResponse{Type: usecase.KindError, Message: "Invalid request format."})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusOK, ChatResponse{Type: usecase.KindError, Message: "Please enter a message."})
		return
	}

	resp, err := h.chatbotUsecase.Process(c.Request.Context(), message, authdelivery.CurrentUser(c))
	if err != nil {
		h.logger.Error("chat message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ChatResponse{Type: usecase.KindError, Message: internalErrorMessage})
		return
	}

	c.JSON(http.StatusOK, NewChatResponse(resp))
}

// MethodNotAllowed answers every non-POST request on the chatbot route
func (h *ChatbotHandler) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, ChatResponse{Type: usecase.KindError, Message: "Method not allowed"})
}

// Register mounts the chatbot route on rg.
func (h *ChatbotHandler) Register(rg gin.IRoutes) {
	rg.POST("/chatbot", h.Chat)
	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		rg.Handle(method, "/chatbot", h.MethodNotAllowed)
	}
}
