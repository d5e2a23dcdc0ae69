package usecase

import "fundraise-backend/internal/crm/domain"

// Kind tags a chatbot response for the client.
type Kind string

const (
	KindSuccess       Kind = "success"
	KindError         Kind = "error"
	KindSearchResults Kind = "search_results"
	KindAIResponse    Kind = "ai_response"
	KindHelp          Kind = "help"
)

// Response is one of the *Response types in this package.
type Response interface {
	Kind() Kind
	Text() string
}

// SuccessResponse reports a draft sent through the send-email command.
type SuccessResponse struct {
	Message         string
	Investor        *domain.Investor
	Draft           *domain.EmailDraft
	InvestorCreated bool
}

func (r *SuccessResponse) Kind() Kind   { return KindSuccess }
func (r *SuccessResponse) Text() string { return r.Message }

type ErrorResponse struct {
	Message string
}

func (r *ErrorResponse) Kind() Kind   { return KindError }
func (r *ErrorResponse) Text() string { return r.Message }

// SearchResultsResponse carries every match; Message lists at most ten of each.
type SearchResultsResponse struct {
	Message   string
	Investors []*domain.Investor
	Artifacts []*domain.Artifact
	Keywords  []string
}

func (r *SearchResultsResponse) Kind() Kind   { return KindSearchResults }
func (r *SearchResultsResponse) Text() string { return r.Message }

type AIResponse struct {
	Message string
}

func (r *AIResponse) Kind() Kind   { return KindAIResponse }
func (r *AIResponse) Text() string { return r.Message }

type HelpResponse struct {
	Message string
}

func (r *HelpResponse) Kind() Kind   { return KindHelp }
func (r *HelpResponse) Text() string { return r.Message }
