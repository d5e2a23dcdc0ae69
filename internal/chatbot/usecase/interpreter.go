package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	authdomain "fundraise-backend/internal/auth/domain"
	"fundraise-backend/internal/crm/domain"
	"fundraise-backend/internal/crm/repository"
	crmusecase "fundraise-backend/internal/crm/usecase"
	mailusecase "fundraise-backend/internal/mail/usecase"
	"fundraise-backend/pkg/ai"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxListed = 10

var (
	sendEmailPattern = regexp.MustCompile(`(?i)send\s+email\s+to\s+([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})\s+(?:the\s+)?draft\s+(?:of\s+)?["']?([\p{L}\p{N}_]+)["']?`)
	searchPattern    = regexp.MustCompile(`(?i)show\s+(?:me\s+)?data\s+for\s*[-:]?\s*(.+)`)
	keywordPattern   = regexp.MustCompile(`['"]([^'"]+)['"]|([\p{L}\p{N}_]+)`)
)

var stopWords = map[string]bool{"and": true, "or": true, "for": true, "the": true}

// DraftSender is the part of the mailer the interpreter needs.
type DraftSender interface {
	SendDraft(ctx context.Context, investor *domain.Investor, draft *domain.EmailDraft, actor *authdomain.User) mailusecase.Outcome
}

// ChatbotUsecase interprets free-text chat commands
type ChatbotUsecase interface {
	// Process classifies message and runs the first matching command.
	// Errors are storage failures; user-facing problems come back as an ErrorResponse.
	Process(ctx context.Context, message string, actor *authdomain.User) (Response, error)
}

type command struct {
	name    string
	pattern *regexp.Regexp
	handle  func(ctx context.Context, match []string, actor *authdomain.User) (Response, error)
}

type interpreter struct {
	investorRepo      repository.InvestorRepository
	artifactRepo      repository.ArtifactRepository
	draftRepo         repository.DraftRepository
	communicationRepo repository.CommunicationRepository
	mailer            DraftSender
	completion        ai.CompletionService // nil when no AI backend is configured
	aiTimeout         time.Duration
	logger            *zap.Logger
	commands          []command
}

func NewChatbotUsecase(
	investorRepo repository.InvestorRepository,
	artifactRepo repository.ArtifactRepository,
	draftRepo repository.DraftRepository,
	communicationRepo repository.CommunicationRepository,
	mailer DraftSender,
	completion ai.CompletionService,
	aiTimeout time.Duration,
	logger *zap.Logger,
) ChatbotUsecase {
	i := &interpreter{
		investorRepo:      investorRepo,
		artifactRepo:      artifactRepo,
		draftRepo:         draftRepo,
		communicationRepo: communicationRepo,
		mailer:            mailer,
		completion:        completion,
		aiTimeout:         aiTimeout,
		logger:            logger.Named("chatbot"),
	}
	// Order matters: first match wins.
	i.commands = []command{
		{name: "send_email", pattern: sendEmailPattern, handle: i.handleSendEmail},
		{name: "search", pattern: searchPattern, handle: i.handleSearch},
	}
	return i
}

func (i *interpreter) Process(ctx context.Context, message string, actor *authdomain.User) (Response, error) {
	message = strings.TrimSpace(message)

	for _, cmd := range i.commands {
		if match := cmd.pattern.FindStringSubmatch(message); match != nil {
			i.logger.Debug("command matched", zap.String("command", cmd.name))
			return cmd.handle(ctx, match, actor)
		}
	}
	return i.handleGenericQuery(ctx, message)
}

func (i *interpreter) handleSendEmail(ctx context.Context, match []string, actor *authdomain.User) (Response, error) {
	email, draftName := match[1], match[2]

	draft, err := i.draftRepo.FindByName(draftName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up draft: %w", err)
	}
	if draft == nil {
		names, err := i.draftRepo.Names()
		if err != nil {
			return nil, fmt.Errorf("failed to list drafts: %w", err)
		}
		available := "No drafts available"
		if len(names) > 0 {
			available = strings.Join(names, ", ")
		}
		return &ErrorResponse{Message: fmt.Sprintf("❌ Draft '%s' not found. Available drafts: %s", draftName, available)}, nil
	}

	investor, created, err := i.investorRepo.GetOrCreateByEmail(email, domain.Investor{
		Name:      localPart(email),
		UpdatedBy: crmusecase.ActorName(actor),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get or create investor: %w", err)
	}

	investorStatus := "Found existing investor"
	if created {
		investorStatus = "Created new investor"
	}

	out := i.mailer.SendDraft(ctx, investor, draft, actor)
	if !out.Success {
		return &ErrorResponse{Message: "❌ Failed to send email: " + out.Detail}, nil
	}

	return &SuccessResponse{
		Message: fmt.Sprintf("✅ Email sent successfully!\n\n📧 To: %s\n📋 Draft: %s\n👤 %s: %s",
			email, draftName, investorStatus, investor.Name),
		Investor:        investor,
		Draft:           draft,
		InvestorCreated: created,
	}, nil
}

func (i *interpreter) handleSearch(ctx context.Context, match []string, actor *authdomain.User) (Response, error) {
	keywords := ExtractKeywords(match[1])
	if len(keywords) == 0 {
		return &ErrorResponse{Message: "❌ Please provide keywords to search for."}, nil
	}

	var investors []*domain.Investor
	seenInvestors := make(map[string]bool)
	for _, kw := range keywords {
		found, err := i.investorRepo.List(kw)
		if err != nil {
			return nil, fmt.Errorf("failed to search investors: %w", err)
		}
		for _, inv := range found {
			if !seenInvestors[inv.ID] {
				seenInvestors[inv.ID] = true
				investors = append(investors, inv)
			}
		}
	}

	var artifacts []*domain.Artifact
	seenArtifacts := make(map[string]bool)
	for _, kw := range keywords {
		found, err := i.artifactRepo.List(kw, "")
		if err != nil {
			return nil, fmt.Errorf("failed to search artifacts: %w", err)
		}
		for _, a := range found {
			if !seenArtifacts[a.ID] {
				seenArtifacts[a.ID] = true
				artifacts = append(artifacts, a)
			}
		}
	}

	return &SearchResultsResponse{
		Message:   searchSummary(keywords, investors, artifacts),
		Investors: investors,
		Artifacts: artifacts,
		Keywords:  keywords,
	}, nil
}

// ExtractKeywords returns quoted phrases verbatim and bare words otherwise,
// dropping blanks and the stop words and/or/for/the.
func ExtractKeywords(query string) []string {
	keywords := make([]string, 0)
	for _, m := range keywordPattern.FindAllStringSubmatch(query, -1) {
		kw := m[1]
		if kw == "" {
			kw = m[2]
		}
		kw = strings.TrimSpace(kw)
		if kw == "" || stopWords[strings.ToLower(kw)] {
			continue
		}
		keywords = append(keywords, kw)
	}
	return keywords
}

func searchSummary(keywords []string, investors []*domain.Investor, artifacts []*domain.Artifact) string {
	parts := []string{fmt.Sprintf("🔍 Search results for: %s\n", strings.Join(keywords, ", "))}

	if len(investors) > 0 {
		parts = append(parts, fmt.Sprintf("\n👥 **Investors (%d):**", len(investors)))
		for _, inv := range investors[:min(len(investors), maxListed)] {
			parts = append(parts, fmt.Sprintf("  • %s (%s) - ₹%s", inv.Name, inv.Email, FormatAmount(inv.Amount)))
		}
	} else {
		parts = append(parts, "\n👥 No investors found.")
	}

	if len(artifacts) > 0 {
		parts = append(parts, fmt.Sprintf("\n📎 **Artifacts (%d):**", len(artifacts)))
		for _, a := range artifacts[:min(len(artifacts), maxListed)] {
			parts = append(parts, fmt.Sprintf("  • %s (%s)", a.Name, a.Type))
		}
	} else {
		parts = append(parts, "\n📎 No artifacts found.")
	}

	return strings.Join(parts, "\n")
}

// FormatAmount renders money with thousands separators and two decimals.
func FormatAmount(amount decimal.Decimal) string {
	return humanize.FormatFloat("#,###.##", amount.Round(2).InexactFloat64())
}

func (i *interpreter) handleGenericQuery(ctx context.Context, message string) (Response, error) {
	if i.completion == nil {
		return i.helpResponse()
	}

	investors, artifacts, drafts, err := i.counts()
	if err != nil {
		return nil, err
	}
	sent, err := i.communicationRepo.CountByStatus(domain.CommunicationSuccess)
	if err != nil {
		return nil, fmt.Errorf("failed to count sent emails: %w", err)
	}

	prompt := fmt.Sprintf(`You are an AI assistant for a startup fundraising application.
Here's the current data context:
- Total Investors: %d
- Total Artifacts: %d
- Email Drafts: %d
- Emails Sent: %d

Available commands the user can use:
1. "Send email to <email> the draft of <draft_name>" - Sends an email draft to an investor
2. "Show me data for - '<keyword1>', '<keyword2>'" - Searches investors and artifacts

User's question: %s

Provide a helpful, concise response. If they're asking about functionality, guide them on how to use the app.
Keep responses brief and friendly.`, investors, artifacts, drafts, sent, message)

	if i.aiTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.aiTimeout)
		defer cancel()
	}

	text, err := i.completion.Complete(ctx, prompt)
	if err != nil {
		i.logger.Warn("AI completion failed, using help response", zap.Error(err))
		return i.helpResponse()
	}
	return &AIResponse{Message: "🤖 " + text}, nil
}

func (i *interpreter) helpResponse() (Response, error) {
	investors, artifacts, drafts, err := i.counts()
	if err != nil {
		return nil, err
	}
	return &HelpResponse{Message: fmt.Sprintf(`👋 I'm your fundraising assistant! Here's what I can do:

📧 **Send Email:**
   `+"`Send email to investor@email.com the draft of pitchdeck`"+`

🔍 **Search Data:**
   `+"`Show me data for - 'keyword1', 'keyword2'`"+`

📊 **Quick Stats:**
   - Investors: %d
   - Artifacts: %d
   - Email Drafts: %d

💡 Tip: Configure your Gemini API key for AI-powered responses!`, investors, artifacts, drafts)}, nil
}

func (i *interpreter) counts() (investors, artifacts, drafts int64, err error) {
	if investors, err = i.investorRepo.Count(); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count investors: %w", err)
	}
	if artifacts, err = i.artifactRepo.Count(); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count artifacts: %w", err)
	}
	if drafts, err = i.draftRepo.Count(); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count drafts: %w", err)
	}
	return investors, artifacts, drafts, nil
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}
