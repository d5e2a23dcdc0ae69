package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	authdomain "fundraise-backend/internal/auth/domain"
	"fundraise-backend/internal/crm/domain"
	"fundraise-backend/internal/crm/repository"
	mailusecase "fundraise-backend/internal/mail/usecase"
	"fundraise-backend/pkg/database"
	"fundraise-backend/pkg/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type recordingTransport struct {
	messages []*gomail.Message
	err      error
}

func (r *recordingTransport) Send(ctx context.Context, msg *gomail.Message) error {
	r.messages = append(r.messages, msg)
	return r.err
}

type stubAI struct {
	reply   string
	err     error
	prompts []string
}

func (s *stubAI) Complete(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

type env struct {
	bot       ChatbotUsecase
	transport *recordingTransport
	investors repository.InvestorRepository
	artifacts repository.ArtifactRepository
	drafts    repository.DraftRepository
	logs      repository.CommunicationRepository
	user      *authdomain.User
}

func newEnv(t *testing.T, completion *stubAI) *env {
	t.Helper()
	db, err := database.NewSQLiteMemory(uuid.New().String())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	user := &authdomain.User{ID: uuid.New().String(), Username: "alice"}
	require.NoError(t, db.Create(user).Error)

	files, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	e := &env{
		transport: &recordingTransport{},
		investors: repository.NewInvestorRepository(db),
		artifacts: repository.NewArtifactRepository(db),
		drafts:    repository.NewDraftRepository(db),
		logs:      repository.NewCommunicationRepository(db),
		user:      user,
	}
	mailer := mailusecase.NewMailUsecase(e.transport, files, e.investors, e.drafts, e.artifacts, e.logs, "founder@startup.io", zap.NewNop())

	var svc ChatbotUsecase
	if completion != nil {
		svc = NewChatbotUsecase(e.investors, e.artifacts, e.drafts, e.logs, mailer, completion, 0, zap.NewNop())
	} else {
		svc = NewChatbotUsecase(e.investors, e.artifacts, e.drafts, e.logs, mailer, nil, 0, zap.NewNop())
	}
	e.bot = svc
	return e
}

func (e *env) process(t *testing.T, message string) Response {
	t.Helper()
	resp, err := e.bot.Process(context.Background(), message, e.user)
	require.NoError(t, err)
	require.NotNil(t, resp)
	return resp
}

func (e *env) addDraft(t *testing.T, name, body string) *domain.EmailDraft {
	t.Helper()
	d := &domain.EmailDraft{Name: name, Subject: "About " + name, Body: body}
	require.NoError(t, e.drafts.Create(d))
	return d
}

func (e *env) addInvestor(t *testing.T, name, email, labels string, amount int64) *domain.Investor {
	t.Helper()
	inv := &domain.Investor{Name: name, Email: email, Labels: labels, Amount: decimal.NewFromInt(amount)}
	require.NoError(t, e.investors.Create(inv))
	return inv
}

func (e *env) addArtifact(t *testing.T, name string, typ domain.ArtifactType, labels, description string) *domain.Artifact {
	t.Helper()
	a := &domain.Artifact{Name: name, Type: typ, Labels: labels, Description: description}
	require.NoError(t, e.artifacts.Create(a))
	return a
}

func countByStatus(t *testing.T, e *env, status domain.CommunicationStatus) int64 {
	t.Helper()
	n, err := e.logs.CountByStatus(status)
	require.NoError(t, err)
	return n
}

func TestSendEmail_NewInvestorScenario(t *testing.T) {
	e := newEnv(t, nil)
	draft := e.addDraft(t, "pitchdeck", "Please find our deck.")

	resp := e.process(t, "Send email to jane@x.com the draft of pitchdeck")
	require.Equal(t, KindSuccess, resp.Kind())

	success := resp.(*SuccessResponse)
	assert.True(t, success.InvestorCreated)
	assert.Equal(t, "jane", success.Investor.Name)
	assert.Equal(t, "alice", success.Investor.UpdatedBy)
	assert.Equal(t, draft.ID, success.Draft.ID)
	assert.Equal(t,
		"✅ Email sent successfully!\n\n📧 To: jane@x.com\n📋 Draft: pitchdeck\n👤 Created new investor: jane",
		resp.Text())

	count, err := e.investors.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	logs, err := e.logs.List(0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.CommunicationSuccess, logs[0].Status)
	assert.Equal(t, success.Investor.ID, logs[0].InvestorID)
	require.NotNil(t, logs[0].DraftID)
	assert.Equal(t, draft.ID, *logs[0].DraftID)

	require.Len(t, e.transport.messages, 1)
	assert.Equal(t, []string{"jane@x.com"}, e.transport.messages[0].GetHeader("To"))
}

func TestSendEmail_ExistingInvestorNotDuplicated(t *testing.T) {
	e := newEnv(t, nil)
	e.addDraft(t, "pitchdeck", "Hi")
	e.addInvestor(t, "Jane Doe", "jane@x.com", "", 0)

	for n := 0; n < 2; n++ {
		resp := e.process(t, "send email to jane@x.com draft pitchdeck")
		require.Equal(t, KindSuccess, resp.Kind())
		assert.Contains(t, resp.Text(), "👤 Found existing investor: Jane Doe")
		assert.False(t, resp.(*SuccessResponse).InvestorCreated)
	}

	count, err := e.investors.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, int64(2), countByStatus(t, e, domain.CommunicationSuccess))
}

func TestSendEmail_DraftNameVariants(t *testing.T) {
	e := newEnv(t, nil)
	e.addDraft(t, "PitchDeck", "Hi")

	for _, msg := range []string{
		"send email to a@b.com the draft of pitchdeck",
		"SEND EMAIL TO a@b.com DRAFT 'pitchdeck'",
		`please send email to a@b.com draft of "PITCHDECK" today`,
	} {
		t.Run(msg, func(t *testing.T) {
			assert.Equal(t, KindSuccess, e.process(t, msg).Kind())
		})
	}
}

func TestSendEmail_NonASCIIDraftName(t *testing.T) {
	e := newEnv(t, nil)
	e.addDraft(t, "café", "Bonjour")

	resp := e.process(t, "send email to a@b.com the draft of café")
	require.Equal(t, KindSuccess, resp.Kind(), resp.Text())
	require.Len(t, e.transport.messages, 1)
}

func TestSendEmail_UnknownDraftListsDrafts(t *testing.T) {
	e := newEnv(t, nil)

	resp := e.process(t, "send email to a@b.com draft of missing")
	require.Equal(t, KindError, resp.Kind())
	assert.Equal(t, "❌ Draft 'missing' not found. Available drafts: No drafts available", resp.Text())

	e.addDraft(t, "intro", "Hi")
	e.addDraft(t, "followup", "Hi")

	resp = e.process(t, "send email to a@b.com draft of missing")
	require.Equal(t, KindError, resp.Kind())
	prefix := "❌ Draft 'missing' not found. Available drafts: "
	require.True(t, strings.HasPrefix(resp.Text(), prefix))
	listed := strings.Split(strings.TrimPrefix(resp.Text(), prefix), ", ")
	assert.ElementsMatch(t, []string{"intro", "followup"}, listed)

	count, err := e.investors.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, e.transport.messages)
}

func TestSendEmail_TransportFailure(t *testing.T) {
	e := newEnv(t, nil)
	e.addDraft(t, "pitchdeck", "Hi")
	e.transport.err = errors.New("connection refused")

	resp := e.process(t, "send email to jane@x.com the draft of pitchdeck")
	require.Equal(t, KindError, resp.Kind())
	assert.Equal(t, "❌ Failed to send email: connection refused", resp.Text())

	assert.Zero(t, countByStatus(t, e, domain.CommunicationSuccess))
	assert.Equal(t, int64(1), countByStatus(t, e, domain.CommunicationFailed))
}

func TestSendEmail_HTMLDetection(t *testing.T) {
	e := newEnv(t, nil)
	e.addDraft(t, "rich", "Hello <b>Jane</b>")
	e.addDraft(t, "plain", "Hello Jane")

	require.Equal(t, KindSuccess, e.process(t, "send email to jane@x.com draft rich").Kind())
	require.Equal(t, KindSuccess, e.process(t, "send email to jane@x.com draft plain").Kind())
	require.Len(t, e.transport.messages, 2)

	var rich, plain strings.Builder
	_, err := e.transport.messages[0].WriteTo(&rich)
	require.NoError(t, err)
	_, err = e.transport.messages[1].WriteTo(&plain)
	require.NoError(t, err)
	assert.Contains(t, rich.String(), "text/html")
	assert.Contains(t, plain.String(), "text/plain")
	assert.NotContains(t, plain.String(), "text/html")
}

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"the vc and tech", []string{"vc", "tech"}},
		{"- 'Series A', fund", []string{"Series A", "fund"}},
		{`"deep tech" OR AND For`, []string{"deep tech"}},
		{"and or the for", []string{}},
		{"' '", []string{}},
		{"Zürich and São Paulo", []string{"Zürich", "São", "Paulo"}},
		{"fonds_2024 for Ünternehmer", []string{"fonds_2024", "Ünternehmer"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractKeywords(tt.query))
		})
	}
}

func TestSearch(t *testing.T) {
	e := newEnv(t, nil)
	acme := e.addInvestor(t, "Acme VC", "vc@acme.io", "VC, Tech", 1500)
	e.addInvestor(t, "Angel Bob", "bob@angels.io", "Angel", 250000)
	e.addArtifact(t, "VC Deck", domain.ArtifactTypePresentation, "vc", "deck for vc meetings")

	t.Run("stop words removed", func(t *testing.T) {
		resp := e.process(t, "show data for the vc and tech")
		require.Equal(t, KindSearchResults, resp.Kind())
		res := resp.(*SearchResultsResponse)
		assert.Equal(t, []string{"vc", "tech"}, res.Keywords)

		// acme matches both keywords on several fields but appears once
		require.Len(t, res.Investors, 1)
		assert.Equal(t, acme.ID, res.Investors[0].ID)
		require.Len(t, res.Artifacts, 1)

		assert.Equal(t, strings.Join([]string{
			"🔍 Search results for: vc, tech\n",
			"\n👥 **Investors (1):**",
			"  • Acme VC (vc@acme.io) - ₹1,500.00",
			"\n📎 **Artifacts (1):**",
			"  • VC Deck (presentation)",
		}, "\n"), resp.Text())
	})

	t.Run("idempotent", func(t *testing.T) {
		first := e.process(t, "show me data for: vc").(*SearchResultsResponse)
		second := e.process(t, "show me data for: vc vc").(*SearchResultsResponse)
		assert.Equal(t, len(first.Investors), len(second.Investors))
		assert.Equal(t, len(first.Artifacts), len(second.Artifacts))
	})

	t.Run("quoted keywords", func(t *testing.T) {
		resp := e.process(t, "show me data for - 'Angel Bob', fund")
		res := resp.(*SearchResultsResponse)
		assert.Equal(t, []string{"Angel Bob", "fund"}, res.Keywords)
		require.Len(t, res.Investors, 1)
		assert.Contains(t, resp.Text(), "₹250,000.00")
		assert.Contains(t, resp.Text(), "\n📎 No artifacts found.")
	})

	t.Run("nothing found", func(t *testing.T) {
		resp := e.process(t, "show data for zzz")
		assert.Equal(t, "🔍 Search results for: zzz\n\n\n👥 No investors found.\n\n📎 No artifacts found.", resp.Text())
	})

	t.Run("no keywords", func(t *testing.T) {
		resp := e.process(t, "show data for the and")
		require.Equal(t, KindError, resp.Kind())
		assert.Equal(t, "❌ Please provide keywords to search for.", resp.Text())
	})
}

func TestSearch_ListsAtMostTen(t *testing.T) {
	e := newEnv(t, nil)
	for n := 0; n < 12; n++ {
		e.addInvestor(t, fmt.Sprintf("Fund %02d", n), fmt.Sprintf("fund%d@x.com", n), "", 0)
	}

	resp := e.process(t, "show data for fund")
	res := resp.(*SearchResultsResponse)
	assert.Len(t, res.Investors, 12)
	assert.Contains(t, resp.Text(), "**Investors (12):**")
	assert.Equal(t, 10, strings.Count(resp.Text(), "  • "))
}

func TestGenericQuery_HelpWithoutAI(t *testing.T) {
	e := newEnv(t, nil)
	e.addInvestor(t, "A", "a@x.com", "", 0)
	e.addInvestor(t, "B", "b@x.com", "", 0)
	e.addArtifact(t, "Logo", domain.ArtifactTypeImage, "", "")
	e.addDraft(t, "intro", "Hi")

	resp := e.process(t, "  what can you do?  ")
	require.Equal(t, KindHelp, resp.Kind())
	assert.Contains(t, resp.Text(), "👋 I'm your fundraising assistant!")
	assert.Contains(t, resp.Text(), "   - Investors: 2\n")
	assert.Contains(t, resp.Text(), "   - Artifacts: 1\n")
	assert.Contains(t, resp.Text(), "   - Email Drafts: 1\n")
	assert.Contains(t, resp.Text(), "`Send email to investor@email.com the draft of pitchdeck`")
}

func TestGenericQuery_AI(t *testing.T) {
	completion := &stubAI{reply: "Use the send command."}
	e := newEnv(t, completion)
	e.addDraft(t, "intro", "Hi")

	resp := e.process(t, "how do I email someone?")
	require.Equal(t, KindAIResponse, resp.Kind())
	assert.Equal(t, "🤖 Use the send command.", resp.Text())

	require.Len(t, completion.prompts, 1)
	prompt := completion.prompts[0]
	assert.Contains(t, prompt, "- Email Drafts: 1")
	assert.Contains(t, prompt, "- Emails Sent: 0")
	assert.Contains(t, prompt, "User's question: how do I email someone?")
}

func TestGenericQuery_AIFailureFallsBackToHelp(t *testing.T) {
	completion := &stubAI{err: errors.New("quota exceeded")}
	e := newEnv(t, completion)

	resp := e.process(t, "hello")
	require.Equal(t, KindHelp, resp.Kind())
	assert.NotContains(t, resp.Text(), "quota")
}

func TestSendCommandTakesPrecedence(t *testing.T) {
	e := newEnv(t, nil)
	e.addDraft(t, "intro", "Hi")

	resp := e.process(t, "send email to a@b.com draft intro and show data for vc")
	assert.Equal(t, KindSuccess, resp.Kind())
}
