package usecase

import (
	"fmt"
	"strings"
	"time"

	"fundraise-backend/internal/crm/domain"
	"fundraise-backend/internal/crm/dto"
	"fundraise-backend/internal/crm/repository"
	"fundraise-backend/pkg/fuzzy"
)

const (
	recentCommunications = 10
	recentResponses      = 5
	defaultSuggestions   = 10
)

type dashboardUsecase struct {
	investorRepo      repository.InvestorRepository
	artifactRepo      repository.ArtifactRepository
	draftRepo         repository.DraftRepository
	communicationRepo repository.CommunicationRepository
	responseRepo      repository.ResponseRepository
	now               clock
}

func NewDashboardUsecase(
	investorRepo repository.InvestorRepository,
	artifactRepo repository.ArtifactRepository,
	draftRepo repository.DraftRepository,
	communicationRepo repository.CommunicationRepository,
	responseRepo repository.ResponseRepository,
) DashboardUsecase {
	return &dashboardUsecase{
		investorRepo:      investorRepo,
		artifactRepo:      artifactRepo,
		draftRepo:         draftRepo,
		communicationRepo: communicationRepo,
		responseRepo:      responseRepo,
		now:               time.Now,
	}
}

func (u *dashboardUsecase) Dashboard() (*dto.Dashboard, error) {
	var (
		d   dto.Dashboard
		err error
	)

	if d.TotalInvestors, err = u.investorRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count investors: %w", err)
	}
	if d.TotalArtifacts, err = u.artifactRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count artifacts: %w", err)
	}
	if d.TotalDrafts, err = u.draftRepo.Count(); err != nil {
		return nil, fmt.Errorf("failed to count drafts: %w", err)
	}
	if d.EmailsSent, err = u.communicationRepo.CountByStatus(domain.CommunicationSuccess); err != nil {
		return nil, fmt.Errorf("failed to count sent emails: %w", err)
	}
	if d.EmailAging, err = u.emailAging(); err != nil {
		return nil, err
	}

	stats, err := u.responseRepo.StatsByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate responses: %w", err)
	}
	d.ResponseStats = make([]dto.ResponseStat, 0, len(stats))
	for _, s := range stats {
		d.ResponseStats = append(d.ResponseStats, dto.ResponseStat{Status: s.Status, Count: s.Count, Amount: s.Amount})
	}

	if d.RecentCommunications, err = u.communicationRepo.List(recentCommunications); err != nil {
		return nil, fmt.Errorf("failed to load communications: %w", err)
	}
	if d.RecentResponses, err = u.responseRepo.List("", recentResponses); err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}
	return &d, nil
}

// emailAging buckets successful sends into <7, 7-15, 15-30 and >30 days old.
func (u *dashboardUsecase) emailAging() (dto.EmailAging, error) {
	now := u.now()
	d7 := now.AddDate(0, 0, -7)
	d15 := now.AddDate(0, 0, -15)
	d30 := now.AddDate(0, 0, -30)

	var aging dto.EmailAging
	buckets := []struct {
		from, to *time.Time
		dst      *int64
	}{
		{&d7, nil, &aging.LessThan7Days},
		{&d15, &d7, &aging.From7To15Days},
		{&d30, &d15, &aging.From15To30Days},
		{nil, &d30, &aging.MoreThan30Days},
	}

	for _, b := range buckets {
		n, err := u.communicationRepo.CountSentBetween(domain.CommunicationSuccess, b.from, b.to)
		if err != nil {
			return aging, fmt.Errorf("failed to count email aging: %w", err)
		}
		*b.dst = n
	}
	return aging, nil
}

func (u *dashboardUsecase) Communications(limit int) ([]*domain.CommunicationLog, error) {
	return u.communicationRepo.List(limit)
}

func (u *dashboardUsecase) Suggest(query string, limit int) ([]dto.Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []dto.Suggestion{}, nil
	}
	if limit <= 0 {
		limit = defaultSuggestions
	}

	var candidates []fuzzy.Candidate
	investors, err := u.investorRepo.List("")
	if err != nil {
		return nil, err
	}
	for _, inv := range investors {
		candidates = append(candidates, fuzzy.Candidate{ID: inv.ID, Kind: "investor", Text: inv.Name})
	}
	artifacts, err := u.artifactRepo.List("", "")
	if err != nil {
		return nil, err
	}
	for _, a := range artifacts {
		candidates = append(candidates, fuzzy.Candidate{ID: a.ID, Kind: "artifact", Text: a.Name})
	}
	drafts, err := u.draftRepo.List()
	if err != nil {
		return nil, err
	}
	for _, d := range drafts {
		candidates = append(candidates, fuzzy.Candidate{ID: d.ID, Kind: "draft", Text: d.Name})
	}

	matches := fuzzy.Rank(query, candidates, limit)
	suggestions := make([]dto.Suggestion, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, dto.Suggestion{ID: m.ID, Kind: m.Kind, Text: m.Text, Score: m.Score})
	}
	return suggestions, nil
}
