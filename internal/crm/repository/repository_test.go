package repository

import (
	"testing"
	"time"

	"fundraise-backend/internal/crm/domain"
	"fundraise-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteMemory(uuid.New().String())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createInvestor(t *testing.T, repo InvestorRepository, name, email, labels string) *domain.Investor {
	t.Helper()
	inv := &domain.Investor{Name: name, Email: email, Labels: labels, Amount: decimal.NewFromInt(1000)}
	require.NoError(t, repo.Create(inv))
	return inv
}

func TestInvestorRepository_GetOrCreateByEmail(t *testing.T) {
	repo := NewInvestorRepository(newTestDB(t))

	inv, created, err := repo.GetOrCreateByEmail("jane@fund.com", domain.Investor{Name: "jane", UpdatedBy: "alice"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "jane", inv.Name)
	assert.Equal(t, "alice", inv.UpdatedBy)
	assert.NotEmpty(t, inv.ID)

	again, created, err := repo.GetOrCreateByEmail("jane@fund.com", domain.Investor{Name: "other"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, inv.ID, again.ID)
	assert.Equal(t, "jane", again.Name)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestInvestorRepository_FindMissing(t *testing.T) {
	repo := NewInvestorRepository(newTestDB(t))

	inv, err := repo.FindByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, inv)

	inv, err = repo.FindByID(uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, inv)
}

func TestInvestorRepository_List(t *testing.T) {
	repo := NewInvestorRepository(newTestDB(t))
	createInvestor(t, repo, "Acme Ventures", "deals@acme.vc", "VC, Tech")
	createInvestor(t, repo, "Bob Angel", "bob@angels.io", "Angel")
	createInvestor(t, repo, "Growth 50% Fund", "growth@fund.com", "")

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"all", "", []string{"Acme Ventures", "Bob Angel", "Growth 50% Fund"}},
		{"by name case-insensitive", "ACME", []string{"Acme Ventures"}},
		{"by email", "angels.io", []string{"Bob Angel"}},
		{"by label", "tech", []string{"Acme Ventures"}},
		{"percent is literal", "50%", []string{"Growth 50% Fund"}},
		{"underscore is literal", "a_b", nil},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(tt.query)
			require.NoError(t, err)
			names := make([]string, 0, len(got))
			for _, inv := range got {
				names = append(names, inv.Name)
			}
			if tt.want == nil {
				assert.Empty(t, names)
				return
			}
			assert.ElementsMatch(t, tt.want, names)
		})
	}
}

func TestInvestorRepository_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	investors := NewInvestorRepository(db)
	logs := NewCommunicationRepository(db)
	responses := NewResponseRepository(db)

	inv := createInvestor(t, investors, "Jane", "jane@fund.com", "")
	log := &domain.CommunicationLog{InvestorID: inv.ID, Status: domain.CommunicationSuccess}
	require.NoError(t, logs.Create(log))
	require.NoError(t, responses.Create(&domain.ResponseFunding{
		CommunicationID: log.ID,
		InvestorID:      inv.ID,
		ResponseDate:    time.Now(),
	}))

	require.NoError(t, investors.Delete(inv.ID))

	count, err := logs.Count()
	require.NoError(t, err)
	assert.Zero(t, count)

	remaining, err := responses.List("", 0)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestArtifactRepository_ListAndDelete(t *testing.T) {
	db := newTestDB(t)
	artifacts := NewArtifactRepository(db)
	drafts := NewDraftRepository(db)

	deck := &domain.Artifact{Type: domain.ArtifactTypePresentation, Name: "Pitch Deck", Labels: "seed"}
	logo := &domain.Artifact{Type: domain.ArtifactTypeImage, Name: "Logo", Description: "brand pitch mark"}
	require.NoError(t, artifacts.Create(deck))
	require.NoError(t, artifacts.Create(logo))

	got, err := artifacts.List("pitch", "")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = artifacts.List("pitch", domain.ArtifactTypeImage)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Logo", got[0].Name)

	byIDs, err := artifacts.FindByIDs([]string{deck.ID, uuid.New().String()})
	require.NoError(t, err)
	require.Len(t, byIDs, 1)
	assert.Equal(t, deck.ID, byIDs[0].ID)

	draft := &domain.EmailDraft{Name: "pitchdeck", Subject: "Hi", Body: "Body", Artifacts: []domain.Artifact{*deck}}
	require.NoError(t, drafts.Create(draft))

	require.NoError(t, artifacts.Delete(deck.ID))

	reloaded, err := drafts.FindByID(draft.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Empty(t, reloaded.Artifacts)
}

func TestDraftRepository(t *testing.T) {
	db := newTestDB(t)
	artifacts := NewArtifactRepository(db)
	drafts := NewDraftRepository(db)
	investors := NewInvestorRepository(db)
	logs := NewCommunicationRepository(db)

	a1 := &domain.Artifact{Type: domain.ArtifactTypeImage, Name: "One"}
	a2 := &domain.Artifact{Type: domain.ArtifactTypeVideo, Name: "Two"}
	require.NoError(t, artifacts.Create(a1))
	require.NoError(t, artifacts.Create(a2))

	draft := &domain.EmailDraft{Name: "PitchDeck", Subject: "Our deck", Body: "<p>Hello</p>", Artifacts: []domain.Artifact{*a1}}
	require.NoError(t, drafts.Create(draft))

	t.Run("find by name is case-insensitive and exact", func(t *testing.T) {
		found, err := drafts.FindByName("pitchdeck")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, draft.ID, found.ID)
		require.Len(t, found.Artifacts, 1)
		assert.Equal(t, a1.ID, found.Artifacts[0].ID)

		missing, err := drafts.FindByName("pitch")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("update replaces artifacts", func(t *testing.T) {
		draft.Subject = "New subject"
		draft.Artifacts = []domain.Artifact{*a2}
		require.NoError(t, drafts.Update(draft))

		found, err := drafts.FindByID(draft.ID)
		require.NoError(t, err)
		assert.Equal(t, "New subject", found.Subject)
		require.Len(t, found.Artifacts, 1)
		assert.Equal(t, a2.ID, found.Artifacts[0].ID)

		draft.Artifacts = nil
		require.NoError(t, drafts.Update(draft))
		found, err = drafts.FindByID(draft.ID)
		require.NoError(t, err)
		assert.Empty(t, found.Artifacts)
	})

	t.Run("names", func(t *testing.T) {
		names, err := drafts.Names()
		require.NoError(t, err)
		assert.Equal(t, []string{"PitchDeck"}, names)
	})

	t.Run("delete keeps logs without draft", func(t *testing.T) {
		inv := createInvestor(t, investors, "Jane", "jane@fund.com", "")
		log := &domain.CommunicationLog{InvestorID: inv.ID, DraftID: &draft.ID, Status: domain.CommunicationSuccess}
		require.NoError(t, logs.Create(log))

		require.NoError(t, drafts.Delete(draft.ID))

		found, err := logs.FindByID(log.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Nil(t, found.DraftID)

		count, err := drafts.Count()
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestCommunicationRepository_Counts(t *testing.T) {
	db := newTestDB(t)
	investors := NewInvestorRepository(db)
	logs := NewCommunicationRepository(db)
	inv := createInvestor(t, investors, "Jane", "jane@fund.com", "")

	now := time.Now()
	for _, entry := range []struct {
		daysAgo int
		status  domain.CommunicationStatus
	}{
		{1, domain.CommunicationSuccess},
		{10, domain.CommunicationSuccess},
		{20, domain.CommunicationSuccess},
		{40, domain.CommunicationSuccess},
		{2, domain.CommunicationFailed},
	} {
		require.NoError(t, logs.Create(&domain.CommunicationLog{
			InvestorID: inv.ID,
			Status:     entry.status,
			SentAt:     now.AddDate(0, 0, -entry.daysAgo),
		}))
	}

	total, err := logs.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	success, err := logs.CountByStatus(domain.CommunicationSuccess)
	require.NoError(t, err)
	assert.Equal(t, int64(4), success)

	weekAgo := now.AddDate(0, 0, -7)
	fifteen := now.AddDate(0, 0, -15)
	recent, err := logs.CountSentBetween(domain.CommunicationSuccess, &weekAgo, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), recent)

	middle, err := logs.CountSentBetween(domain.CommunicationSuccess, &fifteen, &weekAgo)
	require.NoError(t, err)
	assert.Equal(t, int64(1), middle)

	list, err := logs.List(2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, !list[0].SentAt.Before(list[1].SentAt))
	require.NotNil(t, list[0].Investor)
	assert.Equal(t, "Jane", list[0].Investor.Name)
}

func TestResponseRepository(t *testing.T) {
	db := newTestDB(t)
	investors := NewInvestorRepository(db)
	logs := NewCommunicationRepository(db)
	responses := NewResponseRepository(db)

	inv := createInvestor(t, investors, "Jane", "jane@fund.com", "")
	log := &domain.CommunicationLog{InvestorID: inv.ID, Status: domain.CommunicationSuccess}
	require.NoError(t, logs.Create(log))

	now := time.Now()
	first := &domain.ResponseFunding{CommunicationID: log.ID, InvestorID: inv.ID, ResponseDate: now.AddDate(0, 0, -3)}
	second := &domain.ResponseFunding{
		CommunicationID: log.ID,
		InvestorID:      inv.ID,
		Status:          domain.ResponseSuccess,
		AmountOffered:   decimal.NewFromInt(250000),
		ResponseDate:    now,
	}
	third := &domain.ResponseFunding{
		CommunicationID: log.ID,
		InvestorID:      inv.ID,
		Status:          domain.ResponseSuccess,
		AmountOffered:   decimal.NewFromInt(50000),
		ResponseDate:    now.AddDate(0, 0, -1),
	}
	for _, r := range []*domain.ResponseFunding{first, second, third} {
		require.NoError(t, responses.Create(r))
	}
	assert.Equal(t, domain.ResponsePending, first.Status)

	all, err := responses.List("", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, second.ID, all[0].ID)

	successes, err := responses.List(domain.ResponseSuccess, 1)
	require.NoError(t, err)
	require.Len(t, successes, 1)
	assert.Equal(t, second.ID, successes[0].ID)

	stats, err := responses.StatsByStatus()
	require.NoError(t, err)
	byStatus := map[domain.ResponseStatus]ResponseStat{}
	for _, s := range stats {
		byStatus[s.Status] = s
	}
	assert.Equal(t, int64(2), byStatus[domain.ResponseSuccess].Count)
	assert.True(t, decimal.NewFromInt(300000).Equal(byStatus[domain.ResponseSuccess].Amount))
	assert.Equal(t, int64(1), byStatus[domain.ResponsePending].Count)
	require.Len(t, stats, len(domain.ResponseStatuses))
	assert.Equal(t, domain.ResponseFailure, stats[1].Status)
	assert.Zero(t, stats[1].Count)
	assert.True(t, stats[1].Amount.IsZero())

	first.Status = domain.ResponseFailure
	require.NoError(t, responses.Update(first))
	reloaded, err := responses.FindByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ResponseFailure, reloaded.Status)

	require.NoError(t, responses.Delete(first.ID))
	gone, err := responses.FindByID(first.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
