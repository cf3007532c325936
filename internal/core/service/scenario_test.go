package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gigboard/marketplace-api/internal/core/domain"
	"github.com/gigboard/marketplace-api/internal/core/ports"
)

// End-to-end flows across the job and proposal services on the memory store.

func TestScenario_FreelancerApplies(t *testing.T) {
	f := newFixture()
	c := f.user(domain.RoleClient, "c@example.com")
	fl := f.user(domain.RoleFreelancer, "f@example.com")
	j := f.job(c, "Job J")
	ctx := context.Background()

	if _, err := f.proposals.Create(ctx, ports.CreateProposalInput{JobID: j.ID, FreelancerID: fl.ID, CoverLetter: "cover", BidAmount: 400}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := f.store.Jobs.FindByID(ctx, j.ID)
	if got.ProposalsCount != 1 {
		t.Fatalf("expected counter 1, got %d", got.ProposalsCount)
	}
}

func TestScenario_AcceptThenReject(t *testing.T) {
	f := newFixture()
	c := f.user(domain.RoleClient, "c@example.com")
	fl := f.user(domain.RoleFreelancer, "f@example.com")
	j := f.job(c, "Job J")
	ctx := context.Background()

	p, err := f.proposals.Create(ctx, ports.CreateProposalInput{JobID: j.ID, FreelancerID: fl.ID, CoverLetter: "cover", BidAmount: 400})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.proposals.UpdateStatus(ctx, p.ID, c.ID, domain.ProposalAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}
	_, err = f.proposals.UpdateStatus(ctx, p.ID, c.ID, domain.ProposalRejected)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestScenario_SkillsFilter(t *testing.T) {
	f := newFixture()
	c := f.user(domain.RoleClient, "c@example.com")

	f.job(c, "one", "react", "node")
	f.job(c, "two", "java", "html")
	f.job(c, "three", "react", "fx")
	f.job(c, "four", "vue", "css")

	page, err := f.jobs.List(context.Background(), domain.JobFilter{Skills: []string{"react"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("expected 2 matches, got %d", page.Total)
	}
}

func TestScenario_NonOwnerCannotListProposals(t *testing.T) {
	f := newFixture()
	c := f.user(domain.RoleClient, "c@example.com")
	d := f.user(domain.RoleClient, "d@example.com")
	j := f.job(c, "Job J")

	_, err := f.proposals.ListByJob(context.Background(), j.ID, d.ID)
	if !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if domain.KindOf(err) != domain.KindForbidden {
		t.Fatalf("expected forbidden kind, got %s", domain.KindOf(err))
	}
}
