package domain

import "time"

// ProposalStatus represents the lifecycle state of a proposal.
type ProposalStatus string

const (
	ProposalPending   ProposalStatus = "pending"
	ProposalAccepted  ProposalStatus = "accepted"
	ProposalRejected  ProposalStatus = "rejected"
	ProposalWithdrawn ProposalStatus = "withdrawn"
)

// ParseProposalStatus validates s against the declared statuses.
func ParseProposalStatus(s string) (ProposalStatus, error) {
	switch st := ProposalStatus(s); st {
	case ProposalPending, ProposalAccepted, ProposalRejected, ProposalWithdrawn:
		return st, nil
	}
	return "", ErrBadStatus
}

// Absorbing reports whether no further transition is allowed out of s.
func (s ProposalStatus) Absorbing() bool {
	return s == ProposalAccepted
}

// CheckTransition reports whether the status may be changed to next.
// Only the absorbing state blocks a change; any declared status is a valid
// target otherwise.
func (s ProposalStatus) CheckTransition(next ProposalStatus) error {
	if _, err := ParseProposalStatus(string(next)); err != nil {
		return err
	}
	if s.Absorbing() {
		return ErrAlreadyAccepted
	}
	return nil
}

// Proposal is a freelancer's bid against a job.
type Proposal struct {
	ID           string         `json:"id"`
	JobID        string         `json:"job_id"`
	FreelancerID string         `json:"freelancer_id"`
	CoverLetter  string         `json:"cover_letter"`
	BidAmount    float64        `json:"bid_amount"`
	Status       ProposalStatus `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ProposalEvent is an audit record of a proposal status change. From is
// empty for the creation event.
type ProposalEvent struct {
	ProposalID string
	JobID      string
	ActorID    string
	From       ProposalStatus
	To         ProposalStatus
	Timestamp  time.Time
}
