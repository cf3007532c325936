// Package memory holds process-local implementations of the repository
// ports. They enforce the same uniqueness and atomicity rules as the MongoDB
// adapters and back STORE_DRIVER=memory as well as the service tests.
package memory

import "github.com/oklog/ulid/v2"

// Store groups one instance of every repository.
type Store struct {
	Users     *UserRepository
	Jobs      *JobRepository
	Proposals *ProposalRepository
	Refresh   *RefreshStore
	Audit     *AuditRepository
}

func NewStore() *Store {
	return &Store{
		Users:     NewUserRepository(),
		Jobs:      NewJobRepository(),
		Proposals: NewProposalRepository(),
		Refresh:   NewRefreshStore(),
		Audit:     NewAuditRepository(),
	}
}

// newID returns a monotonic ULID, so ordering by id matches insertion order
// within the process.
func newID() string {
	return ulid.Make().String()
}
