package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gigboard/marketplace-api/internal/core/domain"
)

const collectionProposalEvents = "proposal_events"

// AuditRepository implements ports.ProposalAuditRepository using MongoDB.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionProposalEvents)}
}

// InsertEvent persists a proposal status change to the audit collection.
func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.ProposalEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"proposal_id":  event.ProposalID,
		"job_id":       event.JobID,
		"actor_id":     event.ActorID,
		"to":           string(event.To),
		"timestamp":    event.Timestamp.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if event.From != "" {
		doc["from"] = string(event.From)
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}

func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "proposal_id", Value: 1}, {Key: "timestamp", Value: 1}},
	})
	return err
}
