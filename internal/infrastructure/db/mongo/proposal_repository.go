package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gigboard/marketplace-api/internal/core/domain"
)

const collectionProposals = "proposals"

type ProposalRepository struct {
	col *mongo.Collection
}

func NewProposalRepository(db *mongo.Database) *ProposalRepository {
	return &ProposalRepository{col: db.Collection(collectionProposals)}
}

type mongoProposal struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	JobID        primitive.ObjectID `bson:"job_id"`
	FreelancerID primitive.ObjectID `bson:"freelancer_id"`
	CoverLetter  string             `bson:"cover_letter"`
	BidAmount    float64            `bson:"bid_amount"`
	Status       string             `bson:"status"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (mp *mongoProposal) toDomain() *domain.Proposal {
	return &domain.Proposal{
		ID:           mp.ID.Hex(),
		JobID:        mp.JobID.Hex(),
		FreelancerID: mp.FreelancerID.Hex(),
		CoverLetter:  mp.CoverLetter,
		BidAmount:    mp.BidAmount,
		Status:       domain.ProposalStatus(mp.Status),
		CreatedAt:    mp.CreatedAt,
		UpdatedAt:    mp.UpdatedAt,
	}
}

// Create inserts p and sets p.ID. The unique (job_id, freelancer_id) index
// turns a concurrent second insert into ErrDuplicateProposal.
func (r *ProposalRepository) Create(ctx context.Context, p *domain.Proposal) error {
	jobID, ok := objectID(p.JobID)
	if !ok {
		return domain.ErrJobNotFound
	}
	freelancerID, ok := objectID(p.FreelancerID)
	if !ok {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoProposal{
		ID:           primitive.NewObjectID(),
		JobID:        jobID,
		FreelancerID: freelancerID,
		CoverLetter:  p.CoverLetter,
		BidAmount:    p.BidAmount,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateProposal
		}
		return fmt.Errorf("insert proposal: %w", err)
	}
	p.ID = doc.ID.Hex()
	return nil
}

func (r *ProposalRepository) FindByID(ctx context.Context, id string) (*domain.Proposal, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrProposalNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoProposal
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProposalNotFound
		}
		return nil, fmt.Errorf("find proposal: %w", err)
	}
	return mp.toDomain(), nil
}

// ListByJob returns every proposal for jobID, newest first, with the count.
func (r *ProposalRepository) ListByJob(ctx context.Context, jobID string) ([]*domain.Proposal, int64, error) {
	oid, ok := objectID(jobID)
	if !ok {
		return []*domain.Proposal{}, 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"job_id": oid}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find proposals: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoProposal
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode proposals: %w", err)
	}

	out := make([]*domain.Proposal, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, int64(len(out)), nil
}

// UpdateStatus sets the status unless the stored proposal is already
// accepted. The check and the write are a single conditional update, so two
// racing acceptances cannot both succeed.
func (r *ProposalRepository) UpdateStatus(ctx context.Context, id string, status domain.ProposalStatus) (*domain.Proposal, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrProposalNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":    oid,
		"status": bson.M{"$ne": string(domain.ProposalAccepted)},
	}
	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mp mongoProposal
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mp)
	if err == nil {
		return mp.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update proposal status: %w", err)
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("count proposal: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrProposalNotFound
	}
	return nil, domain.ErrAlreadyAccepted
}

// EnsureIndexes creates the unique (job_id, freelancer_id) index and the
// per-job listing index.
func (r *ProposalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "job_id", Value: 1}, {Key: "freelancer_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "job_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
