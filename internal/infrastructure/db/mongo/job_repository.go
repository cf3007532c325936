package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gigboard/marketplace-api/internal/core/domain"
)

const collectionJobs = "jobs"

type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs)}
}

type mongoJob struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Title          string             `bson:"title"`
	Description    string             `bson:"description"`
	Category       string             `bson:"category"`
	SkillsRequired []string           `bson:"skills_required"`
	Budget         float64            `bson:"budget"`
	Deadline       *time.Time         `bson:"deadline,omitempty"`
	ClientID       primitive.ObjectID `bson:"client_id"`
	Status         string             `bson:"status"`
	ProposalsCount int64              `bson:"proposals_count"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (mj *mongoJob) toDomain() *domain.Job {
	return &domain.Job{
		ID:             mj.ID.Hex(),
		Title:          mj.Title,
		Description:    mj.Description,
		Category:       mj.Category,
		SkillsRequired: mj.SkillsRequired,
		Budget:         mj.Budget,
		Deadline:       mj.Deadline,
		ClientID:       mj.ClientID.Hex(),
		Status:         domain.JobStatus(mj.Status),
		ProposalsCount: mj.ProposalsCount,
		CreatedAt:      mj.CreatedAt,
		UpdatedAt:      mj.UpdatedAt,
	}
}

// Create inserts a new job document and sets job.ID.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	clientID, ok := objectID(job.ClientID)
	if !ok {
		return fmt.Errorf("insert job: invalid client id %q", job.ClientID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoJob{
		ID:             primitive.NewObjectID(),
		Title:          job.Title,
		Description:    job.Description,
		Category:       job.Category,
		SkillsRequired: job.SkillsRequired,
		Budget:         job.Budget,
		Deadline:       job.Deadline,
		ClientID:       clientID,
		Status:         string(job.Status),
		ProposalsCount: job.ProposalsCount,
		CreatedAt:      job.CreatedAt,
		UpdatedAt:      job.UpdatedAt,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	job.ID = doc.ID.Hex()
	return nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mj mongoJob
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mj); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return mj.toDomain(), nil
}

// List returns a page of jobs matching filter and the total count.
func (r *JobRepository) List(ctx context.Context, f domain.JobFilter) ([]*domain.Job, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := buildJobFilter(f)

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}
	if total == 0 {
		return []*domain.Job{}, 0, nil
	}

	cur, err := r.col.Find(ctx, query, jobListOptions(f))
	if err != nil {
		return nil, 0, fmt.Errorf("find jobs: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoJob
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode jobs: %w", err)
	}

	jobs := make([]*domain.Job, 0, len(docs))
	for i := range docs {
		jobs = append(jobs, docs[i].toDomain())
	}
	return jobs, total, nil
}

// Delete removes the job matching both id and owner in one operation.
func (r *JobRepository) Delete(ctx context.Context, id, clientID string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrJobNotFound
	}
	cid, ok := objectID(clientID)
	if !ok {
		return domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "client_id": cid})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) IncrementProposalCount(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$inc": bson.M{"proposals_count": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("increment proposals_count: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing ownership lookups and listing.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "budget", Value: -1}}},
		{Keys: bson.D{{Key: "budget", Value: -1}, {Key: "category", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "skills_required", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
