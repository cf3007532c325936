package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gigboard/marketplace-api/internal/core/domain"
)

// jobListSort orders newest first; _id breaks ties so pages stay stable
// across identical timestamps.
var jobListSort = bson.D{
	{Key: "created_at", Value: -1},
	{Key: "_id", Value: -1},
}

// buildJobFilter translates the listing predicates into a query document.
// Title is matched as a literal, case-insensitive substring.
func buildJobFilter(f domain.JobFilter) bson.M {
	filter := bson.M{}

	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Title != "" {
		filter["title"] = bson.M{"$regex": regexp.QuoteMeta(f.Title), "$options": "i"}
	}
	if len(f.Skills) > 0 {
		filter["skills_required"] = bson.M{"$all": f.Skills}
	}
	if f.MinBudget != nil || f.MaxBudget != nil {
		budget := bson.M{}
		if f.MinBudget != nil {
			budget["$gte"] = *f.MinBudget
		}
		if f.MaxBudget != nil {
			budget["$lte"] = *f.MaxBudget
		}
		filter["budget"] = budget
	}

	return filter
}

func jobListOptions(f domain.JobFilter) *options.FindOptions {
	opts := options.Find().SetSort(jobListSort)
	if skip := f.Offset(); skip > 0 {
		opts.SetSkip(int64(skip))
	}
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	return opts
}
