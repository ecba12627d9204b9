package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
)

type historyDocument struct {
	Name       string    `bson:"name"`
	AppliedAt  time.Time `bson:"appliedAt"`
	DurationMs int64     `bson:"durationMs"`
	Summary    string    `bson:"summary"`
}

func (r *historyRepository) Applied(ctx context.Context) ([]model.MigrationRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.storage.collection(model.MigrationsCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find migration history: %w", err)
	}
	var docs []historyDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode migration history: %w", err)
	}

	records := make([]model.MigrationRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, model.MigrationRecord{
			Name:      d.Name,
			AppliedAt: d.AppliedAt,
			Duration:  time.Duration(d.DurationMs) * time.Millisecond,
			Summary:   d.Summary,
		})
	}
	return records, nil
}

func (r *historyRepository) MarkApplied(ctx context.Context, record model.MigrationRecord) error {
	doc := historyDocument{
		Name:       record.Name,
		AppliedAt:  record.AppliedAt.UTC(),
		DurationMs: record.Duration.Milliseconds(),
		Summary:    record.Summary,
	}
	_, err := r.storage.collection(model.MigrationsCollection).UpdateOne(ctx,
		bson.D{{Key: "name", Value: record.Name}},
		bson.D{{Key: "$set", Value: doc}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mark %s applied: %w", record.Name, err)
	}
	return nil
}

func (r *historyRepository) MarkReverted(ctx context.Context, name string) error {
	if _, err := r.storage.collection(model.MigrationsCollection).DeleteOne(ctx, bson.D{{Key: "name", Value: name}}); err != nil {
		return fmt.Errorf("mark %s reverted: %w", name, err)
	}
	return nil
}
