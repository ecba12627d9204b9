package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/repository"
)

// Storage acts as repository facade backed by MongoDB.
type Storage struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

type indexRepository struct {
	storage *Storage
}

type courseRepository struct {
	storage *Storage
}

type userRepository struct {
	storage *Storage
}

type historyRepository struct {
	storage *Storage
}

// New connects to MongoDB, verifies the primary is reachable and prepares
// the history collection.
func New(ctx context.Context, uri, database string, logger *slog.Logger) (*Storage, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	storage := &Storage{client: client, db: client.Database(database), logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// Factory methods for domain repositories.
func (s *Storage) Indexes() repository.IndexRepository {
	return &indexRepository{storage: s}
}

func (s *Storage) Courses() repository.CourseRepository {
	return &courseRepository{storage: s}
}

func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) History() repository.HistoryRepository {
	return &historyRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	_, err := s.collection(model.MigrationsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("name_1").SetUnique(true),
	})
	if err != nil && !isIndexConflict(err) {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (s *Storage) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary())
}

// Database exposes the underlying database handle.
func (s *Storage) Database() *mongo.Database {
	return s.db
}
