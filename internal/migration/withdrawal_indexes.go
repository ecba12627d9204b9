package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "github.com/kitkatcodeskitty/lms-migrate/internal/domain/errors"
	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/model"
	"github.com/kitkatcodeskitty/lms-migrate/internal/domain/repository"
)

// WithdrawalIndexesName identifies the withdrawal index migration.
const WithdrawalIndexesName = "001_withdrawal_indexes"

var withdrawalIndexes = []model.IndexSpec{
	model.Index(model.Asc(model.WithdrawalFieldUserID)),
	model.Index(model.Asc(model.WithdrawalFieldStatus)),
	model.Index(model.Desc(model.WithdrawalFieldCreatedAt)),
	model.Index(model.Desc(model.WithdrawalFieldProcessedAt)),
	model.Index(model.Asc(model.WithdrawalFieldUserID), model.Asc(model.WithdrawalFieldStatus)),
	model.Index(model.Asc(model.WithdrawalFieldStatus), model.Desc(model.WithdrawalFieldCreatedAt)),
	model.Index(model.Asc(model.WithdrawalFieldUserID), model.Desc(model.WithdrawalFieldCreatedAt)),
	model.Index(model.Asc(model.WithdrawalFieldStatus), model.Desc(model.WithdrawalFieldProcessedAt)),
	model.Index(model.Asc(model.WithdrawalFieldProcessedBy), model.Desc(model.WithdrawalFieldProcessedAt)),
	model.Index(model.Asc(model.WithdrawalFieldStatus), model.Desc(model.WithdrawalFieldAmount)),
	model.Index(
		model.Asc(model.WithdrawalFieldStatus),
		model.Asc(model.WithdrawalFieldMethod),
		model.Desc(model.WithdrawalFieldCreatedAt),
	),
}

var userIndexes = []model.IndexSpec{
	model.Index(model.Desc(model.UserFieldWithdrawableBalance)),
	model.Index(model.Desc(model.UserFieldTotalWithdrawn)),
	model.Index(model.Asc(model.UserFieldPendingWithdrawals)),
	model.Index(model.Desc(model.UserFieldAffiliateEarnings), model.Desc(model.UserFieldWithdrawableBalance)),
	model.Index(model.Asc(model.UserFieldPendingWithdrawals), model.Desc(model.UserFieldWithdrawableBalance)),
}

// WithdrawalIndexes creates the query indexes of the withdrawal feature.
type WithdrawalIndexes struct {
	indexes repository.IndexRepository
	logger  *slog.Logger
}

// NewWithdrawalIndexes constructs WithdrawalIndexes.
func NewWithdrawalIndexes(indexes repository.IndexRepository, logger *slog.Logger) *WithdrawalIndexes {
	return &WithdrawalIndexes{indexes: indexes, logger: logger}
}

func (m *WithdrawalIndexes) Name() string { return WithdrawalIndexesName }

// Up creates every declared index. An equivalent index already present
// under another name is accepted; any other failure aborts.
func (m *WithdrawalIndexes) Up(ctx context.Context) (Result, error) {
	if err := m.ensure(ctx, model.WithdrawalsCollection, withdrawalIndexes); err != nil {
		return Result{}, err
	}
	if err := m.ensure(ctx, model.UsersCollection, userIndexes); err != nil {
		return Result{}, err
	}

	total := len(withdrawalIndexes) + len(userIndexes)
	return success(fmt.Sprintf("%d indexes ensured", total), map[string]int64{
		"withdrawalIndexes": int64(len(withdrawalIndexes)),
		"userIndexes":       int64(len(userIndexes)),
	}), nil
}

// Down drops every non-primary index on withdrawals and only the owned
// indexes on users.
func (m *WithdrawalIndexes) Down(ctx context.Context) (Result, error) {
	names, err := m.indexes.ListIndexes(ctx, model.WithdrawalsCollection)
	if err != nil {
		return Result{}, err
	}

	var dropped int64
	for _, name := range names {
		if name == model.PrimaryIndexName {
			continue
		}
		ok, err := m.drop(ctx, model.WithdrawalsCollection, name)
		if err != nil {
			return Result{}, err
		}
		if ok {
			dropped++
		}
	}

	for _, name := range ownedUserIndexNames() {
		ok, err := m.drop(ctx, model.UsersCollection, name)
		if err != nil {
			return Result{}, err
		}
		if ok {
			dropped++
		}
	}

	return success(fmt.Sprintf("%d indexes dropped", dropped), map[string]int64{"dropped": dropped}), nil
}

func (m *WithdrawalIndexes) ensure(ctx context.Context, collection string, specs []model.IndexSpec) error {
	for _, spec := range specs {
		name, err := m.indexes.CreateIndex(ctx, collection, spec)
		switch {
		case errors.Is(err, domainErrors.ErrIndexConflict):
			m.logger.Info("index already exists",
				slog.String("collection", collection),
				slog.String("index", spec.Name()),
			)
		case err != nil:
			return fmt.Errorf("create index %s on %s: %w", spec.Name(), collection, err)
		default:
			m.logger.Info("index ensured",
				slog.String("collection", collection),
				slog.String("index", name),
			)
		}
	}
	return nil
}

func (m *WithdrawalIndexes) drop(ctx context.Context, collection, name string) (bool, error) {
	err := m.indexes.DropIndex(ctx, collection, name)
	switch {
	case errors.Is(err, domainErrors.ErrIndexNotFound):
		m.logger.Info("index not found, skipping drop",
			slog.String("collection", collection),
			slog.String("index", name),
		)
		return false, nil
	case err != nil:
		return false, fmt.Errorf("drop index %s on %s: %w", name, collection, err)
	}
	m.logger.Info("index dropped", slog.String("collection", collection), slog.String("index", name))
	return true, nil
}

func ownedUserIndexNames() []string {
	names := make([]string, 0, len(userIndexes))
	for _, spec := range userIndexes {
		names = append(names, spec.Name())
	}
	return names
}
