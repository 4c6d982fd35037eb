package budget

import (
	"context"

	"github.com/budgetgarden/budgetgarden/pkg/storage"
)

// BudgetRepo maps budget records of a user onto documents of the storage.
type BudgetRepo interface {
	Store(ctx context.Context, user, category string, document storage.Fields) error
	FindAll(ctx context.Context, user string) ([]storage.Fields, error)
	Delete(ctx context.Context, user, category string) error
	DeleteAll(ctx context.Context, user string) error
}

type BudgetRepoImpl struct {
	store storage.Storage
}

func NewBudgetRepo(store storage.Storage) *BudgetRepoImpl {
	return &BudgetRepoImpl{store: store}
}

func (r *BudgetRepoImpl) Store(ctx context.Context, user, category string, document storage.Fields) error {
	return r.store.AddDocument(ctx, CollectionKey(user), DocumentKey(category), document)
}

func (r *BudgetRepoImpl) FindAll(ctx context.Context, user string) ([]storage.Fields, error) {
	return r.store.GetCollection(ctx, CollectionKey(user))
}

func (r *BudgetRepoImpl) Delete(ctx context.Context, user, category string) error {
	return r.store.DeleteDocument(ctx, CollectionKey(user), DocumentKey(category))
}

func (r *BudgetRepoImpl) DeleteAll(ctx context.Context, user string) error {
	return r.store.ClearCollection(ctx, CollectionKey(user))
}
