package strdex

import (
	"context"

	"github.com/kailas-cloud/strdex/internal/domain/filter"
	domrec "github.com/kailas-cloud/strdex/internal/domain/record"
	recorduc "github.com/kailas-cloud/strdex/internal/usecase/record"
)

// --- stringUseCase mock ---

type mockStringUC struct {
	createFn func(ctx context.Context, value string) (domrec.Record, error)
	getFn    func(ctx context.Context, value string) (domrec.Record, error)
	deleteFn func(ctx context.Context, value string) error
	countFn  func(ctx context.Context) (int, error)
	listFn   func(ctx context.Context, p filter.Params) (recorduc.Listing, error)
	queryFn  func(ctx context.Context, query string) (recorduc.Interpreted, error)
}

func (m *mockStringUC) Create(ctx context.Context, value string) (domrec.Record, error) {
	return m.createFn(ctx, value)
}

func (m *mockStringUC) Get(ctx context.Context, value string) (domrec.Record, error) {
	return m.getFn(ctx, value)
}

func (m *mockStringUC) Delete(ctx context.Context, value string) error {
	return m.deleteFn(ctx, value)
}

func (m *mockStringUC) Count(ctx context.Context) (int, error) {
	return m.countFn(ctx)
}

func (m *mockStringUC) List(ctx context.Context, p filter.Params) (recorduc.Listing, error) {
	return m.listFn(ctx, p)
}

func (m *mockStringUC) ListByNaturalLanguage(ctx context.Context, query string) (recorduc.Interpreted, error) {
	return m.queryFn(ctx, query)
}
