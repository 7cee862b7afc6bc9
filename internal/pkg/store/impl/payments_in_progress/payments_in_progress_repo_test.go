package payments_in_progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"collectionledger/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mockStore struct {
	find   func(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (storemodels.PaymentInProgress, error)
	create func(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	delete func(ctx context.Context, filter interface{}) error
}

func (m *mockStore) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (storemodels.PaymentInProgress, error) {
	if m.find != nil {
		return m.find(ctx, filter, opts)
	}
	return storemodels.PaymentInProgress{}, mongo.ErrNoDocuments
}

func (m *mockStore) Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {
	if m.create != nil {
		return m.create(ctx, document)
	}
	return (*mongo.InsertOneResult)(nil), nil
}

func (m *mockStore) Delete(ctx context.Context, filter interface{}) error {
	if m.delete != nil {
		return m.delete(ctx, filter)
	}
	return nil
}

func TestCheckEntryExistsFound(t *testing.T) {
	ctx := context.Background()

	mockFind := func(ctx context.Context, filter interface{},
		opts *options.FindOneOptions) (storemodels.PaymentInProgress, error) {
		return storemodels.PaymentInProgress{ReferenceNumber: "ref-100", CreatedAt: time.Now()}, nil
	}

	repo := NewPaymentsInProgressRepositoryWithInterface(&mockStore{find: mockFind})

	ok, err := repo.CheckEntryExists(ctx, "ref-100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected found == true")
	}
}

func TestCheckEntryExistsNotFound(t *testing.T) {
	ctx := context.Background()

	mockFind := func(ctx context.Context, filter interface{},
		opts *options.FindOneOptions) (storemodels.PaymentInProgress, error) {
		return storemodels.PaymentInProgress{}, mongo.ErrNoDocuments
	}

	repo := NewPaymentsInProgressRepositoryWithInterface(&mockStore{find: mockFind})

	ok, err := repo.CheckEntryExists(ctx, "ref-200")
	if err != nil {
		t.Fatalf("unexpected error for not found: %v", err)
	}
	if ok {
		t.Fatalf("expected found == false when not found")
	}
}

func TestCheckEntryExistsError(t *testing.T) {
	ctx := context.Background()
	expectedErr := errors.New("db failure")

	mockFind := func(ctx context.Context, filter interface{},
		opts *options.FindOneOptions) (storemodels.PaymentInProgress, error) {
		return storemodels.PaymentInProgress{}, expectedErr
	}

	repo := NewPaymentsInProgressRepositoryWithInterface(&mockStore{find: mockFind})

	ok, err := repo.CheckEntryExists(ctx, "ref-300")
	if err == nil {
		t.Fatalf("expected error but got nil")
	}
	if !errors.Is(err, expectedErr) {
		t.Fatalf("expected error to be %v, got %v", expectedErr, err)
	}
	if ok {
		t.Fatalf("expected found == false when error occurs")
	}
}

func TestCreateEntrySuccess(t *testing.T) {
	ctx := context.Background()

	mockCreate := func(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {
		entry, ok := document.(storemodels.PaymentInProgress)
		if !ok {
			t.Fatalf("unexpected document type %T", document)
		}
		if entry.ReferenceNumber != "ref-400" {
			t.Fatalf("unexpected reference number %q", entry.ReferenceNumber)
		}
		return (*mongo.InsertOneResult)(nil), nil
	}

	repo := NewPaymentsInProgressRepositoryWithInterface(&mockStore{create: mockCreate})

	if err := repo.CreateEntry(ctx, "ref-400"); err != nil {
		t.Fatalf("unexpected error on create: %v", err)
	}
}

func TestDeleteEntryError(t *testing.T) {
	ctx := context.Background()
	expectedErr := errors.New("delete failed")

	mockDelete := func(ctx context.Context, filter interface{}) error {
		return expectedErr
	}

	repo := NewPaymentsInProgressRepositoryWithInterface(&mockStore{delete: mockDelete})

	err := repo.DeleteEntry(ctx, "ref-500")
	if !errors.Is(err, expectedErr) {
		t.Fatalf("expected %v, got %v", expectedErr, err)
	}
}
