package entitlement

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"sareestage-backend/internal/store"
	apperrors "sareestage-backend/pkg/errors"
)

// failingStore simulates a storage layer with exhausted quota.
type failingStore struct{}

func (f *failingStore) Get(key string) (string, bool, error) {
	return "", false, apperrors.NewPersistenceError("quota exceeded")
}

func (f *failingStore) Set(key, value string) error {
	return apperrors.NewPersistenceError("quota exceeded")
}

func (f *failingStore) Delete(key string) error {
	return apperrors.NewPersistenceError("quota exceeded")
}

func TestResolveGuestID(t *testing.T) {
	svc := NewService(store.NewMemoryStore())

	id, err := svc.ResolveGuestID()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(id, "guest_"), "guest id should carry the guest prefix, got %q", id)

	// Stable for the lifetime of the profile.
	again, err := svc.ResolveGuestID()
	require.NoError(t, err)
	require.Equal(t, id, again)
}

func TestGuestBootstrap(t *testing.T) {
	svc := NewService(store.NewMemoryStore())

	id, err := svc.ResolveGuestID()
	require.NoError(t, err)

	record, err := svc.GetBalance(id)
	require.NoError(t, err)
	require.Equal(t, 3, record.Credits)
	require.Equal(t, "guest", record.Plan)
}

func TestSignupBootstrap(t *testing.T) {
	svc := NewService(store.NewMemoryStore())

	record, err := svc.GetBalance("mock-uid-123")
	require.NoError(t, err)
	require.Equal(t, 0, record.Credits)
	require.Equal(t, "free_tier", record.Plan)
}

func TestInitializeUserDoesNotOverwrite(t *testing.T) {
	svc := NewService(store.NewMemoryStore())

	_, err := svc.Credit("mock-uid-123", "spark", 10)
	require.NoError(t, err)

	require.NoError(t, svc.InitializeUser("mock-uid-123"))

	record, err := svc.GetBalance("mock-uid-123")
	require.NoError(t, err)
	require.Equal(t, 10, record.Credits)
	require.Equal(t, "spark", record.Plan)
}

func TestDebitFloorsAtZero(t *testing.T) {
	svc := NewService(store.NewMemoryStore())

	id, err := svc.ResolveGuestID()
	require.NoError(t, err)

	// More debits than the starting grant; the balance never goes negative.
	for i := 0; i < 10; i++ {
		record, err := svc.Debit(id)
		require.NoError(t, err)
		require.GreaterOrEqual(t, record.Credits, 0)
	}

	record, err := svc.GetBalance(id)
	require.NoError(t, err)
	require.Equal(t, 0, record.Credits)
}

func TestPurchaseAdditivity(t *testing.T) {
	svc := NewService(store.NewMemoryStore())

	id, err := svc.ResolveGuestID()
	require.NoError(t, err)

	// Starting balance B = 3, purchase C = 50.
	record, err := svc.Credit(id, "enthusiast", 50)
	require.NoError(t, err)
	require.Equal(t, 53, record.Credits)
	require.Equal(t, "enthusiast", record.Plan)

	// A second purchase keeps adding.
	record, err = svc.Credit(id, "pro", 200)
	require.NoError(t, err)
	require.Equal(t, 253, record.Credits)
	require.Equal(t, "pro", record.Plan)
}

func TestStorageFailureSurfacesAsPersistenceError(t *testing.T) {
	svc := NewService(&failingStore{})

	_, err := svc.GetBalance("someone")
	require.Error(t, err)
	require.True(t, apperrors.IsErrorType(err, apperrors.ErrPersistence),
		"expected PERSISTENCE_ERROR, got %v", err)

	_, err = svc.ResolveGuestID()
	require.Error(t, err)
	require.True(t, apperrors.IsErrorType(err, apperrors.ErrPersistence))
}

func TestCorruptedBlobSurfacesAsPersistenceError(t *testing.T) {
	kv := store.NewMemoryStore()
	require.NoError(t, kv.Set(store.UserDataKey, "{not json"))

	svc := NewService(kv)
	_, err := svc.GetBalance("someone")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, apperrors.ErrPersistence, appErr.Type)
}

func TestPlanCatalog(t *testing.T) {
	plans := Plans()
	require.Len(t, plans, 3)

	spark, ok := PlanByKey("spark")
	require.True(t, ok)
	require.Equal(t, "Creative Spark", spark.Name)
	require.Equal(t, 10, spark.Credits)

	_, ok = PlanByKey("nonexistent")
	require.False(t, ok)
}
