package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolfootwear/storefront/internal/entity"
	"github.com/coolfootwear/storefront/internal/repository"
)

func TestEventStore_VersionCheck(t *testing.T) {
	ctx := context.Background()
	store := NewEventStore()

	placed := entity.OrderPlaced{Order: entity.Order{ID: "o1"}, PlacedAt: time.Now()}
	require.NoError(t, store.Append(ctx, entity.OrderStream, "o1", 0, placed))

	err := store.Append(ctx, entity.OrderStream, "o1", 0, placed)
	assert.ErrorIs(t, err, repository.ErrVersionMismatch)
	err = store.Append(ctx, entity.OrderStream, "o1", -1, placed)
	assert.ErrorIs(t, err, repository.ErrVersionMismatch)

	require.NoError(t, store.Append(ctx, entity.OrderStream, "o1", 1, entity.OrderConfirmed{OrderID: "o1"}))

	records, err := store.Load(ctx, entity.OrderStream, "o1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []int{1, 2}, []int{records[0].Version, records[1].Version})

	agg := entity.NewOrderAggregate("o1")
	require.NoError(t, agg.Rehydrate(records))
	assert.Equal(t, entity.OrderStatusConfirmed, agg.Status())
	assert.Equal(t, 2, agg.Version)
}

func TestEventStore_StreamsAreScopedByType(t *testing.T) {
	ctx := context.Background()
	store := NewEventStore()

	require.NoError(t, store.Append(ctx, entity.OrderStream, "x1", 0, entity.OrderDeleted{OrderID: "x1"}))
	require.NoError(t, store.Append(ctx, "audit", "x1", 0, entity.OrderDeleted{OrderID: "x1"}))

	records, err := store.Load(ctx, "audit", "x1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "audit", records[0].StreamType)

	empty, err := store.Load(ctx, entity.OrderStream, "missing")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestOrderRepository_ProjectionNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		o := entity.Order{ID: id, UserID: "u1", OrderedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, repo.UpdateOrderProjection(ctx, entity.OrderPlaced{Order: o}))
	}
	require.NoError(t, repo.UpdateOrderProjection(ctx, entity.OrderConfirmed{OrderID: "b"}))
	require.NoError(t, repo.UpdateOrderProjection(ctx, entity.OrderDeleted{OrderID: "a"}))

	orders, err := repo.FindByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "c", orders[0].ID)
	assert.Equal(t, entity.OrderStatusConfirmed, orders[1].Status)

	_, err = repo.FindByID(ctx, "a")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.Create(ctx, &entity.User{ID: "1", Email: "Asha@Example.com"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.User{ID: "2", Email: "asha@example.com"}), repository.ErrEmailExists)

	u, err := repo.FindByEmail(ctx, "ASHA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "1", u.ID)
}
