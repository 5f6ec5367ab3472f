// FILE: test/integration/gorm_integration_test.go
package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"spacefed-be/internal/entity"
	"spacefed-be/internal/repository/specification"
	"spacefed-be/internal/repository/unitofwork"
	"spacefed-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.MembershipRepository())
	assert.NotNil(t, uow.MandateRepository())
	assert.NotNil(t, uow.WebhookEventRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	ctx := context.Background()

	t.Run("Membership CRUD round trip", func(t *testing.T) {
		space := &entity.Space{Id: uuid.New(), Name: "Integration Space", Email: uuid.NewString() + "@example.com"}
		require.NoError(t, uow.SpaceRepository().Create(ctx, space))

		user := &entity.User{Id: uuid.New(), FirstName: "Int", LastName: "Tester", Email: uuid.NewString() + "@example.com"}
		require.NoError(t, uow.UserRepository().Create(ctx, user))

		m := &entity.SpaceMembership{
			Id:          uuid.New(),
			Status:      entity.MembershipStatusPending,
			Fee:         decimal.RequireFromString("20.00"),
			Statement:   "integration test",
			CreatedAt:   time.Now(),
			SpaceId:     space.Id,
			AppliedById: user.Id,
		}
		require.NoError(t, uow.MembershipRepository().Create(ctx, m))

		found, err := uow.MembershipRepository().FindOne(ctx, specification.ByID{ID: m.Id})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, entity.MembershipStatusPending, found.Status)
		assert.True(t, found.Fee.Equal(m.Fee))
	})

	t.Run("Conditional status transition wins exactly once", func(t *testing.T) {
		space := &entity.Space{Id: uuid.New(), Name: "CAS Space", Email: uuid.NewString() + "@example.com"}
		require.NoError(t, uow.SpaceRepository().Create(ctx, space))
		user := &entity.User{Id: uuid.New(), FirstName: "Cas", LastName: "Tester", Email: uuid.NewString() + "@example.com"}
		require.NoError(t, uow.UserRepository().Create(ctx, user))

		m := &entity.SpaceMembership{
			Id:          uuid.New(),
			Status:      entity.MembershipStatusPending,
			Fee:         decimal.RequireFromString("20.00"),
			CreatedAt:   time.Now(),
			SpaceId:     space.Id,
			AppliedById: user.Id,
		}
		require.NoError(t, uow.MembershipRepository().Create(ctx, m))

		won, err := uow.MembershipRepository().UpdateStatusIfPending(ctx, m.Id, entity.MembershipStatusApproved)
		require.NoError(t, err)
		assert.True(t, won)

		won, err = uow.MembershipRepository().UpdateStatusIfPending(ctx, m.Id, entity.MembershipStatusRejected)
		require.NoError(t, err)
		assert.False(t, won, "second transition must lose")

		found, err := uow.MembershipRepository().FindOne(ctx, specification.ByID{ID: m.Id})
		require.NoError(t, err)
		assert.Equal(t, entity.MembershipStatusApproved, found.Status)
	})

	t.Run("Webhook event dedupe on conflict", func(t *testing.T) {
		id := "EV-" + uuid.NewString()
		payload := datatypes.JSON([]byte(`{"id":"x"}`))

		seen, err := uow.WebhookEventRepository().Seen(ctx, id)
		require.NoError(t, err)
		assert.False(t, seen)

		fresh, err := uow.WebhookEventRepository().Record(ctx, id, "payments", "paid_out", payload)
		require.NoError(t, err)
		assert.True(t, fresh)

		seen, err = uow.WebhookEventRepository().Seen(ctx, id)
		require.NoError(t, err)
		assert.True(t, seen)

		fresh, err = uow.WebhookEventRepository().Record(ctx, id, "payments", "paid_out", payload)
		require.NoError(t, err)
		assert.False(t, fresh, "replayed event id must be rejected")
	})

	t.Run("FindOne returns nil on missing record", func(t *testing.T) {
		found, err := uow.MembershipRepository().FindOne(ctx, specification.ByID{ID: uuid.New()})
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}
