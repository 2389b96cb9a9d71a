package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"rentease_backend/internal/feature/auth/domain/entity"
	"rentease_backend/internal/feature/auth/usecase"
)

const usersNS = "rentease.users"

func newMockT(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestUserMongo_Create(t *testing.T) {
	mt := newMockT(t)
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mt.Run("assigns id and timestamps", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewUserMongo(mt.DB)
		repo.now = func() time.Time { return fixed }

		u := &entity.User{Name: "Asha", Email: "asha@example.com", Password: "hash"}
		err := repo.Create(context.Background(), u)

		require.NoError(mt, err)
		assert.True(mt, primitive.IsValidObjectID(u.ID))
		assert.Equal(mt, fixed, u.CreatedAt)
		assert.Equal(mt, fixed, u.UpdatedAt)
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: rentease.users index: email_1",
		}))
		repo := NewUserMongo(mt.DB)

		err := repo.Create(context.Background(), &entity.User{Email: "asha@example.com"})

		assert.ErrorIs(mt, err, usecase.ErrEmailAlreadyExists)
	})

	mt.Run("nil user", func(mt *mtest.T) {
		repo := NewUserMongo(mt.DB)

		assert.Error(mt, repo.Create(context.Background(), nil))
	})
}

func TestUserMongo_FindByEmail(t *testing.T) {
	mt := newMockT(t)

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Asha"},
			{Key: "email", Value: "asha@example.com"},
			{Key: "password", Value: "hash"},
		}))
		repo := NewUserMongo(mt.DB)

		u, err := repo.FindByEmail(context.Background(), "asha@example.com")

		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), u.ID)
		assert.Equal(mt, "Asha", u.Name)
		assert.Equal(mt, "hash", u.Password)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))
		repo := NewUserMongo(mt.DB)

		u, err := repo.FindByEmail(context.Background(), "ghost@example.com")

		assert.Nil(mt, u)
		assert.ErrorIs(mt, err, usecase.ErrUserNotFound)
	})
}

func TestUserMongo_FindByID_InvalidHex(t *testing.T) {
	mt := newMockT(t)

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewUserMongo(mt.DB)

		_, err := repo.FindByID(context.Background(), "not-an-object-id")

		assert.ErrorIs(mt, err, usecase.ErrUserNotFound)
	})
}

func TestUserMongo_UpdatePassword(t *testing.T) {
	mt := newMockT(t)

	mt.Run("matched", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		repo := NewUserMongo(mt.DB)

		assert.NoError(mt, repo.UpdatePassword(context.Background(), "asha@example.com", "new"))
	})

	mt.Run("no such user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))
		repo := NewUserMongo(mt.DB)

		err := repo.UpdatePassword(context.Background(), "ghost@example.com", "new")

		assert.ErrorIs(mt, err, usecase.ErrUserNotFound)
	})
}

func TestUserMongo_EnsureIndexes(t *testing.T) {
	mt := newMockT(t)

	mt.Run("creates unique email index", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewUserMongo(mt.DB)

		assert.NoError(mt, repo.EnsureIndexes(context.Background()))
	})
}
