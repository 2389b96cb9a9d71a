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

	"rentease_backend/internal/feature/property/domain/entity"
	"rentease_backend/internal/feature/property/usecase"
)

const testNS = "rentease.properties"

var (
	testOwner   = primitive.NewObjectID()
	testCreated = time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC)
)

func propertyDoc(id primitive.ObjectID, title string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "userId", Value: testOwner},
		{Key: "type", Value: "2BHK"},
		{Key: "title", Value: title},
		{Key: "location", Value: "Goa"},
		{Key: "price", Value: "₹3,500/day"},
		{Key: "beds", Value: 2},
		{Key: "gender", Value: "Family"},
		{Key: "amenities", Value: bson.A{"WiFi", "AC"}},
		{Key: "images", Value: bson.A{"https://res.cloudinary.com/demo/image/upload/v1/rentease_properties/a.jpg"}},
		{Key: "verified", Value: true},
		{Key: "rooms", Value: bson.D{
			{Key: "2BHK", Value: bson.D{{Key: "price", Value: "₹3,500/day"}, {Key: "maxGuests", Value: "4"}}},
		}},
		{Key: "details", Value: bson.D{
			{Key: "2BHK", Value: bson.D{{Key: "price", Value: "3500"}, {Key: "tags", Value: bson.A{"sea view"}}}},
		}},
		{Key: "createdAt", Value: testCreated},
		{Key: "updatedAt", Value: testCreated},
	}
}

func newMockT(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestPropertyMongo_Create(t *testing.T) {
	mt := newMockT(t)

	mt.Run("assigns id and timestamps", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewPropertyMongo(mt.DB)
		repo.now = func() time.Time { return testCreated }

		p := &entity.Property{UserID: testOwner.Hex(), Title: "Sea view flat", Location: "Goa", Price: "₹3,500/day"}
		err := repo.Create(context.Background(), p)

		require.NoError(mt, err)
		_, err = primitive.ObjectIDFromHex(p.ID)
		assert.NoError(mt, err)
		assert.Equal(mt, testCreated, p.CreatedAt)
		assert.Equal(mt, testCreated, p.UpdatedAt)
	})

	mt.Run("invalid owner id", func(mt *mtest.T) {
		repo := NewPropertyMongo(mt.DB)

		err := repo.Create(context.Background(), &entity.Property{UserID: "not-hex"})

		assert.Error(mt, err)
	})

	mt.Run("write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 121, Message: "validation failed"}))
		repo := NewPropertyMongo(mt.DB)

		err := repo.Create(context.Background(), &entity.Property{UserID: testOwner.Hex()})

		assert.Error(mt, err)
	})
}

func TestPropertyMongo_FindByID(t *testing.T) {
	mt := newMockT(t)

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch, propertyDoc(id, "Sea view flat")))
		repo := NewPropertyMongo(mt.DB)

		p, err := repo.FindByID(context.Background(), id.Hex())

		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), p.ID)
		assert.Equal(mt, testOwner.Hex(), p.UserID)
		assert.Equal(mt, "Sea view flat", p.Title)
		assert.Equal(mt, entity.GenderFamily, p.Gender)
		assert.Equal(mt, []string{"WiFi", "AC"}, p.Amenities)
		assert.True(mt, p.Verified)
		assert.Equal(mt, entity.RoomDetail{Price: "₹3,500/day", MaxGuests: "4"}, p.Rooms["2BHK"])
		assert.Equal(mt, map[string]any{"price": "3500", "tags": []any{"sea view"}}, p.Details["2BHK"])
		assert.Equal(mt, testCreated, p.CreatedAt.UTC())
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch))
		repo := NewPropertyMongo(mt.DB)

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())

		assert.ErrorIs(mt, err, usecase.ErrPropertyNotFound)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewPropertyMongo(mt.DB)

		_, err := repo.FindByID(context.Background(), "12345")

		assert.ErrorIs(mt, err, usecase.ErrPropertyNotFound)
	})

	mt.Run("server error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad query", Name: "BadValue"}))
		repo := NewPropertyMongo(mt.DB)

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())

		assert.Error(mt, err)
		assert.NotErrorIs(mt, err, usecase.ErrPropertyNotFound)
	})
}

func TestPropertyMongo_List(t *testing.T) {
	mt := newMockT(t)

	mt.Run("returns all documents", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch,
			propertyDoc(primitive.NewObjectID(), "Newer"),
			propertyDoc(primitive.NewObjectID(), "Older"),
		))
		repo := NewPropertyMongo(mt.DB)

		got, err := repo.List(context.Background())

		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, "Newer", got[0].Title)
		assert.Equal(mt, "Older", got[1].Title)
	})

	mt.Run("empty collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch))
		repo := NewPropertyMongo(mt.DB)

		got, err := repo.List(context.Background())

		require.NoError(mt, err)
		assert.NotNil(mt, got)
		assert.Empty(mt, got)
	})

	mt.Run("owner with malformed id", func(mt *mtest.T) {
		repo := NewPropertyMongo(mt.DB)

		got, err := repo.ListByOwner(context.Background(), "nope")

		require.NoError(mt, err)
		assert.Empty(mt, got)
	})

	mt.Run("owner listings", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch, propertyDoc(primitive.NewObjectID(), "Mine")))
		repo := NewPropertyMongo(mt.DB)

		got, err := repo.ListByOwner(context.Background(), testOwner.Hex())

		require.NoError(mt, err)
		require.Len(mt, got, 1)
		assert.Equal(mt, testOwner.Hex(), got[0].UserID)
	})
}

func TestPropertyMongo_Update(t *testing.T) {
	mt := newMockT(t)

	mt.Run("matched", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		repo := NewPropertyMongo(mt.DB)
		updated := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
		repo.now = func() time.Time { return updated }

		p := &entity.Property{ID: primitive.NewObjectID().Hex(), UserID: testOwner.Hex(), Title: "Renamed", CreatedAt: testCreated}
		err := repo.Update(context.Background(), p)

		require.NoError(mt, err)
		assert.Equal(mt, updated, p.UpdatedAt)
	})

	mt.Run("not owned", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		repo := NewPropertyMongo(mt.DB)

		err := repo.Update(context.Background(), &entity.Property{ID: primitive.NewObjectID().Hex(), UserID: primitive.NewObjectID().Hex()})

		assert.ErrorIs(mt, err, usecase.ErrPropertyNotFound)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewPropertyMongo(mt.DB)

		err := repo.Update(context.Background(), &entity.Property{ID: "x", UserID: testOwner.Hex()})

		assert.ErrorIs(mt, err, usecase.ErrPropertyNotFound)
	})
}

func TestPropertyMongo_DeleteByIDAndOwner(t *testing.T) {
	mt := newMockT(t)

	mt.Run("returns deleted document", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: propertyDoc(id, "Gone")}})
		repo := NewPropertyMongo(mt.DB)

		p, err := repo.DeleteByIDAndOwner(context.Background(), id.Hex(), testOwner.Hex())

		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), p.ID)
		assert.Len(mt, p.Images, 1)
	})

	mt.Run("no match", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})
		repo := NewPropertyMongo(mt.DB)

		_, err := repo.DeleteByIDAndOwner(context.Background(), primitive.NewObjectID().Hex(), testOwner.Hex())

		assert.ErrorIs(mt, err, usecase.ErrPropertyNotFound)
	})

	mt.Run("malformed owner", func(mt *mtest.T) {
		repo := NewPropertyMongo(mt.DB)

		_, err := repo.DeleteByIDAndOwner(context.Background(), primitive.NewObjectID().Hex(), "owner")

		assert.ErrorIs(mt, err, usecase.ErrPropertyNotFound)
	})
}

func TestPropertyMongo_UpdatePrice(t *testing.T) {
	mt := newMockT(t)

	mt.Run("matched", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		repo := NewPropertyMongo(mt.DB)

		assert.NoError(mt, repo.UpdatePrice(context.Background(), primitive.NewObjectID().Hex(), "₹1,200/day"))
	})

	mt.Run("missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		repo := NewPropertyMongo(mt.DB)

		err := repo.UpdatePrice(context.Background(), primitive.NewObjectID().Hex(), "₹1,200/day")

		assert.ErrorIs(mt, err, usecase.ErrPropertyNotFound)
	})
}

func TestPlain(t *testing.T) {
	t.Parallel()

	in := primitive.D{
		{Key: "a", Value: primitive.A{primitive.D{{Key: "b", Value: int32(1)}}}},
		{Key: "c", Value: primitive.M{"d": "e"}},
	}

	got := plain(in)

	assert.Equal(t, map[string]any{
		"a": []any{map[string]any{"b": int32(1)}},
		"c": map[string]any{"d": "e"},
	}, got)
}
