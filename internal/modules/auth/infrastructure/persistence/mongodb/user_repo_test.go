package mongodb_test

import (
	"context"
	"errors"
	"testing"

	"github.com/saransh1220/soundwave/internal/modules/auth/domain"
	"github.com/saransh1220/soundwave/internal/modules/auth/infrastructure/persistence/mongodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const usersNS = "soundwave.users"

func userDoc(clerkID, name string, role domain.Role) bson.D {
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "clerkId", Value: clerkID},
		{Key: "fullName", Value: name},
		{Key: "role", Value: string(role)},
	}
}

func TestMongoUserRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("created", func(mt *mtest.T) {
		repo := mongodb.NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user := &domain.User{ClerkID: "user_1", Role: domain.RoleUser}
		require.NoError(mt, repo.Create(context.Background(), user))
		assert.False(mt, user.ID.IsZero())
	})

	mt.Run("duplicate subject", func(mt *mtest.T) {
		repo := mongodb.NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error collection: soundwave.users index: clerkId_1",
		}))

		err := repo.Create(context.Background(), &domain.User{ClerkID: "user_1"})
		assert.True(mt, errors.Is(err, domain.ErrUserExists))
	})
}

func TestMongoUserRepository_FindByClerkID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := mongodb.NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, userDoc("user_1", "Ada", domain.RoleAdmin)))

		user, err := repo.FindByClerkID(context.Background(), "user_1")
		require.NoError(mt, err)
		assert.Equal(mt, "Ada", user.FullName)
		assert.Equal(mt, domain.RoleAdmin, user.Role)
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := mongodb.NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))

		_, err := repo.FindByClerkID(context.Background(), "nobody")
		assert.True(mt, errors.Is(err, domain.ErrUserNotFound))
	})
}

func TestMongoUserRepository_ListExcept(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("others", func(mt *mtest.T) {
		repo := mongodb.NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch,
			userDoc("user_2", "Bob", domain.RoleUser),
			userDoc("user_3", "Cy", domain.RoleUser),
		))

		users, err := repo.ListExcept(context.Background(), "user_1")
		require.NoError(mt, err)
		assert.Len(mt, users, 2)
	})

	mt.Run("error", func(mt *mtest.T) {
		repo := mongodb.NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Message: "not authorized"}))

		_, err := repo.ListExcept(context.Background(), "user_1")
		require.Error(mt, err)
	})
}
