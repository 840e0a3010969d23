package messaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestNewModuleAndAccessors(t *testing.T) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://127.0.0.1:1"))
	require.NoError(t, err)
	defer client.Disconnect(context.Background())

	m := NewModule(client.Database("soundwave_test"))
	defer m.Stop()

	require.NotNil(t, m.Service())
	require.NotNil(t, m.HTTPHandler())
}
