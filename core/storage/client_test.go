package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"teamboard/core/storage"
	"teamboard/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
	}{
		{
			name: "ValidConfig",
			cfg: storage.Config{
				Endpoint:  "localhost:9000",
				AccessKey: "testkey",
				SecretKey: "testsecret",
				Bucket:    "seeds",
				Region:    "us-east-1",
			},
		},
		{
			name: "EndpointWithHTTP",
			cfg:  storage.Config{Endpoint: "http://localhost:9000", AccessKey: "testkey", SecretKey: "testsecret"},
		},
		{
			name: "EndpointWithHTTPS",
			cfg:  storage.Config{Endpoint: "https://s3.amazonaws.com", AccessKey: "testkey", SecretKey: "testsecret", UseSSL: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(tt.cfg)
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestReadObject(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "seeds").Return(true, nil)
		client.On("GetObject", mock.Anything, "seeds", "teams.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte(`[]`))), nil)

		data, err := storage.ReadObject(ctx, client, "seeds", "teams.json")
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
		client.AssertExpectations(t)
	})

	t.Run("Missing Bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "seeds").Return(false, nil)

		_, err := storage.ReadObject(ctx, client, "seeds", "teams.json")
		assert.ErrorContains(t, err, "does not exist")
		client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Get Failure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "seeds").Return(true, nil)
		client.On("GetObject", mock.Anything, "seeds", "teams.json", mock.Anything).
			Return(nil, errors.New("access denied"))

		_, err := storage.ReadObject(ctx, client, "seeds", "teams.json")
		assert.ErrorContains(t, err, "access denied")
	})
}
