package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/nutriguard_backend/config"
)

func TestNew_DisabledWithoutBucket(t *testing.T) {
	c, err := New(config.S3Config{Region: "us-east-1"})
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNew_DefaultTTL(t *testing.T) {
	c, err := New(config.S3Config{
		Bucket:          "nutriguard",
		Region:          "us-east-1",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
	})
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "nutriguard", c.bucket)
	assert.Equal(t, float64(900), c.ttl.Seconds())
}
