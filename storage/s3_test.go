package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURI(t *testing.T) {
	bucket, key, err := ParseURI("s3://debates/2019/features.csv")
	require.NoError(t, err)
	assert.Equal(t, "debates", bucket)
	assert.Equal(t, "2019/features.csv", key)

	for _, bad := range []string{"s3://debates", "s3://debates/", "file:///tmp/x.csv", "s3:///key"} {
		_, _, err := ParseURI(bad)
		assert.Error(t, err, bad)
	}
}

func TestIsS3URI(t *testing.T) {
	assert.True(t, IsS3URI("s3://b/k"))
	assert.False(t, IsS3URI("outputs/features.csv"))
}

func TestNewFromEnvironment(t *testing.T) {
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("PRESIDENTIAL_S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("PRESIDENTIAL_S3_FORCE_PATH_STYLE", "true")

	u, err := New()
	require.NoError(t, err)
	assert.NotNil(t, u.up)
}
