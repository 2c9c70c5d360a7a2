package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateETagStable(t *testing.T) {
	id := primitive.NewObjectID()
	at := time.Now()

	assert.Equal(t, GenerateETag(id, at), GenerateETag(id, at))
}

func TestGenerateETagChangesWithUpdate(t *testing.T) {
	id := primitive.NewObjectID()
	at := time.Now()

	assert.NotEqual(t, GenerateETag(id, at), GenerateETag(id, at.Add(time.Second)))
	assert.NotEqual(t, GenerateETag(id, at), GenerateETag(primitive.NewObjectID(), at))
}

func TestGenerateETagQuoted(t *testing.T) {
	etag := GenerateETag(primitive.NewObjectID(), time.Now())
	assert.True(t, strings.HasPrefix(etag, `"`))
	assert.True(t, strings.HasSuffix(etag, `"`))
}
