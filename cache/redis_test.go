package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSetGetInvalidate(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := &Redis{client: db}
	ctx := context.Background()
	key := Key("articles", Public)
	val := []byte(`[{"title":"x"}]`)

	mock.ExpectSet(key, val, time.Minute).SetVal("OK")
	require.NoError(t, c.Set(ctx, key, val, time.Minute))

	mock.ExpectGet(key).SetVal(string(val))
	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, val, got)

	mock.ExpectGet("missing").RedisNil()
	_, err = c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	mock.ExpectDel(Keys("articles")...).SetVal(2)
	require.NoError(t, c.Invalidate(ctx, Keys("articles")...))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisErrorsPassThrough(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := &Redis{client: db}
	ctx := context.Background()

	mock.ExpectGet("key").SetErr(errors.New("get failed"))
	_, err := c.Get(ctx, "key")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
	assert.Contains(t, err.Error(), "get failed")

	mock.ExpectDel("key").SetErr(errors.New("del failed"))
	err = c.Invalidate(ctx, "key")
	assert.ErrorContains(t, err, "del failed")
}

func TestRedisInvalidateNothing(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := &Redis{client: db}

	require.NoError(t, c.Invalidate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
