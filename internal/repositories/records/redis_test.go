package records

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisStoreTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	store  Store
	ctx    context.Context
}

func (s *RedisStoreTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	s.store = s.newStore()
	s.ctx = context.Background()
}

func (s *RedisStoreTestSuite) newStore() Store {
	store, err := NewRedis(&Config{
		RedisClient: s.client,
		Collection:  "quarantine",
	})
	s.Require().NoError(err)
	return store
}

func (s *RedisStoreTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisStoreTestSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreTestSuite))
}

func (s *RedisStoreTestSuite) TestNewRedisValidatesConfig() {
	_, err := NewRedis(nil)
	s.Error(err)

	_, err = NewRedis(&Config{})
	s.Error(err)

	_, err = NewRedis(&Config{RedisClient: s.client})
	s.Error(err)
}

func (s *RedisStoreTestSuite) TestPutGetDelete() {
	s.Require().NoError(s.store.Put(s.ctx, "guild-1", "member-1", []byte(`{"a":1}`)))

	value, err := s.store.Get(s.ctx, "guild-1", "member-1")
	s.Require().NoError(err)
	s.Equal(`{"a":1}`, string(value))

	// Written through to redis
	stored := s.mr.HGet("jailbird:quarantine:guild-1", "member-1")
	s.Equal(`{"a":1}`, stored)
	members, err := s.mr.Members("jailbird:quarantine:communities")
	s.Require().NoError(err)
	s.Equal([]string{"guild-1"}, members)

	s.Require().NoError(s.store.Delete(s.ctx, "guild-1", "member-1"))
	_, err = s.store.Get(s.ctx, "guild-1", "member-1")
	s.ErrorIs(err, ErrNotFound)
	s.Equal("", s.mr.HGet("jailbird:quarantine:guild-1", "member-1"))
}

func (s *RedisStoreTestSuite) TestHydratesFromRedisAfterRestart() {
	s.Require().NoError(s.store.Put(s.ctx, "guild-1", "member-1", []byte("one")))
	s.Require().NoError(s.store.Put(s.ctx, "guild-1", "member-2", []byte("two")))

	restarted := s.newStore()

	all, err := restarted.List(s.ctx, "guild-1")
	s.Require().NoError(err)
	s.Len(all, 2)
	s.Equal("one", string(all["member-1"]))
	s.Equal("two", string(all["member-2"]))

	communities, err := restarted.Communities(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"guild-1"}, communities)
}

func (s *RedisStoreTestSuite) TestListIsScopedPerCommunity() {
	s.Require().NoError(s.store.Put(s.ctx, "guild-1", "member-1", []byte("one")))
	s.Require().NoError(s.store.Put(s.ctx, "guild-2", "member-9", []byte("nine")))

	all, err := s.store.List(s.ctx, "guild-1")
	s.Require().NoError(err)
	s.Len(all, 1)
	s.Contains(all, "member-1")
}

func (s *RedisStoreTestSuite) TestMemoryStaysAuthoritativeWhenRedisFails() {
	s.Require().NoError(s.store.Put(s.ctx, "guild-1", "member-1", []byte("before")))

	s.mr.SetError("READONLY simulated outage")

	s.Require().NoError(s.store.Put(s.ctx, "guild-1", "member-1", []byte("after")))
	value, err := s.store.Get(s.ctx, "guild-1", "member-1")
	s.Require().NoError(err)
	s.Equal("after", string(value))

	s.Require().NoError(s.store.Delete(s.ctx, "guild-1", "member-1"))

	s.mr.SetError("")

	// The failed delete never resurrects the record in this process
	_, err = s.store.Get(s.ctx, "guild-1", "member-1")
	s.ErrorIs(err, ErrNotFound)
	s.Equal("before", s.mr.HGet("jailbird:quarantine:guild-1", "member-1"))
}

func (s *RedisStoreTestSuite) TestHydrationRetriesAfterFailure() {
	seed := s.newStore()
	s.Require().NoError(seed.Put(s.ctx, "guild-1", "member-1", []byte("stored")))

	s.mr.SetError("LOADING")
	_, err := s.store.Get(s.ctx, "guild-1", "member-1")
	s.ErrorIs(err, ErrNotFound)

	s.Require().NoError(s.store.Put(s.ctx, "guild-1", "member-2", []byte("memory")))
	s.mr.SetError("")

	all, err := s.store.List(s.ctx, "guild-1")
	s.Require().NoError(err)
	s.Equal("stored", string(all["member-1"]))
	s.Equal("memory", string(all["member-2"]))
}

func (s *RedisStoreTestSuite) TestEmptyKeysRejected() {
	s.Error(s.store.Put(s.ctx, "", "k", []byte("v")))
	s.Error(s.store.Put(s.ctx, "g", "", []byte("v")))
	_, err := s.store.Get(s.ctx, "g", "")
	s.Error(err)
	s.Error(s.store.Delete(s.ctx, "", "k"))
}
