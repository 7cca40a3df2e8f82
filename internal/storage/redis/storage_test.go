package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/faceoffgame/faceoff/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestSetAndGet() {
	err := s.storage.Set(s.ctx, "faceoff:snapshot", `{"version":2}`)
	s.Require().NoError(err)

	value, err := s.storage.Get(s.ctx, "faceoff:snapshot")
	s.Require().NoError(err)
	s.Equal(`{"version":2}`, value)
}

func (s *StorageSuite) TestGetMissingKey() {
	_, err := s.storage.Get(s.ctx, "faceoff:missing")
	s.ErrorIs(err, storage.ErrKeyNotFound)
}

func (s *StorageSuite) TestSetOverwrites() {
	s.Require().NoError(s.storage.Set(s.ctx, "k", "first"))
	s.Require().NoError(s.storage.Set(s.ctx, "k", "second"))

	value, err := s.storage.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.Equal("second", value)
}

func (s *StorageSuite) TestDelete() {
	s.Require().NoError(s.storage.Set(s.ctx, "k", "v"))
	s.Require().NoError(s.storage.Delete(s.ctx, "k"))

	_, err := s.storage.Get(s.ctx, "k")
	s.ErrorIs(err, storage.ErrKeyNotFound)
}

func (s *StorageSuite) TestDeleteMissingKeyIsNoop() {
	s.NoError(s.storage.Delete(s.ctx, "nope"))
}

func (s *StorageSuite) TestSnapshotTTLApplied() {
	cfg := DefaultConfig()
	cfg.SnapshotTTL = time.Hour
	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	store := NewWithClient(client, cfg)
	defer func() { _ = store.Close() }()

	s.Require().NoError(store.Set(s.ctx, "expiring", "v"))

	s.mini.FastForward(2 * time.Hour)
	_, err := store.Get(s.ctx, "expiring")
	s.ErrorIs(err, storage.ErrKeyNotFound)
}
