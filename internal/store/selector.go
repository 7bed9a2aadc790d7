package store

import (
	"fmt"
	"log/slog"

	"go_5_wobushizi/internal/hanzi"
	"go_5_wobushizi/internal/model"
	"go_5_wobushizi/internal/repository"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Session はリクエスト1件で使うストアと節目フラグ
type Session struct {
	Identity   model.Identity
	Store      StateStore
	Milestones MilestoneFlags
}

// Selector は Identity からストアの実装を1度だけ選ぶ。
// 呼び出し側は StateStore だけを見て、ローカルかリモートかを意識しない。
type Selector struct {
	db        *gorm.DB
	idx       *hanzi.Index
	local     *LocalProvider
	stateRepo repository.CharacterStateRepository
	eventRepo repository.LogEventRepository
	redis     *redis.Client
	memory    *MemoryMilestoneRegistry
	logger    *slog.Logger
}

// NewSelector の db と redisClient は nil でもよい。db がなければリモート保存は使えない。
func NewSelector(db *gorm.DB, idx *hanzi.Index, local *LocalProvider, stateRepo repository.CharacterStateRepository, eventRepo repository.LogEventRepository, redisClient *redis.Client, logger *slog.Logger) *Selector {
	return &Selector{
		db:        db,
		idx:       idx,
		local:     local,
		stateRepo: stateRepo,
		eventRepo: eventRepo,
		redis:     redisClient,
		memory:    NewMemoryMilestoneRegistry(),
		logger:    logger,
	}
}

func (s *Selector) ForIdentity(id model.Identity) (*Session, error) {
	if id.Remote {
		if s.db == nil {
			return nil, fmt.Errorf("Selector.ForIdentity: remote storage is not configured: %w", model.ErrStorage)
		}
		var flags MilestoneFlags
		if s.redis != nil {
			flags = NewRedisMilestones(s.redis, id.UserID)
		} else {
			flags = s.memory.For(id.UserID)
		}
		return &Session{
			Identity:   id,
			Store:      NewRemoteStateStore(s.db, id.UserID, s.idx, s.stateRepo, s.eventRepo),
			Milestones: flags,
		}, nil
	}

	local, err := s.local.Store(id.DeviceID)
	if err != nil {
		return nil, err
	}
	return &Session{
		Identity:   id,
		Store:      local,
		Milestones: local.Milestones(),
	}, nil
}
