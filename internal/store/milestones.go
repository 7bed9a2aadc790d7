package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go_5_wobushizi/internal/model"

	"github.com/peterbourgon/diskv/v3"
	"github.com/redis/go-redis/v9"
)

// MilestoneFlags は既知字数の節目を通知済みかどうかを1ユーザー分保持する。
type MilestoneFlags interface {
	Seen(ctx context.Context, threshold int) (bool, error)
	MarkSeen(ctx context.Context, threshold int) error
}

// --- diskv (端末ローカル) ---

type diskvMilestones struct {
	mu *sync.Mutex
	d  *diskv.Diskv
}

func localMilestoneKey(threshold int) string {
	return fmt.Sprintf("wobushizi:milestone_%d_seen", threshold)
}

func (m *diskvMilestones) Seen(ctx context.Context, threshold int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.d.Has(localMilestoneKey(threshold)), nil
}

func (m *diskvMilestones) MarkSeen(ctx context.Context, threshold int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.d.Write(localMilestoneKey(threshold), []byte("1")); err != nil {
		return fmt.Errorf("diskvMilestones.MarkSeen: %w: %v", model.ErrStorage, err)
	}
	return nil
}

// --- Redis (リモートユーザー) ---

type redisMilestones struct {
	client *redis.Client
	userID string
}

// NewRedisMilestones はユーザーごとのキー wobushizi:milestone:<user>:<n> に保存する。
func NewRedisMilestones(client *redis.Client, userID string) MilestoneFlags {
	return &redisMilestones{client: client, userID: userID}
}

func (m *redisMilestones) key(threshold int) string {
	return fmt.Sprintf("wobushizi:milestone:%s:%d", m.userID, threshold)
}

func (m *redisMilestones) Seen(ctx context.Context, threshold int) (bool, error) {
	_, err := m.client.Get(ctx, m.key(threshold)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redisMilestones.Seen: %w: %v", model.ErrStorage, err)
	}
	return true, nil
}

func (m *redisMilestones) MarkSeen(ctx context.Context, threshold int) error {
	if err := m.client.Set(ctx, m.key(threshold), "1", 0).Err(); err != nil {
		return fmt.Errorf("redisMilestones.MarkSeen: %w: %v", model.ErrStorage, err)
	}
	return nil
}

// --- プロセス内 (Redis 無効時) ---

// MemoryMilestoneRegistry は全ユーザー分のフラグをプロセス内に持つ。再起動で消える。
type MemoryMilestoneRegistry struct {
	mu   sync.Mutex
	seen map[string]map[int]bool
}

func NewMemoryMilestoneRegistry() *MemoryMilestoneRegistry {
	return &MemoryMilestoneRegistry{seen: make(map[string]map[int]bool)}
}

func (r *MemoryMilestoneRegistry) For(userID string) MilestoneFlags {
	return &memoryMilestones{r: r, userID: userID}
}

type memoryMilestones struct {
	r      *MemoryMilestoneRegistry
	userID string
}

func (m *memoryMilestones) Seen(ctx context.Context, threshold int) (bool, error) {
	m.r.mu.Lock()
	defer m.r.mu.Unlock()
	return m.r.seen[m.userID][threshold], nil
}

func (m *memoryMilestones) MarkSeen(ctx context.Context, threshold int) error {
	m.r.mu.Lock()
	defer m.r.mu.Unlock()
	if m.r.seen[m.userID] == nil {
		m.r.seen[m.userID] = make(map[int]bool)
	}
	m.r.seen[m.userID][threshold] = true
	return nil
}
