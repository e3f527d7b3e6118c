package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/taskline/backend/domain"
	"github.com/taskline/backend/repository"
)

type dialogRepository struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewDialogRepository creates a Redis-backed dialog repository. The TTL is the
// expiry for abandoned multi-step flows.
func NewDialogRepository(client *redislib.Client, ttl time.Duration) repository.DialogRepository {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &dialogRepository{
		client: client,
		prefix: "dialog:",
		ttl:    ttl,
	}
}

func (r *dialogRepository) Get(ctx context.Context, chatID int64) (*domain.Dialog, error) {
	result, err := r.client.Get(ctx, r.key(chatID)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, domain.ErrDialogNotFound
		}
		return nil, err
	}

	var dialog domain.Dialog
	if err := json.Unmarshal([]byte(result), &dialog); err != nil {
		return nil, err
	}
	return &dialog, nil
}

func (r *dialogRepository) Save(ctx context.Context, dialog *domain.Dialog) error {
	if dialog == nil || dialog.ChatID == 0 {
		return domain.ErrInvalidPayload
	}
	if dialog.StartedAt.IsZero() {
		dialog.StartedAt = time.Now()
	}

	payload, err := json.Marshal(dialog)
	if err != nil {
		return err
	}
	// Every save renews the TTL, so only a genuinely abandoned flow expires.
	return r.client.Set(ctx, r.key(dialog.ChatID), payload, r.ttl).Err()
}

func (r *dialogRepository) Clear(ctx context.Context, chatID int64) error {
	return r.client.Del(ctx, r.key(chatID)).Err()
}

func (r *dialogRepository) key(chatID int64) string {
	return fmt.Sprintf("%s%d", r.prefix, chatID)
}
