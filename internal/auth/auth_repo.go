package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	autherrors "go-employee-admin/internal/auth/errors"
	"go-employee-admin/internal/domain"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock

// Repository keeps sessions in Redis under "session:<id>" until they expire
// or the admin logs out.
type Repository interface {
	Save(ctx context.Context, s domain.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (domain.Session, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	rdb *redis.Client
}

func NewRepository(rdb *redis.Client) Repository {
	return &repository{rdb: rdb}
}

func (r *repository) Save(ctx context.Context, s domain.Session, ttl time.Duration) error {
	body, err := json.Marshal(toRecord(s, time.Now().UTC()))
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, sessionKey(s.ID), body, ttl).Err()
}

func (r *repository) Get(ctx context.Context, id string) (domain.Session, error) {
	raw, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, autherrors.ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, err
	}

	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Session{}, err
	}
	return rec.toDomain(), nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, sessionKey(id)).Err()
}
