package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/crewflow/console/pkg/api"
)

// RedisStore persists flow documents in redis, one JSON value per flow
// plus a set of known flow IDs for listing
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a redis-backed flow store
func NewRedisStore(addr, password string, db int, prefix string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		prefix: prefix,
	}
}

func (s *RedisStore) Create(
	ctx context.Context, doc *api.FlowConfiguration,
) (*api.FlowConfiguration, error) {
	res := doc.Clone()
	if res.ID == "" {
		res.ID = api.FlowID(uuid.NewString())
	}

	data, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}

	ok, err := s.client.SetNX(ctx, s.flowKey(res.ID), data, 0).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFlowExists, res.ID)
	}
	if err := s.client.SAdd(ctx, s.indexKey(), string(res.ID)).Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *RedisStore) Get(
	ctx context.Context, id api.FlowID,
) (*api.FlowConfiguration, error) {
	data, err := s.client.Get(ctx, s.flowKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrFlowNotFound, id)
		}
		return nil, err
	}

	var doc api.FlowConfiguration
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *RedisStore) Update(
	ctx context.Context, id api.FlowID, doc *api.FlowConfiguration,
) (*api.FlowConfiguration, error) {
	res := doc.Clone()
	res.ID = id

	data, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}

	exists, err := s.client.Exists(ctx, s.flowKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrFlowNotFound, id)
	}

	if err := s.client.Set(ctx, s.flowKey(id), data, 0).Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *RedisStore) Delete(ctx context.Context, id api.FlowID) error {
	deleted, err := s.client.Del(ctx, s.flowKey(id)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("%w: %s", ErrFlowNotFound, id)
	}
	return s.client.SRem(ctx, s.indexKey(), string(id)).Err()
}

func (s *RedisStore) List(ctx context.Context) ([]*api.FlowSummary, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	slices.Sort(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.flowKey(api.FlowID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	var res []*api.FlowSummary
	for _, value := range values {
		data, ok := value.(string)
		if !ok {
			continue
		}
		var doc api.FlowConfiguration
		if err := json.Unmarshal([]byte(data), &doc); err != nil {
			return nil, err
		}
		res = append(res, doc.Summarize())
	}
	return res, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) flowKey(id api.FlowID) string {
	return fmt.Sprintf("%s:flow:%s", s.prefix, id)
}

func (s *RedisStore) indexKey() string {
	return s.prefix + ":flows"
}
