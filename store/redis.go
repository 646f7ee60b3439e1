package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/rushteam/craftrec/core"
)

// RedisStore 是 Redis 实现的 Store，生产环境常用。
//
// 数据布局（prefix 默认 "craftrec"）：
//   - {prefix}:clicks:{user}  LIST，LPUSH 追加，表头为最近点击
//   - {prefix}:users          SET，登记过的用户
//   - {prefix}:pref:{user}    HASH，city / state / tags(JSON) / updated_at
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(ctx context.Context, addr string, db int, prefix string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("store: ping redis %s: %w", addr, err)
	}
	return NewRedisStoreFromClient(client, prefix), nil
}

// NewRedisStoreFromClient 包装已有客户端。
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "craftrec"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) Name() string { return "redis" }

func (r *RedisStore) clicksKey(userID string) string { return r.prefix + ":clicks:" + userID }
func (r *RedisStore) prefKey(userID string) string   { return r.prefix + ":pref:" + userID }
func (r *RedisStore) usersKey() string               { return r.prefix + ":users" }

func (r *RedisStore) AppendClick(ctx context.Context, userID string, productID int64) error {
	if err := checkUser(userID); err != nil {
		return err
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, r.clicksKey(userID), productID)
		pipe.SAdd(ctx, r.usersKey(), userID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store: append click: %w", err)
	}
	return nil
}

func (r *RedisStore) RecentClicks(ctx context.Context, userID string, limit int) ([]int64, error) {
	stop := int64(limit) - 1
	if limit <= 0 {
		stop = -1
	}
	vals, err := r.client.LRange(ctx, r.clicksKey(userID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("store: range clicks: %w", err)
	}
	out := make([]int64, 0, len(vals))
	for _, v := range vals {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("store: bad click entry %q: %w", v, err)
		}
		out = append(out, id)
	}
	return out, nil
}

func (r *RedisStore) GetPreference(ctx context.Context, userID string) (*core.UserPreference, error) {
	vals, err := r.client.HGetAll(ctx, r.prefKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("store: get preference: %w", err)
	}
	if len(vals) == 0 {
		return nil, nil
	}
	pref := &core.UserPreference{UserID: userID, City: vals["city"], State: vals["state"]}
	if t := vals["tags"]; t != "" {
		if err := json.Unmarshal([]byte(t), &pref.Tags); err != nil {
			return nil, fmt.Errorf("store: decode tags: %w", err)
		}
	}
	if u := vals["updated_at"]; u != "" {
		if pref.UpdatedAt, err = time.Parse(time.RFC3339Nano, u); err != nil {
			return nil, fmt.Errorf("store: decode updated_at %q: %w", u, err)
		}
	}
	return pref, nil
}

// UpsertPreference 先 DEL 再 HSET，在同一事务中完成整条替换。
func (r *RedisStore) UpsertPreference(ctx context.Context, pref *core.UserPreference) error {
	if pref == nil {
		return core.ErrStoreUserRequired
	}
	if err := checkUser(pref.UserID); err != nil {
		return err
	}
	fields := map[string]any{"updated_at": time.Now().UTC().Format(time.RFC3339Nano)}
	if pref.City != "" {
		fields["city"] = pref.City
	}
	if pref.State != "" {
		fields["state"] = pref.State
	}
	if len(pref.Tags) > 0 {
		b, err := json.Marshal(pref.Tags)
		if err != nil {
			return fmt.Errorf("store: encode tags: %w", err)
		}
		fields["tags"] = string(b)
	}
	key := r.prefKey(pref.UserID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store: upsert preference: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

var _ core.Store = (*RedisStore)(nil)
