package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// 宠物动作、测验提交这类纯增量操作没有天然的幂等键，
// 客户端可带 requestId，这里用 Redis SET NX 在窗口期内去重，防止重放重复计分
const dedupTTL = 10 * time.Minute

// dedupStore 是 Deduper 对 Redis 的最小依赖面，*redis.Client 天然满足
type dedupStore interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type Deduper struct {
	store dedupStore
}

func NewDeduper(rdb *redis.Client) *Deduper {
	d := &Deduper{}
	// nil 的 *redis.Client 不能直接塞进接口字段，否则 nil 判断失效
	if rdb != nil {
		d.store = rdb
	}
	return d
}

// 键按用户隔离，不同用户携带相同 requestId 不会互相挤占
func dedupKey(scope string, userID uint, requestID string) string {
	return fmt.Sprintf("dedup:%s:%d:%s", scope, userID, requestID)
}

// Reserve 尝试占用请求ID；返回 false 表示同一请求已被处理过
// requestId 为空或 Redis 不可用时不做去重（宁可放行也不阻断用户操作）
func (d *Deduper) Reserve(ctx context.Context, scope string, userID uint, requestID string) bool {
	if requestID == "" || d.store == nil {
		return true
	}

	ok, err := d.store.SetNX(ctx, dedupKey(scope, userID, requestID), 1, dedupTTL).Result()
	if err != nil {
		return true
	}
	return ok
}

// Release 释放占用。动作未落库就失败时必须调用，
// 否则客户端带同一 requestId 的合法重试会在TTL内被误判为重放
func (d *Deduper) Release(ctx context.Context, scope string, userID uint, requestID string) {
	if requestID == "" || d.store == nil {
		return
	}
	d.store.Del(ctx, dedupKey(scope, userID, requestID))
}
