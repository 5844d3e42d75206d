package cache

import (
	"context"
	"encoding/json"
	"time"
)

// GetOrLoadJSON 读穿缓存的实体版本。
// load 出错或返回 nil 时不写缓存；缓存里的 null 或坏数据视为未命中，删掉后重新回源
func GetOrLoadJSON[T any](
	c *Cache,
	ctx context.Context,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (*T, error),
) (*T, error) {
	loadJSON := func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil || v == nil {
			return nil, err
		}
		return json.Marshal(v)
	}

	b, err := c.GetOrLoad(ctx, key, ttl, loadJSON)
	if err != nil {
		return nil, err
	}
	if out, ok := decode[T](b); ok {
		return out, nil
	}
	if b == nil {
		return nil, nil
	}

	_ = c.Del(ctx, key)
	if b, err = c.GetOrLoad(ctx, key, ttl, loadJSON); err != nil {
		return nil, err
	}
	out, _ := decode[T](b)
	return out, nil
}

func decode[T any](b []byte) (*T, bool) {
	if len(b) == 0 || string(b) == "null" {
		return nil, false
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, false
	}
	return &out, true
}
