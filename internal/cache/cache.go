package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/felipepalage/agorahora-api/internal/config"
)

// Cache guarda respostas da listagem pública de estabelecimentos por um
// TTL curto. O flag "aberta" depende do minuto corrente, então o TTL
// nunca passa de um minuto.
type Cache struct {
	client *redis.Client
}

const DefaultTTL = 60 * time.Second

func New(cfg *config.Config) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	return &Cache{client: client}
}

// GetJSON preenche dest a partir do cache; o segundo retorno indica hit.
// Falha de rede conta como miss, nunca quebra a requisição.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, b, ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	c.client.Del(ctx, keys...)
}
