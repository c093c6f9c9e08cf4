package redis

import (
	"context"
	"log"
	"memoras-backend/internal/config"
	"time"

	"github.com/redis/go-redis/v9"
)

var Ctx = context.Background()
var RedisClient *redis.Client

// SessionTTL matches the access token lifetime.
const SessionTTL = 72 * time.Hour

func InitRedis() {
	RedisClient = redis.NewClient(&redis.Options{
		Addr: config.AppConfig.RedisAddress,
	})
	_, err := RedisClient.Ping(Ctx).Result()
	if err != nil {
		log.Println("Redis not available. Running without Redis.")
		RedisClient = nil
		return
	}

	log.Println("Redis connected successfully.")
}

// StoreSession records an issued token so it can be revoked on logout.
// No-op when redis is down; auth then falls back to pure JWT verification.
func StoreSession(ctx context.Context, token string) {
	if RedisClient == nil {
		return
	}
	if err := RedisClient.Set(ctx, sessionKey(token), 1, SessionTTL).Err(); err != nil {
		log.Printf("failed to store session: %v", err)
	}
}

// SessionExists reports whether a token is still live. When redis is down
// every token is treated as live.
func SessionExists(ctx context.Context, token string) bool {
	if RedisClient == nil {
		return true
	}
	exists, err := RedisClient.Exists(ctx, sessionKey(token)).Result()
	if err != nil {
		return true
	}
	return exists > 0
}

// RevokeSession drops a token from the allow-list.
func RevokeSession(ctx context.Context, token string) {
	if RedisClient == nil {
		return
	}
	if err := RedisClient.Del(ctx, sessionKey(token)).Err(); err != nil {
		log.Printf("failed to revoke session: %v", err)
	}
}

func sessionKey(token string) string {
	return "session:" + token
}
