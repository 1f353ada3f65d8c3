package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/comercio/backend/internal/application/importer"
	"github.com/comercio/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultChannelPrefix = "notifications:user:"

// Message is the payload published to a user's notification channel
type Message struct {
	UserID    uuid.UUID `json:"user_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// RedisNotifier publishes user notifications over Redis pub/sub. Each user
// has one channel; whoever holds the user's session subscribes to it.
// Publish errors are logged and swallowed because notification delivery is
// best effort.
type RedisNotifier struct {
	client        *redis.Client
	channelPrefix string
	logger        *zap.Logger
}

// NewRedisNotifier creates a notifier with its own Redis connection
func NewRedisNotifier(cfg config.RedisConfig, log *zap.Logger) (*RedisNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisNotifierWithClient(client, log), nil
}

// NewRedisNotifierWithClient creates a notifier over an existing client.
// Useful for testing or when sharing a client across components.
func NewRedisNotifierWithClient(client *redis.Client, log *zap.Logger) *RedisNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisNotifier{
		client:        client,
		channelPrefix: defaultChannelPrefix,
		logger:        log.Named("notifier"),
	}
}

// ChannelFor returns the pub/sub channel name for a user
func (n *RedisNotifier) ChannelFor(userID uuid.UUID) string {
	return n.channelPrefix + userID.String()
}

// Notify publishes a message to the user's channel
func (n *RedisNotifier) Notify(ctx context.Context, userID uuid.UUID, message string) error {
	payload, err := json.Marshal(Message{
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if err := n.client.Publish(ctx, n.ChannelFor(userID), payload).Err(); err != nil {
		n.logger.Warn("failed to publish notification",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return err
	}
	return nil
}

// Close releases the underlying Redis connection
func (n *RedisNotifier) Close() error {
	return n.client.Close()
}

// Ensure RedisNotifier satisfies the import completion sink
var _ importer.Notifier = (*RedisNotifier)(nil)
