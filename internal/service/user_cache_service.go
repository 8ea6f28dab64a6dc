package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const userCacheKeyPrefix = "user_info:"

// UserCacheService mirrors user payloads from the user-info queue into the
// key-value store, keyed by user id. It sits off the booking critical path.
type UserCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewUserCacheService(redisClient *redis.Client, log *logrus.Logger) *UserCacheService {
	return &UserCacheService{
		redisClient: redisClient,
		log:         log,
	}
}

func (s *UserCacheService) CacheUser(ctx context.Context, event UserCreatedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%s%d", userCacheKeyPrefix, event.ID)
	if err := s.redisClient.Set(ctx, key, payload, 0).Err(); err != nil {
		s.log.Warnf("Failed to cache user %d: %+v", event.ID, err)
		return err
	}

	s.log.Infof("Cached user payload for user %d", event.ID)
	return nil
}

// GetCachedUser returns the cached payload, nil when absent.
func (s *UserCacheService) GetCachedUser(ctx context.Context, userID uint) (*UserCreatedEvent, error) {
	key := fmt.Sprintf("%s%d", userCacheKeyPrefix, userID)
	raw, err := s.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var event UserCreatedEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
