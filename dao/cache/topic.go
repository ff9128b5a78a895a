package cache

import (
	"Forum/pkg/log"
	"Forum/types"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	topicDetailKey = "forum:topic:detail:%d"
	topicDetailTTL = 5 * time.Minute
)

// TopicStorage 话题详情缓存，redis 未配置时所有操作为空
type TopicStorage struct {
	redis *redis.Client
}

func NewTopicStorage(rds *redis.Client) *TopicStorage {
	return &TopicStorage{redis: rds}
}

func (t *TopicStorage) key(topicID uint64) string {
	return fmt.Sprintf(topicDetailKey, topicID)
}

// Get 未命中或出错都返回 nil
func (t *TopicStorage) Get(ctx context.Context, topicID uint64) *types.TopicItem {
	if t == nil || t.redis == nil {
		return nil
	}
	val, err := t.redis.Get(ctx, t.key(topicID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.L.Warn("get topic cache error", zap.Uint64("topic_id", topicID), zap.Error(err))
		}
		return nil
	}
	item := &types.TopicItem{}
	if err := json.Unmarshal(val, item); err != nil {
		return nil
	}
	return item
}

func (t *TopicStorage) Set(ctx context.Context, item *types.TopicItem) {
	if t == nil || t.redis == nil || item == nil {
		return
	}
	b, err := json.Marshal(item)
	if err != nil {
		return
	}
	if err := t.redis.Set(ctx, t.key(item.ID), b, topicDetailTTL).Err(); err != nil {
		log.L.Warn("set topic cache error", zap.Uint64("topic_id", item.ID), zap.Error(err))
	}
}

func (t *TopicStorage) Del(ctx context.Context, topicID uint64) {
	if t == nil || t.redis == nil {
		return
	}
	if err := t.redis.Del(ctx, t.key(topicID)).Err(); err != nil {
		log.L.Warn("del topic cache error", zap.Uint64("topic_id", topicID), zap.Error(err))
	}
}
