package process

import (
	"Forum/config"
	"Forum/pkg/log"
	"Forum/pkg/socket"
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// RedisRelay 通过 redis pub/sub 把事件扇出到所有节点，各节点再投递到本地房间
type RedisRelay struct {
	hub     *socket.Hub
	rdb     *redis.Client
	channel string
	queue   chan *socket.Message
}

// NewRedisRelay relay 未配置为 redis 或 redis 不可用时返回 nil
func NewRedisRelay(conf *config.Config, hub *socket.Hub, rdb *redis.Client) *RedisRelay {
	if conf.Socket.Relay != config.RelayRedis {
		return nil
	}
	if rdb == nil {
		log.L.Warn("socket relay is redis but redis is disabled, falling back to local delivery")
		return nil
	}
	return &RedisRelay{
		hub:     hub,
		rdb:     rdb,
		channel: conf.Socket.Channel,
		queue:   make(chan *socket.Message, conf.Socket.Buffer),
	}
}

// ToRoom 入队后立即返回
func (r *RedisRelay) ToRoom(room, event string, payload any) {
	msg, err := socket.NewMessage(room, event, payload)
	if err != nil {
		log.L.Error("encode socket frame error", zap.String("event", event), zap.Error(err))
		return
	}
	select {
	case r.queue <- msg:
	default:
		socket.RecordDrop("relay_queue_full")
		log.L.Warn("relay queue full, frame dropped", zap.String("room", room))
	}
}

func (r *RedisRelay) ToAll(event string, payload any) {
	r.ToRoom(socket.Broadcast, event, payload)
}

func (r *RedisRelay) Init() error {
	return nil
}

// Setup 发布与订阅两个循环，任一退出都等另一个结束
func (r *RedisRelay) Setup(ctx context.Context) error {
	sub := r.rdb.Subscribe(ctx, r.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return err
	}
	log.L.Info("socket relay subscribed", zap.String("channel", r.channel))

	var wg conc.WaitGroup
	wg.Go(func() { r.publishLoop(ctx) })
	wg.Go(func() {
		defer sub.Close()
		r.subscribeLoop(ctx, sub.Channel())
	})
	wg.Wait()
	return nil
}

func (r *RedisRelay) publishLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-r.queue:
			r.publish(ctx, msg)
		}
	}
}

// publish redis 不可用时退化为本节点投递
func (r *RedisRelay) publish(ctx context.Context, msg *socket.Message) {
	b, err := json.Marshal(msg)
	if err == nil {
		err = r.rdb.Publish(ctx, r.channel, b).Err()
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.L.Warn("relay publish error, delivering locally", zap.String("room", msg.Room), zap.Error(err))
		}
		r.hub.Publish(msg)
	}
}

func (r *RedisRelay) subscribeLoop(ctx context.Context, ch <-chan *redis.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			var msg socket.Message
			if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
				log.L.Warn("relay frame decode error", zap.Error(err))
				continue
			}
			r.hub.Publish(&msg)
		}
	}
}
