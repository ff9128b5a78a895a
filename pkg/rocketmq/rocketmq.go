package rocketmq

import (
	"Forum/config"
	"Forum/pkg/log"
	"context"
	"encoding/json"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

func init() {
	rlog.SetLogLevel("error")
}

// Producer 举报告警生产者，nil 时所有方法为空操作
type Producer struct {
	producer rocketmq.Producer
	topic    string
}

func InitProducer(cfg *config.RocketMQConfig) *Producer {
	if !cfg.Enabled() {
		log.L.Info("rocketmq producer disabled")
		return nil
	}

	retry := cfg.Producer.Retry
	if retry <= 0 {
		retry = 2
	}
	p, err := rocketmq.NewProducer(
		producer.WithNsResolver(primitive.NewPassthroughResolver(cfg.NameServer)),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(retry),
	)
	if err != nil {
		log.L.Error("init producer error", zap.Error(err))
		return nil
	}
	if err = p.Start(); err != nil {
		log.L.Error("start producer error", zap.Error(err))
		return nil
	}
	log.L.Info("init producer success", zap.String("topic", cfg.ReportTopic))

	return &Producer{producer: p, topic: cfg.ReportTopic}
}

// PublishReport 异步投递，失败只记录日志
func (p *Producer) PublishReport(ctx context.Context, payload any) {
	if p == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.L.Error("marshal report alert error", zap.Error(err))
		return
	}

	msg := primitive.NewMessage(p.topic, body)
	err = p.producer.SendAsync(ctx, func(_ context.Context, res *primitive.SendResult, err error) {
		if err != nil {
			log.L.Warn("send report alert error", zap.Error(err))
			return
		}
		log.L.Info("send report alert success", zap.String("msg_id", res.MsgID))
	}, msg)
	if err != nil {
		log.L.Warn("send report alert error", zap.Error(err))
	}
}

func (p *Producer) Shutdown() {
	if p == nil {
		return
	}
	if err := p.producer.Shutdown(); err != nil {
		log.L.Warn("shutdown producer error", zap.Error(err))
	}
}
