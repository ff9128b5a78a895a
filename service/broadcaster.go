package service

import "context"

// Broadcaster 实时事件出口，只入队不等待投递
type Broadcaster interface {
	ToRoom(room, event string, payload any)
	ToAll(event string, payload any)
}

// ReportNotifier 举报告警的外部通知
type ReportNotifier interface {
	PublishReport(ctx context.Context, payload any)
}
