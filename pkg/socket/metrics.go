package socket

import "github.com/prometheus/client_golang/prometheus"

var (
	eventsDelivered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_socket_events_delivered_total",
			Help: "Frames written to client send buffers",
		},
		[]string{"room"},
	)

	eventsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_socket_events_dropped_total",
			Help: "Frames dropped because a queue was full",
		},
		[]string{"reason"},
	)

	connections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "forum_socket_connections",
		Help: "Open websocket connections",
	})
)

func init() {
	prometheus.MustRegister(eventsDelivered, eventsDropped, connections)
}

// 房间名里带 topic id，统计时归并
func roomLabel(room string) string {
	switch {
	case room == Broadcast:
		return "all"
	case room == AdminRoom:
		return AdminRoom
	default:
		return "topic"
	}
}

// RecordDrop 统计在 hub 之外被丢弃的帧
func RecordDrop(reason string) {
	eventsDropped.WithLabelValues(reason).Inc()
}
