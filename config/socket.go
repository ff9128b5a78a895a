package config

const (
	RelayLocal = "local"
	RelayRedis = "redis"
)

type Socket struct {
	// local: 仅本节点投递; redis: 通过 redis pub/sub 在所有节点投递
	Relay   string `json:"relay" yaml:"relay"`
	Channel string `json:"channel" yaml:"channel"`
	// 待投递事件队列长度
	Buffer int `json:"buffer" yaml:"buffer"`
}

func (s *Socket) fill() {
	if s.Relay == "" {
		s.Relay = RelayLocal
	}
	if s.Channel == "" {
		s.Channel = "forum:events"
	}
	if s.Buffer <= 0 {
		s.Buffer = 256
	}
}
