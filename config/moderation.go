package config

type Moderation struct {
	// 开启后同一用户对同一评论只保留一次评价（再次评价同类型即取消）
	UniqueRatings bool `json:"unique_ratings" yaml:"unique_ratings"`
}

func ProvideModerationConfig(cfg *Config) *Moderation {
	return cfg.Moderation
}
