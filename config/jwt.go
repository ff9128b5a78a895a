package config

type Jwt struct {
	Secret string `json:"secret" yaml:"secret"`
	// 过期时间（秒）
	Expire int64 `json:"expire" yaml:"expire"`
}
