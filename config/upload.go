package config

const (
	UploadDriverLocal = "local"
	UploadDriverOss   = "oss"
)

type Upload struct {
	Driver string `json:"driver" yaml:"driver"`
	// 本地存储根目录，同时作为静态访问前缀
	Root    string `json:"root" yaml:"root"`
	MaxSize int64  `json:"max_size" yaml:"max_size"`
}

func (u *Upload) fill() {
	if u.Driver == "" {
		u.Driver = UploadDriverLocal
	}
	if u.Root == "" {
		u.Root = "uploads"
	}
	if u.MaxSize <= 0 {
		u.MaxSize = 10 << 20
	}
}

func ProvideUploadConfig(cfg *Config) *Upload {
	return cfg.Upload
}
