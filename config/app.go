package config

type App struct {
	Env   string `json:"env" yaml:"env"`
	Debug bool   `json:"debug" yaml:"debug"`
	Name  string `json:"name" yaml:"name"`
	// 雪花算法节点号，多实例部署时各不相同
	Node int64 `json:"node" yaml:"node"`
}
