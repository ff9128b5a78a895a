package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App        *App            `json:"app" yaml:"app"`
	Redis      *Redis          `json:"redis" yaml:"redis"`
	Database   *Database       `json:"database" yaml:"database"`
	Jwt        *Jwt            `json:"jwt" yaml:"jwt"`
	Oss        *OssConfig      `json:"oss" yaml:"oss"`
	Upload     *Upload         `json:"upload" yaml:"upload"`
	Server     *Server         `json:"server" yaml:"server"`
	Socket     *Socket         `json:"socket" yaml:"socket"`
	RocketMQ   *RocketMQConfig `json:"rocketmq" yaml:"rocketmq"`
	Moderation *Moderation     `json:"moderation" yaml:"moderation"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
}

func New(filename string) *Config {
	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	conf, err := Parse(content)
	if err != nil {
		panic(fmt.Sprintf("解析 %s 读取错误: %v", filename, err))
	}

	return conf
}

// Parse 解析 yaml 内容并补齐缺省值
func Parse(content []byte) (*Config, error) {
	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, err
	}

	conf.fill()
	return &conf, nil
}

func (c *Config) fill() {
	if c.App == nil {
		c.App = &App{Env: "dev"}
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	if c.Upload == nil {
		c.Upload = &Upload{}
	}
	c.Upload.fill()
	if c.Socket == nil {
		c.Socket = &Socket{}
	}
	c.Socket.fill()
	if c.Moderation == nil {
		c.Moderation = &Moderation{}
	}
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}
