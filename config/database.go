package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Database struct {
	Driver   string `json:"driver" yaml:"driver"`
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Database string `json:"database" yaml:"database"`
	Charset  string `json:"charset" yaml:"charset"`
	SSLMode  string `json:"sslmode" yaml:"sslmode"`
	LogLevel string `json:"log_level" yaml:"log_level"`

	// 连接池，0 表示使用默认值
	MaxOpenConns    int `json:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns    int `json:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetime int `json:"conn_max_lifetime" yaml:"conn_max_lifetime"` // 秒
}

// Pool 连接池参数，未配置时取默认值
func (d *Database) Pool() (maxOpen, maxIdle int, lifetime time.Duration) {
	maxOpen, maxIdle, lifetime = 50, 10, time.Hour
	if d.MaxOpenConns > 0 {
		maxOpen = d.MaxOpenConns
	}
	if d.MaxIdleConns > 0 {
		maxIdle = d.MaxIdleConns
	}
	if maxIdle > maxOpen {
		maxIdle = maxOpen
	}
	if d.ConnMaxLifetime > 0 {
		lifetime = time.Duration(d.ConnMaxLifetime) * time.Second
	}
	return maxOpen, maxIdle, lifetime
}

func (d *Database) DriverName() string {
	if d.Driver == "" {
		return DriverMySQL
	}
	return strings.ToLower(d.Driver)
}

// Dsn 按驱动生成连接串
func (d *Database) Dsn() string {
	switch d.DriverName() {
	case DriverPostgres:
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database, sslMode)
	default:
		charset := d.Charset
		if charset == "" {
			charset = "utf8mb4"
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
			d.Username, d.Password, d.Host, d.Port, d.Database, charset)
	}
}
