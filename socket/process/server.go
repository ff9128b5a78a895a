package process

import (
	"Forum/pkg/log"
	"context"
	"reflect"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type IServer interface {
	Init() error
	Setup(ctx context.Context) error
}

// SubServers 随 http 服务一起启动的后台协程，nil 字段跳过
type SubServers struct {
	HubServer  *HubServer
	RedisRelay *RedisRelay
}

type Server struct {
	once  sync.Once
	items []IServer
	SubServers
}

func NewServer(servers *SubServers) *Server {
	s := &Server{SubServers: *servers}
	s.binds(servers)
	return s
}

func (s *Server) binds(servers *SubServers) {
	elem := reflect.ValueOf(servers).Elem()
	for i := 0; i < elem.NumField(); i++ {
		field := elem.Field(i)
		if field.Kind() == reflect.Pointer && field.IsNil() {
			continue
		}
		if v, ok := field.Interface().(IServer); ok {
			s.items = append(s.items, v)
		}
	}
}

// Start 在 eg 中启动所有子服务，ctx 取消后各自退出
func (s *Server) Start(eg *errgroup.Group, ctx context.Context) {
	s.once.Do(func() {
		for _, item := range s.items {
			if err := item.Init(); err != nil {
				log.L.Fatal("init sub server error", zap.Error(err))
			}
		}
		for _, item := range s.items {
			serv := item
			eg.Go(func() error {
				return serv.Setup(ctx)
			})
		}
	})
}
