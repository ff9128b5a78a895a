package service

import (
	"Forum/config"
	"Forum/pkg/log"
	"context"

	"go.uber.org/zap"
)

// UploadURLPrefix 附件地址与对象 key 的公共前缀
const UploadURLPrefix = "uploads"

// Storage 附件存储驱动
type Storage interface {
	// Move 将临时文件移动到 key 对应的位置，返回对外地址
	Move(ctx context.Context, srcPath, key, contentType string) (string, error)
	// Remove 删除 Move 返回的地址对应的文件
	Remove(ctx context.Context, url string) error
}

func NewStorage(conf *config.Upload, ossConf *config.OssConfig) Storage {
	switch conf.Driver {
	case config.UploadDriverOss:
		if ossConf == nil || ossConf.Bucket == "" {
			log.L.Fatal("oss upload driver requires oss config")
		}
		log.L.Info("attachment storage", zap.String("driver", conf.Driver), zap.String("bucket", ossConf.Bucket))
		return NewOssStorage(ossConf)
	default:
		log.L.Info("attachment storage", zap.String("driver", config.UploadDriverLocal), zap.String("root", conf.Root))
		return NewLocalStorage(conf.Root)
	}
}
