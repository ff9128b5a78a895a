package service

import (
	"Forum/config"
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
)

// OssStorage 阿里云 OSS 存储，对外地址为 cdn_host/uploads/<key>
type OssStorage struct {
	Client     *oss.Client
	BucketName string
	CdnHost    string
}

func NewOssStorage(cfg *config.OssConfig) *OssStorage {
	ossCfg := oss.LoadDefaultConfig().
		WithEndpoint(cfg.Endpoint).
		WithRegion(cfg.Region).
		WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.AccessKeySecret,
			),
		)

	return &OssStorage{
		Client:     oss.NewClient(ossCfg),
		BucketName: cfg.Bucket,
		CdnHost:    strings.TrimRight(cfg.CdnHost, "/"),
	}
}

func (s *OssStorage) objectKey(key string) string {
	return path.Join(UploadURLPrefix, key)
}

func (s *OssStorage) Move(ctx context.Context, srcPath, key, contentType string) (string, error) {
	req := &oss.PutObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(s.objectKey(key)),
	}
	if contentType != "" {
		req.ContentType = oss.Ptr(contentType)
	}
	if _, err := s.Client.PutObjectFromFile(ctx, req, srcPath); err != nil {
		return "", err
	}
	_ = os.Remove(srcPath)

	return s.CdnHost + "/" + s.objectKey(key), nil
}

func (s *OssStorage) Remove(ctx context.Context, url string) error {
	objectKey, ok := strings.CutPrefix(url, s.CdnHost+"/")
	if !ok {
		return fmt.Errorf("attachment %q is not managed by oss storage", url)
	}
	_, err := s.Client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(objectKey),
	})
	return err
}
