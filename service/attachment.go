package service

import (
	"Forum/config"
	"Forum/models"
	"Forum/pkg/log"
	"Forum/pkg/utils"
	"Forum/types"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

const (
	attachmentDir        = "chat"
	categoryFallback     = "sem_categoria"
	topicTitleFallback   = "sem_titulo"
	defaultMaxAttachSize = 10 << 20
)

var allowedMimeTypes = map[string]bool{
	// 图片
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	// 文档
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true,
	"application/vnd.ms-powerpoint":                                             true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"text/plain": true,
	// 视频
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
	// 音频
	"audio/mpeg": true,
	"audio/wav":  true,
	"audio/ogg":  true,
}

// AttachmentService 校验并存放评论附件
type AttachmentService struct {
	storage Storage
	maxSize int64
	now     func() time.Time
}

func NewAttachmentService(conf *config.Upload, storage Storage) *AttachmentService {
	maxSize := conf.MaxSize
	if maxSize <= 0 {
		maxSize = defaultMaxAttachSize
	}
	return &AttachmentService{storage: storage, maxSize: maxSize, now: time.Now}
}

// KindOf image/* -> imagem, video/* -> video, 其余为 file
func KindOf(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return models.AttachmentImage
	case strings.HasPrefix(mimeType, "video/"):
		return models.AttachmentVideo
	default:
		return models.AttachmentFile
	}
}

func baseMime(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

func (s *AttachmentService) Validate(file *types.UploadFile) error {
	if file.Size > s.maxSize {
		return ErrAttachmentTooLarge
	}
	mimeType := baseMime(file.MimeType)
	if !allowedMimeTypes[mimeType] {
		return ErrAttachmentType
	}
	if strings.HasPrefix(mimeType, "image/") {
		return probeImage(file.TempPath)
	}
	return nil
}

// probeImage 只读取头部确认是可解析的图片
func probeImage(p string) error {
	f, err := os.Open(p)
	if err != nil {
		return ErrAttachmentInvalid.WithErr(err)
	}
	defer f.Close()

	if _, _, err := image.DecodeConfig(f); err != nil {
		return ErrAttachmentInvalid.WithErr(err)
	}
	return nil
}

// Key uploads 之下的相对路径: chat/<categoria>/<topico>/<millis>_<autor><ext>
func (s *AttachmentService) Key(topic *models.Topic, authorID uint64, fileName string) string {
	categoryName := ""
	if topic.Category != nil {
		categoryName = topic.Category.Name
	}
	name := fmt.Sprintf("%d_%d%s", s.now().UnixMilli(), authorID, filepath.Ext(fileName))
	return path.Join(
		attachmentDir,
		utils.Slug(categoryName, categoryFallback),
		utils.Slug(topic.Title, topicTitleFallback),
		name,
	)
}

func (s *AttachmentService) Store(ctx context.Context, topic *models.Topic, authorID uint64, file *types.UploadFile) (*types.StoredAttachment, error) {
	if err := s.Validate(file); err != nil {
		return nil, err
	}

	key := s.Key(topic, authorID, file.Name)
	url, err := s.storage.Move(ctx, file.TempPath, key, baseMime(file.MimeType))
	if err != nil {
		log.L.Error("move attachment error", zap.String("key", key), zap.Error(err))
		return nil, ErrStorage.WithErr(err)
	}

	return &types.StoredAttachment{
		URL:  url,
		Name: file.Name,
		Kind: KindOf(baseMime(file.MimeType)),
		Key:  key,
	}, nil
}

// Remove 尽力删除，失败只记录日志
func (s *AttachmentService) Remove(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.storage.Remove(ctx, url); err != nil {
		log.L.Warn("remove attachment error", zap.String("url", url), zap.Error(err))
	}
}
