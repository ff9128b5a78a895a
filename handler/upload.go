package handler

import (
	"Forum/pkg/log"
	"Forum/types"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// receiveUpload 把表单文件落到临时目录；没有文件时返回 nil
// cleanup 总是可以调用，文件被存储驱动移走后删除会静默失败
func receiveUpload(c *gin.Context, field string) (*types.UploadFile, func(), error) {
	noop := func() {}

	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		log.L.Warn("read upload error", zap.Error(err))
		return nil, noop, errUploadFailed.WithErr(err)
	}

	tmp := filepath.Join(os.TempDir(), "forum-upload-"+uuid.NewString())
	if err := c.SaveUploadedFile(header, tmp); err != nil {
		log.L.Error("save upload error", zap.Error(err))
		return nil, noop, errUploadFailed.WithErr(err)
	}

	file := &types.UploadFile{
		Name:     filepath.Base(header.Filename),
		MimeType: header.Header.Get("Content-Type"),
		Size:     header.Size,
		TempPath: tmp,
	}
	return file, func() { _ = os.Remove(tmp) }, nil
}
