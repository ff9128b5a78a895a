package types

// UploadFile 已落到临时目录的上传文件
type UploadFile struct {
	Name     string
	MimeType string
	Size     int64
	TempPath string
}

// StoredAttachment 移动到最终位置后的附件信息
type StoredAttachment struct {
	URL  string
	Name string
	Kind string
	Key  string
}
