package dto

import "io"

// MediaUpload 一个待保存的上传文件, ContentType 为嗅探结果
type MediaUpload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// MediaActionKind 编辑帖子时对媒体的处理方式
type MediaActionKind int

const (
	MediaKeep MediaActionKind = iota
	MediaRemove
	MediaReplace
)

type MediaAction struct {
	Kind   MediaActionKind
	Upload *MediaUpload // 仅 MediaReplace 时有效
}

func KeepMedia() MediaAction { return MediaAction{Kind: MediaKeep} }

func RemoveMedia() MediaAction { return MediaAction{Kind: MediaRemove} }

func ReplaceMedia(upload *MediaUpload) MediaAction {
	return MediaAction{Kind: MediaReplace, Upload: upload}
}

// UploadPolicyDTO 上传限制说明
type UploadPolicyDTO struct {
	MaxSize      int64    `json:"maxSize"`
	AcceptedType []string `json:"acceptedTypes"`
	FieldName    string   `json:"fieldName"`
}
