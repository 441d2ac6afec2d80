package util

import (
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DetectContentType 依据文件内容嗅探 MIME 类型, 读取后将 reader 复位
func DetectContentType(r io.ReadSeeker) (string, error) {
	mt, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("detect content type: %w", err)
	}
	if _, err = r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}
	// 去掉 charset 等参数
	contentType, _, _ := strings.Cut(mt.String(), ";")
	return contentType, nil
}
