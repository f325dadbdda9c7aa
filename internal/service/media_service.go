package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"course_forge_backend/internal/util"
	"course_forge_backend/pkg/logger"

	"go.uber.org/zap"
)

// MediaService handles module media and course background uploads. Videos are
// probed for metadata and get a generated thumbnail; everything else is
// stored as-is. The returned URLs are what Module.Media and
// Course.Background hold.
type MediaService struct {
	Storage *StorageService
}

func NewMediaService(storage *StorageService) *MediaService {
	return &MediaService{Storage: storage}
}

type MediaUploadResult struct {
	URL       string  `json:"url"`
	Thumbnail string  `json:"thumbnail,omitempty"`
	MimeType  string  `json:"mimeType"`
	Duration  float64 `json:"duration,omitempty"`
	Format    string  `json:"format,omitempty"`
	Size      int64   `json:"size"`
}

func (s *MediaService) UploadMedia(ctx context.Context, file *multipart.FileHeader) (*MediaUploadResult, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	allowed := []string{util.MimeImage, util.MimeVideo, util.MimePDF}
	mimeType, err := util.ValidateMimeType(src, allowed)
	if err != nil {
		return nil, fmt.Errorf("非法的文件内容: %w", err)
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	objectName := fmt.Sprintf("media/%s_%s%s",
		time.Now().Format("20060102150405"), util.GenerateRandomString(6), ext)

	if util.IsVideo(mimeType) {
		return s.uploadVideo(ctx, src, file, objectName, mimeType)
	}

	url, err := s.Storage.Upload(ctx, objectName, src, file.Size, mimeType)
	if err != nil {
		return nil, err
	}
	return &MediaUploadResult{URL: url, MimeType: mimeType, Size: file.Size}, nil
}

// uploadVideo 先落盘临时文件以便 ffprobe 读取，再上传视频与缩略图
func (s *MediaService) uploadVideo(ctx context.Context, src multipart.File, file *multipart.FileHeader, objectName, mimeType string) (*MediaUploadResult, error) {
	tmp, err := os.CreateTemp("", "media_upload_*"+filepath.Ext(file.Filename))
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		return nil, err
	}

	result := &MediaUploadResult{MimeType: mimeType, Size: file.Size}

	info, err := util.ProbeVideo(tmp.Name())
	if err != nil {
		// 元数据失败不阻塞上传
		logger.Log.Warn("probe video failed", zap.String("file", file.Filename), zap.Error(err))
	} else {
		result.Duration = info.Duration
		result.Format = info.Format
	}

	thumbPath := tmp.Name() + "_thumb.jpg"
	if err := util.GenerateThumbnail(tmp.Name(), thumbPath, "00:00:01"); err != nil {
		logger.Log.Warn("generate thumbnail failed", zap.String("file", file.Filename), zap.Error(err))
	} else {
		defer os.Remove(thumbPath)
		thumbObject := strings.TrimSuffix(objectName, filepath.Ext(objectName)) + "_thumb.jpg"
		thumbURL, err := s.Storage.UploadFile(ctx, thumbObject, thumbPath, "image/jpeg")
		if err != nil {
			logger.Log.Warn("upload thumbnail failed", zap.Error(err))
		} else {
			result.Thumbnail = thumbURL
		}
	}

	url, err := s.Storage.UploadFile(ctx, objectName, tmp.Name(), mimeType)
	if err != nil {
		return nil, err
	}
	result.URL = url
	return result, nil
}
