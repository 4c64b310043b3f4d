package services

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
	"github.com/kiwi13nz/AgentFlow/config"
)

var ErrStorageNotConfigured = errors.New("object storage is not configured")

// AvatarUploader stores avatar images and returns their public URL.
type AvatarUploader interface {
	UploadAvatar(userID string, filename string, content io.Reader) (string, error)
}

// OSSAvatarUploader uploads avatars to Alibaba Cloud OSS.
type OSSAvatarUploader struct {
	cfg *config.Config
}

func NewOSSAvatarUploader(cfg *config.Config) *OSSAvatarUploader {
	return &OSSAvatarUploader{cfg: cfg}
}

func (u *OSSAvatarUploader) UploadAvatar(userID string, filename string, content io.Reader) (string, error) {
	cfg := u.cfg
	if cfg.OSSEndpoint == "" || cfg.OSSBucketName == "" {
		return "", ErrStorageNotConfigured
	}

	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKeyID, cfg.OSSAccessKeySecret,
		oss.Timeout(60, 120))
	if err != nil {
		return "", fmt.Errorf("failed to create OSS client: %v", err)
	}

	bucket, err := client.Bucket(cfg.OSSBucketName)
	if err != nil {
		return "", fmt.Errorf("failed to get bucket: %v", err)
	}

	ext := path.Ext(filename)
	now := time.Now()
	objectKey := fmt.Sprintf("avatars/%d/%02d/%s_%s%s",
		now.Year(), now.Month(), userID, uuid.New().String(), ext)

	if err := bucket.PutObject(objectKey, content); err != nil {
		return "", fmt.Errorf("avatar upload failed: %v", err)
	}

	endpoint := cfg.OSSEndpoint
	endpoint = strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", cfg.OSSBucketName, endpoint, objectKey), nil
}
