package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/saostartar/diet-recommendation-app/config"
)

// ImageService stores user avatars and food photos in S3.
type ImageService struct {
	s3Config *config.S3Config
}

var _ IImageService = (*ImageService)(nil)

// NewImageService creates a new ImageService instance
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// UploadAvatar stores a user avatar and returns its public URL.
func (s *ImageService) UploadAvatar(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New(), extensionFor(contentType))
	return s.upload(ctx, key, data, contentType)
}

// UploadFoodImage stores a catalog photo and returns its public URL.
func (s *ImageService) UploadFoodImage(ctx context.Context, foodID uuid.UUID, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("foods/%s/%s%s", foodID, uuid.New(), extensionFor(contentType))
	return s.upload(ctx, key, data, contentType)
}

func (s *ImageService) upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if contentType != "image/png" && contentType != "image/jpeg" && contentType != "image/webp" {
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
