package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/josuelns/authapi/internal/common"
	sc "github.com/josuelns/authapi/internal/server/config"
	"github.com/josuelns/authapi/internal/server/repositories/users"
)

const presignValidity = 15 * time.Minute

// test seams for the AWS client construction and presign calls
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// AvatarService issues presigned S3 URLs for user avatar images. The server
// itself never proxies image bytes; clients upload and download directly
// against object storage.
type AvatarService struct {
	repo   users.Repository
	config *sc.Config
}

// NewAvatarService constructs an AvatarService.
func NewAvatarService(repo users.Repository, config *sc.Config) *AvatarService {
	return &AvatarService{repo: repo, config: config}
}

// newStorageKey returns a date-partitioned object key for a fresh upload.
func newStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("avatars/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *AvatarService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// IssueUploadURL generates a presigned PUT URL for the user's avatar and
// records the new object key on the record. Returns the key and the URL.
func (s *AvatarService) IssueUploadURL(ctx context.Context, userID int64) (string, string, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", err
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", fmt.Errorf("error building presign client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := newStorageKey()

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", "", fmt.Errorf("error presigning put: %w", err)
	}

	user.ImageKey = key
	if _, err := s.repo.Update(ctx, user); err != nil {
		return "", "", fmt.Errorf("error recording avatar key: %w", err)
	}

	return key, req.URL, nil
}

// GetDownloadURL generates a presigned GET URL for the user's stored avatar.
// A user without an avatar yields common.ErrorNotFound.
func (s *AvatarService) GetDownloadURL(ctx context.Context, userID int64) (string, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.ImageKey == "" {
		return "", common.ErrorNotFound
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", fmt.Errorf("error building presign client: %w", err)
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &user.ImageKey,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", fmt.Errorf("error presigning get: %w", err)
	}

	return req.URL, nil
}
