package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/josuelns/authapi/internal/common"
	"github.com/josuelns/authapi/internal/server/models"
)

// stubPresign replaces the AWS seams for the duration of a test.
func stubPresign(t *testing.T, putURL, getURL string) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	origPresign := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
		newS3PresignClient = origPresign
		presignPutObject = origPut
		presignGetObject = origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return nil
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return nil
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: putURL}, nil
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: getURL}, nil
	}
}

func TestNewStorageKey_Format(t *testing.T) {
	k := newStorageKey()
	// avatars/YYYY/M/D/UUID
	re := regexp.MustCompile(`^avatars/\d{4}/\d{1,2}/\d{1,2}/[0-9a-fA-F-]+$`)
	if !re.MatchString(k) {
		t.Fatalf("unexpected format: %q", k)
	}
}

func TestAvatarService_IssueUploadURL(t *testing.T) {
	stubPresign(t, "https://s3.local/put", "")

	repo := newFakeUsersRepo()
	created, err := repo.Create(context.Background(), &models.User{Email: "ana@x.com"})
	require.NoError(t, err)

	svc := NewAvatarService(repo, newTestConfig())

	key, url, err := svc.IssueUploadURL(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/put", url)
	assert.NotEmpty(t, key)

	// the key was recorded on the record
	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, key, stored.ImageKey)
}

func TestAvatarService_IssueUploadURL_UnknownUser(t *testing.T) {
	stubPresign(t, "https://s3.local/put", "")

	svc := NewAvatarService(newFakeUsersRepo(), newTestConfig())

	_, _, err := svc.IssueUploadURL(context.Background(), 99)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestAvatarService_GetDownloadURL(t *testing.T) {
	stubPresign(t, "", "https://s3.local/get")

	repo := newFakeUsersRepo()
	created, err := repo.Create(context.Background(), &models.User{Email: "ana@x.com", ImageKey: "avatars/2026/1/1/abc"})
	require.NoError(t, err)

	svc := NewAvatarService(repo, newTestConfig())

	url, err := svc.GetDownloadURL(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/get", url)
}

func TestAvatarService_GetDownloadURL_NoAvatar(t *testing.T) {
	stubPresign(t, "", "")

	repo := newFakeUsersRepo()
	created, err := repo.Create(context.Background(), &models.User{Email: "ana@x.com"})
	require.NoError(t, err)

	svc := NewAvatarService(repo, newTestConfig())

	_, err = svc.GetDownloadURL(context.Background(), created.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
