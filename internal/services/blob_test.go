package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudinaryAsset(t *testing.T) {
	tests := []struct {
		url, publicID, resourceType string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712345/laporan/u1/1700-foto.png", "laporan/u1/1700-foto", "image"},
		{"https://res.cloudinary.com/demo/raw/upload/v1/laporan/u1/1700-notes.txt", "laporan/u1/1700-notes.txt", "raw"},
		{"https://res.cloudinary.com/demo/image/upload/profiles/abc-1-me.jpg", "profiles/abc-1-me", "image"},
	}
	for _, tc := range tests {
		id, rt, err := cloudinaryAsset(tc.url)
		require.NoError(t, err, tc.url)
		assert.Equal(t, tc.publicID, id)
		assert.Equal(t, tc.resourceType, rt)
	}

	for _, bad := range []string{"https://example.com/file.pdf", "https://res.cloudinary.com/demo/image/upload", "::"} {
		_, _, err := cloudinaryAsset(bad)
		assert.Error(t, err, bad)
	}
}

func TestCloudinaryPublicID_SurvivesDeliveryURL(t *testing.T) {
	tests := []struct {
		objectPath, want string
	}{
		{"laporan/u1/1700-foto.png", "laporan/u1/1700-foto"},
		{"laporan/u1/1700-50% off #1 & more?.pdf", "laporan/u1/1700-50_off_1_more_"},
		{"profiles/abc-1-catatan é.jpg", "profiles/abc-1-catatan_"},
	}
	for _, tc := range tests {
		id := cloudinaryPublicID(tc.objectPath)
		assert.Equal(t, tc.want, id)

		got, _, err := cloudinaryAsset("https://res.cloudinary.com/demo/image/upload/v1712345/" + id + ".jpg")
		require.NoError(t, err)
		assert.Equal(t, id, got, tc.objectPath)
	}
}

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	deletes []*s3.DeleteObjectInput
	body    []byte
	err     error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.puts = append(f.puts, in)
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deletes = append(f.deletes, in)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store_PutDelete(t *testing.T) {
	fake := &fakeS3{}
	store := &S3Store{client: fake, bucket: "laporan", publicURL: "http://minio:9000/laporan"}
	ctx := context.Background()

	url, err := store.Put(ctx, "laporan/u1/1700-a.pdf", "application/pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/laporan/laporan/u1/1700-a.pdf", url)
	require.Len(t, fake.puts, 1)
	assert.Equal(t, "application/pdf", aws.ToString(fake.puts[0].ContentType))
	assert.Equal(t, int64(4), aws.ToInt64(fake.puts[0].ContentLength))
	assert.Equal(t, []byte("%PDF"), fake.body)

	require.NoError(t, store.Delete(ctx, url))
	require.Len(t, fake.deletes, 1)
	assert.Equal(t, "laporan/u1/1700-a.pdf", aws.ToString(fake.deletes[0].Key))

	assert.Error(t, store.Delete(ctx, "https://elsewhere/x.pdf"))
}

func TestS3Store_Errors(t *testing.T) {
	store := &S3Store{client: &fakeS3{err: errors.New("denied")}, bucket: "b", publicURL: "http://h/b"}

	_, err := store.Put(context.Background(), "k", "text/plain", nil)
	assert.ErrorContains(t, err, "denied")
	assert.ErrorContains(t, store.Delete(context.Background(), "http://h/b/k"), "denied")
}

func TestNewS3Store_AppliesEndpoint(t *testing.T) {
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "ap-southeast-1", lo.Region)
		return aws.Config{}, nil
	}
	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	store, err := NewS3Store(context.Background(), S3Config{
		Region: "ap-southeast-1", Endpoint: "http://127.0.0.1:9000/", Bucket: "laporan",
		AccessKey: "minio", SecretKey: "minio123",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
	assert.Equal(t, "http://127.0.0.1:9000/laporan", store.publicURL)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}
	_, err = NewS3Store(context.Background(), S3Config{Region: "x"})
	assert.EqualError(t, err, "load-fail")
}

func TestNewS3Store_AWSPublicURL(t *testing.T) {
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client { return &s3.Client{} }

	store, err := NewS3Store(context.Background(), S3Config{Region: "us-east-1", Bucket: "laporan"})
	require.NoError(t, err)
	assert.Equal(t, "https://laporan.s3.us-east-1.amazonaws.com", store.publicURL)
}
