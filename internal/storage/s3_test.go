package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"stored-image-server/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectAPI struct {
	objects      map[string][]byte
	contentTypes map[string]string
}

func newFakeObjectAPI() *fakeObjectAPI {
	return &fakeObjectAPI{objects: map[string][]byte{}, contentTypes: map[string]string{}}
}

func (f *fakeObjectAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = b
	f.contentTypes[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeObjectAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

// 测试内容：验证 S3 存储的写入、读取、删除与缺失对象映射为 ErrNotFound。
func TestS3Store_RoundTrip(t *testing.T) {
	api := newFakeObjectAPI()
	store := &S3Store{api: api, bucket: "images", publicURL: "https://cdn.example.com"}
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "2026/a.png", pngBytes, "image/png"))
	assert.Equal(t, "image/png", api.contentTypes["images/2026/a.png"])

	got, err := store.Get(ctx, "2026/a.png")
	require.NoError(t, err)
	assert.Equal(t, pngBytes, got)
	assert.Equal(t, "https://cdn.example.com/2026/a.png", store.URL("2026/a.png"))

	require.NoError(t, store.Delete(ctx, "2026/a.png"))
	_, err = store.Get(ctx, "2026/a.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

// 测试内容：验证构造 S3 存储时应用区域、静态凭证与自定义端点。
func TestNewS3Store_AppliesConfig(t *testing.T) {
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
		assert.Equal(t, "eu-west-1", lo.Region)
		assert.NotNil(t, lo.Credentials)
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	store, err := NewS3Store(context.Background(), config.S3Config{
		Region:       "eu-west-1",
		Bucket:       "images",
		BaseEndpoint: "http://127.0.0.1:9000/",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
	})
	require.NoError(t, err)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000/", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
	assert.Equal(t, "http://127.0.0.1:9000/images/k.png", store.URL("k.png"))
}

// 测试内容：验证空 bucket 被拒绝，默认公开地址指向 AWS。
func TestNewS3Store_Validation(t *testing.T) {
	_, err := NewS3Store(context.Background(), config.S3Config{Region: "us-east-1"})
	assert.Error(t, err)

	assert.Equal(t, "https://images.s3.us-east-1.amazonaws.com",
		publicBaseURL(config.S3Config{Bucket: "images", Region: "us-east-1"}))
	assert.Equal(t, "https://cdn.example.com",
		publicBaseURL(config.S3Config{Bucket: "images", PublicURL: "https://cdn.example.com/"}))
}

// 测试内容：验证按配置选择存储驱动。
func TestNewStore_Driver(t *testing.T) {
	cfg := config.Config{Upload: config.UploadConfig{Driver: "local", Path: t.TempDir(), URLPrefix: "/attachments/"}}
	store, err := NewStore(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)

	cfg.Upload.Driver = "ftp"
	_, err = NewStore(context.Background(), cfg)
	assert.Error(t, err)
}
