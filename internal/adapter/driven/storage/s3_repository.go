package storage

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/diillson/envcheck-reports/internal/domain/entity"
	"github.com/diillson/envcheck-reports/internal/domain/repository"
	"github.com/diillson/envcheck-reports/internal/shared/types"
)

// S3API is the subset of the S3 client the repository uses.
type S3API interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	GetBucketLifecycleConfiguration(ctx context.Context, params *s3.GetBucketLifecycleConfigurationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLifecycleConfigurationOutput, error)
	PutBucketLifecycleConfiguration(ctx context.Context, params *s3.PutBucketLifecycleConfigurationInput, optFns ...func(*s3.Options)) (*s3.PutBucketLifecycleConfigurationOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
}

// S3RepositoryImpl implementa o StorageRepository sobre um endpoint compatível com S3.
type S3RepositoryImpl struct {
	api S3API
}

// NewS3Repository cria um StorageRepository a partir da configuração de storage.
func NewS3Repository(ctx context.Context, cfg types.StorageConfig) (repository.StorageRepository, error) {
	api, err := newS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &S3RepositoryImpl{api: api}, nil
}

// NewS3RepositoryWithAPI wraps an already built client.
func NewS3RepositoryWithAPI(api S3API) *S3RepositoryImpl {
	return &S3RepositoryImpl{api: api}
}

// NewStorageFactory returns a factory that keeps TLS verification settings of base
// while swapping endpoint and credentials.
func NewStorageFactory(base types.StorageConfig) repository.StorageFactory {
	return func(ctx context.Context, host, user, token, region string) (repository.StorageRepository, error) {
		cfg := base
		cfg.ServerURL = host
		cfg.AccessKey = user
		cfg.SecretKey = token
		if region != "" {
			cfg.Region = region
		}
		return NewS3Repository(ctx, cfg)
	}
}

func newS3Client(ctx context.Context, cfg types.StorageConfig) (*s3.Client, error) {
	endpoint := strings.TrimSpace(cfg.ServerURL)
	if endpoint == "" {
		return nil, errors.New("storage server URL is required")
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	region := cfg.Region
	if region == "" {
		region = types.DefaultRegion
	}

	skipVerify := cfg.SkipVerify()
	httpClient := awshttp.NewBuildableClient().WithTransportOptions(func(tr *http.Transport) {
		if skipVerify {
			if tr.TLSClientConfig == nil {
				tr.TLSClientConfig = &tls.Config{}
			}
			tr.TLSClientConfig.InsecureSkipVerify = true
		}
	})

	awsCfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		config.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config for %s: %w", endpoint, err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	}), nil
}

// BucketExists returns false with a nil error only when the store says the bucket is missing.
func (r *S3RepositoryImpl) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, err := r.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("error checking bucket %s: %w", bucket, err)
}

func (r *S3RepositoryImpl) CreateBucket(ctx context.Context, bucket string) error {
	if _, err := r.api.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)}); err != nil {
		return fmt.Errorf("error creating bucket %s: %w", bucket, err)
	}
	return nil
}

func (r *S3RepositoryImpl) GetLifecycleRules(ctx context.Context, bucket string) ([]entity.LifecycleRule, error) {
	out, err := r.api.GetBucketLifecycleConfiguration(ctx, &s3.GetBucketLifecycleConfigurationInput{Bucket: aws.String(bucket)})
	if err != nil {
		return nil, fmt.Errorf("error getting lifecycle configuration of %s: %w", bucket, err)
	}
	rules := make([]entity.LifecycleRule, 0, len(out.Rules))
	for _, rule := range out.Rules {
		rules = append(rules, fromSDKRule(rule))
	}
	return rules, nil
}

func (r *S3RepositoryImpl) PutLifecycleRules(ctx context.Context, bucket string, rules []entity.LifecycleRule) error {
	sdkRules := make([]s3types.LifecycleRule, 0, len(rules))
	for _, rule := range rules {
		sdkRules = append(sdkRules, toSDKRule(rule))
	}
	_, err := r.api.PutBucketLifecycleConfiguration(ctx, &s3.PutBucketLifecycleConfigurationInput{
		Bucket:                 aws.String(bucket),
		LifecycleConfiguration: &s3types.BucketLifecycleConfiguration{Rules: sdkRules},
	})
	if err != nil {
		return fmt.Errorf("error putting lifecycle configuration of %s: %w", bucket, err)
	}
	return nil
}

func (r *S3RepositoryImpl) UploadStream(ctx context.Context, bucket, key string, body io.ReadSeeker) error {
	size, err := body.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("error sizing upload body: %w", err)
	}
	if _, err := body.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("error rewinding upload body: %w", err)
	}
	_, err = r.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentTypeFor(key)),
	})
	if err != nil {
		return fmt.Errorf("error uploading %s to bucket %s: %w", key, bucket, err)
	}
	return nil
}

func (r *S3RepositoryImpl) UploadFile(ctx context.Context, bucket, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()
	return r.UploadStream(ctx, bucket, key, f)
}

func (r *S3RepositoryImpl) ListBuckets(ctx context.Context) ([]string, error) {
	out, err := r.api.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		names = append(names, aws.ToString(b.Name))
	}
	return names, nil
}

// IsNotFound reports whether err is a 404 style answer from the store.
func IsNotFound(err error) bool {
	var notFound *s3types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noBucket *s3types.NoSuchBucket
	if errors.As(err, &noBucket) {
		return true
	}
	if code := ErrorCode(err); code == "NotFound" || code == "NoSuchBucket" || code == "404" {
		return true
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound {
		return true
	}
	return false
}

// ErrorCode extracts the API error code from err, or "" when err did not come from the API.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

func fromSDKRule(rule s3types.LifecycleRule) entity.LifecycleRule {
	out := entity.LifecycleRule{
		ID:      aws.ToString(rule.ID),
		Enabled: rule.Status == s3types.ExpirationStatusEnabled,
		Source:  rule,
	}
	if rule.Filter != nil && rule.Filter.Prefix != nil {
		out.Prefix = aws.ToString(rule.Filter.Prefix)
	} else if rule.Prefix != nil {
		out.Prefix = aws.ToString(rule.Prefix)
	}
	if rule.Expiration != nil && rule.Expiration.Days != nil {
		out.ExpirationDays = int(aws.ToInt32(rule.Expiration.Days))
	}
	return out
}

func toSDKRule(rule entity.LifecycleRule) s3types.LifecycleRule {
	status := s3types.ExpirationStatusDisabled
	if rule.Enabled {
		status = s3types.ExpirationStatusEnabled
	}

	if src, ok := rule.Source.(s3types.LifecycleRule); ok {
		out := src
		out.Status = status
		if rule.ExpirationDays > 0 {
			exp := s3types.LifecycleExpiration{}
			if src.Expiration != nil {
				exp = *src.Expiration
			}
			exp.Days = aws.Int32(int32(rule.ExpirationDays))
			out.Expiration = &exp
		}
		return out
	}

	out := s3types.LifecycleRule{
		ID:     aws.String(rule.ID),
		Status: status,
		Filter: &s3types.LifecycleRuleFilter{Prefix: aws.String(rule.Prefix)},
	}
	if rule.ExpirationDays > 0 {
		out.Expiration = &s3types.LifecycleExpiration{Days: aws.Int32(int32(rule.ExpirationDays))}
	}
	return out
}

func contentTypeFor(key string) string {
	switch {
	case strings.HasSuffix(key, ".zip"):
		return "application/zip"
	case strings.HasSuffix(key, ".html"):
		return "text/html; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
