package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config holds S3 source configuration
type S3Config struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool

	// CacheDir receives downloaded archives; zip mounting needs random
	// access, so objects are materialized locally before opening.
	CacheDir string
}

// S3Source serves archives from an S3 bucket with objects keyed as
// <project>/<version>.zip, downloading them into a local cache
// directory before they are mounted.
type S3Source struct {
	client   *s3.Client
	bucket   string
	cacheDir string
}

// NewS3Source creates an S3-backed archive source
func NewS3Source(ctx context.Context, cfg S3Config) (*S3Source, error) {
	var awsConfig aws.Config
	var err error

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		// Static credentials (MinIO or AWS with explicit keys)
		awsConfig, err = config.LoadDefaultConfig(ctx,
			config.WithRegion(cfg.Region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)),
		)
	} else {
		// Default credential chain (IAM roles, env vars, etc.)
		awsConfig, err = config.LoadDefaultConfig(ctx,
			config.WithRegion(cfg.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.UsePathStyle {
			o.UsePathStyle = true
		}
	})

	if err := os.MkdirAll(cfg.CacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &S3Source{
		client:   client,
		bucket:   cfg.Bucket,
		cacheDir: cfg.CacheDir,
	}, nil
}

func (s *S3Source) objectKey(project, version string) string {
	return project + "/" + version + ".zip"
}

func (s *S3Source) localPath(project, version string) string {
	return filepath.Join(s.cacheDir, project, version+".zip")
}

// Fetch implements Source.Fetch. A previously downloaded copy is
// reused; Refresh removes it first for keys that must be re-pulled.
func (s *S3Source) Fetch(ctx context.Context, project, version string) (string, error) {
	local := s.localPath(project, version)
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(project, version)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return "", fmt.Errorf("%w: %s/%s", ErrNotFound, project, version)
		}
		return "", fmt.Errorf("failed to get archive object: %w", err)
	}
	defer out.Body.Close()

	if err := os.MkdirAll(filepath.Dir(local), 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	// Download to a temp file and rename so a partial download is never
	// observed as a valid archive.
	tmp, err := os.CreateTemp(filepath.Dir(local), "."+version+".zip.*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, out.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to download archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), local); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to move archive into cache: %w", err)
	}

	return local, nil
}

// Refresh implements Source.Refresh by dropping the cached download.
func (s *S3Source) Refresh(_ context.Context, project, version string) error {
	err := os.Remove(s.localPath(project, version))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove cached archive: %w", err)
	}
	return nil
}

// Ping implements Source.Ping
func (s *S3Source) Ping(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	return err
}
