package deploy

import (
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// htmlCacheControl keeps republished reports from being masked by caching
// infrastructure. Only HTML objects get an explicit cache hint.
const htmlCacheControl = "max-age=300"

// IndexDocument and ErrorDocument are the static-website settings applied
// when website hosting is enabled on the bucket.
const (
	IndexDocument = "index.html"
	ErrorDocument = "error.html"
)

// Config carries everything the deploy stage needs. Credentials come from the
// explicit fields first, then from the environment via the SDK default chain;
// they are never logged.
type Config struct {
	Bucket          string
	ProjectName     string
	Title           string // report title; defaults to ProjectName
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	TemplateDir     string
	StagingRoot     string
	Timeout         time.Duration // bound on the whole publish call
}

// WebsiteEndpoint describes where a published site is reachable. It is
// recomputed on every publish, never stored.
type WebsiteEndpoint struct {
	Bucket string `json:"bucket"`
	Region string `json:"region"`
	URL    string `json:"url"`
}

// s3API is the slice of the S3 client the uploader needs; tests inject fakes
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	PutBucketWebsite(ctx context.Context, params *s3.PutBucketWebsiteInput, optFns ...func(*s3.Options)) (*s3.PutBucketWebsiteOutput, error)
}

// Uploader publishes a local file tree to an S3 bucket
type Uploader struct {
	client s3API
	bucket string
	region string
}

// NewUploader builds an Uploader from explicit credentials when given,
// falling back to the SDK's default chain (environment, shared config).
func NewUploader(ctx context.Context, cfg Config) (*Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Uploader{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		region: cfg.Region,
	}, nil
}

// stagedFile pairs a local path with its forward-slash object key
type stagedFile struct {
	localPath string
	key       string
}

// Publish uploads localRoot (a single file or a directory tree) under
// keyPrefix, then optionally enables static-website hosting on the bucket.
// Every regular file under the root is uploaded, dot-files included;
// directory entries that are not regular files (symlinks among them) are
// skipped. Uploads run sequentially in walk order and stop at the first
// failure, which is reported with the count of files uploaded before it.
// A website-configuration failure is a warning only: the files are already up.
func (u *Uploader) Publish(ctx context.Context, localRoot, keyPrefix string, enableWebsite bool) (WebsiteEndpoint, error) {
	info, err := os.Stat(localRoot)
	if err != nil {
		return WebsiteEndpoint{}, &PublishError{Kind: KindNotFound, Path: localRoot, Err: err}
	}

	var files []stagedFile
	if info.Mode().IsRegular() {
		files = append(files, stagedFile{localPath: localRoot, key: objectKey(keyPrefix, filepath.Base(localRoot))})
	} else {
		err = filepath.Walk(localRoot, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !fi.Mode().IsRegular() {
				return nil
			}
			rel, err := filepath.Rel(localRoot, p)
			if err != nil {
				return err
			}
			files = append(files, stagedFile{localPath: p, key: objectKey(keyPrefix, rel)})
			return nil
		})
		if err != nil {
			return WebsiteEndpoint{}, &PublishError{Kind: KindEnumerationFailed, Path: localRoot, Err: err}
		}
	}

	uploaded := 0
	for _, f := range files {
		if err := u.putFile(ctx, f); err != nil {
			return WebsiteEndpoint{}, &PublishError{Kind: KindUploadFailed, Path: f.key, Uploaded: uploaded, Err: err}
		}
		uploaded++
		fmt.Printf("⬆️  Uploaded %s (%d/%d)\n", f.key, uploaded, len(files))
	}

	if enableWebsite {
		if err := u.configureWebsite(ctx); err != nil {
			// files are already published; hosting config is best effort
			log.Printf("⚠️ Website hosting configuration failed for bucket %s: %v", u.bucket, err)
		}
	}

	return WebsiteEndpoint{
		Bucket: u.bucket,
		Region: u.region,
		URL:    WebsiteURL(u.bucket, u.region, objectKey(keyPrefix, IndexDocument)),
	}, nil
}

// putFile uploads one staged file with its resolved content type
func (u *Uploader) putFile(ctx context.Context, f stagedFile) error {
	body, err := os.Open(f.localPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", f.localPath, err)
	}
	defer body.Close()

	ct := ContentType(filepath.Ext(f.localPath))
	input := &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(f.key),
		Body:        body,
		ContentType: aws.String(ct),
	}
	if ct == "text/html" {
		input.CacheControl = aws.String(htmlCacheControl)
	}

	_, err = u.client.PutObject(ctx, input)
	if err != nil {
		return fmt.Errorf("put object %s: %w", f.key, err)
	}
	return nil
}

// configureWebsite applies the bucket's static-site settings
func (u *Uploader) configureWebsite(ctx context.Context) error {
	_, err := u.client.PutBucketWebsite(ctx, &s3.PutBucketWebsiteInput{
		Bucket: aws.String(u.bucket),
		WebsiteConfiguration: &types.WebsiteConfiguration{
			IndexDocument: &types.IndexDocument{Suffix: aws.String(IndexDocument)},
			ErrorDocument: &types.ErrorDocument{Key: aws.String(ErrorDocument)},
		},
	})
	return err
}

// objectKey joins a key prefix with a host-native relative path, normalizing
// separators to forward slash.
func objectKey(prefix, rel string) string {
	return path.Join(prefix, filepath.ToSlash(rel))
}

// WebsiteURL computes the externally reachable S3 website URL. us-east-1 uses
// the legacy hyphenated endpoint; every other region the dotted one.
func WebsiteURL(bucket, region, indexKey string) string {
	if region == "us-east-1" {
		return fmt.Sprintf("http://%s.s3-website-us-east-1.amazonaws.com/%s", bucket, indexKey)
	}
	return fmt.Sprintf("http://%s.s3-website.%s.amazonaws.com/%s", bucket, region, indexKey)
}
