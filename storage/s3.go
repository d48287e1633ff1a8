// Package storage uploads produced feature tables to S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"github.com/dzenilee/presidential/logging"
)

type Config struct {
	Region string `envconfig:"AWS_REGION" default:"us-east-1"`
	// Endpoint overrides the S3 endpoint, e.g. for a local MinIO.
	Endpoint       string `envconfig:"PRESIDENTIAL_S3_ENDPOINT"`
	ForcePathStyle bool   `envconfig:"PRESIDENTIAL_S3_FORCE_PATH_STYLE" default:"false"`
}

type Uploader struct {
	up  *s3manager.Uploader
	log *logrus.Entry
}

// IsS3URI reports whether uri has the s3:// scheme.
func IsS3URI(uri string) bool {
	return strings.HasPrefix(uri, "s3://")
}

// ParseURI splits s3://bucket/key into its parts.
func ParseURI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("not an s3 uri: %q", uri)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("s3 uri without key: %q", uri)
	}
	return u.Host, key, nil
}

// New builds an uploader from the environment and the shared AWS config.
func New() (*Uploader, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	awsCfg := aws.NewConfig().
		WithRegion(cfg.Region).
		WithS3ForcePathStyle(cfg.ForcePathStyle)
	if cfg.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.Endpoint)
	}
	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            *awsCfg,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}
	return &Uploader{
		up:  s3manager.NewUploader(sess),
		log: logging.NewLogger("s3"),
	}, nil
}

// Upload writes body to the object named by uri.
func (u *Uploader) Upload(ctx context.Context, uri string, body io.Reader) error {
	bucket, key, err := ParseURI(uri)
	if err != nil {
		return err
	}
	u.log.WithFields(logrus.Fields{"bucket": bucket, "key": key}).Debug("uploading")
	out, err := u.up.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", uri, err)
	}
	u.log.WithField("location", out.Location).Info("uploaded")
	return nil
}
