package utils

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// NewId generates a prefixed entity id, e.g. trash_1f8a9c2d4e6b.
func NewId(prefix string) string {

	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return prefix + "_" + hex[:12]

}

func PutObjectR2(r2Cli *s3.Client, ctx context.Context, bucket string, key string, body io.Reader, contentType string) error {

	_, err := r2Cli.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return err
	}

	return nil

}
