// utils/r2.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"squares-pool/config"
	"squares-pool/models"
)

// R2Archiver uploads finished game boards to a Cloudflare R2 bucket.
type R2Archiver struct {
	client     *s3.Client
	bucket     string
	cdnBaseURL string
}

func NewR2Archiver(ctx context.Context, r2 config.R2Config) (*R2Archiver, error) {
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2.AccountID)

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			r2.AccessKeyID, r2.AccessKeySecret, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	cdn := strings.TrimRight(r2.CDNBaseURL, "/")
	if cdn == "" {
		cdn = endpoint
	}

	return &R2Archiver{
		client: s3.NewFromConfig(cfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		}),
		bucket:     r2.Bucket,
		cdnBaseURL: cdn,
	}, nil
}

// ResultsKey is the object key of one archived board, e.g.
// "results/ABC123/office-pool-<uuid>.json".
func ResultsKey(code, name, id string) string {
	s := slug.Make(name)
	if s == "" {
		s = "game"
	}
	return fmt.Sprintf("results/%s/%s-%s.json", code, s, id)
}

// Archive stores body under a fresh key and returns its public URL.
func (a *R2Archiver) Archive(ctx context.Context, game *models.Game, body []byte) (string, error) {
	key := ResultsKey(game.Code, game.Name, uuid.NewString())

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}

	return fmt.Sprintf("%s/%s", a.cdnBaseURL, key), nil
}
