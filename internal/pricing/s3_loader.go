package pricing

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Loader implements Loader for reading JSON rule files from AWS S3.
type s3Loader struct {
	client *s3.Client
	bucket string
	logger zerolog.Logger
}

// NewS3Loader creates a new S3-based rules loader.
func NewS3Loader(ctx context.Context, bucket, region string, logger zerolog.Logger) (Loader, error) {
	logger = logger.With().Str("component", "s3-pricing-loader").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 pricing loader initialised")

	return &s3Loader{
		client: client,
		bucket: bucket,
		logger: logger,
	}, nil
}

// Load reads a JSON rules object from S3. The key parameter should be the
// full S3 key including any prefix.
func (l *s3Loader) Load(ctx context.Context, key string) (Rules, error) {
	l.logger.Info().Str("key", key).Msg("loading pricing rules from S3")

	output, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		l.logger.Error().Err(err).Str("key", key).Msg("failed to get S3 object")
		return Rules{}, fmt.Errorf("failed to get S3 object %s/%s: %w", l.bucket, key, err)
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		l.logger.Error().Err(err).Str("key", key).Msg("failed to read S3 object body")
		return Rules{}, fmt.Errorf("failed to read S3 object %s/%s: %w", l.bucket, key, err)
	}

	rules, err := parseRules(data)
	if err != nil {
		l.logger.Error().Err(err).Str("key", key).Msg("failed to parse pricing rules")
		return Rules{}, fmt.Errorf("failed to parse pricing rules %s/%s: %w", l.bucket, key, err)
	}

	l.logger.Info().
		Str("tax_rate", rules.TaxRate.String()).
		Str("delivery_fee", rules.DeliveryFee.String()).
		Msg("pricing rules loaded from S3")

	return rules, nil
}
