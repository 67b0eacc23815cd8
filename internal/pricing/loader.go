package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// Loader loads pricing rules from an external source.
type Loader interface {
	// Load reads the rules stored under the given path or key.
	Load(ctx context.Context, path string) (Rules, error)
}

// fileLoader implements Loader for local JSON rule files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based rules loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "pricing-loader").Logger(),
	}
}

// Load reads a JSON rules file from the local file system.
func (l *fileLoader) Load(ctx context.Context, path string) (Rules, error) {
	l.logger.Info().Str("file", path).Msg("loading pricing rules file")

	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read pricing rules file")
		return Rules{}, fmt.Errorf("failed to read pricing rules file %s: %w", path, err)
	}

	rules, err := parseRules(data)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to parse pricing rules")
		return Rules{}, fmt.Errorf("failed to parse pricing rules file %s: %w", path, err)
	}

	l.logger.Info().
		Str("tax_rate", rules.TaxRate.String()).
		Str("delivery_fee", rules.DeliveryFee.String()).
		Msg("pricing rules loaded")

	return rules, nil
}

// parseRules decodes and validates a JSON rules document.
func parseRules(data []byte) (Rules, error) {
	var rules Rules
	if err := json.Unmarshal(data, &rules); err != nil {
		return Rules{}, err
	}

	if rules.TaxRate.IsNegative() {
		return Rules{}, fmt.Errorf("tax rate must not be negative: %s", rules.TaxRate)
	}
	if rules.DeliveryFee.IsNegative() {
		return Rules{}, fmt.Errorf("delivery fee must not be negative: %s", rules.DeliveryFee)
	}

	return rules, nil
}

// Resolve loads rules via the loader when a path is configured, falling
// back to the defaults when the path is empty or the load fails.
func Resolve(ctx context.Context, loader Loader, path string, logger zerolog.Logger) Rules {
	if loader == nil || path == "" {
		return DefaultRules()
	}

	rules, err := loader.Load(ctx, path)
	if err != nil {
		logger.Warn().Err(err).Msg("falling back to default pricing rules")
		return DefaultRules()
	}
	return rules
}
