package services

import (
	"fmt"

	"wardrobeapi/outfit"

	"github.com/rs/zerolog"
)

// LoadEngineConfig reads engine tuning from the environment on top of
// outfit.DefaultConfig.
func LoadEngineConfig() outfit.Config {
	cfg := outfit.DefaultConfig()
	cfg.MinCombinationScore = GetEnvFloat("OUTFIT_MIN_COMBINATION_SCORE", cfg.MinCombinationScore)
	cfg.EnforceSymmetry = GetEnvBool("OUTFIT_ENFORCE_SYMMETRY", cfg.EnforceSymmetry)
	return cfg
}

// LoadEngine builds the engine with the built in rule tables, or the YAML
// rule set at OUTFIT_RULES_PATH when set.
func LoadEngine(logger zerolog.Logger) (*outfit.Engine, error) {
	tables := outfit.DefaultTables()
	if path := GetEnv("OUTFIT_RULES_PATH", ""); path != "" {
		loaded, err := outfit.LoadTablesFile(path)
		if err != nil {
			return nil, fmt.Errorf("load outfit rules: %w", err)
		}
		logger.Info().Str("path", path).Int("colors", len(loaded.Colors)).
			Int("styles", len(loaded.Styles)).Msg("loaded outfit rules")
		tables = loaded
	}
	return outfit.NewEngine(tables, LoadEngineConfig(), logger), nil
}
