package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidecraft/slidecraft/internal/domain/entities"
)

func TestConfigMerger_Merge(t *testing.T) {
	merger := NewConfigMerger()

	t.Run("no configs returns defaults", func(t *testing.T) {
		result := merger.Merge()

		require.NotNil(t, result)
		assert.Equal(t, 8421, result.Server.Port)
		assert.Equal(t, "https://openrouter.ai/api/v1", result.Generator.BaseURL)
	})

	t.Run("later configs win", func(t *testing.T) {
		base := GetDefaultConfig()
		local := &entities.Config{
			Server:    entities.ServerConfig{Port: 9000},
			Generator: entities.GeneratorConfig{DefaultModel: "openai/gpt-3.5-turbo"},
		}

		result := merger.Merge(base, local)

		assert.Equal(t, 9000, result.Server.Port)
		assert.Equal(t, "openai/gpt-3.5-turbo", result.Generator.DefaultModel)
		// Untouched values survive from the base
		assert.Equal(t, "localhost", result.Server.Host)
		assert.Equal(t, 3, result.Generator.MaxAttempts)
	})

	t.Run("nil entries are skipped", func(t *testing.T) {
		base := GetDefaultConfig()

		result := merger.Merge(base, nil, &entities.Config{Server: entities.ServerConfig{Host: "0.0.0.0"}})

		assert.Equal(t, "0.0.0.0", result.Server.Host)
		assert.Equal(t, base.Server.Port, result.Server.Port)
	})

	t.Run("merge does not mutate inputs", func(t *testing.T) {
		base := GetDefaultConfig()
		basePort := base.Server.Port

		merger.Merge(base, &entities.Config{Server: entities.ServerConfig{Port: 9999}})

		assert.Equal(t, basePort, base.Server.Port)
	})
}

func TestConfigMerger_ApplyFlags(t *testing.T) {
	merger := NewConfigMerger()

	t.Run("flag overrides", func(t *testing.T) {
		base := GetDefaultConfig()

		result := merger.ApplyFlags(base, map[string]interface{}{
			"port":            9000,
			"host":            "0.0.0.0",
			"model":           "openai/gpt-3.5-turbo",
			"templates-dir":   "/srv/templates",
			"no-live-context": true,
		})

		assert.Equal(t, 9000, result.Server.Port)
		assert.Equal(t, "0.0.0.0", result.Server.Host)
		assert.Equal(t, "openai/gpt-3.5-turbo", result.Generator.DefaultModel)
		assert.Equal(t, "/srv/templates", result.Templates.Directory)
		assert.False(t, result.Search.Enabled)
	})

	t.Run("zero values ignored", func(t *testing.T) {
		base := GetDefaultConfig()

		result := merger.ApplyFlags(base, map[string]interface{}{
			"port": 0,
			"host": "",
		})

		assert.Equal(t, base.Server.Port, result.Server.Port)
		assert.Equal(t, base.Server.Host, result.Server.Host)
	})
}

func TestConfigMerger_ApplyEnvVars(t *testing.T) {
	merger := NewConfigMerger()

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("SLIDECRAFT_PORT", "9100")
		t.Setenv("OPENROUTER_API_KEY", "sk-or-test")
		t.Setenv("SLIDECRAFT_MODEL", "mistralai/mixtral-8x7b-instruct")
		t.Setenv("SLIDECRAFT_LIVE_CONTEXT", "false")

		result := merger.ApplyEnvVars(GetDefaultConfig())

		assert.Equal(t, 9100, result.Server.Port)
		assert.Equal(t, "sk-or-test", result.Generator.APIKey)
		assert.Equal(t, "mistralai/mixtral-8x7b-instruct", result.Generator.DefaultModel)
		assert.False(t, result.Search.Enabled)
	})

	t.Run("invalid port ignored", func(t *testing.T) {
		t.Setenv("SLIDECRAFT_PORT", "not-a-number")

		result := merger.ApplyEnvVars(GetDefaultConfig())

		assert.Equal(t, 8421, result.Server.Port)
	})
}
