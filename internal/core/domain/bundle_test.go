package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBundleMode_IsValid tests bundle mode validation
func TestBundleMode_IsValid(t *testing.T) {
	assert.True(t, BundleModeDevelopment.IsValid())
	assert.True(t, BundleModeProduction.IsValid())
	assert.False(t, BundleMode("staging").IsValid())
	assert.False(t, BundleMode("").IsValid())
}

// TestLoaderRule_Validate tests loader rule validation
func TestLoaderRule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rule    LoaderRule
		wantErr string
	}{
		{
			name: "valid rule",
			rule: LoaderRule{Test: `\.css$`, Use: []string{"style-loader", "css-loader"}},
		},
		{
			name: "valid rule with exclude",
			rule: LoaderRule{Test: `\.jsx?$`, Exclude: `node_modules`, Use: []string{"babel-loader"}},
		},
		{
			name:    "empty test",
			rule:    LoaderRule{Use: []string{"babel-loader"}},
			wantErr: "test must not be empty",
		},
		{
			name:    "broken test pattern",
			rule:    LoaderRule{Test: `\.jsx?[`, Use: []string{"babel-loader"}},
			wantErr: "does not compile",
		},
		{
			name:    "broken exclude pattern",
			rule:    LoaderRule{Test: `\.css$`, Exclude: `(`, Use: []string{"css-loader"}},
			wantErr: "does not compile",
		},
		{
			name:    "no loaders",
			rule:    LoaderRule{Test: `\.css$`},
			wantErr: "no loaders",
		},
		{
			name:    "blank loader entry",
			rule:    LoaderRule{Test: `\.css$`, Use: []string{" "}},
			wantErr: "empty loader",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidManifest)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

// TestBundleConfig_Validate tests bundler section validation
func TestBundleConfig_Validate(t *testing.T) {
	valid := func() BundleConfig {
		return DefaultBundleConfig(PresetVanilla)
	}

	t.Run("defaults pass", func(t *testing.T) {
		cfg := valid()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown mode fails", func(t *testing.T) {
		cfg := valid()
		cfg.Mode = "turbo"

		assert.ErrorIs(t, cfg.Validate(), ErrInvalidManifest)
	})

	t.Run("no entries fails", func(t *testing.T) {
		cfg := valid()
		cfg.Entries = map[string]string{}

		assert.ErrorIs(t, cfg.Validate(), ErrInvalidManifest)
	})

	t.Run("absolute entry path fails", func(t *testing.T) {
		cfg := valid()
		cfg.Entries["main"] = "/etc/passwd"

		assert.ErrorIs(t, cfg.Validate(), ErrInvalidManifest)
	})

	t.Run("escaping entry path fails", func(t *testing.T) {
		cfg := valid()
		cfg.Entries["main"] = "../outside/app.js"

		assert.ErrorIs(t, cfg.Validate(), ErrInvalidManifest)
	})

	t.Run("empty output filename fails", func(t *testing.T) {
		cfg := valid()
		cfg.Output.Filename = ""

		assert.ErrorIs(t, cfg.Validate(), ErrInvalidManifest)
	})

	t.Run("blank plugin name fails", func(t *testing.T) {
		cfg := valid()
		cfg.Plugins = append(cfg.Plugins, PluginRef{Name: "  "})

		assert.ErrorIs(t, cfg.Validate(), ErrInvalidManifest)
	})
}

// TestBundleConfig_EntryNames tests deterministic entry ordering
func TestBundleConfig_EntryNames(t *testing.T) {
	cfg := BundleConfig{
		Entries: map[string]string{
			"vendor": "./src/vendor.js",
			"admin":  "./src/admin.js",
			"main":   "./src/app.js",
		},
	}

	assert.Equal(t, []string{"admin", "main", "vendor"}, cfg.EntryNames())
}

// TestDefaultBundleConfig tests bundler defaults per preset
func TestDefaultBundleConfig(t *testing.T) {
	t.Run("vanilla", func(t *testing.T) {
		cfg := DefaultBundleConfig(PresetVanilla)

		assert.Equal(t, BundleModeDevelopment, cfg.Mode)
		assert.Equal(t, "dist", cfg.Output.Dir)
		assert.Equal(t, "[name].js", cfg.Output.Filename)
		require.Len(t, cfg.Rules, 2)
		assert.Equal(t, `\.jsx?$`, cfg.Rules[0].Test)
	})

	t.Run("react-ts widens the script rule", func(t *testing.T) {
		cfg := DefaultBundleConfig(PresetReactTS)

		require.NotEmpty(t, cfg.Rules)
		assert.Equal(t, `\.[jt]sx?$`, cfg.Rules[0].Test)
	})

	t.Run("html plugin present", func(t *testing.T) {
		cfg := DefaultBundleConfig(PresetReact)

		require.Len(t, cfg.Plugins, 1)
		assert.Equal(t, "html-webpack-plugin", cfg.Plugins[0].Name)
		assert.Equal(t, "public/index.html", cfg.Plugins[0].Options["template"])
	})
}
