package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

// WebpackFile is the rendered bundler config path.
const WebpackFile = "webpack.config.js"

// Webpack renders the bundler config from the manifest. The output is
// JavaScript, so it is written line by line rather than marshalled.
func Webpack(project *domain.Project) []byte {
	var b strings.Builder
	cfg := &project.Bundle

	b.WriteString(generatedBanner)
	b.WriteString("const path = require('path');\n")
	for _, plugin := range cfg.Plugins {
		fmt.Fprintf(&b, "const %s = require(%s);\n", pluginIdentifier(plugin.Name), jsString(plugin.Name))
	}
	b.WriteString("\nmodule.exports = {\n")

	fmt.Fprintf(&b, "  mode: %s,\n", jsString(cfg.Mode.String()))

	b.WriteString("  entry: {\n")
	for _, name := range cfg.EntryNames() {
		fmt.Fprintf(&b, "    %s: %s,\n", jsKey(name), jsString(cfg.Entries[name]))
	}
	b.WriteString("  },\n")

	b.WriteString("  output: {\n")
	fmt.Fprintf(&b, "    path: path.resolve(__dirname, %s),\n", jsString(cfg.Output.Dir))
	fmt.Fprintf(&b, "    filename: %s,\n", jsString(cfg.Output.Filename))
	b.WriteString("    clean: true,\n")
	b.WriteString("  },\n")

	if exts := resolveExtensions(project); len(exts) > 0 {
		b.WriteString("  resolve: {\n")
		fmt.Fprintf(&b, "    extensions: %s,\n", jsStringArray(exts))
		b.WriteString("  },\n")
	}

	b.WriteString("  module: {\n")
	b.WriteString("    rules: [\n")
	for _, rule := range cfg.Rules {
		b.WriteString("      {\n")
		fmt.Fprintf(&b, "        test: %s,\n", jsRegex(rule.Test))
		if rule.Exclude != "" {
			fmt.Fprintf(&b, "        exclude: %s,\n", jsRegex(rule.Exclude))
		}
		fmt.Fprintf(&b, "        use: %s,\n", jsStringArray(rule.Use))
		b.WriteString("      },\n")
	}
	b.WriteString("    ],\n")
	b.WriteString("  },\n")

	b.WriteString("  plugins: [\n")
	for _, plugin := range cfg.Plugins {
		if len(plugin.Options) == 0 {
			fmt.Fprintf(&b, "    new %s(),\n", pluginIdentifier(plugin.Name))
			continue
		}
		fmt.Fprintf(&b, "    new %s({\n", pluginIdentifier(plugin.Name))
		for _, key := range sortedOptionKeys(plugin.Options) {
			fmt.Fprintf(&b, "      %s: %s,\n", jsKey(key), jsValue(plugin.Options[key]))
		}
		b.WriteString("    }),\n")
	}
	b.WriteString("  ],\n")

	b.WriteString("  optimization: {\n")
	fmt.Fprintf(&b, "    minimize: %t,\n", cfg.Optimize.Minify)
	if cfg.Optimize.SplitChunks {
		b.WriteString("    splitChunks: {\n")
		b.WriteString("      chunks: 'all',\n")
		b.WriteString("    },\n")
	}
	b.WriteString("  },\n")

	b.WriteString("};\n")
	return []byte(b.String())
}

const generatedBanner = "// Generated by webrig. Edit webrig.toml and run \"webrig sync\" instead.\n"

func resolveExtensions(project *domain.Project) []string {
	switch {
	case project.Transpile.TypeScript:
		return []string{".tsx", ".ts", ".jsx", ".js"}
	case project.Transpile.React:
		return []string{".jsx", ".js"}
	default:
		return nil
	}
}

// pluginIdentifier derives a JS constructor name from a package name,
// html-webpack-plugin becoming HtmlWebpackPlugin.
func pluginIdentifier(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == '/' || r == '@'
	})
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// jsKey renders an object key, quoting it only when it is not a valid
// bare identifier.
func jsKey(key string) string {
	if isJSIdentifier(key) {
		return key
	}
	return jsString(key)
}

func isJSIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		letter := r == '_' || r == '$' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		digit := r >= '0' && r <= '9'
		if !letter && !(digit && i > 0) {
			return false
		}
	}
	return true
}

func jsString(s string) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `'`, `\'`)
	return "'" + escaped + "'"
}

// jsRegex renders a pattern as a JS regex literal. The manifest stores
// the pattern body only, so slashes inside it need escaping.
func jsRegex(pattern string) string {
	return "/" + strings.ReplaceAll(pattern, "/", `\/`) + "/"
}

func jsStringArray(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = jsString(v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func jsValue(value any) string {
	switch v := value.(type) {
	case string:
		return jsString(v)
	case bool:
		return fmt.Sprintf("%t", v)
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return strings.TrimSuffix(fmt.Sprintf("%g", v), ".0")
	case []string:
		return jsStringArray(v)
	default:
		return jsString(fmt.Sprintf("%v", v))
	}
}

func sortedOptionKeys(options map[string]any) []string {
	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
