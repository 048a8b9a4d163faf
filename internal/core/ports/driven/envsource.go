package driven

// EnvSource loads environment variables from dotenv files.
type EnvSource interface {
	// Load parses the given files in order, later files overriding
	// earlier ones. Missing files are skipped silently; a file that
	// exists but does not parse is an error.
	Load(files ...string) (map[string]string, error)
}
