package core

// RepoConfig represents the structure of the .bilingo.yml file.
type RepoConfig struct {
	// Extra instructions appended to every translation prompt, e.g. a glossary
	// of product names that must stay untranslated.
	CustomInstructions []string `yaml:"custom_instructions"`

	// Directory names skipped while discovering Markdown files.
	// Example: ["node_modules", "vendor", "site"]
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// Repository-relative paths (or base names) that are never translated.
	// Example: ["CHANGELOG.md"]
	ExcludeFiles []string `yaml:"exclude_files"`
}

// DefaultRepoConfig returns a config with default values.
func DefaultRepoConfig() *RepoConfig {
	return &RepoConfig{
		CustomInstructions: []string{},
		ExcludeDirs:        []string{},
		ExcludeFiles:       []string{},
	}
}
