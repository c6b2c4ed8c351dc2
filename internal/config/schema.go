package config

// Config is the top-level dancectl configuration.
type Config struct {
	Collection CollectionConfig `mapstructure:"collection" yaml:"collection"`
	Remote     RemoteConfig     `mapstructure:"remote" yaml:"remote"`
	Upload     UploadConfig     `mapstructure:"upload" yaml:"upload"`
}

// CollectionConfig describes the local asset tree and catalog file.
type CollectionConfig struct {
	Root        string            `mapstructure:"root" yaml:"root"`
	DancesDir   string            `mapstructure:"dances_dir" yaml:"dances_dir"`
	CatalogPath string            `mapstructure:"catalog_path" yaml:"catalog_path"`
	Patterns    []string          `mapstructure:"patterns" yaml:"patterns,omitempty"`
	StripExt    bool              `mapstructure:"strip_extension" yaml:"strip_extension,omitempty"`
	Authors     map[string]string `mapstructure:"authors" yaml:"authors,omitempty"`
	Workers     int               `mapstructure:"workers" yaml:"workers,omitempty"`
}

// RemoteConfig describes where published catalog snapshots come from.
type RemoteConfig struct {
	Mirrors        []string `mapstructure:"mirrors" yaml:"mirrors,omitempty"`
	Retries        int      `mapstructure:"retries" yaml:"retries,omitempty"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds" yaml:"timeout_seconds,omitempty"`
}

// UploadConfig describes the contributor endpoint.
type UploadConfig struct {
	Endpoint      string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`
	ContributorID string `mapstructure:"contributor_id" yaml:"contributor_id,omitempty"`
}
