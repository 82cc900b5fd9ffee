package config

// File represents the structure of the solcache.yaml configuration file.
type File struct {
	Version  string         `yaml:"version"`
	Cached   *bool          `yaml:"cached"`
	Paths    PathsDTO       `yaml:"paths"`
	Profiles map[string]any `yaml:"profiles"`
}

// PathsDTO describes the project directory layout. All paths are relative to
// the project root.
type PathsDTO struct {
	Cache      string   `yaml:"cache"`
	Artifacts  string   `yaml:"artifacts"`
	BuildInfos string   `yaml:"buildInfos"`
	Sources    string   `yaml:"sources"`
	Tests      string   `yaml:"tests"`
	Scripts    string   `yaml:"scripts"`
	Libraries  []string `yaml:"libraries"`
}
