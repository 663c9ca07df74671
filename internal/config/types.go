package config

// Config is the root configuration structure for the application.
type Config struct {
	LogLevel  string          `yaml:"log_level" mapstructure:"log_level"`
	LogFile   string          `yaml:"log_file" mapstructure:"log_file"`
	Export    ExportConfig    `yaml:"export" mapstructure:"export"`
	Catalog   CatalogConfig   `yaml:"catalog" mapstructure:"catalog"`
	Selection SelectionConfig `yaml:"selection" mapstructure:"selection"`
	Metrics   MetricsConfig   `yaml:"metrics" mapstructure:"metrics"`
}

// ExportConfig holds output naming and strategy settings.
type ExportConfig struct {
	OutputRoot          string `yaml:"output_root" mapstructure:"output_root"`
	MeshExtension       string `yaml:"mesh_extension" mapstructure:"mesh_extension"`
	DirectTextureSuffix string `yaml:"direct_texture_suffix" mapstructure:"direct_texture_suffix"`
	ShaderModel         string `yaml:"shader_model" mapstructure:"shader_model"`
	// AnimationSkeleton is the identity of a skeletal mesh every animation is bound to.
	AnimationSkeleton string `yaml:"animation_skeleton" mapstructure:"animation_skeleton"`
}

// CatalogConfig holds the asset catalog settings.
type CatalogConfig struct {
	Path        string `yaml:"path" mapstructure:"path"`
	ContentRoot string `yaml:"content_root" mapstructure:"content_root"`
}

// SelectionConfig holds the selection file settings.
type SelectionConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// MetricsConfig holds run metrics settings.
type MetricsConfig struct {
	// Textfile is where run metrics are written; empty disables them.
	Textfile string `yaml:"textfile" mapstructure:"textfile"`
}

// NewDefaultConfig returns a Config populated with default values.
func NewDefaultConfig() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		LogFile:  DefaultLogFile,
		Export: ExportConfig{
			OutputRoot:          DefaultExportOutputRoot,
			MeshExtension:       DefaultExportMeshExtension,
			DirectTextureSuffix: DefaultExportDirectTextureSuffix,
			ShaderModel:         DefaultExportShaderModel,
		},
		Catalog: CatalogConfig{
			Path:        DefaultCatalogPath,
			ContentRoot: DefaultCatalogContentRoot,
		},
		Selection: SelectionConfig{
			File: DefaultSelectionFile,
		},
	}
}

// ExpandPaths returns a copy of the config with ~ expanded in every path field.
func (c Config) ExpandPaths() Config {
	c.LogFile = ExpandPath(c.LogFile)
	c.Export.OutputRoot = ExpandPath(c.Export.OutputRoot)
	c.Catalog.Path = ExpandPath(c.Catalog.Path)
	c.Selection.File = ExpandPath(c.Selection.File)
	c.Metrics.Textfile = ExpandPath(c.Metrics.Textfile)
	return c
}
