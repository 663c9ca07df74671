package config

import "github.com/spf13/viper"

// Default configuration values.
const (
	DefaultLogLevel = "info"
	DefaultLogFile  = "~/.config/assetbridge/assetbridge.log"

	DefaultExportOutputRoot          = "~/AssetBridgeExport"
	DefaultExportMeshExtension       = "fbx"
	DefaultExportDirectTextureSuffix = "direct"
	DefaultExportShaderModel         = "Standard"

	DefaultCatalogPath        = "~/.config/assetbridge/catalog.db"
	DefaultCatalogContentRoot = "/Game"

	DefaultSelectionFile = "~/.config/assetbridge/selection.yaml"
)

// setDefaults registers all default configuration values with v.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_file", DefaultLogFile)

	v.SetDefault("export.output_root", DefaultExportOutputRoot)
	v.SetDefault("export.mesh_extension", DefaultExportMeshExtension)
	v.SetDefault("export.direct_texture_suffix", DefaultExportDirectTextureSuffix)
	v.SetDefault("export.shader_model", DefaultExportShaderModel)
	v.SetDefault("export.animation_skeleton", "")

	v.SetDefault("catalog.path", DefaultCatalogPath)
	v.SetDefault("catalog.content_root", DefaultCatalogContentRoot)

	v.SetDefault("selection.file", DefaultSelectionFile)

	v.SetDefault("metrics.textfile", "")
}
