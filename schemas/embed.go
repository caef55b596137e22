// Package schemas embeds the JSON Schemas for powercards configuration files.
package schemas

import _ "embed"

// ConfigSchemaName is the file name of the configuration schema
const ConfigSchemaName = "config.schema.json"

// ConfigSchema validates the JSON configuration file accepted by --config.
//
//go:embed config.schema.json
var ConfigSchema []byte
