// Package config loads YAML configuration for the stockboard binaries.
//
// Loading is layered: Load parses the file and expands ${VAR} environment
// references, LoadWithDefaults fills optional fields from the Default*
// constants, and LoadAndValidate / LoadAndValidateArchiver add validation.
// The server validates only the sections it uses; database settings are
// required only for the archiver.
package config
