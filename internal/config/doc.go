// SPDX-License-Identifier: MPL-2.0

// Package config loads the openesoui-mm configuration using Viper with CUE as
// the file format.
//
// The file lives in the platform config directory: $XDG_CONFIG_HOME/openesoui-mm
// (default ~/.config) on Linux and other Unix systems, ~/Library/Application
// Support/openesoui-mm on macOS, and Documents\openesoui-mm on Windows. It is
// validated against an embedded CUE schema (config_schema.cue). A config.json
// written by earlier releases is still read when no config.cue exists.
//
// Every key can be overridden from the environment with the OPENESOUI_ prefix,
// for example OPENESOUI_TARGET_DIRECTORY or OPENESOUI_UI_VERBOSE.
package config
