// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for openesoui-mm.
//
// Running the binary without a subcommand updates every configured addon:
// each id is resolved against esoui.com, its archive downloaded and extracted
// into the target directory. The config subcommands inspect and create the
// configuration file.
package cmd
