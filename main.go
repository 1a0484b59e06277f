// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/DamianRyse/OpenEsoUI-MM/cmd/openesoui-mm"

func main() {
	cmd.Execute()
}
