// SPDX-License-Identifier: MPL-2.0

package main

import cmd "stacked-cli/cmd/stg"

func main() {
	cmd.Execute()
}
