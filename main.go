// SPDX-License-Identifier: MPL-2.0

// pipewalk inspects pipeline installations and their runtime surroundings.
package main

import cmd "github.com/pipewalk/pipewalk/cmd/pipewalk"

func main() {
	cmd.Execute()
}
