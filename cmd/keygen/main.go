// Command keygen is the standalone keygen tool of the otp toolkit.
package main

import (
	"os"

	"otp/cmd"
)

func main() {
	os.Exit(cmd.Main("keygen", os.Args[1:]))
}
