// Command dec_server is the standalone dec_server tool of the otp toolkit.
package main

import (
	"os"

	"otp/cmd"
)

func main() {
	os.Exit(cmd.Main("dec_server", os.Args[1:]))
}
