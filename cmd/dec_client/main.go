// Command dec_client is the standalone dec_client tool of the otp toolkit.
package main

import (
	"os"

	"otp/cmd"
)

func main() {
	os.Exit(cmd.Main("dec_client", os.Args[1:]))
}
