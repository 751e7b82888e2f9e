// Command enc_server is the standalone enc_server tool of the otp toolkit.
package main

import (
	"os"

	"otp/cmd"
)

func main() {
	os.Exit(cmd.Main("enc_server", os.Args[1:]))
}
