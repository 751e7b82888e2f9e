// Command enc_client is the standalone enc_client tool of the otp toolkit.
package main

import (
	"os"

	"otp/cmd"
)

func main() {
	os.Exit(cmd.Main("enc_client", os.Args[1:]))
}
