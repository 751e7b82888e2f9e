// otp - a one-time pad toolkit: key generator, enc/dec services and
// their clients in one multi-call binary.
package main

import (
	"os"

	"otp/cmd"
)

func main() {
	os.Exit(cmd.Main("", os.Args[1:]))
}
