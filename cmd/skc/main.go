package main

import (
	"os"

	"github.com/sk-lang/skc/cmd/skc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
