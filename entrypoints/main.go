package main

import (
	"github.com/Laisky/vigi-tools/cmd"
)

func main() {
	cmd.Execute()
}
