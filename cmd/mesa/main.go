package main

import (
	"github.com/c9s/mesa/pkg/cmd"
)

func main() {
	cmd.Execute()
}
