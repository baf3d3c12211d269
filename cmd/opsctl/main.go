package main

import (
	"os"

	"agentd/internal/opsctl"
)

func main() { os.Exit(opsctl.Main()) }
