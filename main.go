package main

import (
	"embed"
	"os"

	"github.com/hance08/bolso/cmd"
)

//go:embed migrations
var migrationsFS embed.FS

func main() {
	os.Exit(cmd.Execute(migrationsFS))
}
