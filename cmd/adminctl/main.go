package main

import (
	"os"

	"github.com/sangkips/loyalty-admin/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
