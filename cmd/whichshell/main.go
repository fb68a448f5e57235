package main

import (
	"os"

	"github.com/pranshuparmar/whichshell/internal/app"
)

func main() {
	os.Exit(app.Execute())
}
