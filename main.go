package main

import (
	_ "embed"

	"github.com/noteledger/note-ledger-service/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
