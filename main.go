package main

import (
	"github.com/chainledger/chainledger/cmd"
)

func main() {
	cmd.Execute()
}
