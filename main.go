package main

import (
	"fmt"
	"os"

	"billkaro/statement-ledger/cmd/batch"
	"billkaro/statement-ledger/cmd/categorize"
	"billkaro/statement-ledger/cmd/pdf"
	"billkaro/statement-ledger/cmd/root"
	"billkaro/statement-ledger/cmd/serve"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(pdf.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
