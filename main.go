// Command statement-parser extracts, validates and categorizes transactions
// from bank statement PDFs.
package main

import (
	"fmt"
	"os"

	"fjacquet/statement-parser/cmd/batch"
	"fjacquet/statement-parser/cmd/categories"
	"fjacquet/statement-parser/cmd/convert"
	"fjacquet/statement-parser/cmd/parse"
	"fjacquet/statement-parser/cmd/process"
	"fjacquet/statement-parser/cmd/root"
	"fjacquet/statement-parser/cmd/serve"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(process.Cmd)
	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
