package main

import (
	"fmt"
	"os"

	"github.com/WeiChun0723/Moni/cmd/add"
	"github.com/WeiChun0723/Moni/cmd/categories"
	"github.com/WeiChun0723/Moni/cmd/currency"
	"github.com/WeiChun0723/Moni/cmd/export"
	"github.com/WeiChun0723/Moni/cmd/list"
	"github.com/WeiChun0723/Moni/cmd/remove"
	"github.com/WeiChun0723/Moni/cmd/report"
	"github.com/WeiChun0723/Moni/cmd/root"
	"github.com/WeiChun0723/Moni/cmd/scan"
)

func init() {
	root.Cmd.AddCommand(add.Cmd)
	root.Cmd.AddCommand(list.Cmd)
	root.Cmd.AddCommand(remove.Cmd)
	root.Cmd.AddCommand(scan.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(currency.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(export.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
