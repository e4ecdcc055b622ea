// Package main is the entry point for taskctl, a command-line client for the
// task manager API.
package main

import (
	"fmt"
	"os"

	"github.com/abhinxvz/task-mng/client"
	"github.com/abhinxvz/task-mng/client/viewmodel"
)

func main() {
	root := newRootCommand(func(server string) *viewmodel.ViewModel {
		return viewmodel.New(client.New(server))
	})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
