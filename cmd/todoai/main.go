package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/todoforai/todoai-cli/internal/cli"
)

func main() {
	// First Ctrl+C exits immediately with the shell's SIGINT code.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		fmt.Fprintln(os.Stderr, "\nCancelled by user (Ctrl+C)")
		os.Exit(cli.ExitCancelled)
	}()

	if err := cli.Execute(); err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}
