// Command pipeline runs the bond trading back-office pipeline.
package main

import (
	"fmt"
	"os"

	"bond-trading-pipeline/internal/cli"
	"bond-trading-pipeline/internal/config"
	"bond-trading-pipeline/internal/logging"
)

func main() {
	logger := logging.NewLogger()

	rootCmd := cli.NewRootCmd(config.Default(), logger)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
