package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "logixsim [tag ...]",
		Short: "ControlLogix EtherNet/IP tag server simulator",
		Long: `logixsim impersonates a ControlLogix CPU on EtherNet/IP: Register Session,
Forward Open, Read Tag (and Read Tag Fragmented), and Forward Close against
an in-memory tag table.

Tags are declared as positional arguments of the form NAME:TYPE[dim1][dim2][dim3],
TYPE one of DINT, INT, REAL, BOOL, BOOL_ARRAY. A missing [dim] means a scalar.`,
		Example: `  logixsim Rate:REAL TestDINTArray:DINT[3]
  logixsim --tags-file catalog.yaml
  logixsim --listen 0.0.0.0:44818 --metrics-listen 127.0.0.1:9600 Flags:BOOL_ARRAY[192]`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE:          runSimulator,
	}

	rootCmd.Flags().String("listen", "0.0.0.0:44818", "EIP TCP listen address")
	rootCmd.Flags().String("metrics-listen", "127.0.0.1:9600", "Prometheus/health HTTP listen address")
	rootCmd.Flags().Uint16("max-response-size", 0, "per-session fragmentation budget override (0 = scratch buffer capacity minus framing overhead)")
	rootCmd.Flags().String("tags-file", "", "YAML tag catalog file, layered underneath positional tag args")
	rootCmd.Flags().Bool("debug", false, "enable debug-level logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "logixsim: %v\n", err)
		os.Exit(1)
	}
}
