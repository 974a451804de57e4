// Command nwrfc calls function modules on an SAP system.
//
//	nwrfc --config systems.yaml --system system1 ping
//	nwrfc --config systems.yaml --system system1 call STFC_CONNECTION --set REQUTEXT=hello
//	nwrfc --config systems.yaml --system system1 shell
//
// The systems file holds logon parameters per alias plus an optional
// loopback section describing the in-process system the commands talk to.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "nwrfc",
		Short:         "Call ABAP function modules over RFC",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.Context())
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "systems file (YAML)")
	f.StringVar(&a.system, "system", "", "system alias in the systems file")
	f.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	f.IntVar(&a.retries, "retries", 0, "logon retries on communication failures")
	f.BoolVar(&a.askPassword, "ask-password", false, "prompt for the password")
	f.StringVar(&a.defsPath, "defs", "", "function definitions (YAML) served by the loopback system")

	root.AddCommand(
		newPingCmd(a),
		newInfoCmd(a),
		newDescribeCmd(a),
		newCallCmd(a),
		newShellCmd(a),
	)
	return root
}
