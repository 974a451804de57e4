package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/nwrfc/codec"
	"github.com/wippyai/nwrfc/rfc"
)

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Log on and ping the system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			if err := conn.Ping(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: pong\n", conn.SysID())
			return nil
		},
	}
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the connection attributes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			info, err := conn.Info(cmd.Context())
			if err != nil {
				return err
			}
			m := info.Map()
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", k, m[k])
			}
			return nil
		},
	}
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe FUNCTION",
		Short: "Show the parameters of a function module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			fn, err := conn.Function(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			describe(cmd.OutOrStdout(), fn)
			return nil
		},
	}
}

func describe(w io.Writer, fn *rfc.Function) {
	_, _ = fmt.Fprintln(w, fn.Name())
	for _, p := range fn.Parameters() {
		describeParam(w, p, "  ", true)
	}
}

func describeParam(w io.Writer, p rfc.Parameter, indent string, top bool) {
	var b strings.Builder
	b.WriteString(indent)
	b.WriteString(fmt.Sprintf("%-30s %s", p.Name, typeLabel(p)))
	if top {
		b.WriteString(" ")
		b.WriteString(strings.TrimPrefix(p.Direction.String(), "RFC_"))
	}
	if p.Optional {
		b.WriteString(" optional")
	}
	if p.TypeName != "" {
		b.WriteString(" (")
		b.WriteString(p.TypeName)
		b.WriteString(")")
	}
	_, _ = fmt.Fprintln(w, b.String())
	for _, c := range p.Children {
		describeParam(w, c, indent+"  ", false)
	}
}

func typeLabel(p rfc.Parameter) string {
	name := strings.TrimPrefix(p.Type.String(), "RFCTYPE_")
	switch {
	case p.Type == codec.TypeBCD:
		return fmt.Sprintf("%s(%d,%d)", name, p.Length, p.Decimals)
	case p.Length > 0:
		return fmt.Sprintf("%s(%d)", name, p.Length)
	}
	return name
}

func newCallCmd(a *app) *cobra.Command {
	var (
		sets       []string
		deactivate []string
	)
	cmd := &cobra.Command{
		Use:   "call FUNCTION",
		Short: "Invoke a function module and print its results as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			call, err := conn.NewCall(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, s := range sets {
				if err := assignArg(call, s); err != nil {
					return err
				}
			}
			for _, name := range deactivate {
				if err := call.Deactivate(name); err != nil {
					return err
				}
			}
			if err := call.Invoke(cmd.Context()); err != nil {
				return err
			}
			out, err := results(call)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "parameter value as PATH=VALUE, e.g. IMPORTSTRUCT.RFCINT4=5 or TAB[0].C=X")
	cmd.Flags().StringArrayVar(&deactivate, "deactivate", nil, "parameter to leave out of the call")
	return cmd
}

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Pick and call function modules interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			return runShell(cmd.Context(), conn, a.sys.Functions())
		},
	}
}
