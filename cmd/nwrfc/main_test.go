package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/nwrfc/client"
	"github.com/wippyai/nwrfc/codec"
	"github.com/wippyai/nwrfc/config"
	"github.com/wippyai/nwrfc/errors"
	"github.com/wippyai/nwrfc/gateway/loopback"
	"github.com/wippyai/nwrfc/rfc"
)

const systems = `
system1:
  ashost: localhost
  sysnr: "00"
  client: "100"
  user: developer
  passwd: secret
  lang: EN
loopback:
  sysid: tst
  users:
    - name: developer
      password: secret
`

const defs = `
functions:
  - name: Z_ROUND_TRIP
    parameters:
      - {name: COUNTER, type: INT4, direction: CHANGING}
`

func logon() config.LogonParams {
	return config.LogonParams{ASHost: "localhost", SysNr: "00", Client: "100", User: "DEVELOPER", Passwd: "secret"}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "systems.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(systems), 0o600))
	def := filepath.Join(dir, "defs.yaml")
	require.NoError(t, os.WriteFile(def, []byte(defs), 0o600))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--config", cfg, "--defs", def, "--log-level", "error"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPing(t *testing.T) {
	out, err := run(t, "ping")
	require.NoError(t, err)
	require.Equal(t, "TST: pong\n", out)
}

func TestInfo(t *testing.T) {
	out, err := run(t, "--system", "system1", "info")
	require.NoError(t, err)
	require.Contains(t, out, "sysId")
	require.Contains(t, out, "DEVELOPER")
}

func TestDescribe(t *testing.T) {
	out, err := run(t, "describe", "STFC_STRUCTURE")
	require.NoError(t, err)
	require.Contains(t, out, "IMPORTSTRUCT")
	require.Contains(t, out, "(RFCTEST)")
	require.Contains(t, out, "RFCHEX3")
	require.Contains(t, out, "BYTE(3)")
}

func TestCall(t *testing.T) {
	out, err := run(t, "call", "STFC_CONNECTION", "--set", "REQUTEXT=hello", "--deactivate", "RESPTEXT")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Equal(t, "hello", got["ECHOTEXT"])
	require.NotContains(t, got, "RESPTEXT")
	require.NotContains(t, got, "REQUTEXT")
}

func TestCallDefinedFunction(t *testing.T) {
	out, err := run(t, "call", "Z_ROUND_TRIP", "--set", "COUNTER=41")
	require.NoError(t, err)
	require.Equal(t, "COUNTER: 41\n", out)
}

func TestCallDeepTable(t *testing.T) {
	out, err := run(t, "call", "STFC_DEEP_TABLE",
		"--set", "IMPORT_TAB[0].STR=first",
		"--set", "IMPORT_TAB[0].XSTR=0xcafe",
		"--set", "IMPORT_TAB[1].I=7",
		"--deactivate", "RESPTEXT")
	require.NoError(t, err)
	var got struct {
		Rows []map[string]any `yaml:"EXPORT_TAB"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got.Rows, 2)
	require.Equal(t, "first", got.Rows[0]["STR"])
	require.Equal(t, "0xcafe", got.Rows[0]["XSTR"])
	require.Equal(t, 7, got.Rows[1]["I"])
}

func TestCallErrors(t *testing.T) {
	_, err := run(t, "call", "STFC_EXCEPTION")
	require.ErrorIs(t, err, &errors.ApplicationException{Name: "EXAMPLE"})

	_, err = run(t, "call", "Z_MISSING")
	require.ErrorIs(t, err, &errors.CommunicationError{Code: errors.CodeNotFound})

	_, err = run(t, "call", "STFC_CONNECTION", "--set", "NOPE=1")
	require.ErrorIs(t, err, errors.ErrFieldUnknown)

	_, err = run(t, "--system", "ghost", "ping")
	require.Error(t, err)
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want []segment
		bad  bool
	}{
		{in: "A", want: []segment{{"A", -1}}},
		{in: "S.F", want: []segment{{"S", -1}, {"F", -1}}},
		{in: "T[2].F", want: []segment{{"T", 2}, {"F", -1}}},
		{in: "", bad: true},
		{in: "T[x].F", bad: true},
		{in: "T[1.F", bad: true},
		{in: "S..F", bad: true},
	}
	for _, tt := range tests {
		got, err := parsePath(tt.in)
		if tt.bad {
			if err == nil {
				t.Errorf("parsePath(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}
}

func TestAssignArg(t *testing.T) {
	fn := rfc.NewFunction("Z_ASSIGN", rfc.WithParameters(
		rfc.Parameter{Name: "RAW", Type: codec.TypeByte, Length: 2, Direction: codec.Import},
		rfc.Parameter{Name: "S", Type: codec.TypeStructure, Direction: codec.Import, Children: []rfc.Parameter{
			{Name: "N", Type: codec.TypeInt2},
		}},
		rfc.Parameter{Name: "T", Type: codec.TypeTable, Direction: codec.Tables, Children: []rfc.Parameter{
			{Name: "C", Type: codec.TypeChar, Length: 3},
		}},
	))
	call := fn.NewCall()

	require.NoError(t, assignArg(call, "raw=0x0102"))
	v, err := call.Get("RAW")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2}, v)

	require.NoError(t, assignArg(call, "S.N=-5"))
	rec, err := call.Record("S")
	require.NoError(t, err)
	v, err = rec.Get("N")
	require.NoError(t, err)
	require.Equal(t, int16(-5), v)

	require.NoError(t, assignArg(call, "T[0].C=abc"))
	require.NoError(t, assignArg(call, "T[0].C=xyz"))
	tbl, err := call.Table("T")
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Size())
	v, err = tbl.Get("C")
	require.NoError(t, err)
	require.Equal(t, "xyz", v)

	for _, bad := range []string{"RAW", "S=1", "T[5].C=a", "T[0]=a", "RAW.X=1", "S.MISSING=1", "S.N=99999", "RAW=0xZZ"} {
		require.Error(t, assignArg(call, bad), bad)
	}
}

func TestShellModel(t *testing.T) {
	ctx := context.Background()
	sys := loopback.New(loopback.WithUser("DEVELOPER", "secret"))
	conn, err := client.Open(ctx, sys, logon())
	require.NoError(t, err)
	defer conn.Close(ctx)

	m := newShellModel(ctx, conn, []string{"SCP_CHAR_ECHO"})
	require.Contains(t, m.View(), "SCP_CHAR_ECHO")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m.Update(cmd())
	require.Equal(t, stateInputArgs, m.state)
	require.Len(t, m.inputs, 1)

	m.inputs[0].SetValue("ping")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m.Update(cmd())
	require.Equal(t, stateShowResult, m.state)
	require.NoError(t, m.err)
	require.Equal(t, "EXP: ping\n", m.result)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, stateSelectFunc, m.state)
}
