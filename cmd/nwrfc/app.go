package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/nwrfc/client"
	"github.com/wippyai/nwrfc/config"
	"github.com/wippyai/nwrfc/errors"
	"github.com/wippyai/nwrfc/funcdef"
	"github.com/wippyai/nwrfc/gateway/loopback"
	"github.com/wippyai/nwrfc/rfc"
)

type app struct {
	conn   *client.Connection
	sys    *loopback.System
	log    *zap.Logger
	params config.LogonParams

	configPath  string
	system      string
	logLevel    string
	defsPath    string
	retries     int
	askPassword bool
}

func (a *app) setup(cmd *cobra.Command) error {
	level, err := zapcore.ParseLevel(a.logLevel)
	if err != nil {
		return err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	a.log, err = cfg.Build()
	if err != nil {
		return err
	}
	client.SetLogger(a.log.Named("client"))
	loopback.SetLogger(a.log.Named("loopback"))

	file := config.Empty()
	if a.configPath != "" {
		if file, err = config.Load(a.configPath); err != nil {
			return err
		}
	}
	if a.system == "" {
		if systems := file.Systems(); len(systems) == 1 {
			a.system = systems[0]
		} else {
			return fmt.Errorf("--system is required (available: %s)", strings.Join(systems, ", "))
		}
	}
	if a.params, err = file.System(a.system); err != nil {
		return err
	}
	if a.askPassword {
		if a.params.Passwd, err = readPassword(cmd, a.params.User); err != nil {
			return err
		}
	}

	opts := []loopback.Option{loopback.WithConfig(file.Loopback)}
	if len(file.Loopback.Users) == 0 {
		// a bare systems file logs on as whoever it names
		opts = append(opts, loopback.WithUser(a.params.User, a.params.Passwd))
	}
	a.sys = loopback.New(opts...)
	if a.defsPath != "" {
		fns, err := funcdef.Load(a.defsPath)
		if err != nil {
			return err
		}
		for _, fn := range fns {
			if err := a.sys.Register(fn, serveDefault); err != nil {
				return err
			}
		}
	}
	return nil
}

// serveDefault answers functions loaded from a definitions file. Exports
// keep their initial values; CHANGING and TABLES parameters come back as sent.
func serveDefault(context.Context, *rfc.Call) error {
	return nil
}

func readPassword(cmd *cobra.Command, user string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.InvalidInput(errors.PhaseConfig, "--ask-password needs a terminal")
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Password for %s: ", user)
	pw, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// connect logs on, retrying communication failures with exponential backoff
func (a *app) connect(ctx context.Context) (*client.Connection, error) {
	if a.conn != nil {
		return a.conn, nil
	}
	var b backoff.BackOff = backoff.NewExponentialBackOff()
	b = backoff.WithContext(backoff.WithMaxRetries(b, uint64(max(a.retries, 0))), ctx)

	op := func() error {
		conn, err := client.Open(ctx, a.sys, a.params)
		if err != nil {
			if ce, ok := errors.AsCommunication(err); ok && ce.Group == errors.GroupCommunicationFailure {
				return err
			}
			return backoff.Permanent(err)
		}
		a.conn = conn
		return nil
	}
	notify := func(err error, wait time.Duration) {
		a.log.Info("logon retry", zap.Duration("wait", wait), zap.Error(err))
	}
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		return nil, err
	}
	return a.conn, nil
}

func (a *app) teardown(ctx context.Context) error {
	if a.conn != nil {
		_ = a.conn.Close(ctx)
	}
	if a.sys != nil {
		_ = a.sys.Close()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
	return nil
}
