package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/nwrfc/config"
	"github.com/wippyai/nwrfc/errors"
	"github.com/wippyai/nwrfc/gateway/loopback"
	"github.com/wippyai/nwrfc/repository"
)

func params() config.LogonParams {
	return config.LogonParams{
		ASHost: "localhost",
		SysNr:  "00",
		Client: "100",
		User:   "DEVELOPER",
		Passwd: "secret",
	}
}

func system() *loopback.System {
	return loopback.New(loopback.WithUser("DEVELOPER", "secret"), loopback.WithSysID("TST"))
}

func TestOpenAndCall(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.DebugLevel)
	repo := repository.New(16)

	conn, err := Open(ctx, system(), params(), WithRepository(repo), WithLogger(zap.New(core)))
	require.NoError(t, err)
	defer conn.Close(ctx)
	require.Equal(t, "TST", conn.SysID())
	require.NotEmpty(t, conn.ID())

	call, err := conn.NewCall(ctx, "STFC_CONNECTION")
	require.NoError(t, err)
	require.NoError(t, call.Set("REQUTEXT", "Hello SAP!"))
	require.NoError(t, call.Invoke(ctx))
	echo, err := call.Get("ECHOTEXT")
	require.NoError(t, err)
	require.Equal(t, "Hello SAP!", echo)

	require.Equal(t, 1, repo.Len())
	_, err = conn.NewCall(ctx, "stfc_connection")
	require.NoError(t, err)
	require.Equal(t, 1, repo.Len())

	calls := logs.FilterMessage("call").All()
	require.Len(t, calls, 1)
	require.Equal(t, "STFC_CONNECTION", calls[0].ContextMap()["function"])
	require.Equal(t, conn.ID(), calls[0].ContextMap()["conn"])
}

func TestLogonFailure(t *testing.T) {
	p := params()
	p.Passwd = "wrong"
	_, err := Open(context.Background(), system(), p)
	ce, ok := errors.AsCommunication(err)
	require.True(t, ok)
	require.Equal(t, errors.CodeLogonFailure, ce.Code)
	require.Equal(t, errors.GroupLogonFailure, ce.Group)
}

func TestException(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	conn, err := Open(ctx, system(), params(), WithLogger(zap.New(core)))
	require.NoError(t, err)
	defer conn.Close(ctx)

	call, err := conn.NewCall(ctx, "STFC_EXCEPTION")
	require.NoError(t, err)
	err = call.Invoke(ctx)
	require.ErrorIs(t, err, &errors.ApplicationException{Name: "EXAMPLE"})

	failed := logs.FilterMessage("call failed").All()
	require.Len(t, failed, 1)
	require.Equal(t, "EXAMPLE", failed[0].ContextMap()["exception"])
}

func TestUnknownFunction(t *testing.T) {
	ctx := context.Background()
	conn, err := Open(ctx, system(), params(), WithRepository(repository.New(4)))
	require.NoError(t, err)
	defer conn.Close(ctx)

	_, err = conn.Function(ctx, "Z_NOPE")
	require.ErrorIs(t, err, &errors.CommunicationError{Code: errors.CodeNotFound})
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	sys := system()
	conn, err := Open(ctx, sys, params())
	require.NoError(t, err)

	call, err := conn.NewCall(ctx, "RFC_PING")
	require.NoError(t, err)
	require.NoError(t, conn.Ping(ctx))
	info, err := conn.Info(ctx)
	require.NoError(t, err)
	require.Equal(t, "DEVELOPER", info.User)

	require.NoError(t, conn.Close(ctx))
	require.NoError(t, conn.Close(ctx))
	require.True(t, conn.Closed())
	require.Equal(t, 0, sys.Connections())

	invalid := &errors.CommunicationError{Code: errors.CodeInvalidHandle}
	require.ErrorIs(t, conn.Ping(ctx), invalid)
	require.ErrorIs(t, call.Invoke(ctx), invalid)
	_, err = conn.Info(ctx)
	require.ErrorIs(t, err, invalid)
	_, err = conn.Function(ctx, "RFC_PING")
	require.ErrorIs(t, err, invalid)
}

func TestDeactivatedExport(t *testing.T) {
	ctx := context.Background()
	conn, err := Open(ctx, system(), params())
	require.NoError(t, err)
	defer conn.Close(ctx)

	call, err := conn.NewCall(ctx, "BAPI_USER_GET_DETAIL")
	require.NoError(t, err)
	require.NoError(t, call.Set("USERNAME", "DEVELOPER"))
	require.NoError(t, call.Invoke(ctx))
	lock, err := call.Record("ISLOCKED")
	require.NoError(t, err)
	v, err := lock.Get("WRNG_LOGON")
	require.NoError(t, err)
	require.Equal(t, "U", v)

	call, err = conn.NewCall(ctx, "BAPI_USER_GET_DETAIL")
	require.NoError(t, err)
	require.NoError(t, call.Set("USERNAME", "DEVELOPER"))
	require.NoError(t, call.Deactivate("ISLOCKED"))
	require.NoError(t, call.Invoke(ctx))
	lock, err = call.Record("ISLOCKED")
	require.NoError(t, err)
	v, err = lock.Get("WRNG_LOGON")
	require.NoError(t, err)
	require.Equal(t, "", v)
}

func TestSharedRepository(t *testing.T) {
	require.Same(t, Repository(), Repository())
}
