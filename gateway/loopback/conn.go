package loopback

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/nwrfc/config"
	"github.com/wippyai/nwrfc/errors"
	"github.com/wippyai/nwrfc/gateway"
	"github.com/wippyai/nwrfc/rfc"
)

// Session is the logon context a handler runs in
type Session struct {
	User     string
	Client   string
	Language string
	SysID    string
	Params   config.LogonParams
	ConvID   uint64
}

type sessionKey struct{}

// SessionFrom returns the session of the connection serving ctx
func SessionFrom(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok
}

// conn is one logon. A released handle may be handed to a later logon,
// so the session pointer tells the current owner apart from stale conns.
type conn struct {
	sys    *System
	sess   *Session
	handle handle
}

func (c *conn) session() (*Session, error) {
	s, ok := c.sys.handles.get(c.handle)
	if !ok || s != c.sess {
		return nil, errors.InvalidHandle("connection handle")
	}
	return s, nil
}

func (c *conn) Call(ctx context.Context, function string, request []byte) ([]byte, error) {
	sess, err := c.session()
	if err != nil {
		return nil, err
	}
	m, ok := c.sys.lookup(function)
	if !ok {
		return nil, errors.Communication(errors.CodeNotFound, errors.GroupABAPRuntimeFailure,
			"FU_NOT_FOUND", "ID:FL Type:E Number:046 "+function)
	}

	call, err := rfc.DecodeRequest(m.fn, request)
	if err != nil {
		return nil, errors.Communication(errors.CodeSerializationFailure, errors.GroupExternalRuntimeFailure,
			"RFC_SERIALIZATION_FAILURE", err.Error())
	}

	start := time.Now()
	err = m.handler(context.WithValue(ctx, sessionKey{}, sess), call)
	if err != nil {
		Logger().Debug("function raised",
			zap.String("function", function),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		if ae, ok := errors.AsApplication(err); ok {
			return nil, ae
		}
		if ce, ok := errors.AsCommunication(err); ok {
			return nil, ce
		}
		return nil, errors.Communication(errors.CodeABAPRuntimeFailure, errors.GroupABAPRuntimeFailure,
			"RFC_ERROR_SYSTEM_FAILURE", err.Error())
	}

	resp, err := call.EncodeResponse()
	if err != nil {
		return nil, errors.Communication(errors.CodeSerializationFailure, errors.GroupExternalRuntimeFailure,
			"RFC_SERIALIZATION_FAILURE", err.Error())
	}
	return resp, nil
}

// DescribeFunction returns a fresh, unsealed copy of the registered description
func (c *conn) DescribeFunction(_ context.Context, name string) (*rfc.Function, error) {
	if _, err := c.session(); err != nil {
		return nil, err
	}
	m, ok := c.sys.lookup(name)
	if !ok {
		return nil, errors.Communication(errors.CodeNotFound, errors.GroupABAPApplicationFailure,
			"FU_NOT_FOUND", "function module "+name+" not found")
	}
	return rfc.NewFunction(m.fn.Name(), rfc.WithParameters(m.fn.Parameters()...)), nil
}

func (c *conn) Info(_ context.Context) (gateway.ConnectionInfo, error) {
	sess, err := c.session()
	if err != nil {
		return gateway.ConnectionInfo{}, err
	}
	return gateway.ConnectionInfo{
		Dest:        sess.Params.Dest,
		Host:        "localhost",
		PartnerHost: "loopback",
		SysNumber:   sess.Params.SysNr,
		SysID:       sess.SysID,
		Client:      sess.Client,
		User:        sess.User,
		Language:    sess.Language[:1],
		Trace:       sess.Params.Trace,
		ISOLanguage: sess.Language,
		Codepage:    "4103",
		PartnerCP:   "4103",
		RFCRole:     "C",
		Type:        "E",
		PartnerType: "3",
		Rel:         c.sys.release,
		PartnerRel:  c.sys.release,
		KernelRel:   c.sys.release,
		CPICConvID:  fmt.Sprintf("%08d", sess.ConvID),
		ProgName:    "SAPLSYST",
	}, nil
}

func (c *conn) Ping(ctx context.Context) error {
	_, err := c.Call(ctx, "RFC_PING", []byte{rfc.BufferVersion, 0, 0})
	return err
}

// Close releases the handle. Closing twice reports RFC_INVALID_HANDLE.
func (c *conn) Close(_ context.Context) error {
	if !c.sys.handles.drop(c.handle, c.sess) {
		return errors.InvalidHandle("connection handle")
	}
	Logger().Debug("logoff", zap.Uint32("handle", uint32(c.handle)))
	return nil
}
