// Package client manages connections to an SAP system.
//
// A Connection wraps a gateway connection with a function description
// cache and call logging:
//
//	conn, err := client.Open(ctx, gw, params)
//	if err != nil {
//	    return err
//	}
//	defer conn.Close(ctx)
//
//	call, err := conn.NewCall(ctx, "STFC_CONNECTION")
//	if err != nil {
//	    return err
//	}
//	_ = call.Set("REQUTEXT", "hello")
//	if err := call.Invoke(ctx); err != nil {
//	    return err
//	}
//	echo, _ := call.Get("ECHOTEXT")
package client

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/nwrfc"
	"github.com/wippyai/nwrfc/config"
	"github.com/wippyai/nwrfc/errors"
	"github.com/wippyai/nwrfc/gateway"
	"github.com/wippyai/nwrfc/repository"
	"github.com/wippyai/nwrfc/rfc"
)

var (
	sharedRepo     *repository.Repository
	sharedRepoOnce sync.Once
)

// Repository returns the description cache shared by connections opened
// without WithRepository.
func Repository() *repository.Repository {
	sharedRepoOnce.Do(func() {
		sharedRepo = repository.New(repository.DefaultSize)
	})
	return sharedRepo
}

// Option configures a Connection
type Option func(*Connection)

// WithRepository sets the function description cache
func WithRepository(r *repository.Repository) Option {
	return func(c *Connection) {
		c.repo = r
	}
}

// WithLogger sets the logger used for this connection
func WithLogger(l *zap.Logger) Option {
	return func(c *Connection) {
		c.log = l
	}
}

// Connection is an open logon. It is safe for concurrent use; each Call
// built from it must stay on one goroutine.
type Connection struct {
	conn   gateway.Conn
	repo   *repository.Repository
	log    *zap.Logger
	id     uuid.UUID
	sysID  string
	mu     sync.RWMutex
	closed bool
}

// Open logs on through gw
func Open(ctx context.Context, gw gateway.Gateway, params config.LogonParams, opts ...Option) (*Connection, error) {
	c := &Connection{id: uuid.New()}
	for _, opt := range opts {
		opt(c)
	}
	if c.repo == nil {
		c.repo = Repository()
	}
	if c.log == nil {
		c.log = Logger()
	}
	c.log = c.log.With(zap.String("conn", c.id.String()))

	start := time.Now()
	conn, err := gw.Open(ctx, params)
	if err != nil {
		c.log.Warn("logon failed", zap.String("params", params.String()), zap.Error(err))
		return nil, err
	}
	info, err := conn.Info(ctx)
	if err != nil {
		_ = conn.Close(ctx)
		return nil, err
	}
	c.conn = conn
	c.sysID = info.SysID
	c.log.Debug("connected",
		zap.String("sysid", info.SysID),
		zap.String("client", info.Client),
		zap.String("user", info.User),
		zap.Duration("duration", time.Since(start)))
	return c, nil
}

// ID identifies the connection in log output
func (c *Connection) ID() string {
	return c.id.String()
}

// SysID returns the id of the connected system
func (c *Connection) SysID() string {
	return c.sysID
}

func (c *Connection) open() (gateway.Conn, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, errors.InvalidHandle("connection")
	}
	return c.conn, nil
}

// Call sends one request buffer and returns the response buffer
func (c *Connection) Call(ctx context.Context, function string, request []byte) ([]byte, error) {
	conn, err := c.open()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	resp, err := conn.Call(ctx, function, request)
	fields := []zap.Field{
		zap.String("function", function),
		zap.Duration("duration", time.Since(start)),
		zap.Int("request_bytes", len(request)),
	}
	if err != nil {
		switch e := err.(type) {
		case *errors.CommunicationError:
			fields = append(fields, zap.String("code", string(e.Code)), zap.String("group", string(e.Group)))
		case *errors.ApplicationException:
			fields = append(fields, zap.String("exception", e.Name))
		}
		c.log.Warn("call failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	c.log.Debug("call", append(fields, zap.Int("response_bytes", len(resp)))...)
	return resp, nil
}

// Function returns the description of name bound to this connection.
// Descriptions come from the repository, falling back to the backend.
func (c *Connection) Function(ctx context.Context, name string) (*rfc.Function, error) {
	conn, err := c.open()
	if err != nil {
		return nil, err
	}
	fn, err := c.repo.Lookup(ctx, conn, c.sysID, name)
	if err != nil {
		return nil, err
	}
	return fn.Bind(c), nil
}

// NewCall is Function followed by NewCall
func (c *Connection) NewCall(ctx context.Context, name string) (*rfc.Call, error) {
	fn, err := c.Function(ctx, name)
	if err != nil {
		return nil, err
	}
	return fn.NewCall(), nil
}

// Info returns the connection attributes
func (c *Connection) Info(ctx context.Context) (gateway.ConnectionInfo, error) {
	conn, err := c.open()
	if err != nil {
		return gateway.ConnectionInfo{}, err
	}
	return conn.Info(ctx)
}

// Ping checks that the connection is alive
func (c *Connection) Ping(ctx context.Context) error {
	conn, err := c.open()
	if err != nil {
		return err
	}
	return conn.Ping(ctx)
}

// Closed reports whether Close has been called
func (c *Connection) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Close logs off. Closing an already closed connection is a no-op.
func (c *Connection) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	err := c.conn.Close(ctx)
	c.log.Debug("closed", zap.Error(err))
	return err
}

var _ nwrfc.Caller = (*Connection)(nil)
