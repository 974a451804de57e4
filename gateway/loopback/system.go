// Package loopback is an in-process gateway.
//
// A System plays the remote side of RFC: it checks logons against its
// user list, keeps open connections in a handle table and dispatches
// calls to registered function modules. Requests and responses travel
// as the same buffers a real gateway would carry, so everything above
// the gateway runs unchanged.
//
//	sys := loopback.New(loopback.WithUser("DEVELOPER", "secret"))
//	_ = sys.Register(fn, func(ctx context.Context, call *rfc.Call) error {
//	    v, _ := call.Get("IMP")
//	    return call.Set("EXP", v)
//	})
//
// New installs a set of standard function modules (STFC_CONNECTION,
// STFC_STRUCTURE, STFC_DEEP_TABLE, ...) unless WithoutStandardModules
// is given.
package loopback

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/nwrfc/config"
	"github.com/wippyai/nwrfc/errors"
	"github.com/wippyai/nwrfc/gateway"
	"github.com/wippyai/nwrfc/rfc"
)

// Handler serves one function module. It reads the imports of call and
// sets its exports. Returning an *errors.ApplicationException raises an
// ABAP exception on the calling side.
type Handler func(ctx context.Context, call *rfc.Call) error

type module struct {
	fn      *rfc.Function
	handler Handler
}

type user struct {
	password string
	locked   bool
}

// System is an in-process SAP system
type System struct {
	handles  *handleTable
	users    map[string]user
	modules  map[string]module
	sysID    string
	client   string
	release  string
	convID   atomic.Uint64
	mu       sync.RWMutex
	standard bool
}

// Option configures a System
type Option func(*System)

// WithUser adds an account
func WithUser(name, password string) Option {
	return func(s *System) {
		s.users[strings.ToUpper(name)] = user{password: password}
	}
}

// WithLockedUser adds an account that exists but cannot log on
func WithLockedUser(name, password string) Option {
	return func(s *System) {
		s.users[strings.ToUpper(name)] = user{password: password, locked: true}
	}
}

// WithSysID sets the three character system id
func WithSysID(id string) Option {
	return func(s *System) {
		s.sysID = strings.ToUpper(id)
	}
}

// WithClient restricts logons to one client
func WithClient(client string) Option {
	return func(s *System) {
		s.client = client
	}
}

// WithConfig applies a loopback configuration section
func WithConfig(c config.Loopback) Option {
	return func(s *System) {
		if c.SysID != "" {
			s.sysID = strings.ToUpper(c.SysID)
		}
		if c.Client != "" {
			s.client = c.Client
		}
		for _, u := range c.Users {
			s.users[strings.ToUpper(u.Name)] = user{password: u.Password, locked: u.Locked}
		}
	}
}

// WithoutStandardModules starts with an empty function registry
func WithoutStandardModules() Option {
	return func(s *System) {
		s.standard = false
	}
}

// New creates a System. Without users every logon fails.
func New(opts ...Option) *System {
	s := &System{
		handles:  newHandleTable(),
		users:    make(map[string]user),
		modules:  make(map[string]module),
		sysID:    "NPL",
		release:  "753",
		standard: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.standard {
		installStandard(s)
	}
	return s
}

// SysID returns the system id
func (s *System) SysID() string {
	return s.sysID
}

// Register installs or replaces a function module
func (s *System) Register(fn *rfc.Function, h Handler) error {
	if fn == nil || h == nil {
		return errors.InvalidInput(errors.PhaseGateway, "function and handler are required")
	}
	if fn.Name() == "" {
		return errors.InvalidInput(errors.PhaseGateway, "function name is required")
	}
	s.mu.Lock()
	s.modules[fn.Name()] = module{fn: fn, handler: h}
	s.mu.Unlock()
	Logger().Debug("function registered", zap.String("function", fn.Name()), zap.String("sysid", s.sysID))
	return nil
}

// Functions lists the registered function modules
func (s *System) Functions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.modules))
	for name := range s.modules {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Connections returns the number of open connections
func (s *System) Connections() int {
	return s.handles.len()
}

// Open logs on and returns a connection
func (s *System) Open(ctx context.Context, params config.LogonParams) (gateway.Conn, error) {
	if err := params.Validate(); err != nil {
		return nil, errors.Communication(errors.CodeInvalidParameter, errors.GroupExternalRuntimeFailure,
			"RFC_INVALID_PARAMETER", err.Error())
	}

	name := strings.ToUpper(params.User)
	s.mu.RLock()
	u, known := s.users[name]
	s.mu.RUnlock()

	switch {
	case s.client != "" && params.Client != s.client:
		Logger().Info("logon rejected", zap.String("user", name), zap.String("client", params.Client))
		return nil, errors.LogonFailure("client " + params.Client + " is not available in this system")
	case !known || u.password != params.Passwd:
		Logger().Info("logon rejected", zap.String("user", name))
		return nil, errors.LogonFailure("Name or password is incorrect (repeat logon)")
	case u.locked:
		Logger().Info("logon rejected", zap.String("user", name), zap.Bool("locked", true))
		return nil, errors.LogonFailure("User is locked. Please notify the person responsible")
	}

	lang := strings.ToUpper(params.Lang)
	if lang == "" {
		lang = "EN"
	}
	sess := &Session{
		User:     name,
		Client:   params.Client,
		Language: lang,
		SysID:    s.sysID,
		Params:   params,
		ConvID:   s.convID.Add(1),
	}
	h, err := s.handles.create(sess)
	if err != nil {
		return nil, errors.Communication(errors.CodeCommunicationFailure, errors.GroupCommunicationFailure,
			"RFC_ERROR_COMMUNICATION", "system is shut down")
	}
	Logger().Debug("logon", zap.String("user", name), zap.Uint32("handle", uint32(h)))
	return &conn{sys: s, sess: sess, handle: h}, nil
}

// Close disconnects every open connection
func (s *System) Close() error {
	s.handles.close()
	return nil
}

func (s *System) lookup(name string) (module, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.modules[strings.ToUpper(name)]
	return m, ok
}

var _ gateway.Gateway = (*System)(nil)
