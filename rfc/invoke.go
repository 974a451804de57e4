package rfc

import (
	"context"

	"github.com/wippyai/nwrfc"
	"github.com/wippyai/nwrfc/errors"
)

// Invoke calls the function through the Caller bound to its Function.
//
// Errors returned by the caller are passed through unchanged, so a
// *errors.CommunicationError or *errors.ApplicationException can be
// inspected directly. Nothing is retried.
func (c *Call) Invoke(ctx context.Context) error {
	caller := c.fn.Caller()
	if caller == nil {
		return errors.NotInitialized(errors.PhaseInvoke, "caller of function "+c.fn.Name())
	}
	return c.InvokeWith(ctx, caller)
}

// InvokeWith calls the function through caller
func (c *Call) InvokeWith(ctx context.Context, caller nwrfc.Caller) error {
	req, err := c.EncodeRequest()
	if err != nil {
		return err
	}
	resp, err := caller.Call(ctx, c.fn.Name(), req)
	if err != nil {
		return err
	}
	return c.decodeResponse(resp)
}
