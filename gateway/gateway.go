// Package gateway defines the collaborator that carries RFC calls to a
// remote system. Implementations own transport, logon and the metadata
// lookup; package rfc only sees the Caller side of a Conn.
package gateway

import (
	"context"

	"github.com/wippyai/nwrfc"
	"github.com/wippyai/nwrfc/config"
	"github.com/wippyai/nwrfc/rfc"
)

// Gateway opens connections to systems
type Gateway interface {
	Open(ctx context.Context, params config.LogonParams) (Conn, error)
}

// Conn is an open, logged on connection. Close must be called on every
// exit path; calls on a closed Conn fail with RFC_INVALID_HANDLE.
type Conn interface {
	nwrfc.Caller

	// DescribeFunction returns the unsealed description of a function module
	DescribeFunction(ctx context.Context, name string) (*rfc.Function, error)
	Info(ctx context.Context) (ConnectionInfo, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// ConnectionInfo mirrors the SDK's RFC_ATTRIBUTES
type ConnectionInfo struct {
	Dest         string
	Host         string
	PartnerHost  string
	SysNumber    string
	SysID        string
	Client       string
	User         string
	Language     string
	Trace        string
	ISOLanguage  string
	Codepage     string
	PartnerCP    string
	RFCRole      string
	Type         string
	PartnerType  string
	Rel          string
	PartnerRel   string
	KernelRel    string
	CPICConvID   string
	ProgName     string
}

// Map renders the attributes under their SDK names
func (i ConnectionInfo) Map() map[string]string {
	return map[string]string{
		"dest":            i.Dest,
		"host":            i.Host,
		"partnerHost":     i.PartnerHost,
		"sysNumber":       i.SysNumber,
		"sysId":           i.SysID,
		"client":          i.Client,
		"user":            i.User,
		"language":        i.Language,
		"trace":           i.Trace,
		"isoLanguage":     i.ISOLanguage,
		"codepage":        i.Codepage,
		"partnerCodepage": i.PartnerCP,
		"rfcRole":         i.RFCRole,
		"type":            i.Type,
		"partnerType":     i.PartnerType,
		"rel":             i.Rel,
		"partnerRel":      i.PartnerRel,
		"kernelRel":       i.KernelRel,
		"cpicConvId":      i.CPICConvID,
		"progName":        i.ProgName,
	}
}
