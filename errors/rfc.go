package errors

import (
	stderrors "errors"
	"strings"
)

// Code is an RFC return code as reported by the gateway
type Code string

const (
	CodeOK                        Code = "RFC_OK"
	CodeCommunicationFailure      Code = "RFC_COMMUNICATION_FAILURE"
	CodeLogonFailure              Code = "RFC_LOGON_FAILURE"
	CodeABAPRuntimeFailure        Code = "RFC_ABAP_RUNTIME_FAILURE"
	CodeABAPMessage               Code = "RFC_ABAP_MESSAGE"
	CodeABAPException             Code = "RFC_ABAP_EXCEPTION"
	CodeClosed                    Code = "RFC_CLOSED"
	CodeCanceled                  Code = "RFC_CANCELED"
	CodeTimeout                   Code = "RFC_TIMEOUT"
	CodeMemoryInsufficient        Code = "RFC_MEMORY_INSUFFICIENT"
	CodeVersionMismatch           Code = "RFC_VERSION_MISMATCH"
	CodeInvalidProtocol           Code = "RFC_INVALID_PROTOCOL"
	CodeSerializationFailure      Code = "RFC_SERIALIZATION_FAILURE"
	CodeInvalidHandle             Code = "RFC_INVALID_HANDLE"
	CodeRetry                     Code = "RFC_RETRY"
	CodeExternalFailure           Code = "RFC_EXTERNAL_FAILURE"
	CodeExecuted                  Code = "RFC_EXECUTED"
	CodeNotFound                  Code = "RFC_NOT_FOUND"
	CodeNotSupported              Code = "RFC_NOT_SUPPORTED"
	CodeIllegalState              Code = "RFC_ILLEGAL_STATE"
	CodeInvalidParameter          Code = "RFC_INVALID_PARAMETER"
	CodeCodepageConversionFailure Code = "RFC_CODEPAGE_CONVERSION_FAILURE"
	CodeConversionFailure         Code = "RFC_CONVERSION_FAILURE"
	CodeBufferTooSmall            Code = "RFC_BUFFER_TOO_SMALL"
)

// Group classifies a Code by the party responsible for the failure
type Group string

const (
	GroupOK                           Group = "OK"
	GroupABAPApplicationFailure       Group = "ABAP_APPLICATION_FAILURE"
	GroupABAPRuntimeFailure           Group = "ABAP_RUNTIME_FAILURE"
	GroupLogonFailure                 Group = "LOGON_FAILURE"
	GroupCommunicationFailure         Group = "COMMUNICATION_FAILURE"
	GroupExternalRuntimeFailure       Group = "EXTERNAL_RUNTIME_FAILURE"
	GroupExternalApplicationFailure   Group = "EXTERNAL_APPLICATION_FAILURE"
	GroupExternalAuthorizationFailure Group = "EXTERNAL_AUTHORIZATION_FAILURE"
)

// Message carries the ABAP message attached to a failure, if any
type Message struct {
	Class  string
	Type   string
	Number string
	V1     string
	V2     string
	V3     string
	V4     string
}

// CommunicationError is a protocol level failure reported by the gateway:
// logon, connectivity, runtime aborts on the remote side.
type CommunicationError struct {
	Code    Code
	Group   Group
	Key     string
	Message string
	ABAP    Message
}

func (e *CommunicationError) Error() string {
	var b strings.Builder
	b.WriteString("[rfc] ")
	b.WriteString(string(e.Code))
	b.WriteString(" (")
	b.WriteString(string(e.Group))
	b.WriteByte(')')
	if e.Key != "" {
		b.WriteByte(' ')
		b.WriteString(e.Key)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is matches another CommunicationError by code; an empty target code matches by group.
func (e *CommunicationError) Is(target error) bool {
	t, ok := target.(*CommunicationError)
	if !ok {
		return false
	}
	if t.Code != "" {
		return t.Code == e.Code
	}
	return t.Group == "" || t.Group == e.Group
}

// ApplicationException is an exception raised by the remote function itself.
// The call succeeded at the protocol level.
type ApplicationException struct {
	// Name is the exception declared by the function module, e.g. "EXAMPLE"
	Name    string
	Message string
	ABAP    Message
}

func (e *ApplicationException) Error() string {
	if e.Message == "" {
		return "[rfc] ABAP exception " + e.Name
	}
	return "[rfc] ABAP exception " + e.Name + ": " + e.Message
}

// Is matches another ApplicationException with the same name, or any when the target name is empty.
func (e *ApplicationException) Is(target error) bool {
	t, ok := target.(*ApplicationException)
	if !ok {
		return false
	}
	return t.Name == "" || t.Name == e.Name
}

// Communication builds a CommunicationError
func Communication(code Code, group Group, key, message string) *CommunicationError {
	return &CommunicationError{
		Code:    code,
		Group:   group,
		Key:     key,
		Message: message,
	}
}

// Application builds an ApplicationException
func Application(name, message string) *ApplicationException {
	return &ApplicationException{Name: name, Message: message}
}

// LogonFailure is the error reported for rejected credentials
func LogonFailure(message string) *CommunicationError {
	return Communication(CodeLogonFailure, GroupLogonFailure, "RFC_ERROR_LOGON_FAILURE", message)
}

// InvalidHandle is the error reported for operations on a closed connection
func InvalidHandle(what string) *CommunicationError {
	return Communication(CodeInvalidHandle, GroupExternalRuntimeFailure, "RFC_INVALID_HANDLE", what+" is invalid or closed")
}

// AsCommunication extracts a CommunicationError from err's chain
func AsCommunication(err error) (*CommunicationError, bool) {
	var ce *CommunicationError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// AsApplication extracts an ApplicationException from err's chain
func AsApplication(err error) (*ApplicationException, bool) {
	var ae *ApplicationException
	if stderrors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
