package loopback

import (
	"context"
	"strings"
	"time"

	"github.com/wippyai/nwrfc/codec"
	"github.com/wippyai/nwrfc/errors"
	"github.com/wippyai/nwrfc/rfc"
)

func char(name string, n uint, dir codec.Direction) rfc.Parameter {
	return rfc.Parameter{Name: name, Type: codec.TypeChar, Length: n, Direction: dir}
}

func scalar(name string, t codec.Type, n uint) rfc.Parameter {
	return rfc.Parameter{Name: name, Type: t, Length: n}
}

func structure(name, typeName string, dir codec.Direction, fields ...rfc.Parameter) rfc.Parameter {
	return rfc.Parameter{Name: name, Type: codec.TypeStructure, Direction: dir, TypeName: typeName, Children: fields}
}

func table(name, typeName string, dir codec.Direction, fields ...rfc.Parameter) rfc.Parameter {
	return rfc.Parameter{Name: name, Type: codec.TypeTable, Direction: dir, TypeName: typeName, Children: fields}
}

// rfctest is the row type used by STFC_STRUCTURE
func rfctest() []rfc.Parameter {
	return []rfc.Parameter{
		scalar("RFCFLOAT", codec.TypeFloat, 0),
		scalar("RFCCHAR1", codec.TypeChar, 1),
		scalar("RFCINT2", codec.TypeInt2, 0),
		scalar("RFCINT1", codec.TypeInt1, 0),
		scalar("RFCCHAR4", codec.TypeChar, 4),
		scalar("RFCINT4", codec.TypeInt4, 0),
		scalar("RFCHEX3", codec.TypeByte, 3),
		scalar("RFCCHAR2", codec.TypeChar, 2),
		scalar("RFCTIME", codec.TypeTime, 0),
		scalar("RFCDATE", codec.TypeDate, 0),
		scalar("RFCDATA1", codec.TypeChar, 50),
		scalar("RFCDATA2", codec.TypeChar, 50),
	}
}

func bapiret2() []rfc.Parameter {
	return []rfc.Parameter{
		scalar("TYPE", codec.TypeChar, 1),
		scalar("ID", codec.TypeChar, 20),
		scalar("NUMBER", codec.TypeNum, 3),
		scalar("MESSAGE", codec.TypeChar, 220),
	}
}

func installStandard(s *System) {
	std := []struct {
		fn *rfc.Function
		h  Handler
	}{
		{rfc.NewFunction("RFC_PING"), ping},
		{rfc.NewFunction("STFC_CONNECTION", rfc.WithParameters(
			char("REQUTEXT", 255, codec.Import),
			char("ECHOTEXT", 255, codec.Export),
			char("RESPTEXT", 255, codec.Export),
		)), stfcConnection},
		{rfc.NewFunction("STFC_STRUCTURE", rfc.WithParameters(
			structure("IMPORTSTRUCT", "RFCTEST", codec.Import, rfctest()...),
			structure("ECHOSTRUCT", "RFCTEST", codec.Export, rfctest()...),
			char("RESPTEXT", 255, codec.Export),
			table("RFCTABLE", "RFCTEST", codec.Tables, rfctest()...),
		)), stfcStructure},
		{rfc.NewFunction("SCP_CHAR_ECHO", rfc.WithParameters(
			char("IMP", 10, codec.Import),
			char("EXP", 10, codec.Export),
		)), echo},
		{rfc.NewFunction("SCP_STRING_ECHO", rfc.WithParameters(
			rfc.Parameter{Name: "IMP", Type: codec.TypeString, Direction: codec.Import},
			rfc.Parameter{Name: "EXP", Type: codec.TypeString, Direction: codec.Export},
		)), echo},
		{rfc.NewFunction("STFC_DEEP_TABLE", rfc.WithParameters(
			table("IMPORT_TAB", "STFC_DEEP_TABLE_LINE", codec.Import, deepRow()...),
			table("EXPORT_TAB", "STFC_DEEP_TABLE_LINE", codec.Export, deepRow()...),
			char("RESPTEXT", 255, codec.Export),
		)), stfcDeepTable},
		{rfc.NewFunction("STFC_EXCEPTION"), stfcException},
		{rfc.NewFunction("BAPI_USER_GET_DETAIL", rfc.WithParameters(
			char("USERNAME", 12, codec.Import),
			structure("ISLOCKED", "USLOCK", codec.Export,
				scalar("WRNG_LOGON", codec.TypeChar, 1),
				scalar("LOCAL_LOCK", codec.TypeChar, 1),
				scalar("GLOB_LOCK", codec.TypeChar, 1),
				scalar("NO_USER_PW", codec.TypeChar, 1),
			),
			table("RETURN", "BAPIRET2", codec.Tables, bapiret2()...),
		)), s.userDetail},
		{rfc.NewFunction("RFC_SYSTEM_INFO", rfc.WithParameters(
			structure("RFCSI_EXPORT", "RFCSI", codec.Export,
				scalar("RFCPROTO", codec.TypeChar, 3),
				scalar("RFCCHARTYP", codec.TypeChar, 4),
				scalar("RFCINTTYP", codec.TypeChar, 3),
				scalar("RFCFLOTYP", codec.TypeChar, 3),
				scalar("RFCDEST", codec.TypeChar, 32),
				scalar("RFCHOST", codec.TypeChar, 8),
				scalar("RFCSYSID", codec.TypeChar, 8),
				scalar("RFCDATABS", codec.TypeChar, 8),
				scalar("RFCDBHOST", codec.TypeChar, 32),
				scalar("RFCDBSYS", codec.TypeChar, 10),
				scalar("RFCSAPRL", codec.TypeChar, 4),
				scalar("RFCKERNRL", codec.TypeChar, 4),
				scalar("RFCDATE", codec.TypeDate, 0),
				scalar("RFCTIME", codec.TypeTime, 0),
			),
		)), s.systemInfo},
	}
	for _, m := range std {
		_ = s.Register(m.fn, m.h)
	}
}

func deepRow() []rfc.Parameter {
	return []rfc.Parameter{
		scalar("C", codec.TypeChar, 1),
		scalar("I", codec.TypeInt4, 0),
		scalar("STR", codec.TypeString, 0),
		scalar("XSTR", codec.TypeXString, 0),
	}
}

func ping(context.Context, *rfc.Call) error {
	return nil
}

func respText(ctx context.Context) string {
	sess, ok := SessionFrom(ctx)
	if !ok {
		return "SAP R/3 Rel. loopback"
	}
	return "SAP R/3 Rel. loopback   Sysid: " + sess.SysID + "   Client: " + sess.Client +
		"   User: " + sess.User + "   Language: " + sess.Language
}

func stfcConnection(ctx context.Context, call *rfc.Call) error {
	text, err := call.Text("REQUTEXT")
	if err != nil {
		return err
	}
	if err := call.Set("ECHOTEXT", text); err != nil {
		return err
	}
	return call.Set("RESPTEXT", respText(ctx))
}

func stfcStructure(ctx context.Context, call *rfc.Call) error {
	in, err := call.Record("IMPORTSTRUCT")
	if err != nil {
		return err
	}
	if err := call.Set("ECHOSTRUCT", in); err != nil {
		return err
	}
	tbl, err := call.Table("RFCTABLE")
	if err != nil {
		return err
	}
	if err := tbl.Append(in); err != nil {
		return err
	}
	return call.Set("RESPTEXT", respText(ctx))
}

func echo(_ context.Context, call *rfc.Call) error {
	v, err := call.Get("IMP")
	if err != nil {
		return err
	}
	return call.Set("EXP", v)
}

func stfcDeepTable(ctx context.Context, call *rfc.Call) error {
	in, err := call.Table("IMPORT_TAB")
	if err != nil {
		return err
	}
	if err := call.Set("EXPORT_TAB", in); err != nil {
		return err
	}
	return call.Set("RESPTEXT", respText(ctx))
}

func stfcException(context.Context, *rfc.Call) error {
	return errors.Application("EXAMPLE", "exception raised by STFC_EXCEPTION")
}

func (s *System) userDetail(_ context.Context, call *rfc.Call) error {
	name, err := call.Text("USERNAME")
	if err != nil {
		return err
	}
	s.mu.RLock()
	u, ok := s.users[strings.ToUpper(name)]
	s.mu.RUnlock()

	ret, err := call.Table("RETURN")
	if err != nil {
		return err
	}
	if !ok {
		return ret.AppendValues(map[string]any{
			"TYPE":    "E",
			"ID":      "01",
			"NUMBER":  124,
			"MESSAGE": "User " + strings.ToUpper(name) + " does not exist",
		})
	}
	if !call.Active("ISLOCKED") {
		return nil
	}
	lock := map[string]any{"WRNG_LOGON": "U", "LOCAL_LOCK": "U", "GLOB_LOCK": "U", "NO_USER_PW": "U"}
	if u.locked {
		lock["LOCAL_LOCK"] = "L"
	}
	return call.Set("ISLOCKED", lock)
}

func (s *System) systemInfo(ctx context.Context, call *rfc.Call) error {
	dest := ""
	if sess, ok := SessionFrom(ctx); ok {
		dest = sess.Params.Dest
	}
	now := time.Now().UTC()
	return call.Set("RFCSI_EXPORT", map[string]any{
		"RFCPROTO":   "011",
		"RFCCHARTYP": "4103",
		"RFCINTTYP":  "LIT",
		"RFCFLOTYP":  "IE3",
		"RFCDEST":    dest,
		"RFCHOST":    "loopback",
		"RFCSYSID":   s.sysID,
		"RFCDATABS":  s.sysID,
		"RFCDBHOST":  "loopback",
		"RFCDBSYS":   "HDB",
		"RFCSAPRL":   s.release,
		"RFCKERNRL":  s.release,
		"RFCDATE":    now,
		"RFCTIME":    now,
	})
}
