// Package config loads RFC logon parameters.
//
// A systems file holds one section per system, keyed by a local alias:
//
//	system1:
//	  ashost: sap.example.com
//	  sysnr: "00"
//	  client: "100"
//	  user: DEVELOPER
//	  passwd: secret
//	  lang: EN
//
// Every value can be overridden from the environment as
// NWRFC_<SYSTEM>_<KEY>, e.g. NWRFC_SYSTEM1_PASSWD.
package config

import (
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/wippyai/nwrfc/errors"
)

// EnvPrefix is the prefix of environment overrides
const EnvPrefix = "NWRFC"

// LogonParams are the connection parameters of one system, named as the
// NW RFC SDK names them.
type LogonParams struct {
	ASHost    string `mapstructure:"ashost" yaml:"ashost,omitempty"`
	SysNr     string `mapstructure:"sysnr" yaml:"sysnr,omitempty"`
	Client    string `mapstructure:"client" yaml:"client,omitempty"`
	User      string `mapstructure:"user" yaml:"user,omitempty"`
	Passwd    string `mapstructure:"passwd" yaml:"passwd,omitempty"`
	Lang      string `mapstructure:"lang" yaml:"lang,omitempty"`
	Dest      string `mapstructure:"dest" yaml:"dest,omitempty"`
	MSHost    string `mapstructure:"mshost" yaml:"mshost,omitempty"`
	MSServ    string `mapstructure:"msserv" yaml:"msserv,omitempty"`
	Group     string `mapstructure:"group" yaml:"group,omitempty"`
	R3Name    string `mapstructure:"r3name" yaml:"r3name,omitempty"`
	SAPRouter string `mapstructure:"saprouter" yaml:"saprouter,omitempty"`
	GWHost    string `mapstructure:"gwhost" yaml:"gwhost,omitempty"`
	GWServ    string `mapstructure:"gwserv" yaml:"gwserv,omitempty"`
	ProgramID string `mapstructure:"program_id" yaml:"program_id,omitempty"`
	Trace     string `mapstructure:"trace" yaml:"trace,omitempty"`
}

// keys in SDK order, paired with their field
func (p *LogonParams) fields() []struct {
	key string
	val *string
} {
	return []struct {
		key string
		val *string
	}{
		{"ashost", &p.ASHost},
		{"sysnr", &p.SysNr},
		{"client", &p.Client},
		{"user", &p.User},
		{"passwd", &p.Passwd},
		{"lang", &p.Lang},
		{"dest", &p.Dest},
		{"mshost", &p.MSHost},
		{"msserv", &p.MSServ},
		{"group", &p.Group},
		{"r3name", &p.R3Name},
		{"saprouter", &p.SAPRouter},
		{"gwhost", &p.GWHost},
		{"gwserv", &p.GWServ},
		{"program_id", &p.ProgramID},
		{"trace", &p.Trace},
	}
}

// Keys lists the recognized parameter names
func Keys() []string {
	var p LogonParams
	fs := p.fields()
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.key
	}
	return out
}

// FromMap builds parameters from key/value pairs. Keys are case
// insensitive; unknown keys are an error.
func FromMap(m map[string]string) (LogonParams, error) {
	var p LogonParams
	for k, v := range m {
		if err := p.Set(k, v); err != nil {
			return LogonParams{}, err
		}
	}
	return p, nil
}

// Set assigns one parameter by its SDK name
func (p *LogonParams) Set(key, value string) error {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, f := range p.fields() {
		if f.key == k {
			*f.val = value
			return nil
		}
	}
	return errors.InvalidInput(errors.PhaseConfig, "unknown logon parameter "+key)
}

// Map returns the non-empty parameters, password included
func (p LogonParams) Map() map[string]string {
	out := make(map[string]string)
	for _, f := range p.fields() {
		if *f.val != "" {
			out[f.key] = *f.val
		}
	}
	return out
}

// String renders key=value pairs with the password masked
func (p LogonParams) String() string {
	m := p.Map()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteByte('=')
		if k == "passwd" {
			b.WriteString("********")
		} else {
			b.WriteString(m[k])
		}
	}
	return b.String()
}

// Validate checks that p can address a system and identify a user
func (p LogonParams) Validate() error {
	switch {
	case p.Dest != "":
		return nil
	case p.User == "":
		return errors.InvalidInput(errors.PhaseConfig, "logon parameter user is required")
	case p.Client == "":
		return errors.InvalidInput(errors.PhaseConfig, "logon parameter client is required")
	case p.ASHost == "" && p.MSHost == "":
		return errors.InvalidInput(errors.PhaseConfig, "one of ashost, mshost or dest is required")
	case p.ASHost != "" && p.SysNr == "":
		return errors.InvalidInput(errors.PhaseConfig, "logon parameter sysnr is required with ashost")
	case p.MSHost != "" && p.Group == "":
		return errors.InvalidInput(errors.PhaseConfig, "logon parameter group is required with mshost")
	}
	return nil
}

// User is an account known to the loopback gateway
type User struct {
	Name     string `mapstructure:"name"`
	Password string `mapstructure:"password"`
	Locked   bool   `mapstructure:"locked"`
}

// Loopback configures the in-process gateway
type Loopback struct {
	SysID  string `mapstructure:"sysid"`
	Client string `mapstructure:"client"`
	Users  []User `mapstructure:"users"`
}

const loopbackKey = "loopback"

// File is a loaded systems file
type File struct {
	v        *viper.Viper
	Loopback Loopback
}

// Load reads a YAML systems file
func Load(path string) (*File, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read "+path)
	}
	return fromViper(v)
}

// Parse reads a systems file from YAML text
func Parse(data string) (*File, error) {
	v := newViper()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(data)); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse systems file")
	}
	return fromViper(v)
}

// Empty returns a File without systems; values come from the environment only
func Empty() *File {
	return &File{v: newViper()}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func fromViper(v *viper.Viper) (*File, error) {
	f := &File{v: v}
	if v.IsSet(loopbackKey) {
		if err := v.UnmarshalKey(loopbackKey, &f.Loopback); err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "loopback section")
		}
	}
	return f, nil
}

// Systems lists the system aliases defined in the file
func (f *File) Systems() []string {
	var out []string
	for k, val := range f.v.AllSettings() {
		if k == loopbackKey {
			continue
		}
		if _, ok := val.(map[string]any); ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// System returns the logon parameters of alias, with environment overrides applied
func (f *File) System(alias string) (LogonParams, error) {
	name := strings.ToLower(strings.TrimSpace(alias))
	var p LogonParams
	found := f.v.IsSet(name)
	for _, fld := range p.fields() {
		key := name + "." + fld.key
		if f.v.IsSet(key) {
			found = true
		}
		*fld.val = f.v.GetString(key)
	}
	if !found {
		return LogonParams{}, errors.NotFound(errors.PhaseConfig, "system", alias)
	}
	return p, nil
}
