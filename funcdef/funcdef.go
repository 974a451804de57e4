// Package funcdef reads function descriptions from YAML.
//
//	functions:
//	  - name: Z_ECHO
//	    parameters:
//	      - {name: IMP, type: CHAR, length: 20, direction: IMPORT}
//	      - name: DATA
//	        type: STRUCTURE
//	        direction: EXPORT
//	        typename: ZDATA
//	        fields:
//	          - {name: FLAG, type: CHAR, length: 1}
//
// Types accept SDK names (RFCTYPE_CHAR) and the short forms CHAR, NUMC,
// BYTE, STRING, XSTRING, BCD, INT1, INT2, INT4, FLOAT, DATE, TIME,
// STRUCTURE and TABLE. Directions are IMPORT, EXPORT, CHANGING or TABLES.
package funcdef

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/nwrfc/codec"
	"github.com/wippyai/nwrfc/errors"
	"github.com/wippyai/nwrfc/rfc"
)

type document struct {
	Functions []function `yaml:"functions"`
}

type function struct {
	Name       string  `yaml:"name"`
	Parameters []param `yaml:"parameters"`
}

type param struct {
	Name      string  `yaml:"name"`
	Type      string  `yaml:"type"`
	Length    uint    `yaml:"length"`
	Decimals  uint    `yaml:"decimals"`
	Direction string  `yaml:"direction"`
	Optional  bool    `yaml:"optional"`
	Default   string  `yaml:"default"`
	Text      string  `yaml:"text"`
	TypeName  string  `yaml:"typename"`
	Fields    []param `yaml:"fields"`
}

// Parse decodes a YAML document into function descriptions.
// The returned functions are unsealed.
func Parse(data []byte) ([]*rfc.Function, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.PhaseSchema, errors.KindInvalidInput, err, "function definitions")
	}

	out := make([]*rfc.Function, 0, len(doc.Functions))
	seen := make(map[string]bool, len(doc.Functions))
	for i, f := range doc.Functions {
		name := strings.ToUpper(strings.TrimSpace(f.Name))
		if name == "" {
			return nil, errors.New(errors.PhaseSchema, errors.KindInvalidInput).
				Path("functions[" + strconv.Itoa(i) + "]").
				Detail("function name is required").
				Build()
		}
		if seen[name] {
			return nil, errors.DuplicateName(nil, name)
		}
		seen[name] = true

		fn := rfc.NewFunction(name)
		for _, p := range f.Parameters {
			rp, err := convert(p, []string{name}, true)
			if err != nil {
				return nil, err
			}
			if err := fn.AddParameter(rp); err != nil {
				return nil, err
			}
		}
		out = append(out, fn)
	}
	return out, nil
}

// Load reads and parses a definitions file
func Load(path string) ([]*rfc.Function, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSchema, errors.KindNotFound, err, "read "+path)
	}
	return Parse(data)
}

func convert(p param, path []string, top bool) (rfc.Parameter, error) {
	path = append(path[:len(path):len(path)], p.Name)
	t, ok := codec.ParseType(p.Type)
	if !ok {
		return rfc.Parameter{}, errors.New(errors.PhaseSchema, errors.KindInvalidInput).
			Path(path...).
			Detail("unknown type %q", p.Type).
			Build()
	}
	rp := rfc.Parameter{
		Name:     p.Name,
		Type:     t,
		Length:   p.Length,
		Decimals: p.Decimals,
		Optional: p.Optional,
		Default:  p.Default,
		Text:     p.Text,
		TypeName: p.TypeName,
	}
	if top {
		d, ok := codec.ParseDirection(p.Direction)
		if !ok {
			return rfc.Parameter{}, errors.New(errors.PhaseSchema, errors.KindInvalidInput).
				Path(path...).
				Detail("unknown direction %q", p.Direction).
				Build()
		}
		rp.Direction = d
	}
	for _, c := range p.Fields {
		child, err := convert(c, path, false)
		if err != nil {
			return rfc.Parameter{}, err
		}
		rp.Children = append(rp.Children, child)
	}
	return rp, nil
}
