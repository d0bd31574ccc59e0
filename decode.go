/*
A tool to derive type declarations from a set of example JSON values.
Copyright (C) 2025  Marcus Perlick

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package typegen

import (
	"encoding/json"
	"errors"
	"io"

	"git.fractalqb.de/fractalqb/eloc"
	"github.com/valyala/fastjson"
	"gopkg.in/yaml.v3"
)

// ParseJSON parses one JSON value into an example value. Objects become
// records with members in document order. If a member name occurs more
// than once, the last value is kept at the position of the first.
func ParseJSON(b []byte) (any, error) {
	var p fastjson.Parser
	return parseJSON(&p, b)
}

// DecodeJSON reads a stream of JSON values from r.
func DecodeJSON(r io.Reader) (samples []any, err error) {
	var (
		p   fastjson.Parser
		dec = json.NewDecoder(r)
	)
	for {
		var raw json.RawMessage
		switch err := dec.Decode(&raw); {
		case errors.Is(err, io.EOF):
			return samples, nil
		case err != nil:
			return samples, eloc.At(err)
		}
		v, err := parseJSON(&p, raw)
		if err != nil {
			return samples, err
		}
		samples = append(samples, v)
	}
}

func parseJSON(p *fastjson.Parser, b []byte) (any, error) {
	v, err := p.ParseBytes(b)
	if err != nil {
		return nil, eloc.At(err)
	}
	// Values of p are only valid until the next parse
	return fromFastJSON(v)
}

func fromFastJSON(v *fastjson.Value) (any, error) {
	switch v.Type() {
	case fastjson.TypeNull:
		return nil, nil
	case fastjson.TypeTrue:
		return true, nil
	case fastjson.TypeFalse:
		return false, nil
	case fastjson.TypeNumber:
		x, err := v.Float64()
		if err != nil {
			return nil, eloc.At(err)
		}
		return x, nil
	case fastjson.TypeString:
		s, err := v.StringBytes()
		if err != nil {
			return nil, eloc.At(err)
		}
		return string(s), nil
	case fastjson.TypeArray:
		a, err := v.Array()
		if err != nil {
			return nil, eloc.At(err)
		}
		res := make([]any, len(a))
		for i, e := range a {
			if res[i], err = fromFastJSON(e); err != nil {
				return nil, err
			}
		}
		return res, nil
	case fastjson.TypeObject:
		o, err := v.Object()
		if err != nil {
			return nil, eloc.At(err)
		}
		res := NewRecord()
		o.Visit(func(key []byte, mv *fastjson.Value) {
			if err != nil {
				return
			}
			var m any
			if m, err = fromFastJSON(mv); err == nil {
				res.Set(string(key), m)
			}
		})
		if err != nil {
			return nil, err
		}
		return res, nil
	}
	return nil, eloc.Errorf("unsupported JSON value type %s", v.Type())
}

// DecodeYAML reads a stream of YAML documents from r. Mappings become
// records with members in document order.
func DecodeYAML(r io.Reader) (samples []any, err error) {
	dec := yaml.NewDecoder(r)
	for {
		var doc yaml.Node
		switch err := dec.Decode(&doc); {
		case errors.Is(err, io.EOF):
			return samples, nil
		case err != nil:
			return samples, eloc.At(err)
		}
		v, err := fromYAML(&doc, 0)
		if err != nil {
			return samples, err
		}
		samples = append(samples, v)
	}
}

// fromYAML counts alias dereferences as nesting so that recursive anchors
// hit the depth limit.
func fromYAML(n *yaml.Node, depth int) (any, error) {
	if depth > DefaultMaxDepth {
		return nil, eloc.Errorf("line %d: YAML nested deeper than %d", n.Line, DefaultMaxDepth)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromYAML(n.Content[0], depth)
	case yaml.AliasNode:
		return fromYAML(n.Alias, depth+1)
	case yaml.SequenceNode:
		res := make([]any, len(n.Content))
		for i, e := range n.Content {
			var err error
			if res[i], err = fromYAML(e, depth+1); err != nil {
				return nil, err
			}
		}
		return res, nil
	case yaml.MappingNode:
		res := NewRecord()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			mv, err := fromYAML(v, depth+1)
			if err != nil {
				return nil, err
			}
			if isMergeKey(k) {
				mergeYAML(res, mv)
				continue
			}
			if k.Kind != yaml.ScalarNode {
				return nil, eloc.Errorf("line %d: unsupported non-scalar mapping key", k.Line)
			}
			res.Set(k.Value, mv)
		}
		return res, nil
	case yaml.ScalarNode:
		if n.ShortTag() == "!!timestamp" {
			return n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, eloc.Errorf("line %d: %w", n.Line, err)
		}
		switch v.(type) {
		case int, int64, uint64, float64:
			return asNumber(v), nil
		}
		return v, nil
	}
	return nil, eloc.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
}

func isMergeKey(k *yaml.Node) bool {
	return k.Kind == yaml.ScalarNode && k.Value == "<<" &&
		(k.Tag == "" || k.Tag == "!!merge")
}

// mergeYAML adds the members of the merged mapping(s) m that r does not
// have yet.
func mergeYAML(r *Record, m any) {
	switch m := m.(type) {
	case *Record:
		for k, v := range m.All() {
			if !r.Has(k) {
				r.Set(k, v)
			}
		}
	case []any:
		for _, e := range m {
			mergeYAML(r, e)
		}
	}
}
