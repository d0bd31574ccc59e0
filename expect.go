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
	"git.fractalqb.de/fractalqb/eloc"
	"gopkg.in/yaml.v3"
)

// Expect converts the deep schema s into an expected schema tree that
// AssertDeep accepts for the same data.
func (s Schema) Expect() Expect {
	if s == nil {
		return nil
	}
	res := make(Expect, len(s))
	for i, p := range s {
		res[i] = Expected{
			Name:     p.Name,
			Type:     p.Type.String(),
			Optional: p.Optional,
			Children: p.Children.Expect(),
		}
	}
	return res
}

// UnmarshalYAML reads an ordered mapping from property names to either a
// type expression or a mapping with the keys type, optional and children.
func (e *Expect) UnmarshalYAML(node *yaml.Node) error {
	res, err := expectYAML(node, 0)
	if err != nil {
		return err
	}
	*e = res
	return nil
}

func expectYAML(node *yaml.Node, depth int) (Expect, error) {
	if depth > DefaultMaxDepth {
		return nil, eloc.Errorf("line %d: expected schema nested deeper than %d",
			node.Line,
			DefaultMaxDepth,
		)
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return expectYAML(node.Content[0], depth)
	case yaml.AliasNode:
		return expectYAML(node.Alias, depth+1)
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
	case yaml.MappingNode:
		res := make(Expect, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			exp, err := expectedYAML(node.Content[i], node.Content[i+1], depth)
			if err != nil {
				return nil, err
			}
			res = append(res, exp)
		}
		return res, nil
	}
	return nil, eloc.Errorf("line %d: expected schema must be a mapping", node.Line)
}

func expectedYAML(key, val *yaml.Node, depth int) (exp Expected, err error) {
	if key.Kind != yaml.ScalarNode {
		return exp, eloc.Errorf("line %d: property name must be a scalar", key.Line)
	}
	exp.Name = key.Value
	if val.Kind == yaml.AliasNode {
		val, depth = val.Alias, depth+1
	}
	switch val.Kind {
	case yaml.ScalarNode:
		if val.Tag == "!!null" || val.Value == "" {
			return exp, eloc.Errorf("line %d: no type for property '%s'", val.Line, exp.Name)
		}
		exp.Type = val.Value
		return exp, nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(val.Content); i += 2 {
			k, v := val.Content[i], val.Content[i+1]
			switch k.Value {
			case "type":
				err = v.Decode(&exp.Type)
			case "optional":
				err = v.Decode(&exp.Optional)
			case "children":
				exp.Children, err = expectYAML(v, depth+1)
			}
			if err != nil {
				return exp, eloc.Errorf("property '%s': %w", exp.Name, err)
			}
		}
		if exp.Type == "" {
			return exp, eloc.Errorf("line %d: no type for property '%s'", val.Line, exp.Name)
		}
		return exp, nil
	}
	return exp, eloc.Errorf("line %d: illegal expectation for property '%s'", val.Line, exp.Name)
}

// MarshalYAML writes e in the form UnmarshalYAML reads. Required properties
// without children use the short form.
func (e Expect) MarshalYAML() (any, error) {
	return e.yamlNode(), nil
}

func (e Expect) yamlNode() *yaml.Node {
	res := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, exp := range e {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: exp.Name}
		if !exp.Optional && exp.Children == nil {
			val := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: exp.Type}
			res.Content = append(res.Content, key, val)
			continue
		}
		val := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		val.Content = append(val.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "type"},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: exp.Type},
		)
		if exp.Optional {
			val.Content = append(val.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "optional"},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"},
			)
		}
		if exp.Children != nil {
			val.Content = append(val.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "children"},
				exp.Children.yamlNode(),
			)
		}
		res.Content = append(res.Content, key, val)
	}
	return res
}
