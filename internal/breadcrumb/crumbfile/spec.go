package crumbfile

import (
	"fmt"
	"strings"

	"github.com/louisbranch/crumbtrail/internal/breadcrumb"
	"gopkg.in/yaml.v3"
)

// fileSpec is the root of a breadcrumb definition file.
type fileSpec struct {
	Crumbs map[string]crumbSpec `yaml:"crumbs"`
}

type crumbSpec struct {
	Text   ruleSpec    `yaml:"text"`
	URL    ruleSpec    `yaml:"url"`
	Parent *parentSpec `yaml:"parent"`
}

// ruleSpec decodes a scalar literal or a mapping naming one rule engine.
type ruleSpec struct {
	rule breadcrumb.Rule
}

type ruleMapping struct {
	Value any        `yaml:"value"`
	Expr  string     `yaml:"expr"`
	CEL   string     `yaml:"cel"`
	T     string     `yaml:"t"`
	Args  []ruleSpec `yaml:"args"`
}

func (r *ruleSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return err
		}
		r.rule = breadcrumb.Literal{Value: value}
		return nil
	case yaml.MappingNode:
		if err := checkKeys(node, "value", "expr", "cel", "t", "args"); err != nil {
			return err
		}
		var mapping ruleMapping
		if err := node.Decode(&mapping); err != nil {
			return err
		}
		rule, err := mapping.compile(node)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		r.rule = rule
		return nil
	default:
		return fmt.Errorf("line %d: rule must be a scalar or a mapping", node.Line)
	}
}

func (m ruleMapping) compile(node *yaml.Node) (breadcrumb.Rule, error) {
	engines := 0
	for _, set := range []bool{m.Expr != "", m.CEL != "", m.T != "", hasKey(node, "value")} {
		if set {
			engines++
		}
	}
	if engines != 1 {
		return nil, fmt.Errorf("rule needs exactly one of value, expr, cel or t")
	}
	if len(m.Args) > 0 && m.T == "" {
		return nil, fmt.Errorf("args are only valid with t")
	}
	switch {
	case m.Expr != "":
		return breadcrumb.CompileExpr(m.Expr)
	case m.CEL != "":
		return breadcrumb.CompileCEL(m.CEL)
	case m.T != "":
		args := make([]breadcrumb.Rule, 0, len(m.Args))
		for _, arg := range m.Args {
			args = append(args, arg.rule)
		}
		return breadcrumb.MessageRule{Key: m.T, Args: args}, nil
	default:
		return breadcrumb.Literal{Value: m.Value}, nil
	}
}

// parentSpec decodes a parent key or a mapping with key rules and args.
type parentSpec struct {
	parent *breadcrumb.Parent
}

type parentMapping struct {
	Key     string      `yaml:"key"`
	KeyExpr string      `yaml:"key_expr"`
	KeyCEL  string      `yaml:"key_cel"`
	Args    *[]ruleSpec `yaml:"args"`
}

func (p *parentSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		key := strings.TrimSpace(node.Value)
		if key == "" {
			return fmt.Errorf("line %d: parent key must not be empty", node.Line)
		}
		p.parent = breadcrumb.ParentKey(breadcrumb.Key(key))
		return nil
	case yaml.MappingNode:
		if err := checkKeys(node, "key", "key_expr", "key_cel", "args"); err != nil {
			return err
		}
		var mapping parentMapping
		if err := node.Decode(&mapping); err != nil {
			return err
		}
		parent, err := mapping.compile()
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		p.parent = parent
		return nil
	default:
		return fmt.Errorf("line %d: parent must be a key or a mapping", node.Line)
	}
}

func (m parentMapping) compile() (*breadcrumb.Parent, error) {
	parent := &breadcrumb.Parent{}
	switch {
	case m.Key != "" && m.KeyExpr == "" && m.KeyCEL == "":
		parent.Key = breadcrumb.Literal{Value: breadcrumb.Key(strings.TrimSpace(m.Key))}
	case m.KeyExpr != "" && m.Key == "" && m.KeyCEL == "":
		rule, err := breadcrumb.CompileExpr(m.KeyExpr)
		if err != nil {
			return nil, err
		}
		parent.Key = rule
	case m.KeyCEL != "" && m.Key == "" && m.KeyExpr == "":
		rule, err := breadcrumb.CompileCEL(m.KeyCEL)
		if err != nil {
			return nil, err
		}
		parent.Key = rule
	default:
		return nil, fmt.Errorf("parent needs exactly one of key, key_expr or key_cel")
	}
	if m.Args != nil {
		parent.Args = make([]breadcrumb.Rule, 0, len(*m.Args))
		for _, arg := range *m.Args {
			parent.Args = append(parent.Args, arg.rule)
		}
	}
	return parent, nil
}

func (c crumbSpec) definition(key string) (breadcrumb.Definition, error) {
	if c.Text.rule == nil {
		return breadcrumb.Definition{}, fmt.Errorf("breadcrumb %q: text is required", key)
	}
	def := breadcrumb.Definition{
		Key:  breadcrumb.Key(key),
		Text: c.Text.rule,
		URL:  c.URL.rule,
	}
	if c.Parent != nil {
		def.Parent = c.Parent.parent
	}
	return def, nil
}

func checkKeys(node *yaml.Node, allowed ...string) error {
	for idx := 0; idx+1 < len(node.Content); idx += 2 {
		name := node.Content[idx].Value
		known := false
		for _, candidate := range allowed {
			if name == candidate {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("line %d: unknown field %q (want one of %s)", node.Content[idx].Line, name, strings.Join(allowed, ", "))
		}
	}
	return nil
}

func hasKey(node *yaml.Node, name string) bool {
	for idx := 0; idx+1 < len(node.Content); idx += 2 {
		if node.Content[idx].Value == name {
			return true
		}
	}
	return false
}
