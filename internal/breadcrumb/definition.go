package breadcrumb

// Definition describes how one breadcrumb renders and which crumb precedes it.
type Definition struct {
	Key    Key
	Text   Rule
	URL    Rule
	Parent *Parent
}

// Parent points a definition at the crumb before it.
type Parent struct {
	// Key yields the parent key. An empty result means no parent.
	Key Rule
	// Args yield the parent's arguments. Nil forwards the current arguments.
	Args []Rule
}

// ParentKey returns a Parent with a fixed key that forwards arguments.
func ParentKey(key Key, args ...Rule) *Parent {
	return &Parent{Key: Literal{Value: key}, Args: args}
}

// StaticKey reports the parent key when it does not depend on arguments.
func (p *Parent) StaticKey() (Key, bool) {
	if p == nil {
		return "", false
	}
	literal, ok := p.Key.(Literal)
	if !ok {
		return "", false
	}
	return Key(stringify(literal.Value)), true
}

func (d *Definition) link(rc RuleContext) (Link, error) {
	text, err := evaluateString(d.Text, rc)
	if err != nil {
		return Link{}, &RuleError{Key: d.Key, Field: "text", Err: err}
	}
	url, err := evaluateString(d.URL, rc)
	if err != nil {
		return Link{}, &RuleError{Key: d.Key, Field: "url", Err: err}
	}
	return Link{Key: d.Key, Text: text, URL: url}, nil
}

// parent evaluates the parent key and arguments. An empty key ends the walk.
func (d *Definition) parent(rc RuleContext) (Key, []any, error) {
	if d.Parent == nil {
		return "", nil, nil
	}
	keyValue, err := evaluateString(d.Parent.Key, rc)
	if err != nil {
		return "", nil, &RuleError{Key: d.Key, Field: "parent key", Err: err}
	}
	if keyValue == "" {
		return "", nil, nil
	}
	if d.Parent.Args == nil {
		return Key(keyValue), rc.Args, nil
	}
	args := make([]any, 0, len(d.Parent.Args))
	for _, rule := range d.Parent.Args {
		value, err := evaluate(rule, rc)
		if err != nil {
			return "", nil, &RuleError{Key: d.Key, Field: "parent args", Err: err}
		}
		args = append(args, value)
	}
	return Key(keyValue), args, nil
}
