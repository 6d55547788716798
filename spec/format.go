package spec

import (
	"fmt"
	"strings"
	"text/template"

	"darray/expr"
)

// FormatName resolves a display name against an instance. Strings
// containing template actions are executed with the instance as data;
// tuple names format element-wise; anything else passes through.
func FormatName(name any, obj any) (any, error) {
	return formatName(name, obj)
}

func formatName(name any, obj any) (any, error) {
	switch n := name.(type) {
	case expr.NameTuple:
		out := make(expr.NameTuple, len(n))
		for i, e := range n {
			f, err := formatName(e, obj)
			if err != nil {
				return nil, err
			}

			out[i] = f
		}

		return out, nil

	case string:
		if !strings.Contains(n, "{{") {
			return n, nil
		}

		t, err := template.New("name").Parse(n)
		if err != nil {
			return nil, fmt.Errorf("name template %q: %w", n, err)
		}

		var b strings.Builder
		if err := t.Execute(&b, obj); err != nil {
			return nil, fmt.Errorf("name template %q: %w", n, err)
		}

		return b.String(), nil
	}

	return name, nil
}
