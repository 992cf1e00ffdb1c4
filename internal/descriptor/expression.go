package descriptor

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Compiled expressions and patterns are shared by every bundle; descriptors are
// rebuilt on reload but their sources rarely change.
var (
	programs sync.Map // string -> *vm.Program
	patterns sync.Map // string -> *regexp.Regexp
)

// CompileExpression compiles a boolean expression, reusing earlier compilations.
func CompileExpression(src string) (*vm.Program, error) {
	if p, ok := programs.Load(src); ok {
		return p.(*vm.Program), nil
	}
	prog, err := expr.Compile(src, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile expression: %w", err)
	}
	programs.Store(src, prog)
	return prog, nil
}

func evalBool(src string, env map[string]any) (bool, error) {
	prog, err := CompileExpression(src)
	if err != nil {
		return false, err
	}
	out, err := expr.Run(prog, env)
	if err != nil {
		return false, fmt.Errorf("run expression: %w", err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("expression returned %T, not bool", out)
	}
	return b, nil
}

func compilePattern(src string) (*regexp.Regexp, error) {
	if re, ok := patterns.Load(src); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, err
	}
	patterns.Store(src, re)
	return re, nil
}

// IsVisible evaluates VisibleWhen with the submitted values bound to record.
// A broken expression leaves the field visible; lint reports it.
func IsVisible(f FieldDescriptor, values map[string]any) bool {
	if strings.TrimSpace(f.VisibleWhen) == "" {
		return true
	}
	if values == nil {
		values = map[string]any{}
	}
	ok, err := evalBool(f.VisibleWhen, map[string]any{"record": values})
	if err != nil {
		return true
	}
	return ok
}

// Lookup reads a possibly dotted key from submitted values. A literal flat key
// wins over a nested path.
func Lookup(values map[string]any, key string) (any, bool) {
	if v, ok := values[key]; ok {
		return v, true
	}
	cur := values
	parts := strings.Split(key, ".")
	for i, p := range parts {
		v, ok := cur[p]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

func setPath(values map[string]any, key string, v any) {
	parts := strings.Split(key, ".")
	cur := values
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = v
}
