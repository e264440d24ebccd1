package execution

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ErrEmptyExpression is returned for a blank condition expression.
var ErrEmptyExpression = errors.New("empty condition expression")

// CompileCondition checks the syntax of a condition expression. Variables are not required
// to exist, since the blackboard is only known at run time.
func CompileCondition(expression string) error {
	_, err := compile(expression, map[string]any{})

	return err
}

// EvaluateCondition previews a condition expression against the current blackboard. An empty
// blackboard is used when no execution is running.
func (s *Store) EvaluateCondition(expression string) (any, error) {
	s.mu.RLock()

	env := map[string]any{}
	if s.context != nil && s.context.Data != nil {
		for key, value := range s.context.Data {
			env[key] = value
		}
	}

	s.mu.RUnlock()

	program, err := compile(expression, env)
	if err != nil {
		return nil, err
	}

	out, err := vm.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("condition evaluation failed for %q: %w", expression, err)
	}

	return out, nil
}

func compile(expression string, env map[string]any) (*vm.Program, error) {
	if expression == "" {
		return nil, ErrEmptyExpression
	}

	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("condition compile error in %q: %w", expression, err)
	}

	return program, nil
}
