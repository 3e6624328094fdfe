// Package starlark evaluates nest.star project definitions with go.starlark.net.
//
// A definition file declares its project by calling the predeclared builtin:
//
//	project("demo", app = "demo", version = "0.1.0", deps = ["jason"])
//
// The first argument is the project identity; keyword arguments form its configuration.
// The predeclared "nest" struct exposes the active build environment as nest.env.
package starlark

import (
	"context"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"
	"go.trai.ch/nest/internal/core/domain"
	"go.trai.ch/nest/internal/core/ports"
	"go.trai.ch/zerr"
)

const registrarKey = "nest.registrar"

// Evaluator implements ports.DefinitionEvaluator.
type Evaluator struct {
	env    ports.EnvironmentProvider
	logger ports.Logger
}

// NewEvaluator creates a new Evaluator.
func NewEvaluator(env ports.EnvironmentProvider, logger ports.Logger) *Evaluator {
	return &Evaluator{env: env, logger: logger}
}

// Evaluate executes the definition file at path, reporting its declaration to reg.
// Cancelling ctx interrupts the evaluation.
func (e *Evaluator) Evaluate(ctx context.Context, path string, reg ports.Registrar) error {
	thread := &starlark.Thread{
		Name: "definition:" + path,
		Print: func(_ *starlark.Thread, msg string) {
			e.logger.Debug(msg)
		},
		Load: func(_ *starlark.Thread, module string) (starlark.StringDict, error) {
			return nil, zerr.With(zerr.New("load is not supported in project definitions"), "module", module)
		},
	}
	thread.SetLocal(registrarKey, reg)

	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	defer stop()

	if _, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, path, nil, e.predeclared()); err != nil {
		return zerr.With(domain.WithCause(domain.ErrDefinitionEvalFailed, err), "path", path)
	}

	return nil
}

func (e *Evaluator) predeclared() starlark.StringDict {
	return starlark.StringDict{
		"project": starlark.NewBuiltin("project", declareProject),
		"nest": starlarkstruct.FromStringDict(starlark.String("nest"), starlark.StringDict{
			"env": starlark.String(e.env.Name()),
		}),
	}
}

// declareProject implements project(name, **options).
func declareProject(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, nil, 1, &name); err != nil {
		return nil, domain.WithCause(domain.ErrInvalidDeclaration, err)
	}

	config := make(domain.ConfigMap, len(kwargs))
	for _, kv := range kwargs {
		key := string(kv[0].(starlark.String))
		value, err := ToGo(kv[1])
		if err != nil {
			return nil, zerr.With(domain.WithCause(domain.ErrInvalidDeclaration, err), "option", key)
		}
		config[key] = value
	}

	reg, ok := thread.Local(registrarKey).(ports.Registrar)
	if !ok {
		return nil, zerr.New("project() called outside a definition file")
	}
	if err := reg.Declare(domain.ProjectID(name), config); err != nil {
		return nil, err
	}

	return starlark.None, nil
}
