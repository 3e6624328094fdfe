package ports

import (
	"context"

	"go.trai.ch/nest/internal/core/domain"
)

// Registrar receives the project declared by a definition file.
//
//go:generate mockgen -source=evaluator.go -destination=mocks/mock_evaluator.go -package=mocks
type Registrar interface {
	// Declare records a project declaration. A file may declare at most one project.
	Declare(id domain.ProjectID, config domain.ConfigMap) error
}

// DefinitionEvaluator evaluates project definition files.
type DefinitionEvaluator interface {
	// Evaluate runs the definition file at path. Any project it declares is
	// reported to reg; the evaluator has no other observable effect.
	Evaluate(ctx context.Context, path string, reg Registrar) error
}
