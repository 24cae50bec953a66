package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/psetgrid/internal/ctxlog"
	"github.com/vk/psetgrid/internal/schema"
)

// SchemaResolver returns the schema a declaration's parameters must satisfy.
// schema.ForType is the default resolver.
type SchemaResolver func(decl *Declaration) (*schema.Schema, bool)

// DefaultResolver resolves schemas from the declaration's component type.
func DefaultResolver(decl *Declaration) (*schema.Schema, bool) {
	return schema.ForType(decl.Type)
}

// ValidateSchemas checks every declaration against the schema returned by
// resolve. Declarations without a schema are skipped with a debug message.
// All violations are reported together.
func (r *Registry) ValidateSchemas(ctx context.Context, resolve SchemaResolver) error {
	logger := ctxlog.FromContext(ctx)
	if resolve == nil {
		resolve = DefaultResolver
	}

	var errs []error
	for _, decl := range r.All() {
		s, ok := resolve(decl)
		if !ok {
			logger.Debug("No schema for component type, skipping validation.", "label", decl.Label, "type", decl.Type.String())
			continue
		}
		if err := s.Validate(decl.Params); err != nil {
			logger.Error("Declaration does not satisfy its schema.", "label", decl.Label, "schema", s.Name, "revision", s.Revision, "error", err)
			errs = append(errs, fmt.Errorf("declaration %q (%s): %w", decl.Label, decl.Type, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed: %w", errors.Join(errs...))
	}
	logger.Debug("Registry validation passed.", "declarations", r.Len())
	return nil
}
