package pathres

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// ExtractNamespace extracts the project namespace from a qualified
// symbol name using longest-prefix matching over the registered
// namespaces. A namespace matches only when it is a dot-bounded prefix
// of the input, so "project" never matches "projectX.foo".
//
// When no registered namespace matches, the first dot-delimited segment
// of the input is returned as a best-effort label (the whole string if
// there is no dot). The fallback is not guaranteed to be registered;
// ExtractNamespace never fails by design.
func (r *Registry) ExtractNamespace(qualifiedName string) string {
	candidates := r.List()

	// Longest first so "project.sub" wins over "project".
	sort.Slice(candidates, func(i, j int) bool {
		return len(candidates[i]) > len(candidates[j])
	})

	for _, namespace := range candidates {
		if strings.HasPrefix(qualifiedName, namespace+".") {
			r.logger.Debug("qualified name matched project",
				zap.String("qualified_name", qualifiedName),
				zap.String("project", namespace),
			)
			return namespace
		}
	}

	fallback, _, _ := strings.Cut(qualifiedName, ".")
	r.logger.Warn("no registered project matches qualified name, using first segment",
		zap.String("qualified_name", qualifiedName),
		zap.String("fallback", fallback),
	)
	return fallback
}

// ResolveRoot resolves a qualified symbol name to the canonical root of
// its project. It composes ExtractNamespace and Get, so it fails with a
// NotFoundError when the extracted (or fallback) namespace is not
// registered.
func (r *Registry) ResolveRoot(qualifiedName string) (string, error) {
	return r.Get(r.ExtractNamespace(qualifiedName))
}
