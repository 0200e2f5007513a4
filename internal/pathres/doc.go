// Package pathres maintains the mapping from project namespaces to
// filesystem roots and resolves qualified symbol names against it.
//
// A namespace is a dot-delimited prefix such as "user.profile.gateway"
// that identifies one project's scope inside the code knowledge graph.
// The registry stores one canonical absolute root per namespace and the
// resolver picks the longest registered namespace that is a dot-bounded
// prefix of a qualified name.
//
// Resolution is two-tiered: ExtractNamespace never fails (it falls back
// to the first dot segment of the input), while Get and ResolveRoot fail
// with a NotFoundError when the namespace is not registered. Callers
// that need a guaranteed-valid project must use the failing tier.
package pathres
