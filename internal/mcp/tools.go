package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// registerTools registers all MCP tools with the server.
func (s *Server) registerTools() {
	s.registerRoutingTools()
	s.registerFileTools()
	s.registerShellTools()
}

type resolveSymbolInput struct {
	QualifiedName string `json:"qualified_name" jsonschema:"required,Fully qualified symbol name produced by the code indexer, e.g. pkg.module.Class.method"`
}

type resolveSymbolOutput struct {
	Namespace string `json:"namespace" jsonschema:"Project namespace the symbol resolved to"`
	Root      string `json:"root" jsonschema:"Canonical filesystem root of the project"`
}

type projectInfo struct {
	Namespace string `json:"namespace"`
	Root      string `json:"root"`
}

// projectListInput is empty because the tool lists everything.
type projectListInput struct{}

type projectListOutput struct {
	Projects []projectInfo `json:"projects"`
	Count    int           `json:"count"`
}

type projectAddInput struct {
	Namespace string `json:"namespace" jsonschema:"Project namespace used as registry key, e.g. user.profile.gateway"`
	Path      string `json:"path" jsonschema:"required,Filesystem path of the project root; canonicalized on insertion"`
}

type projectRemoveInput struct {
	Namespace string `json:"namespace" jsonschema:"required,Project namespace to remove"`
}

type projectMutationOutput struct {
	Namespace string `json:"namespace"`
	Root      string `json:"root,omitempty"`
	Projects  int    `json:"projects" jsonschema:"Number of registered projects after the mutation"`
}

func (s *Server) registerRoutingTools() {
	// resolve_symbol_path
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "resolve_symbol_path",
		Description: "Resolve a fully qualified symbol name to the filesystem root of the project it belongs to, using longest-prefix matching over registered project namespaces.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args resolveSymbolInput) (*mcp.CallToolResult, resolveSymbolOutput, error) {
		start := time.Now()
		var toolErr error
		defer func() {
			s.metrics.RecordInvocation(ctx, "resolve_symbol_path", time.Since(start), toolErr)
		}()

		namespace, root, err := s.resolve(ctx, args.QualifiedName)
		if err != nil {
			toolErr = err
			return nil, resolveSymbolOutput{}, err
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("%s -> %s", namespace, root)},
			},
		}, resolveSymbolOutput{Namespace: namespace, Root: root}, nil
	})

	// project_list
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "project_list",
		Description: "List all registered project namespaces and their filesystem roots.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args projectListInput) (*mcp.CallToolResult, projectListOutput, error) {
		start := time.Now()
		defer func() {
			s.metrics.RecordInvocation(ctx, "project_list", time.Since(start), nil)
		}()

		namespaces := s.registry.List()
		out := projectListOutput{
			Projects: make([]projectInfo, 0, len(namespaces)),
			Count:    len(namespaces),
		}
		for _, namespace := range namespaces {
			root, err := s.registry.Get(namespace)
			if err != nil {
				// Removed between List and Get; skip.
				continue
			}
			out.Projects = append(out.Projects, projectInfo{Namespace: namespace, Root: root})
		}

		return nil, out, nil
	})

	// project_add
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "project_add",
		Description: "Register a project namespace with its filesystem root, or overwrite an existing one. The path is canonicalized (absolute, symlinks resolved) before storage.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args projectAddInput) (*mcp.CallToolResult, projectMutationOutput, error) {
		start := time.Now()
		var toolErr error
		defer func() {
			s.metrics.RecordInvocation(ctx, "project_add", time.Since(start), toolErr)
		}()

		if args.Path == "" {
			toolErr = fmt.Errorf("path is required")
			return nil, projectMutationOutput{}, toolErr
		}

		s.registry.Add(args.Namespace, args.Path)

		root, err := s.registry.Get(args.Namespace)
		if err != nil {
			toolErr = err
			return nil, projectMutationOutput{}, err
		}

		return nil, projectMutationOutput{
			Namespace: args.Namespace,
			Root:      root,
			Projects:  s.registry.Len(),
		}, nil
	})

	// project_remove
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "project_remove",
		Description: "Remove a registered project namespace. Fails with the list of available namespaces when the namespace is not registered.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args projectRemoveInput) (*mcp.CallToolResult, projectMutationOutput, error) {
		start := time.Now()
		var toolErr error
		defer func() {
			s.metrics.RecordInvocation(ctx, "project_remove", time.Since(start), toolErr)
		}()

		if err := s.registry.Remove(args.Namespace); err != nil {
			toolErr = err
			return nil, projectMutationOutput{}, err
		}

		return nil, projectMutationOutput{
			Namespace: args.Namespace,
			Projects:  s.registry.Len(),
		}, nil
	})
}

// resolve routes a qualified name to its project namespace and root,
// recording the resolver outcome metric.
func (s *Server) resolve(ctx context.Context, qualifiedName string) (namespace, root string, err error) {
	if qualifiedName == "" {
		return "", "", fmt.Errorf("qualified_name is required")
	}

	namespace = s.registry.ExtractNamespace(qualifiedName)
	root, err = s.registry.Get(namespace)
	if err != nil {
		s.metrics.RecordResolution(ctx, "fallback")
		s.logger.Warn("resolution not grounded in a registered project",
			zap.String("qualified_name", qualifiedName),
			zap.String("namespace", namespace),
		)
		return "", "", err
	}

	s.metrics.RecordResolution(ctx, "matched")
	return namespace, root, nil
}
