package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// maxReadSize caps read_file_content responses.
const maxReadSize = 1024 * 1024 // 1MB

type readFileInput struct {
	QualifiedName string `json:"qualified_name" jsonschema:"required,Qualified symbol name used to route to the owning project"`
	Path          string `json:"path" jsonschema:"required,File path relative to the resolved project root"`
}

type readFileOutput struct {
	Project string `json:"project" jsonschema:"Project namespace the file was read from"`
	Path    string `json:"path" jsonschema:"Absolute path of the file"`
	Content string `json:"content"`
}

type listDirectoryInput struct {
	QualifiedName string `json:"qualified_name" jsonschema:"required,Qualified symbol name used to route to the owning project"`
	Path          string `json:"path,omitempty" jsonschema:"Directory path relative to the resolved project root (default: the root itself)"`
}

type listDirectoryOutput struct {
	Project string   `json:"project"`
	Path    string   `json:"path"`
	Entries []string `json:"entries" jsonschema:"Entry names; directories carry a trailing slash"`
}

type createFileInput struct {
	QualifiedName string `json:"qualified_name" jsonschema:"required,Qualified symbol name used to route to the owning project"`
	Path          string `json:"path" jsonschema:"required,File path relative to the resolved project root"`
	Content       string `json:"content" jsonschema:"required,File content to write"`
}

type createFileOutput struct {
	Project string `json:"project"`
	Path    string `json:"path"`
	Bytes   int    `json:"bytes"`
}

func (s *Server) registerFileTools() {
	// read_file_content
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "read_file_content",
		Description: "Read a file from the project that owns the given qualified symbol name.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args readFileInput) (*mcp.CallToolResult, readFileOutput, error) {
		start := time.Now()
		var toolErr error
		defer func() {
			s.metrics.RecordInvocation(ctx, "read_file_content", time.Since(start), toolErr)
		}()

		namespace, full, err := s.routePath(ctx, args.QualifiedName, args.Path)
		if err != nil {
			toolErr = err
			return nil, readFileOutput{}, err
		}

		info, err := os.Stat(full)
		if err != nil {
			toolErr = fmt.Errorf("stat failed: %w", err)
			return nil, readFileOutput{}, toolErr
		}
		if info.Size() > maxReadSize {
			toolErr = fmt.Errorf("file %s exceeds %d bytes", args.Path, maxReadSize)
			return nil, readFileOutput{}, toolErr
		}

		content, err := os.ReadFile(full)
		if err != nil {
			toolErr = fmt.Errorf("read failed: %w", err)
			return nil, readFileOutput{}, toolErr
		}

		return nil, readFileOutput{
			Project: namespace,
			Path:    full,
			Content: string(content),
		}, nil
	})

	// list_directory
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_directory",
		Description: "List directory entries inside the project that owns the given qualified symbol name.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args listDirectoryInput) (*mcp.CallToolResult, listDirectoryOutput, error) {
		start := time.Now()
		var toolErr error
		defer func() {
			s.metrics.RecordInvocation(ctx, "list_directory", time.Since(start), toolErr)
		}()

		namespace, full, err := s.routePath(ctx, args.QualifiedName, args.Path)
		if err != nil {
			toolErr = err
			return nil, listDirectoryOutput{}, err
		}

		entries, err := os.ReadDir(full)
		if err != nil {
			toolErr = fmt.Errorf("read dir failed: %w", err)
			return nil, listDirectoryOutput{}, toolErr
		}

		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() {
				name += "/"
			}
			names = append(names, name)
		}
		sort.Strings(names)

		return nil, listDirectoryOutput{
			Project: namespace,
			Path:    full,
			Entries: names,
		}, nil
	})

	// create_new_file
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "create_new_file",
		Description: "Create a new file inside the project that owns the given qualified symbol name. Fails if the file already exists.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args createFileInput) (*mcp.CallToolResult, createFileOutput, error) {
		start := time.Now()
		var toolErr error
		defer func() {
			s.metrics.RecordInvocation(ctx, "create_new_file", time.Since(start), toolErr)
		}()

		namespace, full, err := s.routePath(ctx, args.QualifiedName, args.Path)
		if err != nil {
			toolErr = err
			return nil, createFileOutput{}, err
		}

		if _, err := os.Stat(full); err == nil {
			toolErr = fmt.Errorf("file already exists: %s", args.Path)
			return nil, createFileOutput{}, toolErr
		}

		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			toolErr = fmt.Errorf("create parent directories failed: %w", err)
			return nil, createFileOutput{}, toolErr
		}
		if err := os.WriteFile(full, []byte(args.Content), 0o644); err != nil {
			toolErr = fmt.Errorf("write failed: %w", err)
			return nil, createFileOutput{}, toolErr
		}

		return nil, createFileOutput{
			Project: namespace,
			Path:    full,
			Bytes:   len(args.Content),
		}, nil
	})
}

// routePath resolves the project root for a qualified name and joins a
// relative path inside it, rejecting anything that escapes the root.
func (s *Server) routePath(ctx context.Context, qualifiedName, rel string) (namespace, full string, err error) {
	namespace, root, err := s.resolve(ctx, qualifiedName)
	if err != nil {
		return "", "", err
	}

	full, err = joinWithinRoot(root, rel)
	if err != nil {
		return "", "", err
	}
	return namespace, full, nil
}

// joinWithinRoot joins rel to root and verifies the cleaned result is
// still inside root.
func joinWithinRoot(root, rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("path must be relative to the project root: %s", rel)
	}

	full := filepath.Join(root, rel)
	if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes project root: %s", rel)
	}
	return full, nil
}
