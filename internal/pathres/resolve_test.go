package pathres

import (
	"errors"
	"testing"
)

func TestExtractNamespace(t *testing.T) {
	tests := []struct {
		name          string
		mappings      map[string]string
		qualifiedName string
		want          string
	}{
		{
			name: "simple match",
			mappings: map[string]string{
				"myproject": "/path",
			},
			qualifiedName: "myproject.module.function",
			want:          "myproject",
		},
		{
			name: "longest prefix wins over ancestor",
			mappings: map[string]string{
				"project":     "/p1",
				"project.sub": "/p2",
			},
			qualifiedName: "project.sub.module.func",
			want:          "project.sub",
		},
		{
			name: "ancestor still matches its own subtree",
			mappings: map[string]string{
				"project":     "/p1",
				"project.sub": "/p2",
			},
			qualifiedName: "project.module.func",
			want:          "project",
		},
		{
			name: "hierarchical namespaces",
			mappings: map[string]string{
				"user.profile.gateway": "/r1",
				"user.profile.logic":   "/r2",
			},
			qualifiedName: "user.profile.gateway.service.Func",
			want:          "user.profile.gateway",
		},
		{
			name: "boundary check rejects bare substring prefix",
			mappings: map[string]string{
				"project": "/p1",
			},
			qualifiedName: "projectX.foo.bar",
			want:          "projectX",
		},
		{
			name: "fallback to first segment when no match",
			mappings: map[string]string{
				"other": "/x",
			},
			qualifiedName: "unknown.module.function",
			want:          "unknown",
		},
		{
			name: "input without dots returned unchanged",
			mappings: map[string]string{
				"myproject": "/path",
			},
			qualifiedName: "myproject",
			want:          "myproject",
		},
		{
			name:          "empty registry falls back",
			mappings:      map[string]string{},
			qualifiedName: "anything.at.all",
			want:          "anything",
		},
		{
			name: "empty namespace matches leading dot",
			mappings: map[string]string{
				"": "/path",
			},
			qualifiedName: ".module.function",
			want:          "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.mappings)
			if got := r.ExtractNamespace(tt.qualifiedName); got != tt.want {
				t.Errorf("ExtractNamespace(%q) = %q, want %q", tt.qualifiedName, got, tt.want)
			}
		})
	}
}

func TestResolveRoot(t *testing.T) {
	t.Run("resolves matched namespace to root", func(t *testing.T) {
		r := New(map[string]string{"myproject": "/tmp/myproject"})

		root, err := r.ResolveRoot("myproject.module.function")
		if err != nil {
			t.Fatalf("ResolveRoot failed: %v", err)
		}
		if root != "/tmp/myproject" {
			t.Errorf("ResolveRoot() = %q, want %q", root, "/tmp/myproject")
		}
	})

	t.Run("fails for ungrounded fallback", func(t *testing.T) {
		r := New(map[string]string{"other": "/x"})

		_, err := r.ResolveRoot("unknown.module.function")
		if err == nil {
			t.Fatal("ResolveRoot succeeded for unknown project, want error")
		}

		var nfe *NotFoundError
		if !errors.As(err, &nfe) {
			t.Fatalf("ResolveRoot error = %T, want *NotFoundError", err)
		}
		if nfe.Namespace != "unknown" {
			t.Errorf("NotFoundError.Namespace = %q, want %q", nfe.Namespace, "unknown")
		}
	})

	t.Run("fails on empty registry", func(t *testing.T) {
		r := New(map[string]string{})

		_, err := r.ResolveRoot("any.symbol")
		if !errors.Is(err, ErrProjectNotFound) {
			t.Errorf("ResolveRoot error = %v, want ErrProjectNotFound", err)
		}
	})
}
