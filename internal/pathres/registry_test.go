package pathres

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestNew_ExplicitMappings(t *testing.T) {
	r := New(map[string]string{
		"user.profile.gateway": "/r1",
		"user.profile.logic":   "/r2",
	})

	names := r.List()
	if len(names) != 2 {
		t.Fatalf("List() returned %d namespaces, want 2", len(names))
	}

	root, err := r.Get("user.profile.gateway")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if root != "/r1" {
		t.Errorf("Get() = %q, want %q", root, "/r1")
	}
}

func TestNew_EmptyMapping(t *testing.T) {
	r := New(map[string]string{})

	if got := r.List(); len(got) != 0 {
		t.Errorf("List() = %v, want empty", got)
	}

	_, err := r.Get("anything")
	if err == nil {
		t.Fatal("Get on empty registry succeeded, want error")
	}
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("Get error = %T, want *NotFoundError", err)
	}
	if len(nfe.Available) != 0 {
		t.Errorf("NotFoundError.Available = %v, want empty", nfe.Available)
	}
}

func TestNewFromRoot(t *testing.T) {
	dir := t.TempDir()

	r := NewFromRoot(dir)

	want := mustCanonical(t, dir)
	namespace := filepath.Base(want)

	names := r.List()
	if len(names) != 1 || names[0] != namespace {
		t.Fatalf("List() = %v, want [%q]", names, namespace)
	}

	root, err := r.Get(namespace)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if root != want {
		t.Errorf("Get() = %q, want %q", root, want)
	}
}

func TestRegistry_Add(t *testing.T) {
	t.Run("canonicalizes relative path", func(t *testing.T) {
		r := New(map[string]string{})
		r.Add("myproject", "relative/path")

		root, err := r.Get("myproject")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !filepath.IsAbs(root) {
			t.Errorf("Get() = %q, want absolute path", root)
		}
	})

	t.Run("overwrites existing entry", func(t *testing.T) {
		r := New(map[string]string{"myproject": "/old/path"})
		r.Add("myproject", "/new/path")

		root, err := r.Get("myproject")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if root != "/new/path" {
			t.Errorf("Get() = %q, want %q", root, "/new/path")
		}
		if n := len(r.List()); n != 1 {
			t.Errorf("List() size = %d after overwrite, want 1", n)
		}
	})

	t.Run("resolves symlinks at insertion", func(t *testing.T) {
		tmp := t.TempDir()
		target := filepath.Join(tmp, "target")
		if err := os.Mkdir(target, 0o755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
		link := filepath.Join(tmp, "link")
		if err := os.Symlink(target, link); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}

		r := New(map[string]string{})
		r.Add("myproject", link)

		root, err := r.Get("myproject")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if want := mustCanonical(t, target); root != want {
			t.Errorf("Get() = %q, want symlink target %q", root, want)
		}
	})

	t.Run("empty namespace is legal", func(t *testing.T) {
		r := New(map[string]string{})
		r.Add("", "/some/path")

		if _, err := r.Get(""); err != nil {
			t.Errorf("Get(\"\") failed: %v", err)
		}
	})
}

func TestRegistry_Remove(t *testing.T) {
	t.Run("removes existing entry", func(t *testing.T) {
		r := New(map[string]string{"project1": "/p1", "project2": "/p2"})

		if err := r.Remove("project1"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}

		names := r.List()
		if len(names) != 1 || names[0] != "project2" {
			t.Errorf("List() = %v, want [project2]", names)
		}
	})

	t.Run("fails for absent namespace and leaves registry unchanged", func(t *testing.T) {
		r := New(map[string]string{"project1": "/p1", "project2": "/p2"})

		err := r.Remove("nonexistent")
		if err == nil {
			t.Fatal("Remove succeeded for absent namespace, want error")
		}

		var nfe *NotFoundError
		if !errors.As(err, &nfe) {
			t.Fatalf("Remove error = %T, want *NotFoundError", err)
		}
		if nfe.Namespace != "nonexistent" {
			t.Errorf("NotFoundError.Namespace = %q, want %q", nfe.Namespace, "nonexistent")
		}
		if len(nfe.Available) != 2 {
			t.Errorf("NotFoundError.Available = %v, want both registered namespaces", nfe.Available)
		}
		if n := len(r.List()); n != 2 {
			t.Errorf("List() size = %d after failed Remove, want 2", n)
		}
	})
}

func TestRegistry_Get_NotFound(t *testing.T) {
	r := New(map[string]string{"project1": "/p1", "project2": "/p2"})

	_, err := r.Get("unknown")
	if err == nil {
		t.Fatal("Get succeeded for absent namespace, want error")
	}
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("errors.Is(err, ErrProjectNotFound) = false, want true")
	}

	msg := err.Error()
	for _, want := range []string{"unknown", "project1", "project2"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q missing %q", msg, want)
		}
	}
}

type stubSource struct {
	mappings map[string]string
}

func (s *stubSource) GetProjectMappings() map[string]string {
	return s.mappings
}

func TestFromConfig(t *testing.T) {
	src := &stubSource{mappings: map[string]string{"alpha": "/a", "beta": "/b"}}

	r := FromConfig(src)

	if n := len(r.List()); n != 2 {
		t.Fatalf("List() size = %d, want 2", n)
	}
	root, err := r.Get("alpha")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if root != "/a" {
		t.Errorf("Get() = %q, want %q", root, "/a")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := New(map[string]string{"base": "/base"})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			r.Add("base", "/base")
			_ = r.ExtractNamespace("base.module.func")
		}(i)
		go func(n int) {
			defer wg.Done()
			_ = r.List()
			_, _ = r.ResolveRoot("base.module.func")
		}(i)
	}
	wg.Wait()

	if n := len(r.List()); n != 1 {
		t.Errorf("List() size = %d after concurrent overwrites, want 1", n)
	}
}

// mustCanonical mirrors insertion-time canonicalization for expectations.
func mustCanonical(t *testing.T, path string) string {
	t.Helper()
	abs, err := filepath.Abs(path)
	if err != nil {
		t.Fatalf("Abs failed: %v", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs
	}
	return resolved
}
