package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func openTemp(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "commands.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	t.Cleanup(func() { s.Close() })

	return s
}

func TestStore_PutGet(t *testing.T) {
	s := openTemp(t)

	const source = `echo("Hello, ", arg0, "!")`

	if err := s.Put("greet", source); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get("greet")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if got != source {
		t.Errorf("Get = %q, want %q", got, source)
	}
}

func TestStore_PutReplaces(t *testing.T) {
	s := openTemp(t)

	if err := s.Put("greet", "echo(1)"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := s.Put("greet", "echo(2)"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get("greet")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if got != "echo(2)" {
		t.Errorf("Get = %q, want %q", got, "echo(2)")
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := openTemp(t)

	if _, err := s.Get("ghost"); !errors.Is(err, ErrNoCommand) {
		t.Errorf("Get(ghost) err = %v, want ErrNoCommand", err)
	}
}

func TestStore_Delete(t *testing.T) {
	s := openTemp(t)

	if err := s.Put("greet", "echo(1)"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := s.Delete("greet"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := s.Get("greet"); !errors.Is(err, ErrNoCommand) {
		t.Errorf("Get after Delete err = %v, want ErrNoCommand", err)
	}

	if err := s.Delete("greet"); !errors.Is(err, ErrNoCommand) {
		t.Errorf("Delete(missing) err = %v, want ErrNoCommand", err)
	}
}

func TestStore_List(t *testing.T) {
	s := openTemp(t)

	empty, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(empty) != 0 {
		t.Errorf("List on empty store = %v, want none", empty)
	}

	// Inserted out of order; List returns name order.
	for _, c := range []Command{
		{Name: "zero", Source: "echo(0)"},
		{Name: "alpha", Source: "echo(1)"},
		{Name: "mid", Source: "echo(2)"},
	} {
		if err := s.Put(c.Name, c.Source); err != nil {
			t.Fatalf("Put(%s): %v", c.Name, err)
		}
	}

	got, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := []Command{
		{Name: "alpha", Source: "echo(1)"},
		{Name: "mid", Source: "echo(2)"},
		{Name: "zero", Source: "echo(0)"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := s.Put("keep", "echo(42)"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.Get("keep")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}

	if got != "echo(42)" {
		t.Errorf("Get after reopen = %q, want %q", got, "echo(42)")
	}
}
