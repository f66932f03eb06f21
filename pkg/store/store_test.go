package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"ir/interpreter-go/pkg/ast"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "programs.db"))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	program := ast.Prog(
		ast.Let("x", ast.Bin(ast.OperatorAdd, ast.Num(3), ast.Num(2))),
		ast.Print(ast.ID("x")),
	)
	if err := s.Save(ctx, "demo", program); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := s.Load(ctx, "demo")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !ast.StatementsEqual(program, loaded) {
		t.Fatalf("loaded program differs from saved program")
	}
}

func TestSaveReplacesAndListOrders(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	if err := s.Save(ctx, "zeta", ast.Prog(ast.Print(ast.Num(1)))); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := s.Save(ctx, "alpha", ast.Prog(ast.Print(ast.Num(1)))); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := s.Save(ctx, "alpha", ast.Prog(ast.Print(ast.Num(1)), ast.Print(ast.Num(2)))); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "alpha" || entries[1].Name != "zeta" {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if entries[0].Statements != 2 || !entries[0].SavedAt.Equal(fixed) {
		t.Fatalf("unexpected alpha entry %+v", entries[0])
	}
}

func TestMissingPrograms(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	if _, err := s.Load(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Save(ctx, "", nil); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	if err := s.Save(ctx, "gone", ast.Prog(ast.Exit(ast.Num(0)))); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := s.Delete(ctx, "gone"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	entries, err := s.List(ctx)
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty catalog, got %v %v", entries, err)
	}
}
