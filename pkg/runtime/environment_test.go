package runtime

import (
	"errors"
	"testing"

	"ir/interpreter-go/pkg/ast"
)

func num(v int64) ast.Value { return ast.NumberValue{Val: v} }

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment[ast.Value]("variable")
	env.Define("x", num(1))
	val, err := env.Get("x")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ast.ValuesEqual(val, num(1)) {
		t.Fatalf("expected 1, got %s", val)
	}
}

func TestEnvironmentUndefinedName(t *testing.T) {
	env := NewEnvironment[ast.Value]("variable")
	_, err := env.Get("missing")
	if !errors.Is(err, ErrUndefinedName) {
		t.Fatalf("expected UndefinedName, got %v", err)
	}
	var rtErr *Error
	if !errors.As(err, &rtErr) || rtErr.Name != "missing" {
		t.Fatalf("expected error naming 'missing', got %#v", err)
	}
	if err.Error() != "Undefined variable 'missing'" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if err := env.Assign("missing", num(1)); !IsKind(err, UndefinedName) {
		t.Fatalf("expected assign to fail with UndefinedName, got %v", err)
	}
}

func TestEnvironmentShadowingAndRestore(t *testing.T) {
	env := NewEnvironment[ast.Value]("variable")
	env.Define("x", num(1))

	outer := env.Push()
	env.Define("x", num(2))
	inner := env.Push()
	env.Define("y", num(3))
	if val, _ := env.Get("x"); !ast.ValuesEqual(val, num(2)) {
		t.Fatalf("expected inner x=2, got %s", val)
	}
	env.Restore(inner)
	if _, err := env.Get("y"); err == nil {
		t.Fatalf("expected y to be discarded with its frame")
	}
	env.Restore(outer)
	if val, _ := env.Get("x"); !ast.ValuesEqual(val, num(1)) {
		t.Fatalf("expected outer x=1 after restore, got %s", val)
	}
	if env.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", env.Depth())
	}
}

func TestEnvironmentAssignRewritesInnermostDefiningFrame(t *testing.T) {
	env := NewEnvironment[ast.Value]("variable")
	env.Define("x", num(1))
	saved := env.Push()
	env.Define("y", num(0))
	if err := env.Assign("x", num(5)); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if keys := env.Keys(); len(keys) != 1 || keys[0] != "y" {
		t.Fatalf("assign must not define in the current frame, keys=%v", keys)
	}
	env.Restore(saved)
	if val, _ := env.Get("x"); !ast.ValuesEqual(val, num(5)) {
		t.Fatalf("expected outer x rewritten to 5, got %s", val)
	}
}

func TestEnvironmentRestoreNeverDropsRoot(t *testing.T) {
	env := NewEnvironment[*Function]("function")
	env.Define("f", &Function{Name: "f"})
	env.Restore(0)
	if env.Depth() != 1 {
		t.Fatalf("expected root frame to survive, depth=%d", env.Depth())
	}
	if _, err := env.Get("f"); err != nil {
		t.Fatalf("expected f to remain defined: %v", err)
	}
	if _, err := env.Get("g"); err == nil || err.Error() != "Undefined function 'g'" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestEnvironmentVisibleAndSnapshot(t *testing.T) {
	env := NewEnvironment[ast.Value]("variable")
	env.Define("a", num(1))
	env.Define("b", num(1))
	env.Push()
	env.Define("b", num(2))
	visible := env.Visible()
	if len(visible) != 2 || !ast.ValuesEqual(visible["b"], num(2)) {
		t.Fatalf("unexpected visible bindings %v", visible)
	}
	snap := env.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("snapshot should only hold the current frame, got %v", snap)
	}
	snap["c"] = num(9)
	if _, err := env.Get("c"); err == nil {
		t.Fatalf("snapshot must be a copy")
	}
}
