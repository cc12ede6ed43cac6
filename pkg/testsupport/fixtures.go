package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-configger/pkg/builder"
)

// SampleSession is the session id pinned on SampleBackend.
const SampleSession = "sample-session"

// SampleBackend builds the shop fixture used across generator tests:
//
//	shop (postgres)
//	  user:  id integer, email string, created_at timestamp, deleted_at timestamp (nullable)
//	  order: id integer, user_id integer, note string (nullable)
func SampleBackend(t testing.TB) *builder.Backend {
	t.Helper()

	backend, err := BuildSample()
	if err != nil {
		t.Fatalf("build sample: %v", err)
	}
	return backend
}

// BuildSample returns the shop fixture without requiring testing.T.
func BuildSample() (*builder.Backend, error) {
	backend := builder.NewBackend(builder.WithSessionID(SampleSession))
	shop, err := backend.NewSchema("shop")
	if err != nil {
		return nil, err
	}
	shop.SetDescription("Online store").SetDatabaseType("postgres")

	user, err := shop.NewModel("user")
	if err != nil {
		return nil, err
	}
	user.SetDescription("Registered <b>customer</b><script>alert(1)</script>")
	if _, err := user.NewInt("id"); err != nil {
		return nil, err
	}
	email, err := user.NewString("email")
	if err != nil {
		return nil, err
	}
	email.SetDescription("Login address")
	if _, err := user.NewTimestamp("created_at"); err != nil {
		return nil, err
	}
	deleted, err := user.NewTimestamp("deleted_at")
	if err != nil {
		return nil, err
	}
	deleted.SetAttribute("nullable", true)

	order, err := shop.NewModel("order")
	if err != nil {
		return nil, err
	}
	if _, err := order.NewInt("id"); err != nil {
		return nil, err
	}
	if _, err := order.NewInt("user_id"); err != nil {
		return nil, err
	}
	note, err := order.NewString("note")
	if err != nil {
		return nil, err
	}
	note.SetAttribute("nullable", true)

	if err := backend.Err(); err != nil {
		return nil, fmt.Errorf("testsupport: build sample: %w", err)
	}
	return backend, nil
}

// SampleTree returns a snapshot of SampleBackend.
func SampleTree(t testing.TB) builder.Tree {
	t.Helper()
	return SampleBackend(t).Snapshot()
}

// LoadTree reads a tree fixture. Files ending in .yaml or .yml are decoded
// with yaml.v3, everything else as JSON.
func LoadTree(path string) (builder.Tree, error) {
	if path == "" {
		return builder.Tree{}, errors.New("testsupport: tree path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return builder.Tree{}, fmt.Errorf("testsupport: read tree: %w", err)
	}
	var out builder.Tree
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &out)
	default:
		err = json.Unmarshal(data, &out)
	}
	if err != nil {
		return builder.Tree{}, fmt.Errorf("testsupport: decode tree: %w", err)
	}
	return out, nil
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t testing.TB, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// AssertGolden compares got with the golden file at path, rewriting the file
// instead when UPDATE_GOLDENS is set.
func AssertGolden(t testing.TB, path string, got []byte) {
	t.Helper()
	if WriteMaybeGolden(t, path, got) {
		return
	}
	want := string(MustReadGolden(t, path))
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", filepath.Base(path), diff)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
