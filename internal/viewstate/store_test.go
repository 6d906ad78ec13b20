package viewstate

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	appName := fmt.Sprintf("goring_test_%d", time.Now().UnixNano())
	s, err := OpenApp(appName)
	if err != nil {
		t.Skipf("Cannot create view store for testing: %v", err)
	}

	t.Cleanup(func() {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			os.RemoveAll(filepath.Join(homeDir, ".local", "share", appName))
		}
	})
	return s
}

func TestSaveLoad(t *testing.T) {
	s := openTestStore(t)
	if !s.Persistent() {
		t.Fatal("OpenApp failed: expected a persistent store")
	}

	if _, ok, err := s.Load("scenarios/table.yaml"); ok || err != nil {
		t.Fatalf("Load failed: expected no view, got ok=%v err=%v", ok, err)
	}

	v := View{
		Distance:      2.5,
		AngleX:        0.3,
		AngleY:        -1.2,
		Target:        Vec{X: 0, Y: 0.8, Z: 0.1},
		ShowColliders: true,
		ShowTimeline:  true,
	}
	if err := s.Save("scenarios/table.yaml", v); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, ok, err := s.Load("scenarios/table.yaml")
	if err != nil || !ok {
		t.Fatalf("Load failed: expected saved view, got ok=%v err=%v", ok, err)
	}
	if loaded != v {
		t.Errorf("Load failed: expected %+v, got %+v", v, loaded)
	}

	if _, ok, _ := s.Load("scenarios/shelf.toml"); ok {
		t.Error("Load failed: expected views to be kept per scenario")
	}
}

func TestStoreWithoutManager(t *testing.T) {
	s := NewStore(nil)
	if s.Persistent() {
		t.Error("NewStore failed: expected a store that keeps nothing")
	}
	if err := s.Save("a.yaml", View{Distance: 1}); err != nil {
		t.Errorf("Save failed: expected no error, got %v", err)
	}
	if _, ok, err := s.Load("a.yaml"); ok || err != nil {
		t.Errorf("Load failed: expected no view, got ok=%v err=%v", ok, err)
	}
}

func TestKeyUsesAbsolutePath(t *testing.T) {
	abs, err := filepath.Abs("table.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if key("table.yaml") != key(abs) {
		t.Error("key failed: expected relative and absolute paths to match")
	}
	if key("table.yaml") == key("shelf.toml") {
		t.Error("key failed: expected different keys for different files")
	}
}
