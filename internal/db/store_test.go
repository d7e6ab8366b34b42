package db

import (
    "os"
    "path/filepath"
    "testing"
)

func TestGetMissingRecord(t *testing.T) {
    tmpDir, _ := os.MkdirTemp("", "cinelist-test")
    defer os.RemoveAll(tmpDir)

    store, err := NewStore(filepath.Join(tmpDir, "cinelist.db"))
    if err != nil {
        t.Fatalf("Failed to create store: %v", err)
    }
    defer store.Close()

    value, ok, err := store.Get("watchlist")
    if err != nil {
        t.Fatalf("Get failed: %v", err)
    }
    if ok {
        t.Error("Expected ok=false for a record that was never written")
    }
    if value != nil {
        t.Errorf("Expected nil value, got %q", value)
    }
}

func TestSetReplacesRecord(t *testing.T) {
    tmpDir, _ := os.MkdirTemp("", "cinelist-test")
    defer os.RemoveAll(tmpDir)

    store, err := NewStore(filepath.Join(tmpDir, "cinelist.db"))
    if err != nil {
        t.Fatalf("Failed to create store: %v", err)
    }
    defer store.Close()

    if err := store.Set("watchlist", []byte(`[{"id":1}]`)); err != nil {
        t.Fatalf("Failed to set: %v", err)
    }
    if err := store.Set("watchlist", []byte(`[]`)); err != nil {
        t.Fatalf("Failed to set: %v", err)
    }

    value, ok, err := store.Get("watchlist")
    if err != nil || !ok {
        t.Fatalf("Get failed: ok=%v err=%v", ok, err)
    }
    if string(value) != "[]" {
        t.Errorf("Expected [], got %s", value)
    }
}

func TestMetadata(t *testing.T) {
    tmpDir, _ := os.MkdirTemp("", "cinelist-test")
    defer os.RemoveAll(tmpDir)

    store, err := NewStore(filepath.Join(tmpDir, "cinelist.db"))
    if err != nil {
        t.Fatalf("Failed to create store: %v", err)
    }
    defer store.Close()

    if v, _ := store.GetMetadata("last_focus"); v != "" {
        t.Errorf("Expected empty metadata, got %q", v)
    }
    store.SetMetadata("last_focus", "watchlist")
    if v, _ := store.GetMetadata("last_focus"); v != "watchlist" {
        t.Errorf("Expected watchlist, got %q", v)
    }
}
