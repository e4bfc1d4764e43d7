package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	want := Default()
	want.PagePath = "site/front.html"
	want.News[1].Limit = 3

	if err := Write(path, want); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if got.PagePath != "site/front.html" {
		t.Errorf("page_path lost in round trip: %q", got.PagePath)
	}
	if len(got.News) != 2 || got.News[1].Limit != 3 {
		t.Errorf("news regions lost in round trip: %+v", got.News)
	}
	if got.Reddit.Selector != ".reddit-posts" {
		t.Errorf("reddit defaults lost: %+v", got.Reddit)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.toml"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}

func TestReadPartialConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("page_path = \"custom.html\"\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.PagePath != "custom.html" {
		t.Errorf("override lost: %q", got.PagePath)
	}
	if got.UserAgent != Default().UserAgent {
		t.Errorf("default user agent lost: %q", got.UserAgent)
	}
}
