package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dtnitsch/meta-auditor/models"
)

func TestPluginRegistry(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	file := "wp-all-import/wp-all-import.php"

	active, err := db.IsPluginActive(ctx, file)
	if err != nil {
		t.Fatalf("IsPluginActive() error = %v", err)
	}
	if active {
		t.Error("unknown plugin reported active")
	}

	err = db.RegisterPlugin(ctx, models.Plugin{File: file, Slug: "wp-all-import", Name: "WP All Import", Version: "3.7", Active: true})
	if err != nil {
		t.Fatalf("RegisterPlugin() error = %v", err)
	}

	active, err = db.IsPluginActive(ctx, file)
	if err != nil {
		t.Fatalf("IsPluginActive() error = %v", err)
	}
	if !active {
		t.Error("registered plugin not active")
	}

	p, err := db.GetPlugin(ctx, file)
	if err != nil {
		t.Fatalf("GetPlugin() error = %v", err)
	}
	if p.Version != "3.7" || time.Since(p.InstalledAt) > time.Hour {
		t.Errorf("GetPlugin() = %+v", p)
	}
}

func TestGetPlugin_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetPlugin(context.Background(), "missing/missing.php")
	if !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("GetPlugin() error = %v, want ErrPluginNotFound", err)
	}
}
