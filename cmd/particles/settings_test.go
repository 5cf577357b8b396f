package main

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func testManager(t *testing.T) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")
	manager, err := gdata.Open(gdata.Config{AppName: "particlefx_viewer_test"})
	if err != nil {
		t.Fatalf("Failed to open gdata manager: %v", err)
	}
	return manager
}

// TestDefaultSettings verifies the out-of-the-box values.
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.LastEffect != "sparks" {
		t.Errorf("LastEffect = %q, expected sparks", s.LastEffect)
	}
	if !s.ShowOverlay {
		t.Error("ShowOverlay defaults to false, expected true")
	}
	if s.AutoPlay {
		t.Error("AutoPlay defaults to true, expected false")
	}
}

// TestSettingsStore_DegradedMode verifies a nil manager keeps settings in
// memory and never errors.
func TestSettingsStore_DegradedMode(t *testing.T) {
	store := NewSettingsStore(nil)
	store.Settings().LastEffect = "smoke"
	if err := store.Save(); err != nil {
		t.Errorf("Degraded Save() error: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Errorf("Degraded Load() error: %v", err)
	}
	if store.Settings().LastEffect != "smoke" {
		t.Errorf("LastEffect = %q after degraded load, expected smoke", store.Settings().LastEffect)
	}
}

// TestSettingsStore_SaveLoad verifies settings survive a save and a fresh
// load.
func TestSettingsStore_SaveLoad(t *testing.T) {
	manager := testManager(t)

	store := NewSettingsStore(manager)
	store.Settings().LastEffect = "fountain"
	store.Settings().ShowOverlay = false
	store.Settings().AutoPlay = true
	if err := store.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewSettingsStore(manager)
	got := reloaded.Settings()
	if got.LastEffect != "fountain" {
		t.Errorf("LastEffect = %q, expected fountain", got.LastEffect)
	}
	if got.ShowOverlay {
		t.Error("ShowOverlay = true, expected the saved false")
	}
	if !got.AutoPlay {
		t.Error("AutoPlay = false, expected the saved true")
	}
}

// TestSettingsStore_FirstRunUsesDefaults verifies a fresh store without a
// saved state starts from defaults.
func TestSettingsStore_FirstRunUsesDefaults(t *testing.T) {
	manager := testManager(t)
	store := NewSettingsStore(manager)
	if store.Settings().LastEffect != DefaultSettings().LastEffect {
		t.Errorf("Fresh store LastEffect = %q, expected default", store.Settings().LastEffect)
	}
}
