package main

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ViewerSettings is what the viewer remembers between launches.
type ViewerSettings struct {
	LastEffect  string `yaml:"lastEffect"`
	ShowOverlay bool   `yaml:"showOverlay"`
	AutoPlay    bool   `yaml:"autoPlay"`
}

// DefaultSettings returns the out-of-the-box viewer settings.
func DefaultSettings() *ViewerSettings {
	return &ViewerSettings{
		LastEffect:  "sparks",
		ShowOverlay: true,
	}
}

// SettingsStore persists viewer settings through gdata. A nil manager puts
// the store in degraded mode: settings live in memory only and Save is a
// silent no-op.
type SettingsStore struct {
	manager  *gdata.Manager
	settings *ViewerSettings
}

const (
	settingsObject   = "viewer"
	settingsProperty = "state"
)

// NewSettingsStore builds a store and loads any previously saved settings.
// A load failure falls back to defaults and is not fatal.
func NewSettingsStore(manager *gdata.Manager) *SettingsStore {
	st := &SettingsStore{
		manager:  manager,
		settings: DefaultSettings(),
	}
	if err := st.Load(); err != nil {
		log.Printf("Warning: failed to load viewer settings: %v (using defaults)", err)
	}
	return st
}

// Load reads settings back from gdata, keeping defaults when nothing was
// saved yet or the store is degraded.
func (st *SettingsStore) Load() error {
	if st.manager == nil {
		return nil
	}
	if !st.manager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}
	data, err := st.manager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("loading viewer settings: %w", err)
	}
	var loaded ViewerSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("unmarshaling viewer settings: %w", err)
	}
	st.settings = &loaded
	return nil
}

// Save writes the current settings to gdata. Degraded mode saves nothing and
// reports no error.
func (st *SettingsStore) Save() error {
	if st.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(st.settings)
	if err != nil {
		return fmt.Errorf("marshaling viewer settings: %w", err)
	}
	if err := st.manager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("saving viewer settings: %w", err)
	}
	return nil
}

// Settings returns the live settings instance.
func (st *SettingsStore) Settings() *ViewerSettings {
	return st.settings
}
