package models

import "time"

// PluginInfo is what the plugin directory returns for a slug.
type PluginInfo struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Version      string `json:"version"`
	DownloadLink string `json:"download_link"`
}

// Plugin is an installed plugin as tracked by the registry.
// File is the main plugin file relative to the plugins dir, e.g. "wp-all-import/wp-all-import.php".
type Plugin struct {
	File        string
	Slug        string
	Name        string
	Version     string
	Active      bool
	InstalledAt time.Time
}
