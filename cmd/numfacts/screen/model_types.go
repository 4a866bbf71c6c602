// Package screen is the interactive presentation of the fact screen. The
// bubbletea update loop is the serialized actor: every reducer call happens
// in Update, and effects come back as messages.
package screen

import (
	"numfacts/internal/config"
	"numfacts/internal/facts"
)

const (
	loadingTitle = "Fetching the fact\nPlease wait..."
	errorTitle   = "Something went wrong"
	headerTitle  = "Number Facts"
)

// Messages for tea updates
type (
	// actionMsg carries an action into Update, typically an effect result.
	actionMsg struct {
		action facts.Action
	}

	// configReloadedMsg delivers a config reloaded from disk.
	configReloadedMsg struct {
		cfg *config.Config
	}
)

