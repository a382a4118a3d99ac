// Package application provides the application interface for tabmatch commands.
//
// Commands accept this interface rather than the concrete App type from
// cmd/tabmatch/app, so they can be tested with a Mock:
//
//	mock := &application.Mock{
//	    ClientFunc: func() (tabmatch.Client, error) {
//	        return tabmatch.New()
//	    },
//	}
//	cmd := compare.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/tabmatch"
	"github.com/agentstation/tabmatch/internal/config"
)

// Application provides what commands need from the running application.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Client returns the shared tabmatch client, creating it on first use.
	Client() (tabmatch.Client, error)

	// Settings returns the matching defaults from config file and environment.
	Settings() *config.Settings

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
