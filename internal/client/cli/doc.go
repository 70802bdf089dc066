// Package cli provides the arcaives terminal client.
//
// It wires configuration, the gateway client, the sqlite session store and
// the site services behind a cobra command tree. Every page is a command
// (home, arcaives, open, arcaive, memo) and "admin" guards the managers.
// Without a subcommand the client starts an interactive shell that keeps
// the gate session between commands, so an unlock or an admin login lasts
// for the run. See NewRootCmd, App.Shell and runREPL.
package cli
