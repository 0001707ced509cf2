// Package cli wires the gitstrap commands together.
//
// Each command lives in its own file with its flags and an init() that
// registers it on the root command. Command implementations stay thin:
// they load config, build the collaborators, and delegate to the internal
// packages that do the work.
package cli
