package common

import "github.com/alecthomas/kingpin/v2"

// FlagHolder is satisfied by *kingpin.Application and *kingpin.CmdClause.
type FlagHolder interface {
	Flag(name, help string) *kingpin.FlagClause
}
