package models

import (
	"fmt"
	"strings"
)

// DefaultServerID is the identifier used when configuring the jfrog CLI
const DefaultServerID = "skiff-artifactory"

// SetupCommand is a shell command that points a package manager at a
// configured Artifactory repository
type SetupCommand struct {
	Category RepositoryCategory
	Command  string
}

// jfrogConfigSubcommands maps categories to the jfrog CLI subcommand that
// wires up the matching package manager. Categories without one (plain
// registries) produce no setup command.
var jfrogConfigSubcommands = map[RepositoryCategory]string{
	CategoryPyPI:  "pip-config",
	CategoryNPM:   "npm-config",
	CategoryMaven: "mvn-config",
	CategoryGo:    "go-config",
}

// SetupCommands builds the jfrog CLI configuration commands for every
// repository that has one, in canonical category order. Blank keys are
// skipped.
func SetupCommands(serverID string, repos map[RepositoryCategory]string) []SetupCommand {
	if serverID == "" {
		serverID = DefaultServerID
	}

	var commands []SetupCommand
	for _, category := range AllRepositoryCategories() {
		key := strings.TrimSpace(repos[category])
		if key == "" {
			continue
		}
		subcommand, ok := jfrogConfigSubcommands[category]
		if !ok {
			continue
		}
		commands = append(commands, SetupCommand{
			Category: category,
			Command: fmt.Sprintf("jfrog %s --server-id-resolve %s --repo-resolve %s --interactive=false",
				subcommand, shellQuote(serverID), shellQuote(key)),
		})
	}
	return commands
}

// shellQuote wraps an argument in single quotes when it contains characters
// the shell would interpret
func shellQuote(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\n\"'`$&|;<>()*?[]#~%!{}\\") {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'"'"'`) + "'"
}
