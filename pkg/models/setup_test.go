package models

import (
	"strings"
	"testing"
)

func TestSetupCommands(t *testing.T) {
	repos := map[RepositoryCategory]string{
		CategoryPyPI:   "pypi-remote",
		CategoryNPM:    " npm-virtual ",
		CategoryGo:     "",
		CategoryDocker: "docker-local", // registries have no jfrog config subcommand
	}

	commands := SetupCommands("my-server", repos)

	if len(commands) != 2 {
		t.Fatalf("SetupCommands() returned %d commands, want 2: %v", len(commands), commands)
	}

	// Canonical category order: pypi before npm
	if commands[0].Category != CategoryPyPI || commands[1].Category != CategoryNPM {
		t.Errorf("command order = [%s %s], want [pypi npm]", commands[0].Category, commands[1].Category)
	}

	want := "jfrog pip-config --server-id-resolve my-server --repo-resolve pypi-remote --interactive=false"
	if commands[0].Command != want {
		t.Errorf("pip command = %q, want %q", commands[0].Command, want)
	}
	if !strings.Contains(commands[1].Command, "npm-config") {
		t.Errorf("npm command = %q, want npm-config subcommand", commands[1].Command)
	}
	if !strings.Contains(commands[1].Command, "npm-virtual") {
		t.Errorf("npm command = %q, want trimmed repo key", commands[1].Command)
	}
}

func TestSetupCommandsDefaultServerID(t *testing.T) {
	commands := SetupCommands("", map[RepositoryCategory]string{CategoryGo: "go-remote"})
	if len(commands) != 1 {
		t.Fatalf("SetupCommands() returned %d commands, want 1", len(commands))
	}
	if !strings.Contains(commands[0].Command, DefaultServerID) {
		t.Errorf("command %q does not use the default server id", commands[0].Command)
	}
}

func TestSetupCommandsEmpty(t *testing.T) {
	if commands := SetupCommands("srv", nil); len(commands) != 0 {
		t.Errorf("SetupCommands(nil) = %v, want none", commands)
	}
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "pypi-remote", "pypi-remote"},
		{"with space", "my repo", "'my repo'"},
		{"with dollar", "re$po", "'re$po'"},
		{"with single quote", "it's", `'it'"'"'s'`},
		{"empty", "", "''"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := shellQuote(tt.input); result != tt.expected {
				t.Errorf("shellQuote(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
