// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ManifestParseErrorId Id = iota + 1
	ManifestInvalidKindId
	CommandNotFoundId
	CacheCorruptId
	ConfigLoadFailedId
	PluginExecFailedId
	AliasExecFailedId
	DocServerStartFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to look up the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse a command manifest!

One of the manifests in your commands directory contains syntax errors or
invalid configuration, so the command list cannot be built.

## Common issues:
- Invalid CUE syntax (missing quotes, braces, etc.)
- Unknown field names
- Invalid values for known fields
- Missing required fields (usage, kind, help)

## Things you can try:
- Check the error message above for the specific file and field
- Validate the manifest syntax using the cue command-line tool
- Move the offending file out of the commands directory

## Example of a valid manifest:
~~~cue
usage:	"clone <remote> [<branch>]"
kind:	"repo"
help:	"Make a local clone of a remote repository"
~~~`,
	}

	manifestInvalidKindIssue = &Issue{
		id: ManifestInvalidKindId,
		mdMsg: `
# Unknown command kind!

A command manifest declares a kind that stg does not recognize.

## Valid kinds:
- **repo**: Repository commands
- **stack**: Stack (branch) commands
- **patch**: Patch commands
- **wc**: Index/worktree commands
- **alias**: Alias commands

## Things you can try:
- Fix the kind field in the manifest named above
- Remove the manifest if the command no longer exists`,
	}

	commandNotFoundIssue = &Issue{
		id: CommandNotFoundId,
		mdMsg: `
# Command not found!

The command you specified is not in the command list.

## Things you can try:
- List all available commands:
~~~
$ stg cmdlist show
~~~

- Check for typos in the command name
- Rebuild the cached command list if it is stale:
~~~
$ stg cmdlist cache
~~~`,
	}

	cacheCorruptIssue = &Issue{
		id: CacheCorruptId,
		mdMsg: `
# Cached command list is unreadable!

The cached command list exists but could not be read. stg refuses to guess
in this situation, because silently rescanning would hide real problems.

## Things you can try:
- Regenerate the cache:
~~~
$ stg cmdlist cache
~~~

- Or delete the cache file named above; stg rebuilds it on demand`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the stacked configuration file.

## Configuration file locations:
- Linux: ~/.config/stacked/config.toml
- macOS: ~/Library/Application Support/stacked/config.toml
- Windows: %APPDATA%\stacked\config.toml

## Things you can try:
- Check the configuration syntax
- Remove the config file to use defaults

## Example configuration:
~~~toml
plugins_dir = "/home/user/.config/stacked/commands"

[ui]
verbose = false

[alias]
spr = "series --short"
fetch-all = "!git fetch --all"
~~~`,
	}

	pluginExecFailedIssue = &Issue{
		id: PluginExecFailedId,
		mdMsg: `
# Command executable failed to start!

The executable backing this command could not be run.

## Common causes:
- The stg-<module> binary is not installed or not in PATH
- The binary is not executable
- The manifest's exec field points at a missing program

## Things you can try:
- Verify the executable exists:
~~~
$ command -v stg-<module>
~~~

- Reinstall the command's package
- Check the exec field in the command's manifest`,
	}

	aliasExecFailedIssue = &Issue{
		id: AliasExecFailedId,
		mdMsg: `
# Alias failed to run!

The alias expansion could not be executed.

## Common causes:
- Syntax error in a shell alias (expansion starting with "!")
- The alias expands to a command that does not exist

## Things you can try:
- Check the alias definition in your config file:
~~~toml
[alias]
name = "expansion"
~~~

- Test the expansion manually in your shell`,
	}

	docServerStartFailedIssue = &Issue{
		id: DocServerStartFailedId,
		mdMsg: `
# Documentation server failed to start!

The built-in SSH documentation server could not start listening.

## Common causes:
- The port is already in use
- You lack permission to bind the requested address

## Things you can try:
- Pick a different port:
~~~
$ stg serve --port 2323
~~~

- Check what is listening on the address with ss or lsof`,
	}

	issues = map[Id]*Issue{
		manifestParseErrorIssue.Id():   manifestParseErrorIssue,
		manifestInvalidKindIssue.Id():  manifestInvalidKindIssue,
		commandNotFoundIssue.Id():      commandNotFoundIssue,
		cacheCorruptIssue.Id():         cacheCorruptIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		pluginExecFailedIssue.Id():     pluginExecFailedIssue,
		aliasExecFailedIssue.Id():      aliasExecFailedIssue,
		docServerStartFailedIssue.Id(): docServerStartFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
