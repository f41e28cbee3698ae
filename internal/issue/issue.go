// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ProfileFileNotFoundId Id = iota + 1
	ProfileParseErrorId
	ProfileNotFoundId
	NoExecuteDefinedId
	SecretRequiredId
	DecryptFailedId
	ScriptExecutionFailedId
	ConfigLoadFailedId
	InvalidRuntimeModeId
	ShellNotFoundId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
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
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
		for _, link := range i.extLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	profileFileNotFoundIssue = &Issue{
		id: ProfileFileNotFoundId,
		mdMsg: `
# Profile file not found!

A profile file listed in your configuration does not exist.

## Search locations (in order of precedence):
1. Files listed in ` + "`includes`" + ` of your config file
2. ~/.prun/prun.{cue,toml,yaml,yml,json}
3. prun.{cue,toml,yaml,yml,json} in the current directory

## Things you can try:
- Check the paths with:
~~~
$ prun config show
~~~
- Remove stale entries from ` + "`includes`",
	}

	profileParseErrorIssue = &Issue{
		id: ProfileParseErrorId,
		mdMsg: `
# Failed to parse profile file!

A profile file has a syntax error or does not match the profile schema.

## Things you can try:
- Check the reported line and field path
- Every profile needs a ` + "`name`" + ` and command names must be unique
- A minimal file looks like:
~~~yaml
profiles:
  - name: main
    commands:
      - name: hello
        execute:
          - echo hello $name
~~~`,
	}

	profileNotFoundIssue = &Issue{
		id: ProfileNotFoundId,
		mdMsg: `
# Profile not found!

A ` + "`profile:<name>`" + ` action or the configured default profile names a profile that no file defines.

## Things you can try:
- List the loaded profiles:
~~~
$ prun profiles
~~~
- Check the spelling of the profile name
- Make sure the file defining it is in ` + "`includes`" + ` or the current directory`,
	}

	noExecuteDefinedIssue = &Issue{
		id: NoExecuteDefinedId,
		mdMsg: `
# Nothing to execute!

The command exists but defines no ` + "`execute`" + ` actions.

## Things you can try:
- Add an ` + "`execute`" + ` list to the command in your profile file`,
	}

	secretRequiredIssue = &Issue{
		id: SecretRequiredId,
		mdMsg: `
# Secret required!

A parameter was supplied in encrypted form, but no ` + "`secret`" + ` was given to decrypt it.

## Things you can try:
- Pass the secret:
~~~
$ prun run <command> --secret <secret>
~~~
- Or pass the plain value instead of ` + "`--encrypted<Name>`",
	}

	decryptFailedIssue = &Issue{
		id: DecryptFailedId,
		mdMsg: `
# Failed to decrypt a parameter!

The encrypted value could not be opened with the given secret.

## Things you can try:
- Check that the secret is the one used for encryption
- Encrypt the value again:
~~~
$ prun encrypt --secret <secret> <value>
~~~`,
	}

	scriptExecutionFailedIssue = &Issue{
		id: ScriptExecutionFailedId,
		mdMsg: `
# Script execution failed!

An action of the command exited with a non-zero status. The remaining actions were not run.

## Things you can try:
- Run with ` + "`--verbose`" + ` to trace every action
- Try the ` + "`virtual`" + ` runtime if the host shell behaves differently:
~~~
$ prun run --runtime virtual <command>
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be loaded or does not match the schema.

## Things you can try:
- Show where prun looks for it:
~~~
$ prun config path
~~~
- Write a fresh default file:
~~~
$ prun config init
~~~`,
	}

	invalidRuntimeModeIssue = &Issue{
		id: InvalidRuntimeModeId,
		mdMsg: `
# Invalid runtime mode!

The runtime must be ` + "`native`" + ` or ` + "`virtual`" + `.

## Things you can try:
~~~cue
default_runtime: "virtual"
~~~`,
	}

	shellNotFoundIssue = &Issue{
		id: ShellNotFoundId,
		mdMsg: `
# Shell not found!

The native runtime could not find a shell to run actions with.

## Things you can try:
- Set ` + "`shell`" + ` in your config file
- Use the built-in shell instead:
~~~cue
default_runtime: "virtual"
~~~`,
	}

	issues = map[Id]*Issue{
		profileFileNotFoundIssue.Id():   profileFileNotFoundIssue,
		profileParseErrorIssue.Id():     profileParseErrorIssue,
		profileNotFoundIssue.Id():       profileNotFoundIssue,
		noExecuteDefinedIssue.Id():      noExecuteDefinedIssue,
		secretRequiredIssue.Id():        secretRequiredIssue,
		decryptFailedIssue.Id():         decryptFailedIssue,
		scriptExecutionFailedIssue.Id(): scriptExecutionFailedIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		invalidRuntimeModeIssue.Id():    invalidRuntimeModeIssue,
		shellNotFoundIssue.Id():         shellNotFoundIssue,
	}
)

// Values returns every issue ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
