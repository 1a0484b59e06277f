// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	ConfigLoadFailedId Id = iota + 1
	SiteUnreachableId
	DownloadFailedId
	CorruptArchiveId
	PathEscapeId
	PermissionDeniedId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	// Issue is a catalogued failure class with Markdown remediation guidance.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Title returns the text of the first Markdown heading of the guide.
func (i *Issue) Title() string {
	for _, line := range strings.Split(string(i.mdMsg), "\n") {
		if heading, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return strings.TrimSpace(heading)
		}
	}
	return ""
}

// Render returns the guidance rendered for the terminal. stylePath is a glamour
// style name ("dark", "light", "notty") or a path to a JSON style file.
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if links := i.DocLinks(); len(links) > 0 {
		md += "\n\n## See also\n"
		for _, link := range links {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Could not load the configuration!

The configuration file exists but could not be read or does not match the expected schema.

## Things you can try:
- Show where the file lives:
~~~
$ openesoui-mm config path
~~~
- Check that every addon id is a positive number:
~~~cue
addon_ids: [4063, 3501]
~~~
- Move the file away and recreate the defaults:
~~~
$ openesoui-mm config init
~~~`,
	}

	siteUnreachableIssue = &Issue{
		id: SiteUnreachableId,
		mdMsg: `
# ESOUI could not be reached!

The request did not complete before the timeout or the connection was refused.

## Things you can try:
- Check your network connection and try again
- Raise the request timeout in the configuration:
~~~cue
timeout: "60s"
~~~`,
		docLinks: []HttpLink{"https://www.esoui.com"},
	}

	downloadFailedIssue = &Issue{
		id: DownloadFailedId,
		mdMsg: `
# The addon download failed!

The download link was found but the server refused to deliver the file.

## Things you can try:
- Open the addon page in a browser and check that the file is still available
- The addon may have been removed; drop its id from 'addon_ids'`,
	}

	corruptArchiveIssue = &Issue{
		id: CorruptArchiveId,
		mdMsg: `
# The downloaded archive is not a valid ZIP file!

Nothing was extracted for this addon.

## Things you can try:
- Run the update again; the download may have been truncated
- Report the broken file to the addon author`,
	}

	pathEscapeIssue = &Issue{
		id: PathEscapeId,
		mdMsg: `
# The archive tried to write outside the AddOns directory!

An entry in the archive contains '..' segments that would place files outside
the target directory. The whole archive was rejected and nothing was written.

## Things you can try:
- Do not install this addon
- Report the archive to the ESOUI moderators`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

The AddOns directory or one of its files could not be written.

## Things you can try:
- Close the game; ESO keeps addon files open while running
- Check the ownership of the target directory
- Point 'target_directory' at a directory you own`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id(): configLoadFailedIssue,
		siteUnreachableIssue.Id():  siteUnreachableIssue,
		downloadFailedIssue.Id():   downloadFailedIssue,
		corruptArchiveIssue.Id():   corruptArchiveIssue,
		pathEscapeIssue.Id():       pathEscapeIssue,
		permissionDeniedIssue.Id(): permissionDeniedIssue,
	}
)

// Values returns every catalogued issue ordered by id.
func Values() []*Issue {
	all := make([]*Issue, 0, len(issues))
	for _, is := range issues {
		all = append(all, is)
	}
	slices.SortFunc(all, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return all
}

// Get returns the catalogued issue, or nil for an unknown id.
func Get(id Id) *Issue {
	return issues[id]
}
