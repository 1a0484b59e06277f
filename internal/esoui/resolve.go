// SPDX-License-Identifier: MPL-2.0

package esoui

import (
	"context"
	"net/url"
)

// ResolveInfo fetches the info page of a.ID and returns a copy of a with every
// field that matched filled in. A network failure or a non-2xx status leaves
// the fields untouched: retired or renamed addons still proceed to the
// download step.
func (c *Client) ResolveInfo(ctx context.Context, a Addon) Addon {
	page, ok := c.fetchForResolve(ctx, c.InfoURL(a.ID), a.ID)
	if !ok {
		return a
	}

	body := NormalizeHTML(page.Body)
	if v, found := Extract(body, FieldGameVersion); found {
		a.GameVersion = v
	}
	if v, found := Extract(body, FieldAddonVersion); found {
		a.AddonVersion = v
	}
	if v, found := Extract(body, FieldUpdated); found {
		a.UpdatedAt = v
	}
	if v, found := Extract(body, FieldName); found {
		a.Name = v
	}
	return a
}

// ResolveDownload fetches the download page of a.ID and returns a copy of a
// with DownloadURL set. It degrades like ResolveInfo; an empty DownloadURL on
// return means there is nothing to download.
func (c *Client) ResolveDownload(ctx context.Context, a Addon) Addon {
	page, ok := c.fetchForResolve(ctx, c.DownloadPageURL(a.ID), a.ID)
	if !ok {
		return a
	}

	link, found := Extract(NormalizeHTML(page.Body), FieldDownloadLink)
	if !found {
		c.logger.Debug("no download link on page", "addon", a.ID, "url", page.URL)
		return a
	}
	a.DownloadURL = resolveReference(page.URL, link)
	return a
}

func (c *Client) fetchForResolve(ctx context.Context, pageURL string, id AddonID) (Page, bool) {
	page, err := c.FetchPage(ctx, pageURL)
	if err != nil {
		c.logger.Warn("page unavailable", "addon", id, "error", err)
		return Page{}, false
	}
	if !page.OK() {
		c.logger.Debug("page not served", "addon", id, "url", pageURL, "status", page.StatusCode)
		return Page{}, false
	}
	return page, true
}

// resolveReference makes a relative href absolute against the page it was
// found on. Unparseable input is returned as-is and fails later at download.
func resolveReference(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
