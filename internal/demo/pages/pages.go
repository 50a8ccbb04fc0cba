// Package pages is a small routing tree with checked-in generated code. It
// backs the routing tests and the navhttp examples.
package pages

import (
	"time"

	"github.com/vango-dev/nestroute/pkg/target"
)

//go:generate go run github.com/vango-dev/nestroute/cmd/nestroute gen .

// Page is the top level of the site.
//
//nestroute:target
type Page interface {
	target.Target
	isPage()
}

// Index is the home page, "/".
//
//nestroute:variant Page index default
type Index struct{}

// Foo shows its details at "/foo/...".
//
//nestroute:variant Page
type Foo struct {
	Details Details `route:"default"`
}

// Bar is an item page, "/bar/{ID}/...".
//
//nestroute:variant Page
type Bar struct {
	ID      string
	Global  GlobalParams `route:"params"`
	Details Details      `route:"nested,default"`
}

// Search lists results for "/search?q=...".
//
//nestroute:variant Page
type Search struct {
	Terms   []string   `route:"query=q"`
	PageNum *uint32    `route:"query=page"`
	Since   *time.Time `route:"query"`
}

// Account is the signed-in user's page, "/me".
//
//nestroute:variant Page segment=me
type Account struct{}

// Docs opens on the second details tab by default.
//
//nestroute:variant Page
type Docs struct {
	Section Details `route:"default=DefaultDocsSection"`
}

// Details is the tab shown below an item.
//
//nestroute:target
type Details interface {
	target.Target
	isDetails()
}

//nestroute:variant Details default
type D1 struct{}

//nestroute:variant Details
type D2 struct{}

// GlobalParams are query parameters shared by item pages.
//
//nestroute:params
type GlobalParams struct {
	Lang  *string  `route:"query"`
	Flags []string `route:"query=flag"`
}

// DefaultDocsSection is the tab Docs falls back to.
func DefaultDocsSection() Details {
	return D2{}
}

// DocsSection scopes a component to the section shown by Docs.
var DocsSection = target.NewMapper(
	func(p Page) (Details, bool) {
		docs, ok := p.(Docs)
		if !ok {
			return nil, false
		}
		return docs.Section, true
	},
	func(d Details) Page {
		return Docs{Section: d}
	},
)
