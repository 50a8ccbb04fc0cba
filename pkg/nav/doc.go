// Package nav keeps a target in sync with a navigation history.
//
// A History holds the current location and notifies listeners when it
// changes. MemoryHistory keeps the stack in process; SocketHistory mirrors a
// browser's history over a WebSocket connection.
//
// A Router parses every location it is notified of into a target, from
// scratch, and notifies its subscribers when the result changes:
//
//	h := nav.NewMemoryHistory("/")
//	r := nav.NewRouter(h, pages.ParsePage, nav.WithBase("/app"))
//	defer r.Close()
//
//	r.Subscribe(func(p pages.Page, ok bool) {
//		// render p, or a not-found page when !ok
//	})
//	r.Navigate(pages.Bar{ID: "42", Details: pages.D1{}})
//
// Components that only care about part of the hierarchy get a Scope from
// Nest, which maps between the parent target and the child target with a
// target.Mapper.
package nav
