// Package breadcrumb resolves breadcrumb trails for server-rendered pages.
//
// A page selects the breadcrumb it represents with State.Breadcrumb, and the
// layout renders the trail with State.Render, State.Component or WithLinks.
// Resolution walks the parent links of immutable Definitions held by a
// Registry, root first, and is computed at most once per State.
//
// One State belongs to one request. Registries are read-only and may be
// shared across requests.
package breadcrumb
