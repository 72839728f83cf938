// Package doclink resolves symbolic cross-references in documentation text
// into hyperlinks for a generated documentation site, and formats the small
// pieces of markup that go with them (signatures, summaries, source listing
// names).
//
// # API
//
// The primary entry point is the [Resolver], created with [New]:
//
//	reg, _ := doclink.NewRegistry(
//		doclink.Symbol{Alias: "Pkg.Foo", Kind: doclink.KindConstructor},
//	)
//	r := doclink.New(doclink.WithBase("../"), doclink.WithRegistry(reg))
//
// Replace {@link ...} markers in free text:
//
//	html := r.Substitute("See {@link Pkg.Foo} for details.")
//
// Build a single link:
//
//	href := r.Link().AsSymbol("Pkg.Foo").Resolve(false)
//	a := r.Link().AsSource("lib/foo.js").WithTargetFrame("_blank").String()
//
// # Destinations
//
// A reference starting with "#" is an anchor on the current page and is
// emitted as is. Any other reference is looked up in the [Registry]:
// constructors link to their own page, members link to an anchor on the page
// of their enclosing constructor (or "_global_"). References missing from the
// registry are emitted as plain text and reported by [Resolver.Unresolved].
//
// # Registry snapshots
//
// [DecodeRegistry], [LoadRegistryFile] and [OpenRegistry] read registries
// from YAML or JSON files; [OpenRegistry] keeps decoded snapshots in a cache
// under the user cache directory.
package doclink
