package doclink

import (
	"net/url"
	"path"
	"strings"
)

// ShortName returns the last dot-separated segment of alias.
//
//	ShortName("Foo.util.Bar") // "Bar"
func ShortName(alias string) string {
	if i := strings.LastIndex(alias, "."); i >= 0 {
		return alias[i+1:]
	}

	return alias
}

// PackageName returns everything before the last dot-separated segment of
// alias, or the empty string for a single-segment alias.
//
//	PackageName("Foo.util.Bar") // "Foo.util"
func PackageName(alias string) string {
	if i := strings.LastIndex(alias, "."); i >= 0 {
		return alias[:i]
	}

	return ""
}

// IsInherited reports whether subject is documented as a member of a symbol
// other than from. When from is omitted subject is compared to itself.
func IsInherited(subject Symbol, from ...Symbol) bool {
	owner := subject
	if len(from) > 0 {
		owner = from[0]
	}

	return subject.MemberOf != owner.Alias
}

// SourceFileName flattens a source path into a single file name: relative
// path markers are dropped and separators become underscores.
//
//	SourceFileName("../lib/util/str.js") // "lib_util_str.js"
func SourceFileName(srcPath string) string {
	name := relPathRegex.ReplaceAllString(srcPath, "")

	return pathSepRegex.ReplaceAllString(name, "_")
}

// baseName returns the final element of a slash or backslash separated path.
func baseName(p string) string {
	return path.Base(strings.ReplaceAll(p, `\`, "/"))
}

// escapeAlias escapes alias for use as a page name. Unlike JavaScript's
// escape, "/" is escaped as %2F and "$" is kept.
func escapeAlias(alias string) string {
	return url.PathEscape(alias)
}
