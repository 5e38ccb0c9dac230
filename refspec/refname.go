// Package refspec implements Git refspecs: the source:destination mapping
// language used to select which remote refs a fetch asks for and where their
// answers land locally, plus the refname validation rules those mappings
// operate on.
package refspec

import (
	"errors"
	"strings"
)

// RefName is a parsed, validated Git reference name.
type RefName struct {
	// FullName is the entire, raw refname, including the 'refs/' prefix (unless it is HEAD).
	FullName string
	// Category is the first path component after 'refs/', e.g. 'heads'. Can be 'HEAD' for HEAD.
	// Does not include a trailing slash.
	Category string
	// Location is the remainder of the refname after the category, e.g. 'main', 'feature/test'.
	// 'HEAD' here does not mean this ref is HEAD; use FullName for that check.
	Location string
}

// HEAD is the special-case refname that always exists and is always valid.
var HEAD = RefName{
	FullName: "HEAD",
	Category: "HEAD",
	Location: "HEAD",
}

// ParseRefName validates and decomposes a refname.
//
// HEAD is always valid and returns the HEAD constant. Otherwise the name
// must start with "refs/" and follow git-check-ref-format:
//
//   - It must contain at least one more slash after "refs/", separating a
//     category (e.g. "heads", "tags") from a location.
//   - No component may be empty, start with '.', or be exactly "@".
//   - No consecutive dots ("..") or slashes ("//") anywhere.
//   - No "@{" sequence anywhere.
//   - No component may end in ".lock"; the whole name may not end in '.'.
//   - No control characters, space, '~', '^', ':', '?', '*', '[', DEL, or '\'.
//
// See https://git-scm.com/docs/git-check-ref-format.
func ParseRefName(in string) (RefName, error) {
	if in == "HEAD" {
		return HEAD, nil
	}

	rn := RefName{FullName: in}
	if !strings.HasPrefix(in, "refs/") {
		return rn, errors.New("ref name does not include refs/ prefix")
	}
	in = in[len("refs/"):]

	sepIdx := strings.IndexRune(in, '/')
	if sepIdx == -1 {
		return rn, errors.New("ref name does not include a category")
	}

	if strings.Contains(in, "..") {
		return rn, errors.New("ref cannot have two consecutive dots `..` anywhere")
	}

	if strings.Contains(in, "//") {
		return rn, errors.New("ref cannot contain multiple consecutive slashes")
	}

	if strings.Contains(in, "@{") {
		return rn, errors.New("ref cannot contain a sequence `@{`")
	}

	if strings.HasSuffix(in, ".") {
		return rn, errors.New("ref cannot end with a dot `.`")
	}

	for _, component := range strings.Split(in, "/") {
		if component == "" {
			return rn, errors.New("ref components cannot be empty")
		}

		if component == "@" {
			return rn, errors.New("ref components cannot be the single character `@`")
		}

		if strings.HasPrefix(component, ".") {
			return rn, errors.New("ref components cannot begin with a dot `.` or end with the sequence .lock")
		}

		if strings.HasSuffix(component, ".lock") {
			return rn, errors.New("ref components cannot end with the sequence `.lock`")
		}

		hasInvalidRunes := strings.ContainsFunc(component, func(r rune) bool {
			return r < 0o040 || r == 0o177 || r == ' ' || r == '~' || r == '^' || r == ':' || r == '?' || r == '*' || r == '[' || r == '\\'
		})

		if hasInvalidRunes {
			return rn, errors.New("ref components cannot contain control characters, spaces, `~`, `^`, `:`, `?`, `*`, `[`, `DEL`, or a backslash")
		}
	}

	rn.Category = in[:sepIdx]
	rn.Location = in[sepIdx+1:]

	return rn, nil
}
