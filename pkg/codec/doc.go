// Package codec reads and writes the textual quiver notation.
//
// # Format
//
// A quiver is written as a call-like expression holding two JSON arrays, the
// node identifiers and the edge tuples:
//
//	Quiver( ["u", "v"], [["u", "u", "a"], ["u", "v", "b"], ["v", "u", "c"]] )
//
// Each edge tuple is [source, destination, label]. The label may be omitted
// on input ([source, destination]); on output an absent label is written as
// the empty string so that every tuple has three elements.
//
// # Locating the Quiver
//
// [Deserialize] accepts arbitrary surrounding text, which is what a clipboard
// paste usually contains. It scans for the first "Quiver(" occurrence that is
// followed by a well-formed pair of arrays and a closing parenthesis; text
// before and after is ignored.
//
// # Construction Order
//
// Nodes are added first, in listed order; repeated identifiers are ignored.
// Edges follow, one instance per tuple with its label preserved. An edge
// endpoint that was not listed among the nodes is added implicitly.
//
// # Errors
//
// Identifiers and labels must be valid UTF-8; a tuple or identifier holding
// other bytes is rejected rather than patched with U+FFFD, so that a parsed
// quiver serializes back to the same strings.
//
// Every failure is reported as a PARSE_ERROR coded error from
// [github.com/matzehuels/quiverview/pkg/errors] and no quiver is returned,
// so callers can keep their current model untouched.
package codec
