package stixid

import (
	"strings"

	"github.com/google/uuid"
)

// Namespace is the UUIDv5 namespace STIX 2.1 reserves for deterministic identifiers.
var Namespace = uuid.MustParse("00abedb4-aa42-466c-9c01-fed23315a9b7")

// New returns a deterministic STIX identifier "<type>--<uuidv5>" derived from
// the object type and the given parts. Same input, same id.
func New(objectType string, parts ...string) string {
	name := objectType + "|" + strings.Join(parts, "|")
	return objectType + "--" + uuid.NewSHA1(Namespace, []byte(name)).String()
}

// Valid reports whether id has the "<type>--<uuid>" shape.
func Valid(id string) bool {
	typ, rest, ok := strings.Cut(id, "--")
	if !ok || typ == "" {
		return false
	}
	_, err := uuid.Parse(rest)
	return err == nil
}
