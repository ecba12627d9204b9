package mongo

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Server error codes the repositories react to.
const (
	codeNamespaceNotFound    = 26
	codeIndexNotFound        = 27
	codeIndexOptionsConflict = 85
)

func hasCode(err error, code int) bool {
	var se mongo.ServerError
	return errors.As(err, &se) && se.HasErrorCode(code)
}

// isIndexConflict matches "index already exists with a different name" for
// an equivalent key pattern.
func isIndexConflict(err error) bool {
	return hasCode(err, codeIndexOptionsConflict)
}

func isIndexNotFound(err error) bool {
	return hasCode(err, codeIndexNotFound) || hasCode(err, codeNamespaceNotFound)
}

func isNamespaceNotFound(err error) bool {
	return hasCode(err, codeNamespaceNotFound)
}
