package domain

import (
	"slices"

	dErrors "numerus/pkg/domain-errors"
)

// APIVersion names a versioned route group.
type APIVersion string

const APIVersionV1 APIVersion = "v1"

var supportedAPIVersions = []APIVersion{APIVersionV1}

// ParseAPIVersion accepts only versions this server routes.
func ParseAPIVersion(s string) (APIVersion, error) {
	v := APIVersion(s)
	if !slices.Contains(supportedAPIVersions, v) {
		return "", dErrors.New(dErrors.CodeBadRequest, "unsupported API version: "+s)
	}
	return v, nil
}

func (v APIVersion) String() string {
	return string(v)
}
