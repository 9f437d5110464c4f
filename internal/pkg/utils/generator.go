package utils

import (
	"strings"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

// GenerateResourceID builds a deterministic-looking FHIR resource id from a
// transaction-scoped identifier, or a fresh UUID when the source id is blank.
func GenerateResourceID(prefix, sourceID string) string {
	sourceID = strings.TrimSpace(sourceID)
	if sourceID == "" {
		return prefix + "-" + uuid.NewString()
	}
	return prefix + "-" + sourceID
}
