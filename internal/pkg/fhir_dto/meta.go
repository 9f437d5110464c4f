package fhir_dto

import "claimsbridge-service/internal/pkg/constvars"

// MetaForResource stamps the static Da Vinci / US Core profile set for a
// resource type. Every resource a mapper produces goes through this.
func MetaForResource(resourceType string) *Meta {
	return &Meta{Profile: constvars.ResourceProfiles[resourceType]}
}
