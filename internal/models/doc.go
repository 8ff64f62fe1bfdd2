// Package models defines the core domain entities for HBnB.
//
// Every entity (User, Amenity, Place, Review) carries a UUID identifier and
// creation/update timestamps through the embedded Base. Constructors and
// setters are the single field-level validation boundary: a value that made it
// into an entity is valid, and every mutation re-stamps UpdatedAt.
//
// Entities reference each other by ID string, never by pointer, to avoid
// circular references and keep them storable by any backend.
package models
