// Package models contains the GORM models of the verification audit store.
// Models are kept apart from the domain records and converted with ToDomain and FromDomain.
package models
