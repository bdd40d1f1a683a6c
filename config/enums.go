package config

// Specification of which template store commands operate on.
// ENUM(local, remote)
type StoreMode int
