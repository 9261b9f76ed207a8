// Package db provides the embedded database schema for the postgres store.
package db

import _ "embed"

// Schema contains the DDL for the persisted key-value table.
//
//go:embed migrations/001_schema.sql
var Schema string
