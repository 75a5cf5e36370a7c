package store

import "github.com/idilsaglam/jottings/internal/model"

const (
	listSchema = `
CREATE TABLE IF NOT EXISTS items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT,
	amount TEXT
);`

	notesSchema = `
CREATE TABLE IF NOT EXISTS items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT,
	latitude REAL,
	longitude REAL
);`
)

func schemaFor(v model.Variant) string {
	if v == model.VariantList {
		return listSchema
	}
	return notesSchema
}
