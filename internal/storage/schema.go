// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for the profile, vaccinations, and daily logs.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS profile (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		name TEXT NOT NULL DEFAULT '',
		height_cm REAL,
		weight_kg REAL,
		bmi REAL,
		bmi_updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS vaccinations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		date TEXT NOT NULL,
		position INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS daily_logs (
		date TEXT PRIMARY KEY,
		sleep_hours REAL,
		stress_label TEXT NOT NULL DEFAULT '',
		stress_score INTEGER,
		symptoms TEXT NOT NULL DEFAULT '',
		water_glasses INTEGER,
		memo TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_vaccinations_position ON vaccinations(position);
	`

	_, err := d.db.Exec(schema)
	return err
}
