package database

// migrationSet is an ordered list of SQL migration groups for one dialect.
// Each step is executed in a single transaction; the version number is the
// 1-based index into steps.
type migrationSet struct {
	versionTable string
	steps        [][]string
}

// The pois table mirrors the audio-guide backend's schema so the loader can
// run against a database that backend already created. Tables and indexes
// are created only if missing for the same reason. Name uniqueness is left
// to the loader's pre-insert lookup.
var migrations = map[Dialect]migrationSet{
	SQLite: {
		versionTable: `CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		steps: [][]string{
			// Migration 1: pois
			{
				`CREATE TABLE IF NOT EXISTS pois (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					description TEXT,
					latitude REAL NOT NULL,
					longitude REAL NOT NULL,
					epoch TEXT,
					category TEXT,
					importance INTEGER NOT NULL DEFAULT 5 CHECK (importance BETWEEN 1 AND 10),
					year_built INTEGER,
					architect TEXT,
					style TEXT,
					photos TEXT NOT NULL DEFAULT '[]',
					wikipedia_url TEXT,
					metadata TEXT,
					created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX IF NOT EXISTS idx_pois_name ON pois(name)`,
				`CREATE INDEX IF NOT EXISTS idx_pois_epoch ON pois(epoch)`,
				`CREATE INDEX IF NOT EXISTS idx_pois_category ON pois(category)`,
			},
		},
	},
	Postgres: {
		versionTable: `CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMPTZ DEFAULT now()
		)`,
		steps: [][]string{
			// Migration 1: pois
			{
				`CREATE TABLE IF NOT EXISTS pois (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					name TEXT NOT NULL,
					description TEXT,
					latitude DOUBLE PRECISION NOT NULL,
					longitude DOUBLE PRECISION NOT NULL,
					epoch TEXT,
					category TEXT,
					importance BIGINT DEFAULT 5 CHECK (importance BETWEEN 1 AND 10),
					year_built BIGINT,
					architect TEXT,
					style TEXT,
					photos TEXT[],
					wikipedia_url TEXT,
					metadata JSONB,
					created_at TIMESTAMPTZ,
					updated_at TIMESTAMPTZ
				)`,
				`CREATE INDEX IF NOT EXISTS idx_pois_name ON pois(name)`,
				`CREATE INDEX IF NOT EXISTS idx_pois_epoch ON pois(epoch)`,
				`CREATE INDEX IF NOT EXISTS idx_pois_category ON pois(category)`,
			},
		},
	},
}
