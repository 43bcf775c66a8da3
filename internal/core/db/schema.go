package db

func (db *DB) initSchema() error {
	schema := `
	-- Captured moments
	CREATE TABLE IF NOT EXISTS moments (
		id TEXT PRIMARY KEY,
		photo_path TEXT,
		timestamp TEXT NOT NULL,
		date_key TEXT NOT NULL,
		timestamp_local TEXT,
		created_at TEXT,
		latitude REAL,
		longitude REAL,
		accuracy REAL,
		place_label TEXT,
		tags TEXT NOT NULL DEFAULT '[]',
		notes TEXT NOT NULL DEFAULT '',
		mood TEXT,
		mood_confidence INTEGER,
		session_id TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_moments_date_key ON moments(date_key);
	CREATE INDEX IF NOT EXISTS idx_moments_timestamp ON moments(timestamp);
	CREATE INDEX IF NOT EXISTS idx_moments_session_id ON moments(session_id);

	-- Entity references per moment, in attach order
	CREATE TABLE IF NOT EXISTS moment_entities (
		moment_id TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (moment_id, entity_id),
		FOREIGN KEY (moment_id) REFERENCES moments(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_moment_entities_entity_id ON moment_entities(entity_id);

	-- Derived sessions (fully recomputable from a day's moments)
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		date_key TEXT NOT NULL,
		type TEXT NOT NULL CHECK(type IN ('walk', 'play', 'training', 'rest', 'social')),
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		moment_ids TEXT NOT NULL,
		key_photo_ids TEXT NOT NULL,
		behavior_flags TEXT NOT NULL,
		place_label TEXT,
		created_at TEXT,
		updated_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_date_key ON sessions(date_key);

	-- Named dogs and humans the primary dog has encountered
	CREATE TABLE IF NOT EXISTS entities (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL CHECK(type IN ('dog', 'human')),
		name TEXT,
		notes TEXT NOT NULL DEFAULT '',
		breed TEXT,
		sex TEXT,
		size TEXT,
		relationship TEXT,
		is_primary BOOLEAN DEFAULT 0,
		created_at TEXT,
		updated_at TEXT
	);

	-- Singleton dog profile
	CREATE TABLE IF NOT EXISTS profile (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		age TEXT,
		temperament TEXT NOT NULL DEFAULT '[]',
		triggers TEXT NOT NULL DEFAULT '[]',
		goals TEXT NOT NULL DEFAULT '[]',
		created_at TEXT,
		updated_at TEXT
	);

	-- Mock-detection results per moment
	CREATE TABLE IF NOT EXISTS detections (
		moment_id TEXT PRIMARY KEY,
		status TEXT CHECK(status IN ('pending', 'processing', 'completed', 'failed')),
		entities TEXT,
		mood TEXT,
		mood_confidence INTEGER,
		error_message TEXT,
		retry_count INTEGER DEFAULT 0,
		processed_at TEXT,
		FOREIGN KEY (moment_id) REFERENCES moments(id) ON DELETE CASCADE
	);

	-- FTS5 over moment notes, natural language search with porter stemming
	CREATE VIRTUAL TABLE IF NOT EXISTS moments_fts USING fts5(
		notes,
		content=moments,
		tokenize='porter unicode61'
	);

	-- Triggers to keep FTS in sync
	CREATE TRIGGER IF NOT EXISTS moments_ai AFTER INSERT ON moments BEGIN
		INSERT INTO moments_fts(rowid, notes) VALUES (new.rowid, new.notes);
	END;

	CREATE TRIGGER IF NOT EXISTS moments_ad AFTER DELETE ON moments BEGIN
		DELETE FROM moments_fts WHERE rowid = old.rowid;
	END;

	CREATE TRIGGER IF NOT EXISTS moments_au AFTER UPDATE ON moments BEGIN
		UPDATE moments_fts SET notes = new.notes WHERE rowid = new.rowid;
	END;
	`

	_, err := db.conn.Exec(schema)
	return err
}
