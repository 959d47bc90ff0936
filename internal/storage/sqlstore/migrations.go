package sqlstore

// schema sets up every table. It runs on startup and is written in the subset of SQL
// that SQLite and PostgreSQL share. Users must be created first because of the
// foreign keys.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    user_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    currency TEXT NOT NULL,
    language TEXT NOT NULL,
    theme TEXT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    token_id TEXT PRIMARY KEY,
    expires_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS user_wallet (
    user_id TEXT PRIMARY KEY,
    balance TEXT NOT NULL,
    savings_goal TEXT NOT NULL,
    daily_budget TEXT NOT NULL,
    currency TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS transactions (
    transaction_id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    category TEXT NOT NULL,
    description TEXT NOT NULL,
    amount TEXT NOT NULL,
    type INTEGER NOT NULL,
    logged_at BIGINT NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS user_health (
    user_id TEXT PRIMARY KEY,
    calorie_goal DOUBLE PRECISION NOT NULL,
    carbs DOUBLE PRECISION NOT NULL,
    carbs_unit TEXT NOT NULL,
    fats DOUBLE PRECISION NOT NULL,
    fats_unit TEXT NOT NULL,
    protein DOUBLE PRECISION NOT NULL,
    protein_unit TEXT NOT NULL,
    hydration_goal DOUBLE PRECISION NOT NULL,
    hydration_goal_unit TEXT NOT NULL,
    cardio_goal DOUBLE PRECISION NOT NULL,
    steps_goal INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS exercises (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    workout_type TEXT NOT NULL,
    exercise TEXT NOT NULL,
    reps INTEGER NOT NULL,
    weight DOUBLE PRECISION NOT NULL,
    weight_unit TEXT NOT NULL,
    duration_min DOUBLE PRECISION NOT NULL,
    intensity DOUBLE PRECISION NOT NULL,
    logged_at BIGINT NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS todos (
    task_id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    recurrent BOOLEAN NOT NULL DEFAULT FALSE,
    recurrent_date TEXT NOT NULL DEFAULT '',
    deadline BOOLEAN NOT NULL DEFAULT FALSE,
    deadline_date BIGINT NOT NULL DEFAULT 0,
    completed BOOLEAN NOT NULL DEFAULT FALSE,
    FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS calendar (
    event_id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    event_date BIGINT NOT NULL,
    recurrent BOOLEAN NOT NULL DEFAULT FALSE,
    recurrent_date TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_transactions_user_type ON transactions(user_id, type);
CREATE INDEX IF NOT EXISTS idx_exercises_user_id ON exercises(user_id);
CREATE INDEX IF NOT EXISTS idx_todos_user_id ON todos(user_id);
CREATE INDEX IF NOT EXISTS idx_calendar_user_id ON calendar(user_id);
`

// runMigrations executes the schema setup.
func (s *Store) runMigrations() error {
	_, err := s.db.Exec(schema)
	return err
}
