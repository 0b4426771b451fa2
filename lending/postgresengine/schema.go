package postgresengine

import (
	"context"
	"fmt"
)

const createSchemaTemplate = `
CREATE TABLE IF NOT EXISTS %[1]s (
    code       TEXT PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name  TEXT NOT NULL,
    birth_date TEXT NOT NULL,
    civility   TEXT NOT NULL,
    email      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS %[2]s (
    isbn      TEXT PRIMARY KEY,
    title     TEXT NOT NULL,
    author    TEXT NOT NULL,
    publisher TEXT NOT NULL,
    format    TEXT NOT NULL,
    available BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS %[3]s (
    id          UUID PRIMARY KEY,
    member_code TEXT NOT NULL REFERENCES %[1]s (code),
    isbn        TEXT NOT NULL REFERENCES %[2]s (isbn),
    start_date  DATE NOT NULL,
    end_date    DATE NOT NULL,
    CONSTRAINT end_after_start CHECK (end_date > start_date)
);

CREATE INDEX IF NOT EXISTS idx_%[3]s_member_code ON %[3]s (member_code);
CREATE INDEX IF NOT EXISTS idx_%[3]s_end_date ON %[3]s (end_date);
`

// EnsureSchema creates the three tables and their indexes if they do not
// exist yet. Intended for development and test setups; production schemas
// are usually managed by a migration tool.
func (s *Stores) EnsureSchema(ctx context.Context) error {
	statement := fmt.Sprintf(createSchemaTemplate, s.memberTable, s.bookTable, s.resvTable)

	if _, err := s.db.Exec(ctx, statement); err != nil {
		s.logError(logMsgDBExecFailed, logAttrError, err.Error())
		return err
	}

	return nil
}
