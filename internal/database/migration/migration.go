package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_enum_ml_status",
		SQL: `DO $$ BEGIN
  CREATE TYPE ml_status_enum AS ENUM ('PENDING', 'VERIFIED', 'DUPLICATE');
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;`,
	},
	{
		Name: "create_enum_faculty_status",
		SQL: `DO $$ BEGIN
  CREATE TYPE faculty_status_enum AS ENUM ('PENDING', 'LEGIT', 'NOT_LEGIT');
EXCEPTION WHEN duplicate_object THEN NULL;
END $$;`,
	},
	{
		Name: "create_table_faculties",
		SQL: `CREATE TABLE IF NOT EXISTS faculties (
  id    TEXT PRIMARY KEY,
  name  TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE
);`,
	},
	{
		Name: "create_table_students",
		SQL: `CREATE TABLE IF NOT EXISTS students (
  reg_no     TEXT PRIMARY KEY,
  name       TEXT NOT NULL,
  section    TEXT NOT NULL,
  faculty_id TEXT NOT NULL REFERENCES faculties (id)
);`,
	},
	{
		Name: "create_table_certificates",
		SQL: `CREATE TABLE IF NOT EXISTS certificates (
  id             UUID                PRIMARY KEY,
  drive_link     TEXT                NOT NULL,
  reg_no         TEXT                NOT NULL,
  section        TEXT                NOT NULL,
  student_name   TEXT                NOT NULL,
  uploaded_by    TEXT                NOT NULL,
  uploaded_at    TIMESTAMPTZ         NOT NULL,
  ml_status      ml_status_enum      NOT NULL DEFAULT 'PENDING',
  ml_score       DOUBLE PRECISION    CHECK (ml_score >= 0 AND ml_score <= 100),
  faculty_status faculty_status_enum NOT NULL DEFAULT 'PENDING',
  archived       BOOLEAN             NOT NULL DEFAULT FALSE,
  CHECK ((ml_status = 'PENDING') = (ml_score IS NULL)),
  CHECK (faculty_status = 'PENDING' OR ml_status = 'VERIFIED')
);`,
	},
	{
		Name: "create_index_certificates_reg_no",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_certificates_reg_no ON certificates (reg_no);`,
	},
	{
		Name: "create_index_certificates_section",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_certificates_section ON certificates (section);`,
	},
	{
		Name: "create_index_certificates_review_queue",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_certificates_review_queue ON certificates (ml_status, faculty_status, archived, uploaded_at DESC);`,
	},
	{
		Name: "create_index_students_faculty_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_students_faculty_id ON students (faculty_id);`,
	},
}

// EnsureMigrated checks if the 'certificates' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.certificates') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
