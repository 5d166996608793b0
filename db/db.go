package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/config"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
)

// Setup opens a PostgreSQL connection using the provided config.
func Setup(cfg *config.Config) *bun.DB {
	db, err := Open(context.Background(), cfg.PostgresDSN(), cfg.Debug)
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}
	return db
}

// Open connects to dsn and pings it. Verbose query logging is enabled when debug is set.
func Open(ctx context.Context, dsn string, debug bool) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// CreateTables creates all tables in dependency order, then the
// uniqueness and cascade constraints the materializer relies on.
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.Athlete)(nil),
		(*models.Profile)(nil),
		(*models.Race)(nil),
		(*models.Plan)(nil),
		(*models.Workout)(nil),
		(*models.Activity)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	constraints := []string{
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'profiles_athlete_fk') THEN ALTER TABLE profiles ADD CONSTRAINT profiles_athlete_fk FOREIGN KEY (athlete_id) REFERENCES athletes (id) ON DELETE CASCADE; END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'plans_athlete_fk') THEN ALTER TABLE plans ADD CONSTRAINT plans_athlete_fk FOREIGN KEY (athlete_id) REFERENCES athletes (id) ON DELETE CASCADE; END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'plans_race_fk') THEN ALTER TABLE plans ADD CONSTRAINT plans_race_fk FOREIGN KEY (race_id) REFERENCES races (id); END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'workouts_plan_fk') THEN ALTER TABLE workouts ADD CONSTRAINT workouts_plan_fk FOREIGN KEY (plan_id) REFERENCES plans (id) ON DELETE CASCADE; END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'workouts_no_dupes') THEN ALTER TABLE workouts ADD CONSTRAINT workouts_no_dupes UNIQUE (plan_id, week_number, day_of_week); END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'activities_athlete_fk') THEN ALTER TABLE activities ADD CONSTRAINT activities_athlete_fk FOREIGN KEY (athlete_id) REFERENCES athletes (id) ON DELETE CASCADE; END IF; END $$`,
		`CREATE INDEX IF NOT EXISTS activities_athlete_date_idx ON activities (athlete_id, date DESC)`,
		`CREATE INDEX IF NOT EXISTS plans_athlete_idx ON plans (athlete_id)`,
	}
	for _, stmt := range constraints {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying constraint: %w", err)
		}
	}

	return nil
}
