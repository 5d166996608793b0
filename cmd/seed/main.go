// cmd/seed/main.go
// Creates a development athlete with a profile and a target race, then prints
// a signed identity token for calling the API as that athlete.
//
// Usage:
//
//	DEBUG=true go run ./cmd/seed -email sam@gofast.app -race-date 2026-10-25
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/config"
	bundb "github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/db"
	mw "github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/middleware"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/models"
	"github.com/GoFast-Athlete-Training/gofastbackend-sql-fall25/store"
)

func main() {
	firebaseID := flag.String("firebase-id", "dev-athlete", "identity provider subject")
	email := flag.String("email", "", "athlete email (required)")
	first := flag.String("first", "Dev", "first name")
	last := flag.String("last", "Runner", "last name")
	experience := flag.String("experience", "intermediate", "running experience")
	pace := flag.String("pace", "9:00/mi", "current easy pace")
	mileage := flag.Float64("mileage", 20, "current weekly mileage")
	raceName := flag.String("race-name", "City Half Marathon", "target race name")
	raceDistance := flag.String("race-distance", "half-marathon", "target race distance")
	raceDate := flag.String("race-date", "", "target race date, YYYY-MM-DD (required)")
	goal := flag.String("goal", "2:00:00", "goal finish time")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime")
	flag.Parse()

	if *email == "" || *raceDate == "" {
		log.Fatal("both -email and -race-date are required")
	}
	date, err := time.Parse(time.DateOnly, *raceDate)
	if err != nil {
		log.Fatal("race-date:", err)
	}

	ctx := context.Background()
	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()
	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatal("create tables:", err)
	}
	st := store.New(db)

	athlete, created, err := st.FindOrCreateAthlete(ctx, &models.Athlete{
		FirebaseID: *firebaseID,
		Email:      *email,
		FirstName:  *first,
		LastName:   *last,
	})
	if err != nil {
		log.Fatal("athlete:", err)
	}

	err = st.UpsertProfile(ctx, &models.Profile{
		AthleteID:     athlete.ID,
		Experience:    *experience,
		CurrentPace:   *pace,
		WeeklyMileage: *mileage,
		PreferredDays: []string{},
	})
	if err != nil {
		log.Fatal("profile:", err)
	}

	race := &models.Race{Name: *raceName, Distance: *raceDistance, Date: date, GoalTime: *goal}
	if err := st.CreateRace(ctx, race); err != nil {
		log.Fatal("race:", err)
	}

	token, err := mw.Sign(cfg.JWTKey(), cfg.JWTIssuer, mw.Identity{
		Subject: athlete.FirebaseID,
		Email:   athlete.Email,
		Name:    athlete.FullName(),
	}, *ttl)
	if err != nil {
		log.Fatal("sign token:", err)
	}

	fmt.Printf("athlete %s (created=%t)\n", athlete.ID, created)
	fmt.Printf("race    %s\n", race.ID)
	fmt.Printf("token   %s\n", token)
}
