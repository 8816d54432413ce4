package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taxdesk/reception-checkin/internal/appointment"
	"github.com/taxdesk/reception-checkin/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedAppointments(context.Background(), pool, 250); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
}

var services = []string{
	"Fiscalité",
	"Déclaration de revenus",
	"Immatriculation",
	"Contentieux",
	"Recouvrement",
	"Attestation fiscale",
	"TVA",
}

var departments = []string{
	"Accueil",
	"Service des particuliers",
	"Service des entreprises",
	"Direction du recouvrement",
}

var priorities = []appointment.Priority{
	appointment.PriorityNormal,
	appointment.PriorityNormal,
	appointment.PriorityNormal,
	appointment.PriorityHigh,
	appointment.PriorityUrgent,
}

func seedAppointments(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d appointments", count)

	const batchSize = 50

	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}

		for i := offset; i < end; i++ {
			id := uuid.NewString()
			name := gofakeit.Name()
			phone := fmt.Sprintf("+241 0%d %02d %02d %02d %02d",
				gofakeit.Number(1, 7),
				gofakeit.Number(0, 99),
				gofakeit.Number(0, 99),
				gofakeit.Number(0, 99),
				gofakeit.Number(0, 99),
			)
			email := gofakeit.Email()
			// Spread visits over a two week window around today.
			date := time.Now().AddDate(0, 0, gofakeit.Number(-7, 7)).Format("2006-01-02")
			visitTime := fmt.Sprintf("%02d:%02d", gofakeit.Number(8, 16), 15*gofakeit.Number(0, 3))
			duration := 15 * gofakeit.Number(1, 4)
			service := services[gofakeit.Number(0, len(services)-1)]
			department := departments[gofakeit.Number(0, len(departments)-1)]
			agent := gofakeit.FirstName()
			priority := priorities[gofakeit.Number(0, len(priorities)-1)]

			_, err := tx.Exec(ctx, `
				INSERT INTO appointments (
					id, visit_date, visit_time, duration_minutes,
					citizen_name, citizen_phone, citizen_email,
					service, purpose, agent, department,
					status, priority, created_at, updated_at
				)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'confirmed', $12, now(), now())
			`, id, date, visitTime, duration, name, phone, email,
				service, gofakeit.Sentence(6), agent, department, priority)
			if err != nil {
				_ = tx.Rollback(ctx)
				return err
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		log.Printf("appointments seeded: %d/%d", end, count)
	}

	log.Println("appointments seeded")
	return nil
}
