package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"study-planner/internal/clock"
	"study-planner/internal/model"
	"study-planner/internal/repository"
)

// importschedule loads a weekly recurring schedule from a CSV file and
// replaces the user's existing templates with it.
//
// CSV columns: day,time,name,priority,category
//
//	MONDAY,09:00,IELTS Reading,High,IELTS
//	MONDAY,12:30,🍽️ Lunch,Low,Other
//
// Priority and category may be empty; they default to Medium and Other.

var weekdays = map[string]bool{
	"MONDAY": true, "TUESDAY": true, "WEDNESDAY": true, "THURSDAY": true,
	"FRIDAY": true, "SATURDAY": true, "SUNDAY": true,
}

func main() {
	var (
		file       = flag.String("file", "", "path to the schedule CSV")
		telegramID = flag.Int64("user", 0, "telegram user id to import for")
		dsn        = flag.String("db", os.Getenv("DATABASE_URL"), "sqlite dsn (defaults to DATABASE_URL)")
	)
	flag.Parse()

	if *file == "" || *telegramID == 0 {
		flag.Usage()
		os.Exit(2)
	}

	templates, err := readSchedule(*file)
	if err != nil {
		log.Fatalf("read schedule: %v", err)
	}

	db, err := repository.NewDB(*dsn)
	if err != nil {
		log.Fatalf("db: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	recurringRepo := repository.NewRecurringRepository(db)

	user, err := userRepo.FindByTelegramID(ctx, *telegramID)
	if err != nil {
		log.Fatalf("user %d not found, they must /start the bot first: %v", *telegramID, err)
	}

	if err := recurringRepo.DeleteAllForUser(ctx, user.ID); err != nil {
		log.Fatalf("clear old schedule: %v", err)
	}
	for i := range templates {
		templates[i].UserID = user.ID
		if err := recurringRepo.Create(ctx, &templates[i]); err != nil {
			log.Fatalf("insert %q: %v", templates[i].Name, err)
		}
	}

	log.Printf("[info] imported %d templates for user %d", len(templates), *telegramID)
}

func readSchedule(path string) ([]model.RecurringTask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var templates []model.RecurringTask
	for i, row := range rows {
		if len(row) == 0 || strings.EqualFold(strings.TrimSpace(row[0]), "day") {
			continue // header or blank line
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("line %d: want at least day,time,name", i+1)
		}

		day := strings.ToUpper(strings.TrimSpace(row[0]))
		if !weekdays[day] {
			return nil, fmt.Errorf("line %d: unknown weekday %q", i+1, row[0])
		}

		tod, err := clock.ParseTimeOfDay(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		name := strings.TrimSpace(row[2])
		if name == "" {
			return nil, fmt.Errorf("line %d: empty task name", i+1)
		}

		priority := model.PriorityMedium
		if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
			priority = strings.TrimSpace(row[3])
		}
		category := "Other"
		if len(row) > 4 && strings.TrimSpace(row[4]) != "" {
			category = strings.TrimSpace(row[4])
		}

		templates = append(templates, model.RecurringTask{
			DayOfWeek:     day,
			Name:          name,
			ScheduledTime: tod.String(),
			Priority:      priority,
			Category:      category,
		})
	}
	return templates, nil
}
