package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gearshare/internal/config"
	"gearshare/internal/db"
	"gearshare/internal/model"
	"gearshare/internal/repository"
)

const seedPassword = "lendme-gear1"

type seedUser struct {
	Email    string
	Name     string
	Birthday string
	Phone    string
	Gear     []seedGear
}

type seedGear struct {
	Name        string
	Description string
	DailyPrice  string
	Location    string
}

var demoUsers = []seedUser{
	{
		Email:    "maya@example.com",
		Name:     "Maya Lindqvist",
		Birthday: "1991-04-12",
		Phone:    "+46701234567",
		Gear: []seedGear{
			{"4-person tent", "Sturdy dome tent, waterproof fly, packs small.", "12.50", "Stockholm"},
			{"Camping stove", "Two-burner propane stove with wind shield.", "6.00", "Stockholm"},
		},
	},
	{
		Email:    "jonas@example.com",
		Name:     "Jonas Berg",
		Birthday: "1987-11-03",
		Phone:    "+46709876543",
		Gear: []seedGear{
			{"Touring kayak", "16ft sea kayak with paddle and spray skirt.", "35.00", "Gothenburg"},
			{"Climbing rope 60m", "Dynamic rope, inspected, no falls.", "9.00", "Gothenburg"},
			{"Bouldering crash pad", "Tri-fold pad, good condition.", "7.50", "Gothenburg"},
		},
	},
	{
		Email:    "sofia@example.com",
		Name:     "Sofia Almgren",
		Birthday: "1995-07-28",
		Phone:    "+46705551234",
		Gear: []seedGear{
			{"Ski touring set 170cm", "Skis, skins, and bindings. Boots not included.", "28.00", "Åre"},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Identity{}, &model.Gear{}, &model.Booking{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	gearRepo := repository.NewGearRepository(gormDB)
	ctx := context.Background()

	usersSeeded, gearSeeded, err := seed(ctx, userRepo, gearRepo)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", usersSeeded)
	log.Printf("  - Gear listings created: %d", gearSeeded)
	log.Printf("  - Demo password for all users: %s", seedPassword)
}

func seed(ctx context.Context, userRepo repository.UserRepository, gearRepo repository.GearRepository) (usersSeeded, gearSeeded int, err error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return 0, 0, fmt.Errorf("hash seed password: %w", err)
	}
	hash := string(hashed)

	for _, su := range demoUsers {
		user, err := userRepo.FindByEmail(ctx, su.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return usersSeeded, gearSeeded, fmt.Errorf("check user %s: %w", su.Email, err)
		}

		if user == nil {
			birthday, err := time.Parse("2006-01-02", su.Birthday)
			if err != nil {
				return usersSeeded, gearSeeded, fmt.Errorf("parse birthday for %s: %w", su.Email, err)
			}
			phone := su.Phone
			user = &model.User{
				Email:        su.Email,
				Name:         su.Name,
				PasswordHash: &hash,
				Birthday:     &birthday,
				PhoneNumber:  &phone,
			}
			if err := userRepo.Create(ctx, user); err != nil {
				return usersSeeded, gearSeeded, fmt.Errorf("create user %s: %w", su.Email, err)
			}
			usersSeeded++
		}

		existing, err := gearRepo.ListByOwner(ctx, user.ID)
		if err != nil {
			return usersSeeded, gearSeeded, fmt.Errorf("list gear for %s: %w", su.Email, err)
		}
		owned := make(map[string]bool, len(existing))
		for _, g := range existing {
			owned[g.Name] = true
		}

		for _, sg := range su.Gear {
			if owned[sg.Name] {
				continue
			}
			price, err := decimal.NewFromString(sg.DailyPrice)
			if err != nil {
				return usersSeeded, gearSeeded, fmt.Errorf("parse price for %q: %w", sg.Name, err)
			}
			gear := &model.Gear{
				OwnerID:     user.ID,
				Name:        sg.Name,
				Description: sg.Description,
				DailyPrice:  price,
				Location:    sg.Location,
			}
			if err := gearRepo.Create(ctx, gear); err != nil {
				return usersSeeded, gearSeeded, fmt.Errorf("create gear %q: %w", sg.Name, err)
			}
			gearSeeded++
		}
	}

	return usersSeeded, gearSeeded, nil
}
