package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"renthub/internal/database"
	"renthub/internal/domain"
	"renthub/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	db, err := database.Connect("renthub.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup in dependency order.
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM damage_reports")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM items")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	items := repository.NewItemRepository(db)
	bookings := repository.NewBookingRepository(db)

	log.Println("Creating users...")
	owner := seedUser(ctx, users, "owner@renthub.dev", "owner123", "Aidar")
	renter1 := seedUser(ctx, users, "asel@renthub.dev", "renter123", "Asel")
	renter2 := seedUser(ctx, users, "bekzat@renthub.dev", "renter123", "Bekzat")

	log.Println("Creating items...")
	catalog := []struct {
		name     string
		category string
		price    float64
		deposit  float64
	}{
		{"Canon EOS R6 camera", "photo", 12000, 50000},
		{"Makita cordless drill", "tools", 2500, 10000},
		{"4-person camping tent", "outdoor", 4000, 15000},
	}

	itemIDs := make([]int64, 0, len(catalog))
	for _, c := range catalog {
		item := &domain.Item{
			OwnerID:       owner.ID,
			Name:          c.name,
			Description:   fmt.Sprintf("%s in good condition, ready for rent", c.name),
			Category:      c.category,
			Location:      "Almaty",
			PricePerDay:   c.price,
			DepositAmount: c.deposit,
			IsAvailable:   true,
		}
		if err := items.Create(ctx, item); err != nil {
			log.Fatal("item create failed:", err)
		}
		itemIDs = append(itemIDs, item.ID)
	}

	log.Println("Creating bookings...")
	today := time.Now().UTC().Truncate(24 * time.Hour)

	seedBooking(ctx, bookings, itemIDs[0], renter1.ID, today.AddDate(0, 0, 3), today.AddDate(0, 0, 6), 12000)
	seedBooking(ctx, bookings, itemIDs[0], renter2.ID, today.AddDate(0, 0, 5), today.AddDate(0, 0, 8), 12000)
	seedBooking(ctx, bookings, itemIDs[1], renter2.ID, today.AddDate(0, 0, 1), today.AddDate(0, 0, 2), 2500)

	log.Println("Seed completed")
	log.Println("Accounts: owner@renthub.dev / owner123, asel@renthub.dev / renter123, bekzat@renthub.dev / renter123")
}

func seedUser(ctx context.Context, users *repository.UserRepository, email, password, name string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  name,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatal("user create failed:", err)
	}
	return u
}

func seedBooking(ctx context.Context, bookings *repository.BookingRepository, itemID, renterID int64, start, end time.Time, pricePerDay float64) {
	days := int(end.Sub(start).Hours()/24) + 1
	b := &domain.Booking{
		ItemID:     itemID,
		RenterID:   renterID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: pricePerDay * float64(days),
		Status:     domain.BookingPending,
	}
	if err := bookings.Create(ctx, b); err != nil {
		log.Fatal("booking create failed:", err)
	}
}
