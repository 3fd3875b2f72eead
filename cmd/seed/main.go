package main

import (
	"fmt"
	"log"
	"os"

	"salonpos/internal/database"
	"salonpos/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "salonpos.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Branch{},
		&domain.Seat{},
		&domain.ServiceCategory{},
		&domain.Service{},
		&domain.PricingTier{},
		&domain.Product{},
		&domain.WalkinOrder{},
		&domain.WalkinServiceLine{},
		&domain.WalkinProductLine{},
		&domain.WalkinSeatLine{},
		&domain.Notification{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// cleanup in FK-safe order
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM walkin_seat_lines")
	db.Exec("DELETE FROM walkin_product_lines")
	db.Exec("DELETE FROM walkin_service_lines")
	db.Exec("DELETE FROM walkin_orders")
	db.Exec("DELETE FROM pricing_tiers")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM service_categories")
	db.Exec("DELETE FROM products")
	db.Exec("DELETE FROM seats")
	db.Exec("DELETE FROM branches")
	db.Exec("DELETE FROM users")

	/* ================== BRANCHES ================== */
	log.Println("Creating branches...")
	downtown := domain.Branch{Name: "Downtown", Address: "12 Abay Ave", City: "Almaty", Phone: "+7 727 123 4567"}
	mall := domain.Branch{Name: "Mega Mall", Address: "Mega Center, 2nd floor", City: "Almaty", Phone: "+7 727 765 4321"}
	db.Create(&downtown)
	db.Create(&mall)

	/* ================== USERS ================== */
	log.Println("Creating users...")
	admin := domain.User{
		Email:        "admin@salonpos.kz",
		PasswordHash: hash("admin123"),
		Role:         domain.RoleAdmin,
		Name:         "Administrator",
		Active:       true,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@salonpos.kz / admin123")

	manager := domain.User{
		Email:        "manager@salonpos.kz",
		PasswordHash: hash("manager123"),
		Role:         domain.RoleManager,
		Name:         "Gulnara",
		BranchID:     &downtown.ID,
		Active:       true,
	}
	db.Create(&manager)

	staff := []struct {
		name, email, employeeRole string
		branch                    *int64
	}{
		{"Aida", "aida@salonpos.kz", "stylist", &downtown.ID},
		{"Marat", "marat@salonpos.kz", "barber", &downtown.ID},
		{"Dana", "dana@salonpos.kz", "therapist", &mall.ID},
	}
	for _, s := range staff {
		db.Create(&domain.User{
			Email:        s.email,
			PasswordHash: hash("staff123"),
			Role:         domain.RoleStaff,
			Name:         s.name,
			EmployeeRole: s.employeeRole,
			BranchID:     s.branch,
			Active:       true,
		})
	}

	/* ================== SEATS ================== */
	log.Println("Creating seats...")
	for i := 1; i <= 6; i++ {
		seatType := domain.SeatRegular
		rate := 100.0
		if i > 4 {
			seatType = domain.SeatPremium
			rate = 200.0
		}
		db.Create(&domain.Seat{
			BranchID:   downtown.ID,
			SeatNumber: i,
			SeatType:   seatType,
			Status:     domain.SeatAvailable,
			HourlyRate: rate,
			Position:   fmt.Sprintf("row-%d", (i+1)/2),
		})
	}
	for i := 1; i <= 4; i++ {
		db.Create(&domain.Seat{
			BranchID:   mall.ID,
			SeatNumber: i,
			SeatType:   domain.SeatRegular,
			Status:     domain.SeatAvailable,
			HourlyRate: 120.0,
		})
	}
	db.Model(&domain.Branch{}).Where("id = ?", downtown.ID).Updates(map[string]any{"total_seats": 6, "available_seats": 6})
	db.Model(&domain.Branch{}).Where("id = ?", mall.ID).Updates(map[string]any{"total_seats": 4, "available_seats": 4})

	/* ================== CATALOG ================== */
	log.Println("Creating catalog...")
	hair := domain.ServiceCategory{Name: "Hair", RequiredRole: "stylist"}
	barber := domain.ServiceCategory{Name: "Barber", RequiredRole: "barber"}
	spa := domain.ServiceCategory{Name: "Spa", RequiredRole: "therapist"}
	db.Create(&hair)
	db.Create(&barber)
	db.Create(&spa)

	haircut := domain.Service{CategoryID: hair.ID, Name: "Haircut", Description: "Cut and style", Active: true}
	shave := domain.Service{CategoryID: barber.ID, Name: "Royal Shave", Active: true}
	massage := domain.Service{CategoryID: spa.ID, Name: "Back Massage", Active: true}
	db.Create(&haircut)
	db.Create(&shave)
	db.Create(&massage)

	tiers := []domain.PricingTier{
		{ServiceID: haircut.ID, Label: "Junior", DurationMinutes: 30, Price: 300},
		{ServiceID: haircut.ID, Label: "Senior", DurationMinutes: 45, Price: 500},
		{ServiceID: shave.ID, Label: "Classic", DurationMinutes: 30, Price: 250},
		{ServiceID: massage.ID, Label: "30 min", DurationMinutes: 30, Price: 400},
		{ServiceID: massage.ID, Label: "60 min", DurationMinutes: 60, Price: 700},
	}
	for i := range tiers {
		db.Create(&tiers[i])
	}

	products := []domain.Product{
		{Name: "Argan Oil", Description: "Hair treatment oil", Price: 150, TotalStock: 10, Active: true},
		{Name: "Beard Balm", Price: 90, TotalStock: 25, Active: true},
		{Name: "Shampoo 250ml", Price: 60, TotalStock: 40, Active: true},
		{Name: "Massage Candle", Price: 210, TotalStock: 8, Active: true},
	}
	for i := range products {
		db.Create(&products[i])
	}

	log.Println("Seed complete.")
}

func hash(password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	return string(h)
}
