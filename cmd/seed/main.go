package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"openstage/internal/database"
	"openstage/internal/domain"
	"openstage/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "openstage.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		logrus.Fatal("db connection failed: ", err)
	}
	if err := repository.Migrate(db); err != nil {
		logrus.Fatal("migrate failed: ", err)
	}

	logrus.Info("cleaning old data")
	db.Exec("DELETE FROM appointments")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM slots")
	db.Exec("DELETE FROM events")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	events := repository.NewEventRepository(db)
	services := repository.NewServiceRepository(db)

	logrus.Info("creating users")
	admin := seedUser(ctx, users, "admin@openstage.io", "admin123", domain.RoleAdmin, "Admin")
	host := seedUser(ctx, users, "host@openstage.io", "host1234", domain.RoleHost, "Venue Host")
	seedUser(ctx, users, "mara@openstage.io", "mara1234", domain.RolePerformer, "Mara")
	seedUser(ctx, users, "theo@openstage.io", "theo1234", domain.RolePerformer, "Theo")
	seedUser(ctx, users, "june@openstage.io", "june1234", domain.RolePerformer, "June")

	logrus.Info("creating events")
	openMic := &domain.Event{
		HostID:   host.ID,
		Title:    "Tuesday Open Mic",
		StartsAt: time.Now().AddDate(0, 0, 7),
	}
	if err := events.CreateWithSlots(ctx, openMic, 5); err != nil {
		logrus.Fatal(err)
	}

	showcase := &domain.Event{
		HostID:     host.ID,
		Title:      "Autumn Showcase",
		IsShowcase: true,
		StartsAt:   time.Now().AddDate(0, 1, 0),
	}
	if err := events.CreateWithSlots(ctx, showcase, 8); err != nil {
		logrus.Fatal(err)
	}

	logrus.Info("creating studio services")
	for _, svc := range []*domain.StudioService{
		{OwnerID: host.ID, Name: "Rehearsal Room A", DurationMinutes: 60},
		{OwnerID: host.ID, Name: "Recording Booth", DurationMinutes: 90},
	} {
		if err := services.Create(ctx, svc); err != nil {
			logrus.Fatal(err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"admin":    admin.Email,
		"open_mic": openMic.ID,
		"showcase": showcase.ID,
	}).Info("seed complete")
}

func seedUser(ctx context.Context, users *repository.UserRepository, email, password string, role domain.UserRole, name string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         name,
	}
	if err := users.Create(ctx, u); err != nil {
		logrus.Fatal("seed user failed: ", err)
	}
	return u
}
