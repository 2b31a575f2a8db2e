package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"studyhub/internal/config"
	"studyhub/internal/database"
	"studyhub/internal/domain"
	"studyhub/internal/repository"
)

// Seeds a demo group with one teacher, one student and the shared visitor
// account for local development.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	ctx := context.Background()
	groups := repository.NewGroupRepository(db)
	users := repository.NewUserRepository(db)

	const groupKey = "demo"
	storageRoot := filepath.Join(cfg.StorageRoot, groupKey)
	limits := domain.Limits{
		StorageMB: 512,
		Courses:   10,
		Students:  50,
	}

	existing, err := groups.GetByKey(ctx, groupKey)
	if err != nil {
		log.Fatal(err)
	}
	if existing == nil {
		if err := os.MkdirAll(storageRoot, 0o755); err != nil {
			log.Fatal(err)
		}
		g := &domain.Group{
			Key:         groupKey,
			StorageRoot: storageRoot,
			Limits:      limits,
			Active:      true,
		}
		if err := groups.Create(ctx, g); err != nil {
			log.Fatal(err)
		}
		log.Printf("Group %q created with root %s", groupKey, storageRoot)
	} else {
		// Re-running the seed applies the configured limits to the
		// existing group.
		if err := groups.UpdateLimits(ctx, groupKey, limits); err != nil {
			log.Fatal(err)
		}
		log.Printf("Group %q already exists, limits refreshed", groupKey)
	}

	seedUser := func(account, password, name string, role domain.UserRole) {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}
		u := &domain.User{
			Idx:          uuid.New().String(),
			GroupKey:     groupKey,
			Account:      account,
			PasswordHash: string(hash),
			Name:         name,
			Role:         role,
			Active:       true,
		}
		if err := users.Create(ctx, u); err != nil {
			log.Printf("User %s skipped: %v", account, err)
			return
		}
		log.Printf("User created: %s / %s (%s)", account, password, role)
	}

	seedUser("teacher", "teacher123", "Demo Teacher", domain.RoleTeacher)
	seedUser("student", "student123", "Demo Student", domain.RoleStudent)
	seedUser(domain.VisitorAccount, "visitor123", "Visitor", domain.RoleStudent)

	log.Println("Seed completed")
}
