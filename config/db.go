package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nichehotel-backend/models"
	"nichehotel-backend/services"
	"nichehotel-backend/utils"
)

var DB *gorm.DB

// SeedDatabase makes a fresh install usable: one admin, the standard roles
// with their capability grants, and a starter room type catalog. Everything
// is idempotent.
func SeedDatabase() {
	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		password := utils.EnvOrDefault("SEED_ADMIN_PASSWORD", "admin123")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Admin User",
				Username: utils.EnvOrDefault("SEED_ADMIN_USERNAME", "admin@hotel.local"),
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	var rtCount int64
	DB.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{Name: "Standard", Slug: "standard", DefaultPrice: 1000, Description: "Standard Room"},
			{Name: "Superior", Slug: "superior", DefaultPrice: 1500, Description: "Superior Room"},
			{Name: "Deluxe", Slug: "deluxe", DefaultPrice: 2000, Description: "Deluxe Room"},
		}
		DB.Create(&roomTypes)
		log.Println("Room types seeded")
	}

	rolePerms := map[string][]string{
		"owner":        {services.CapEditBookings, services.CapViewLogs, services.CapManageSettings},
		"manager":      {services.CapEditBookings, services.CapViewLogs},
		"receptionist": {services.CapEditBookings},
	}
	roleDescriptions := map[string]string{
		"owner":        "Full access",
		"manager":      "Bookings and logs",
		"receptionist": "Front desk operations",
	}

	rolesByName := map[string]models.Role{}
	for name, description := range roleDescriptions {
		var existing models.Role
		err := DB.Where("LOWER(name) = ?", name).First(&existing).Error
		if err == nil && existing.ID != 0 {
			rolesByName[name] = existing
			continue
		}
		role := models.Role{Name: name, Description: description}
		if err := DB.Create(&role).Error; err != nil {
			log.Printf("warning: failed to create role %s: %v", name, err)
			continue
		}
		rolesByName[name] = role
	}

	for name, perms := range rolePerms {
		role, ok := rolesByName[name]
		if !ok || role.ID == 0 {
			continue
		}
		var permCount int64
		DB.Model(&models.RolePermission{}).Where("role_id = ?", role.ID).Count(&permCount)
		if permCount != 0 {
			continue
		}
		grants := make([]models.RolePermission, 0, len(perms))
		for _, p := range perms {
			grants = append(grants, models.RolePermission{RoleID: role.ID, Permission: p})
		}
		if err := DB.Create(&grants).Error; err != nil {
			log.Printf("warning: failed to create %s permissions: %v", name, err)
		}
	}

	if owner, ok := rolesByName["owner"]; ok && owner.ID != 0 {
		var memberCount int64
		DB.Model(&models.RoleMember{}).Where("role_id = ?", owner.ID).Count(&memberCount)
		if memberCount == 0 {
			var admins []models.Admin
			DB.Find(&admins)
			members := make([]models.RoleMember, 0, len(admins))
			for _, admin := range admins {
				members = append(members, models.RoleMember{RoleID: owner.ID, AdminID: admin.ID})
			}
			if len(members) > 0 {
				if err := DB.Create(&members).Error; err != nil {
					log.Printf("warning: failed to assign admins to owner role: %v", err)
				}
			}
		}
	}

	log.Println("Roles ensured")
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := utils.EnvOrDefault("DB_USER", "root")
	pass := utils.EnvOrDefault("DB_PASS", "")
	host := utils.EnvOrDefault("DB_HOST", "127.0.0.1")
	port := utils.EnvOrDefault("DB_PORT", "3306")
	dbName := utils.EnvOrDefault("DB_NAME", "nichehotel")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}
	DB = db

	// Parent tables before children.
	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.Role{},
		&models.RolePermission{},
		&models.RoleMember{},
		&models.Setting{},
		&models.Hotel{},
		&models.RoomType{},
		&models.Room{},
		&models.Booking{},
		&models.BookingRoom{},
		&models.ActivityLog{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
