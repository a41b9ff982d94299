package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/freshmarket/commerce-api/app/entity"
	"github.com/freshmarket/commerce-api/app/repository"
	"github.com/freshmarket/commerce-api/app/service"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed reference data",
}

var seedAdminCmd = &cobra.Command{
	Use:   "admin <email> <password>",
	Short: "Create a super admin account",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		db, err := openSeedDB()
		if err != nil {
			return err
		}
		defer db.Close()

		email := args[0]
		password := args[1]
		ctx := context.Background()

		userRepo := repository.NewUserRepository(db)
		existing, err := userRepo.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("account %q already exists", email)
		}

		passwordHash, err := service.NewPasswordHasher(10).Hash(password)
		if err != nil {
			return err
		}

		user := &entity.User{
			Email:        email,
			PasswordHash: passwordHash,
			Role:         entity.RoleSuperAdmin,
		}
		if err = userRepo.Create(ctx, user); err != nil {
			return err
		}

		permission := &entity.UserPermission{
			UserID: user.ID,
			Create: true,
			Update: true,
			Remove: true,
		}
		if err = repository.NewUserPermissionRepository(db).Create(ctx, permission); err != nil {
			return err
		}

		fmt.Printf("created super admin account %s (id=%d)\n", email, user.ID)
		return nil
	},
}

var seedCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Insert the default product categories",
	RunE: func(_ *cobra.Command, _ []string) error {
		db, err := openSeedDB()
		if err != nil {
			return err
		}
		defer db.Close()

		defaults := []string{"Vegetables", "Fruits", "Meat & Seafood", "Dairy & Eggs", "Beverages"}
		ctx := context.Background()
		categoryRepo := repository.NewCategoryRepository(db)

		for _, name := range defaults {
			if err = categoryRepo.Create(ctx, &entity.Category{Name: name}); err != nil {
				return err
			}
			fmt.Printf("created category %s\n", name)
		}
		return nil
	},
}

var seedGeoCmd = &cobra.Command{
	Use:   "geo",
	Short: "Insert a starter set of cities, districts and wards",
	RunE: func(_ *cobra.Command, _ []string) error {
		db, err := openSeedDB()
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := context.Background()
		cityRepo := repository.NewCityRepository(db)
		districtRepo := repository.NewDistrictRepository(db)
		wardRepo := repository.NewWardRepository(db)

		cities := []*entity.City{
			{Name: "Hà Nội", Code: 1},
			{Name: "Hồ Chí Minh", Code: 79},
			{Name: "Đà Nẵng", Code: 48},
		}
		for _, city := range cities {
			if err = cityRepo.Create(ctx, city); err != nil {
				return err
			}
		}

		districts := []*entity.District{
			{Name: "Ba Đình", Code: 1, CityCode: 1},
			{Name: "Hoàn Kiếm", Code: 2, CityCode: 1},
			{Name: "Quận 1", Code: 760, CityCode: 79},
			{Name: "Hải Châu", Code: 492, CityCode: 48},
		}
		for _, district := range districts {
			if err = districtRepo.Create(ctx, district); err != nil {
				return err
			}
		}

		wards := []*entity.Ward{
			{Name: "Phúc Xá", Code: 1, DistrictCode: 1},
			{Name: "Trúc Bạch", Code: 4, DistrictCode: 1},
			{Name: "Bến Nghé", Code: 26734, DistrictCode: 760},
		}
		for _, ward := range wards {
			if err = wardRepo.Create(ctx, ward); err != nil {
				return err
			}
		}

		fmt.Printf("seeded %d cities, %d districts, %d wards\n", len(cities), len(districts), len(wards))
		return nil
	},
}

func init() {
	seedCmd.AddCommand(seedAdminCmd)
	seedCmd.AddCommand(seedCategoriesCmd)
	seedCmd.AddCommand(seedGeoCmd)
	rootCmd.AddCommand(seedCmd)
}

func openSeedDB() (*sql.DB, error) {
	_ = godotenv.Load()

	dsn := strings.TrimSpace(os.Getenv("MYSQL_DSN"))
	if dsn == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
