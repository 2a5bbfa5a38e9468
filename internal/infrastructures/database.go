package infrastructures

import (
	"os"

	"github.com/likehq/giftcards-core/internal/app/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase() *gorm.DB {
	// TranslateError lets the store detect unique index violations as
	// gorm.ErrDuplicatedKey instead of driver-specific errors.
	db, err := gorm.Open(postgres.Open(os.Getenv("DATABASE_URL")), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&models.GiftCard{}); err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	return db
}
