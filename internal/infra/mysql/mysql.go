package mysql

import (
	"fmt"
	"os"

	"storefront-service/internal/domain"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// dsnFromEnv builds the connection string. clientFoundRows makes the driver
// report rows matched rather than rows changed, so an UPDATE that re-submits
// the current values still counts the row as affected.
func dsnFromEnv() string {
	user := os.Getenv("MYSQL_USER")
	pass := os.Getenv("MYSQL_PASSWORD")
	host := os.Getenv("MYSQL_HOST")
	port := os.Getenv("MYSQL_PORT")
	dbname := os.Getenv("MYSQL_DATABASE")

	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
		user, pass, host, port, dbname,
	)
}

func NewMySQLFromEnv() (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsnFromEnv()), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&domain.Product{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.Address{},
		&domain.OnDemandRequest{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
