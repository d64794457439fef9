package models

import (
	"log"

	"github.com/mmdatafocus/notas_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Area{},
		&User{},
		&Invoice{}, &Inconsistency{},
		&NotificationRecord{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
