package postgres

import (
	"parceldelivery/internal/adapters/out/postgres/parcelrepo"
	"parceldelivery/internal/adapters/out/postgres/paymentrepo"
	"parceldelivery/internal/adapters/out/postgres/riderrepo"
	"parceldelivery/internal/adapters/out/postgres/trackingrepo"

	"gorm.io/gorm"
)

// Tables lists every table owned by the service, in creation order.
var Tables = []string{"parcels", "payments", "riders", "tracking_events"}

// Migrate creates or alters the tables, including the unique indexes that
// back the payment and tracking id guarantees.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&parcelrepo.ParcelDTO{},
		&paymentrepo.PaymentDTO{},
		&riderrepo.RiderDTO{},
		&trackingrepo.TrackingEventDTO{},
	)
}
