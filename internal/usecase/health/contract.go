package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// StorageChecker checks photo object-store availability.
type StorageChecker interface {
	HealthCheck(ctx context.Context) error
}
