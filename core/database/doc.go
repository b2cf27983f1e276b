// Package database opens the optional relational database backing the
// geocode cache.
//
// It wraps GORM and supports two drivers: sqlite (a local file, the default)
// and mysql. Connect verifies the connection with a ping bounded by the
// configured timeout.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return fmt.Errorf("failed to connect to database: %w", err)
//	}
package database
