package zone

import (
	"fmt"
	"regexp"
	"time"
)

type SyncProperty string

const (
	// SyncCloudCache keeps data in the cloud, clients may cache it locally.
	SyncCloudCache SyncProperty = "cloud_cache"
	// SyncLocalOnly zones live only on the device and never reach the store.
	SyncLocalOnly SyncProperty = "local_only"
)

type AccessProperty string

const (
	AccessPublic  AccessProperty = "public"
	AccessPrivate AccessProperty = "private"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,64}$`)

// Config describes a zone as requested by a client.
type Config struct {
	Name   string         `json:"name" example:"QuickStartDemo"`
	Sync   SyncProperty   `json:"sync_property" enum:"cloud_cache,local_only"`
	Access AccessProperty `json:"access_property" enum:"public,private"`
}

// Zone is an opened partition of the store.
type Zone struct {
	Name      string         `json:"name"`
	Sync      SyncProperty   `json:"sync_property"`
	Access    AccessProperty `json:"access_property"`
	OwnerID   int            `json:"owner_id"`
	CreatedAt time.Time      `json:"created_at"`
}

func (c Config) Validate() error {
	if !namePattern.MatchString(c.Name) {
		return fmt.Errorf("%w: name %q", ErrInvalidConfig, c.Name)
	}
	switch c.Sync {
	case SyncCloudCache, SyncLocalOnly:
	default:
		return fmt.Errorf("%w: sync property %q", ErrInvalidConfig, c.Sync)
	}
	switch c.Access {
	case AccessPublic, AccessPrivate:
	default:
		return fmt.Errorf("%w: access property %q", ErrInvalidConfig, c.Access)
	}
	return nil
}

// ValidName reports whether name can be used as a zone name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}
