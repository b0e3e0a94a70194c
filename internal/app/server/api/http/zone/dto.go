package zone

import "bookshelf/internal/domain/zone"

type openInput struct {
	Body zone.Config
}

type openOutput struct {
	Body zone.Zone
}
