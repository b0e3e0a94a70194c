package middleware

import "github.com/danielgtaylor/huma/v2"

// Container collects middlewares for the next group of operations.
type Container struct {
	mws huma.Middlewares
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Add(mws ...func(huma.Context, func(huma.Context))) *Container {
	c.mws = append(c.mws, mws...)
	return c
}

// GetAllAndClear returns the collected middlewares and resets the container.
func (c *Container) GetAllAndClear() huma.Middlewares {
	mws := c.mws
	c.mws = nil
	return mws
}
