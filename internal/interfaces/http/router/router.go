// Package router mounts route registrars under the versioned API group.
package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar registers a set of read endpoints on a router group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RegistrarFunc adapts a plain function to the RouteRegistrar interface.
type RegistrarFunc func(rg *gin.RouterGroup)

// RegisterRoutes implements RouteRegistrar.
func (f RegistrarFunc) RegisterRoutes(rg *gin.RouterGroup) {
	f(rg)
}

type mount struct {
	prefix     string
	middleware []gin.HandlerFunc
	registrar  RouteRegistrar
}

// Router collects registrars and wires them under /api/<version>.
type Router struct {
	engine     *gin.Engine
	apiVersion string
	mounts     []mount
}

// Option configures a Router.
type Option func(*Router)

// WithAPIVersion sets the API version prefix (e.g. "v1", "v2").
func WithAPIVersion(version string) Option {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a Router on the given engine.
func NewRouter(engine *gin.Engine, opts ...Option) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register mounts a registrar directly on the API group.
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.mounts = append(r.mounts, mount{registrar: registrar})
	return r
}

// RegisterGroup mounts a registrar under a sub-prefix with its own
// middleware chain. The mobile endpoints use this for device detection and
// per-device rate limiting.
func (r *Router) RegisterGroup(prefix string, registrar RouteRegistrar, middleware ...gin.HandlerFunc) *Router {
	r.mounts = append(r.mounts, mount{
		prefix:     prefix,
		middleware: middleware,
		registrar:  registrar,
	})
	return r
}

// Setup registers every mount on the engine.
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, m := range r.mounts {
		target := api
		if m.prefix != "" {
			target = api.Group(m.prefix)
		}
		if len(m.middleware) > 0 {
			target.Use(m.middleware...)
		}
		m.registrar.RegisterRoutes(target)
	}
}

// APIVersion returns the version prefix in use.
func (r *Router) APIVersion() string {
	return r.apiVersion
}
