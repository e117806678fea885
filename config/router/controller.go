package router

import (
	"fmt"
	"net/http"
	"path"

	"github.com/viewmark/viewmark/pkg/ratelimit"
)

// NewRESTController groups handlers under mountPoint. prepare runs once, from
// MountController.
func NewRESTController(name, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	return &RESTController{
		name:       name,
		mountPoint: joinRoute(mountPoint, ""),
		prepare:    prepare,
	}
}

// joinRoute always yields a rooted path without a trailing slash, except "/".
func joinRoute(mountPoint, relative string) string {
	return path.Clean("/" + mountPoint + "/" + relative)
}

func (routerService *RouterService) keyForPathAndMethod(route, method string) string {
	return method + " " + route
}

// register records which controller owns method+route and which limiter
// guards it. Registering the same pair twice is a wiring bug and panics.
func (routerService *RouterService) register(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	method string,
	relative string,
	handlers ...MiddlewareFunc,
) {
	route := joinRoute(controller.mountPoint, relative)
	key := routerService.keyForPathAndMethod(route, method)

	if owner, taken := routerService.handlerToControllerMap[key]; taken {
		panic(fmt.Sprintf("%s %s is already registered by controller %q", method, route, owner.name))
	}
	routerService.handlerToControllerMap[key] = controller
	if limiter != nil {
		routerService.rateLimitOverrides[key] = limiter
	}

	controller.handlerCount++
	routerService.engine.Handle(method, route, handlers...)
	routerService.logger.Debug("Handler registered", "controller", controller.name, "method", method, "route", route)
}

// renderResult adapts a HandlerFunction to gin. A nil result is a handler bug.
func renderResult(handler HandlerFunction) MiddlewareFunc {
	return func(c *RequestContext) {
		result := handler(c)
		if result == nil {
			GetLogger(c).Error("Handler returned no result", "route", c.FullPath())
			c.JSON(http.StatusInternalServerError,
				InternalServerErrorResult("Handler returned no result").ToJSON())
			return
		}

		c.JSON(result.StatusCode, result.ToJSON())
	}
}

func (routerService *RouterService) AddPostHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	relative string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.register(controller, limiter, http.MethodPost, relative, append(middlewares, renderResult(handler))...)
}

func (routerService *RouterService) AddGetHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	relative string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.register(controller, limiter, http.MethodGet, relative, append(middlewares, renderResult(handler))...)
}

// AddPageHandler registers a handler that writes its own response, such as
// an HTML page or a redirect, while keeping controller mapping and rate
// limiting identical to JSON handlers.
func (routerService *RouterService) AddPageHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	method string,
	relative string,
	handler MiddlewareFunc,
) {
	routerService.register(controller, limiter, method, relative, handler)
}
