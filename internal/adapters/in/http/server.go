package http

import (
	"context"
	"log/slog"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/verification"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler is the shape shared by every command and query handler.
type Handler[Req, Res any] interface {
	Handle(ctx context.Context, req Req) (Res, error)
}

// Handlers holds one use case per operation.
type Handlers struct {
	GetCart            Handler[queries.GetCartQuery, queries.CartView]
	AddCartItem        Handler[commands.AddCartItemCommand, *cart.Cart]
	UpdateCartItem     Handler[commands.UpdateCartItemCommand, *cart.Cart]
	RemoveCartItem     Handler[commands.RemoveCartItemCommand, *cart.Cart]
	SetCartFulfillment Handler[commands.SetCartFulfillmentCommand, *cart.Cart]
	ClearCart          Handler[commands.ClearCartCommand, *cart.Cart]

	Checkout       Handler[commands.CheckoutCommand, *order.Order]
	ConfirmOrder   Handler[commands.ConfirmOrderCommand, *order.Order]
	MarkOrderReady Handler[commands.MarkOrderReadyCommand, *order.Order]

	ListOpenOrders      Handler[queries.ListOpenOrdersQuery, []queries.OpenOrder]
	CheckBidEligibility Handler[queries.CheckBidEligibilityQuery, queries.BidEligibility]
	ListBids            Handler[queries.ListBidsQuery, []*bid.Bid]
	SubmitBid           Handler[commands.SubmitBidCommand, *bid.Bid]
	AcceptBid           Handler[commands.AcceptBidCommand, *assignment.Assignment]

	IssueDeliveryCode  Handler[commands.IssueDeliveryCodeCommand, *verification.Verification]
	RecordLocation     Handler[commands.RecordLocationCommand, assignment.TrackingPoint]
	MarkPickedUp       Handler[commands.MarkPickedUpCommand, *assignment.Assignment]
	MarkDelivered      Handler[commands.MarkDeliveredCommand, *assignment.Assignment]
	VerifyDelivery     Handler[commands.VerifyDeliveryCommand, *order.Order]
	GetTracking        Handler[queries.GetTrackingQuery, queries.Tracking]
	GetNavigationLinks Handler[queries.GetNavigationLinksQuery, queries.NavigationLinks]
}

const (
	deliveryPathManual   = "manual"
	deliveryPathVerified = "verified"
)

// Server implements ServerInterface on top of the use case handlers.
// Errors are returned to echo and rendered by NewErrorHandler.
type Server struct {
	handlers Handlers
	metrics  *Metrics
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates a Server recording business counters on metrics.
func NewServer(handlers Handlers, metrics *Metrics) *Server {
	return &Server{handlers: handlers, metrics: metrics}
}

// GetCart handles GET /cart.
func (s *Server) GetCart(ctx echo.Context) error {
	caps, err := caller(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewGetCartQuery(caps)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetCart.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := toCart(view.Cart)
	resp.Pricing = toPricing(view.Pricing)
	return ctx.JSON(http.StatusOK, resp)
}

// ClearCart handles DELETE /cart.
func (s *Server) ClearCart(ctx echo.Context) error {
	caps, err := caller(ctx)
	if err != nil {
		return err
	}
	cmd, err := commands.NewClearCartCommand(caps)
	if err != nil {
		return err
	}

	if _, err = s.handlers.ClearCart.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AddCartItem handles POST /cart/items.
func (s *Server) AddCartItem(ctx echo.Context) error {
	caps, err := caller(ctx)
	if err != nil {
		return err
	}
	var req AddCartItemRequest
	if err = ctx.Bind(&req); err != nil {
		return err
	}
	productID, err := req.productID()
	if err != nil {
		return err
	}
	cmd, err := commands.NewAddCartItemCommand(caps, productID, req.quantity())
	if err != nil {
		return err
	}

	c, err := s.handlers.AddCartItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toCart(c))
}

// UpdateCartItem handles PATCH /cart/items/{itemId}.
func (s *Server) UpdateCartItem(ctx echo.Context, itemID openapi_types.UUID) error {
	caps, err := caller(ctx)
	if err != nil {
		return err
	}
	var req UpdateCartItemRequest
	if err = ctx.Bind(&req); err != nil {
		return err
	}
	quantity, err := req.quantity()
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateCartItemCommand(caps, kernel.FromGoogle(itemID), quantity)
	if err != nil {
		return err
	}

	c, err := s.handlers.UpdateCartItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toCart(c))
}

// RemoveCartItem handles DELETE /cart/items/{itemId}.
func (s *Server) RemoveCartItem(ctx echo.Context, itemID openapi_types.UUID) error {
	caps, err := caller(ctx)
	if err != nil {
		return err
	}
	cmd, err := commands.NewRemoveCartItemCommand(caps, kernel.FromGoogle(itemID))
	if err != nil {
		return err
	}

	if _, err = s.handlers.RemoveCartItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// SetCartFulfillment handles PUT /cart/fulfillment.
func (s *Server) SetCartFulfillment(ctx echo.Context) error {
	caps, err := caller(ctx)
	if err != nil {
		return err
	}
	var req SetFulfillmentRequest
	if err = ctx.Bind(&req); err != nil {
		return err
	}
	cmd, err := commands.NewSetCartFulfillmentCommand(caps, kernel.FulfillmentType(req.FulfillmentType), req.AddressID)
	if err != nil {
		return err
	}

	c, err := s.handlers.SetCartFulfillment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toCart(c))
}

// Checkout handles POST /checkout. The body is optional.
func (s *Server) Checkout(ctx echo.Context) error {
	caps, err := caller(ctx)
	if err != nil {
		return err
	}
	var req CheckoutRequest
	if err = ctx.Bind(&req); err != nil {
		return err
	}
	cmd, err := commands.NewCheckoutCommand(caps, req.method())
	if err != nil {
		return err
	}

	o, err := s.handlers.Checkout.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, toOrder(o))
}

// ConfirmOrder handles PATCH /orders/{id}/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context, id openapi_types.UUID) error {
	caps, err := caller(ctx)
	if err != nil {
		return err
	}
	cmd, err := commands.NewConfirmOrderCommand(caps, kernel.FromGoogle(id))
	if err != nil {
		return err
	}

	o, err := s.handlers.ConfirmOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrder(o))
}

// MarkOrderReady handles PATCH /orders/{id}/ready.
func (s *Server) MarkOrderReady(ctx echo.Context, id openapi_types.UUID) error {
	caps, err := caller(ctx)
	if err != nil {
		return err
	}
	cmd, err := commands.NewMarkOrderReadyCommand(caps, kernel.FromGoogle(id))
	if err != nil {
		return err
	}

	o, err := s.handlers.MarkOrderReady.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrder(o))
}

// ListOpenOrders handles GET /driver/open-orders.
func (s *Server) ListOpenOrders(ctx echo.Context) error {
	caps, err := caller(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewListOpenOrdersQuery(caps)
	if err != nil {
		return err
	}

	orders, err := s.handlers.ListOpenOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOpenOrders(orders))
}

// CheckBidEligibility handles GET /orders/{id}/bidding/eligibility.
// A caller who is not a driver gets the answer with 403.
func (s *Server) CheckBidEligibility(ctx echo.Context, id openapi_types.UUID) error {
	caps, err := caller(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewCheckBidEligibilityQuery(caps, kernel.FromGoogle(id))
	if err != nil {
		return err
	}

	result, err := s.handlers.CheckBidEligibility.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if result.Reason == queries.ReasonNotADriver {
		status = http.StatusForbidden
	}
	return ctx.JSON(status, EligibilityResponse{Eligible: result.Eligible, Reason: result.Reason})
}

// ListBids handles GET /orders/{id}/bids.
func (s *Server) ListBids(ctx echo.Context, id openapi_types.UUID) error {
	caps, err := caller(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewListBidsQuery(caps, kernel.FromGoogle(id))
	if err != nil {
		return err
	}

	bids, err := s.handlers.ListBids.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toBids(bids))
}

// SubmitBid handles POST /orders/{id}/bids.
func (s *Server) SubmitBid(ctx echo.Context, id openapi_types.UUID) error {
	caps, err := caller(ctx)
	if err != nil {
		return err
	}
	var req SubmitBidRequest
	if err = ctx.Bind(&req); err != nil {
		return err
	}
	offer, err := req.offer()
	if err != nil {
		return err
	}
	cmd, err := commands.NewSubmitBidCommand(caps, kernel.FromGoogle(id), offer)
	if err != nil {
		return err
	}

	b, err := s.handlers.SubmitBid.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	s.metrics.BidSubmitted()
	return ctx.JSON(http.StatusCreated, toBid(b))
}

// AcceptBid handles POST /orders/{id}/bids/{bidId}/accept.
func (s *Server) AcceptBid(ctx echo.Context, id openapi_types.UUID, bidID openapi_types.UUID) error {
	caps, err := caller(ctx)
	if err != nil {
		return err
	}
	cmd, err := commands.NewAcceptBidCommand(caps, kernel.FromGoogle(id), kernel.FromGoogle(bidID))
	if err != nil {
		return err
	}

	a, err := s.handlers.AcceptBid.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	s.metrics.BidAccepted()
	return ctx.JSON(http.StatusOK, toAssignment(a))
}

// IssueDeliveryCode handles POST /orders/{id}/verification/otp.
func (s *Server) IssueDeliveryCode(ctx echo.Context, id openapi_types.UUID) error {
	caps, err := caller(ctx)
	if err != nil {
		return err
	}
	cmd, err := commands.NewIssueDeliveryCodeCommand(caps, kernel.FromGoogle(id))
	if err != nil {
		return err
	}

	v, err := s.handlers.IssueDeliveryCode.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toVerification(v))
}

// RecordLocation handles POST /assignments/{id}/location.
func (s *Server) RecordLocation(ctx echo.Context, id openapi_types.UUID) error {
	caps, err := caller(ctx)
	if err != nil {
		return err
	}
	var req LocationRequest
	if err = ctx.Bind(&req); err != nil {
		return err
	}
	location, err := req.point()
	if err != nil {
		return err
	}
	cmd, err := commands.NewRecordLocationCommand(caps, kernel.FromGoogle(id), location)
	if err != nil {
		return err
	}

	p, err := s.handlers.RecordLocation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, toTrackingPoint(p))
}

// MarkPickedUp handles POST /assignments/{id}/picked-up.
func (s *Server) MarkPickedUp(ctx echo.Context, id openapi_types.UUID) error {
	caps, err := caller(ctx)
	if err != nil {
		return err
	}
	cmd, err := commands.NewMarkPickedUpCommand(caps, kernel.FromGoogle(id))
	if err != nil {
		return err
	}

	a, err := s.handlers.MarkPickedUp.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toAssignment(a))
}

// MarkDelivered handles POST /assignments/{id}/delivered.
func (s *Server) MarkDelivered(ctx echo.Context, id openapi_types.UUID) error {
	caps, err := caller(ctx)
	if err != nil {
		return err
	}
	cmd, err := commands.NewMarkDeliveredCommand(caps, kernel.FromGoogle(id))
	if err != nil {
		return err
	}

	a, err := s.handlers.MarkDelivered.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	s.metrics.Delivered(deliveryPathManual)
	return ctx.JSON(http.StatusOK, toAssignment(a))
}

// VerifyDelivery handles POST /assignments/{id}/verify.
func (s *Server) VerifyDelivery(ctx echo.Context, id openapi_types.UUID) error {
	caps, err := caller(ctx)
	if err != nil {
		return err
	}
	var req VerifyDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return err
	}
	location, err := req.point()
	if err != nil {
		return err
	}
	cmd, err := commands.NewVerifyDeliveryCommand(caps, kernel.FromGoogle(id), req.Code, location)
	if err != nil {
		return err
	}

	o, err := s.handlers.VerifyDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	s.metrics.Delivered(deliveryPathVerified)
	return ctx.JSON(http.StatusOK, toOrder(o))
}

// GetTracking handles GET /assignments/{id}/tracking.
func (s *Server) GetTracking(ctx echo.Context, id openapi_types.UUID) error {
	caps, err := caller(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewGetTrackingQuery(caps, kernel.FromGoogle(id))
	if err != nil {
		return err
	}

	tracking, err := s.handlers.GetTracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toTracking(tracking))
}

// GetNavigationLinks handles GET /assignments/{id}/nav.
func (s *Server) GetNavigationLinks(ctx echo.Context, id openapi_types.UUID) error {
	caps, err := caller(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewGetNavigationLinksQuery(caps, kernel.FromGoogle(id))
	if err != nil {
		return err
	}

	links, err := s.handlers.GetNavigationLinks.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, NavigationResponse{PickupURL: links.PickupURL, DropoffURL: links.DropoffURL})
}

// NewEcho builds the HTTP application: operational endpoints at the root and
// the authenticated API under APIPrefix.
func NewEcho(
	ctx context.Context,
	server *Server,
	auth *Authenticator,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(requestLogger(logger))
	e.Use(server.metrics.Middleware())
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	if err = mountOpenAPI(e, doc); err != nil {
		return nil, err
	}

	api := e.Group(APIPrefix, auth.Middleware())
	RegisterHandlers(api, server)
	return e, nil
}

// requestLogger logs one line per request through logger.
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "Request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}
