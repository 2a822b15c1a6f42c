package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface has one method per operation of openapi.yaml.
type ServerInterface interface {
	// (GET /cart)
	GetCart(ctx echo.Context) error
	// (DELETE /cart)
	ClearCart(ctx echo.Context) error
	// (POST /cart/items)
	AddCartItem(ctx echo.Context) error
	// (PATCH /cart/items/{itemId})
	UpdateCartItem(ctx echo.Context, itemID openapi_types.UUID) error
	// (DELETE /cart/items/{itemId})
	RemoveCartItem(ctx echo.Context, itemID openapi_types.UUID) error
	// (PUT /cart/fulfillment)
	SetCartFulfillment(ctx echo.Context) error
	// (POST /checkout)
	Checkout(ctx echo.Context) error
	// (PATCH /orders/{id}/confirm)
	ConfirmOrder(ctx echo.Context, id openapi_types.UUID) error
	// (PATCH /orders/{id}/ready)
	MarkOrderReady(ctx echo.Context, id openapi_types.UUID) error
	// (GET /driver/open-orders)
	ListOpenOrders(ctx echo.Context) error
	// (GET /orders/{id}/bidding/eligibility)
	CheckBidEligibility(ctx echo.Context, id openapi_types.UUID) error
	// (GET /orders/{id}/bids)
	ListBids(ctx echo.Context, id openapi_types.UUID) error
	// (POST /orders/{id}/bids)
	SubmitBid(ctx echo.Context, id openapi_types.UUID) error
	// (POST /orders/{id}/bids/{bidId}/accept)
	AcceptBid(ctx echo.Context, id openapi_types.UUID, bidID openapi_types.UUID) error
	// (POST /orders/{id}/verification/otp)
	IssueDeliveryCode(ctx echo.Context, id openapi_types.UUID) error
	// (POST /assignments/{id}/location)
	RecordLocation(ctx echo.Context, id openapi_types.UUID) error
	// (POST /assignments/{id}/picked-up)
	MarkPickedUp(ctx echo.Context, id openapi_types.UUID) error
	// (POST /assignments/{id}/delivered)
	MarkDelivered(ctx echo.Context, id openapi_types.UUID) error
	// (POST /assignments/{id}/verify)
	VerifyDelivery(ctx echo.Context, id openapi_types.UUID) error
	// (GET /assignments/{id}/tracking)
	GetTracking(ctx echo.Context, id openapi_types.UUID) error
	// (GET /assignments/{id}/nav)
	GetNavigationLinks(ctx echo.Context, id openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// bindUUID parses the named path parameter, answering 400 on a malformed id.
func bindUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

// withID adapts an operation taking the {id} path parameter.
func withID(op func(echo.Context, openapi_types.UUID) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := bindUUID(ctx, "id")
		if err != nil {
			return err
		}
		return op(ctx, id)
	}
}

// withItemID adapts an operation taking the {itemId} path parameter.
func withItemID(op func(echo.Context, openapi_types.UUID) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		itemID, err := bindUUID(ctx, "itemId")
		if err != nil {
			return err
		}
		return op(ctx, itemID)
	}
}

func (w *ServerInterfaceWrapper) AcceptBid(ctx echo.Context) error {
	id, err := bindUUID(ctx, "id")
	if err != nil {
		return err
	}
	bidID, err := bindUUID(ctx, "bidId")
	if err != nil {
		return err
	}
	return w.Handler.AcceptBid(ctx, id, bidID)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every operation to router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET("/cart", si.GetCart)
	router.DELETE("/cart", si.ClearCart)
	router.POST("/cart/items", si.AddCartItem)
	router.PATCH("/cart/items/:itemId", withItemID(si.UpdateCartItem))
	router.DELETE("/cart/items/:itemId", withItemID(si.RemoveCartItem))
	router.PUT("/cart/fulfillment", si.SetCartFulfillment)

	router.POST("/checkout", si.Checkout)
	router.PATCH("/orders/:id/confirm", withID(si.ConfirmOrder))
	router.PATCH("/orders/:id/ready", withID(si.MarkOrderReady))

	router.GET("/driver/open-orders", si.ListOpenOrders)
	router.GET("/orders/:id/bidding/eligibility", withID(si.CheckBidEligibility))
	router.GET("/orders/:id/bids", withID(si.ListBids))
	router.POST("/orders/:id/bids", withID(si.SubmitBid))
	router.POST("/orders/:id/bids/:bidId/accept", w.AcceptBid)

	router.POST("/orders/:id/verification/otp", withID(si.IssueDeliveryCode))
	router.POST("/assignments/:id/location", withID(si.RecordLocation))
	router.POST("/assignments/:id/picked-up", withID(si.MarkPickedUp))
	router.POST("/assignments/:id/delivered", withID(si.MarkDelivered))
	router.POST("/assignments/:id/verify", withID(si.VerifyDelivery))
	router.GET("/assignments/:id/tracking", withID(si.GetTracking))
	router.GET("/assignments/:id/nav", withID(si.GetNavigationLinks))
}
