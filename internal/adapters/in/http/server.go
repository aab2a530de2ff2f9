// Package http implements the inbound REST surface: order, bucket and
// catalog routes behind bearer-token claims resolution, the courier status
// SSE stream, and the matching-service callback endpoints.
package http

import (
	"errors"
	"net/http"

	"orderflow/internal/broker"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler      commands.CreateOrderCommandHandler
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler
	estimateDeliveryHandler commands.EstimateDeliveryCommandHandler
	addToBucketHandler      commands.AddToBucketCommandHandler
	removeFromBucketHandler commands.RemoveFromBucketCommandHandler
	clearBucketHandler      commands.ClearBucketCommandHandler
	createProductHandler    commands.CreateProductCommandHandler
	updateProductHandler    commands.UpdateProductCommandHandler

	getOrderHandler       queries.GetOrderQueryHandler
	filterOrdersHandler   queries.FilterOrdersQueryHandler
	getOrderItemsHandler  queries.GetOrderItemsQueryHandler
	getBucketItemsHandler queries.GetBucketItemsQueryHandler
	getProductHandler     queries.GetProductQueryHandler
	listProductsHandler   queries.ListProductsQueryHandler
	waitForCourierHandler queries.WaitForCourierQueryHandler

	statusBroker *broker.CourierStatusBroker

	claimsMiddleware *ClaimsMiddleware
	metrics          *Metrics
	registry         *prometheus.Registry
}

// NewServer creates the HTTP server with the required handlers and
// collaborators.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	completeDeliveryHandler commands.CompleteDeliveryCommandHandler,
	estimateDeliveryHandler commands.EstimateDeliveryCommandHandler,
	addToBucketHandler commands.AddToBucketCommandHandler,
	removeFromBucketHandler commands.RemoveFromBucketCommandHandler,
	clearBucketHandler commands.ClearBucketCommandHandler,
	createProductHandler commands.CreateProductCommandHandler,
	updateProductHandler commands.UpdateProductCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	filterOrdersHandler queries.FilterOrdersQueryHandler,
	getOrderItemsHandler queries.GetOrderItemsQueryHandler,
	getBucketItemsHandler queries.GetBucketItemsQueryHandler,
	getProductHandler queries.GetProductQueryHandler,
	listProductsHandler queries.ListProductsQueryHandler,
	waitForCourierHandler queries.WaitForCourierQueryHandler,
	statusBroker *broker.CourierStatusBroker,
	claimsMiddleware *ClaimsMiddleware,
	metrics *Metrics,
	registry *prometheus.Registry,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		completeDeliveryHandler: completeDeliveryHandler,
		estimateDeliveryHandler: estimateDeliveryHandler,
		addToBucketHandler:      addToBucketHandler,
		removeFromBucketHandler: removeFromBucketHandler,
		clearBucketHandler:      clearBucketHandler,
		createProductHandler:    createProductHandler,
		updateProductHandler:    updateProductHandler,
		getOrderHandler:         getOrderHandler,
		filterOrdersHandler:     filterOrdersHandler,
		getOrderItemsHandler:    getOrderItemsHandler,
		getBucketItemsHandler:   getBucketItemsHandler,
		getProductHandler:       getProductHandler,
		listProductsHandler:     listProductsHandler,
		waitForCourierHandler:   waitForCourierHandler,
		statusBroker:            statusBroker,
		claimsMiddleware:        claimsMiddleware,
		metrics:                 metrics,
		registry:                registry,
	}
}

// RegisterRoutes wires all routes into the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(s.metrics.Middleware)

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(
		promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}),
	))

	internal := e.Group("/internal/matching")
	internal.POST("/courier-found", s.CourierFound)
	internal.POST("/wait-expired", s.WaitExpired)

	api := e.Group("/api/v1", s.claimsMiddleware.RequireClaims)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.FilterOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/orders/:id/items", s.GetOrderItems)
	api.POST("/orders/:id/complete", s.CompleteDelivery)
	api.POST("/orders/:id/rating", s.EstimateDelivery)

	api.GET("/users/:user_id/bucket", s.GetBucketItems)
	api.POST("/users/:user_id/bucket/items", s.AddToBucket)
	api.DELETE("/users/:user_id/bucket/items/:product_id", s.RemoveFromBucket)
	api.DELETE("/users/:user_id/bucket", s.ClearBucket)
	api.GET("/users/:user_id/courier-queue", s.WaitForCourier)
	api.GET("/users/:user_id/courier-status/stream", s.CourierStatusStream)

	api.POST("/products", s.CreateProduct)
	api.PATCH("/products/:id", s.UpdateProduct)
	api.GET("/products/:id", s.GetProduct)
	api.GET("/products", s.ListProducts)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - checks out the caller's bucket.
func (s *Server) CreateOrder(c echo.Context) error {
	claims, err := claimsFromContext(c)
	if err != nil {
		return err
	}

	var body struct {
		Address string `json:"address"`
	}
	if err = c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewCreateOrderCommand(claims, claims.UserID(), body.Address)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	created, err := s.createOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		// Queued is an accepted outcome, not a failure: nothing was
		// persisted and the caller polls the queue endpoint.
		if errors.Is(err, ports.ErrAddedToQueue) {
			return c.JSON(http.StatusAccepted, QueueStatusResponse{Status: "ADDED_TO_QUEUE"})
		}
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	return c.JSON(http.StatusCreated, orderFromDomain(created))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	claims, err := claimsFromContext(c)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid order id",
		})
	}

	query, err := queries.NewGetOrderQuery(claims, orderID)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	result, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	return c.JSON(http.StatusOK, orderFromReadModel(result))
}

// FilterOrders handles GET /api/v1/orders with optional order_id,
// courier_id, user_id, and address filters.
func (s *Server) FilterOrders(c echo.Context) error {
	claims, err := claimsFromContext(c)
	if err != nil {
		return err
	}

	var orderID, courierID, userID *kernel.UUID
	if raw := c.QueryParam("order_id"); raw != "" {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: "invalid order_id",
			})
		}
		orderID = &id
	}
	if raw := c.QueryParam("courier_id"); raw != "" {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: "invalid courier_id",
			})
		}
		courierID = &id
	}
	if raw := c.QueryParam("user_id"); raw != "" {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: "invalid user_id",
			})
		}
		userID = &id
	}

	var address *string
	if raw := c.QueryParam("address"); raw != "" {
		address = &raw
	}

	query, err := queries.NewFilterOrdersQuery(claims, orderID, courierID, userID, address)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	results, err := s.filterOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	response := make([]OrderResponse, len(results))
	for i, result := range results {
		response[i] = orderFromReadModel(result)
	}

	return c.JSON(http.StatusOK, response)
}

// GetOrderItems handles GET /api/v1/orders/:id/items.
func (s *Server) GetOrderItems(c echo.Context) error {
	claims, err := claimsFromContext(c)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid order id",
		})
	}

	query, err := queries.NewGetOrderItemsQuery(claims, orderID)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	results, err := s.getOrderItemsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	response := make([]OrderItemResponse, len(results))
	for i, result := range results {
		response[i] = OrderItemResponse{
			OrderID:   result.OrderID.String(),
			ProductID: result.ProductID.String(),
			Amount:    result.Amount,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// CompleteDelivery handles POST /api/v1/orders/:id/complete.
func (s *Server) CompleteDelivery(c echo.Context) error {
	claims, err := claimsFromContext(c)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid order id",
		})
	}

	cmd, err := commands.NewCompleteDeliveryCommand(claims, orderID)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	completed, err := s.completeDeliveryHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	return c.JSON(http.StatusOK, orderFromDomain(completed))
}

// EstimateDelivery handles POST /api/v1/orders/:id/rating.
func (s *Server) EstimateDelivery(c echo.Context) error {
	claims, err := claimsFromContext(c)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid order id",
		})
	}

	var body struct {
		Rating int `json:"rating"`
	}
	if err = c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewEstimateDeliveryCommand(claims, orderID, body.Rating)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	rated, err := s.estimateDeliveryHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	return c.JSON(http.StatusOK, orderFromDomain(rated))
}

// GetBucketItems handles GET /api/v1/users/:user_id/bucket.
func (s *Server) GetBucketItems(c echo.Context) error {
	claims, err := claimsFromContext(c)
	if err != nil {
		return err
	}

	userID, err := kernel.UUIDFromString(c.Param("user_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid user id",
		})
	}

	query, err := queries.NewGetBucketItemsQuery(claims, userID)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	results, err := s.getBucketItemsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	response := make([]BucketItemResponse, len(results))
	for i, result := range results {
		response[i] = BucketItemResponse{
			UserID:    result.UserID.String(),
			ProductID: result.ProductID.String(),
			Amount:    result.Amount,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// AddToBucket handles POST /api/v1/users/:user_id/bucket/items.
func (s *Server) AddToBucket(c echo.Context) error {
	claims, err := claimsFromContext(c)
	if err != nil {
		return err
	}

	userID, err := kernel.UUIDFromString(c.Param("user_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid user id",
		})
	}

	var body struct {
		ProductID string `json:"product_id"`
		Amount    int    `json:"amount"`
	}
	if err = c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	productID, err := kernel.UUIDFromString(body.ProductID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid product id",
		})
	}

	cmd, err := commands.NewAddToBucketCommand(claims, userID, productID, body.Amount)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	if err = s.addToBucketHandler.Handle(c.Request().Context(), cmd); err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	return c.NoContent(http.StatusCreated)
}

// RemoveFromBucket handles DELETE /api/v1/users/:user_id/bucket/items/:product_id.
func (s *Server) RemoveFromBucket(c echo.Context) error {
	claims, err := claimsFromContext(c)
	if err != nil {
		return err
	}

	userID, err := kernel.UUIDFromString(c.Param("user_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid user id",
		})
	}

	productID, err := kernel.UUIDFromString(c.Param("product_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid product id",
		})
	}

	cmd, err := commands.NewRemoveFromBucketCommand(claims, userID, productID)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	if err = s.removeFromBucketHandler.Handle(c.Request().Context(), cmd); err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	return c.NoContent(http.StatusNoContent)
}

// ClearBucket handles DELETE /api/v1/users/:user_id/bucket.
func (s *Server) ClearBucket(c echo.Context) error {
	claims, err := claimsFromContext(c)
	if err != nil {
		return err
	}

	userID, err := kernel.UUIDFromString(c.Param("user_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid user id",
		})
	}

	cmd, err := commands.NewClearBucketCommand(claims, userID)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	if err = s.clearBucketHandler.Handle(c.Request().Context(), cmd); err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	return c.NoContent(http.StatusNoContent)
}

// WaitForCourier handles GET /api/v1/users/:user_id/courier-queue.
func (s *Server) WaitForCourier(c echo.Context) error {
	claims, err := claimsFromContext(c)
	if err != nil {
		return err
	}

	userID, err := kernel.UUIDFromString(c.Param("user_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid user id",
		})
	}

	query, err := queries.NewWaitForCourierQuery(claims, userID)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	result, err := s.waitForCourierHandler.Handle(c.Request().Context(), query)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	return c.JSON(http.StatusOK, QueueStatusResponse{
		Status:         result.Status,
		AvgWaitingTime: result.AvgWaitingTime,
	})
}

// CreateProduct handles POST /api/v1/products.
func (s *Server) CreateProduct(c echo.Context) error {
	claims, err := claimsFromContext(c)
	if err != nil {
		return err
	}

	var body struct {
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		ProductType string  `json:"product_type"`
		Restaurant  string  `json:"restaurant"`
	}
	if err = c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewCreateProductCommand(
		claims, body.Name, body.Price, body.ProductType, body.Restaurant,
	)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	created, err := s.createProductHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	productType := created.ProductType()
	return c.JSON(http.StatusCreated, ProductResponse{
		ID:          created.ID().String(),
		Name:        created.Name(),
		Price:       created.Price(),
		ProductType: &productType,
		Restaurant:  created.Restaurant(),
		CreatedAt:   created.CreatedAt(),
		UpdatedAt:   created.UpdatedAt(),
	})
}

// UpdateProduct handles PATCH /api/v1/products/:id.
func (s *Server) UpdateProduct(c echo.Context) error {
	claims, err := claimsFromContext(c)
	if err != nil {
		return err
	}

	productID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid product id",
		})
	}

	var body struct {
		Name        *string  `json:"name"`
		Price       *float64 `json:"price"`
		ProductType *string  `json:"product_type"`
		Restaurant  *string  `json:"restaurant"`
	}
	if err = c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewUpdateProductCommand(
		claims, productID, body.Name, body.Price, body.ProductType, body.Restaurant,
	)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	updated, err := s.updateProductHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	productType := updated.ProductType()
	return c.JSON(http.StatusOK, ProductResponse{
		ID:          updated.ID().String(),
		Name:        updated.Name(),
		Price:       updated.Price(),
		ProductType: &productType,
		Restaurant:  updated.Restaurant(),
		CreatedAt:   updated.CreatedAt(),
		UpdatedAt:   updated.UpdatedAt(),
	})
}

// GetProduct handles GET /api/v1/products/:id.
func (s *Server) GetProduct(c echo.Context) error {
	claims, err := claimsFromContext(c)
	if err != nil {
		return err
	}

	productID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid product id",
		})
	}

	query, err := queries.NewGetProductQuery(claims, productID)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	result, err := s.getProductHandler.Handle(c.Request().Context(), query)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	return c.JSON(http.StatusOK, productFromReadModel(result))
}

// ListProducts handles GET /api/v1/products with optional name,
// product_type, restaurant and price_order filters.
func (s *Server) ListProducts(c echo.Context) error {
	claims, err := claimsFromContext(c)
	if err != nil {
		return err
	}

	var name, productType, restaurant *string
	if raw := c.QueryParam("name"); raw != "" {
		name = &raw
	}
	if raw := c.QueryParam("product_type"); raw != "" {
		productType = &raw
	}
	if raw := c.QueryParam("restaurant"); raw != "" {
		restaurant = &raw
	}

	query, err := queries.NewListProductsQuery(
		claims, name, productType, restaurant,
		queries.PriceOrder(c.QueryParam("price_order")),
	)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	results, err := s.listProductsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		code, resp := errorJSON(err)
		return c.JSON(code, resp)
	}

	response := make([]ProductResponse, len(results))
	for i, result := range results {
		response[i] = productFromReadModel(result)
	}

	return c.JSON(http.StatusOK, response)
}
