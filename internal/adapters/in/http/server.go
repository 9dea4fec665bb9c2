// Package http exposes the order workflow over the service's REST API. Routes
// under /api/v1 require a platform-issued bearer token; the workflow decides
// per operation whether the authenticated user may act.
package http

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"trackorder/internal/core/application/usecases/commands"
	"trackorder/internal/core/application/usecases/queries"
	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/core/domain/model/order"
	"trackorder/internal/core/domain/services"
	"trackorder/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires HTTP requests to application command and query handlers.
type Server struct {
	placeOrderHandler          commands.PlaceOrderCommandHandler
	confirmDepositHandler      commands.ConfirmDepositPaymentCommandHandler
	uploadDemoHandler          commands.UploadDemoCommandHandler
	approveDemoHandler         commands.ApproveDemoCommandHandler
	requestRevisionHandler     commands.RequestRevisionCommandHandler
	confirmFinalPaymentHandler commands.ConfirmFinalPaymentCommandHandler
	uploadFinalFilesHandler    commands.UploadFinalFilesCommandHandler
	confirmReceiptHandler      commands.ConfirmReceiptCommandHandler
	uploadReferenceHandler     commands.UploadReferenceTracksCommandHandler

	getOrderDetailsHandler   queries.GetOrderDetailsQueryHandler
	getProducerOrdersHandler queries.GetProducerOrdersQueryHandler
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler
	getDownloadURLHandler    queries.GetDownloadURLQueryHandler
}

// NewServer creates the HTTP server with the required handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	confirmDepositHandler commands.ConfirmDepositPaymentCommandHandler,
	uploadDemoHandler commands.UploadDemoCommandHandler,
	approveDemoHandler commands.ApproveDemoCommandHandler,
	requestRevisionHandler commands.RequestRevisionCommandHandler,
	confirmFinalPaymentHandler commands.ConfirmFinalPaymentCommandHandler,
	uploadFinalFilesHandler commands.UploadFinalFilesCommandHandler,
	confirmReceiptHandler commands.ConfirmReceiptCommandHandler,
	uploadReferenceHandler commands.UploadReferenceTracksCommandHandler,
	getOrderDetailsHandler queries.GetOrderDetailsQueryHandler,
	getProducerOrdersHandler queries.GetProducerOrdersQueryHandler,
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler,
	getDownloadURLHandler queries.GetDownloadURLQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:          placeOrderHandler,
		confirmDepositHandler:      confirmDepositHandler,
		uploadDemoHandler:          uploadDemoHandler,
		approveDemoHandler:         approveDemoHandler,
		requestRevisionHandler:     requestRevisionHandler,
		confirmFinalPaymentHandler: confirmFinalPaymentHandler,
		uploadFinalFilesHandler:    uploadFinalFilesHandler,
		confirmReceiptHandler:      confirmReceiptHandler,
		uploadReferenceHandler:     uploadReferenceHandler,
		getOrderDetailsHandler:     getOrderDetailsHandler,
		getProducerOrdersHandler:   getProducerOrdersHandler,
		getCustomerOrdersHandler:   getCustomerOrdersHandler,
		getDownloadURLHandler:      getDownloadURLHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance. The health
// check stays outside the authenticated group.
func (s *Server) RegisterRoutes(e *echo.Echo, tokenSecret []byte) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", AuthMiddleware(tokenSecret))
	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/deposit-confirmed", s.ConfirmDeposit)
	api.POST("/orders/:id/demo", s.UploadDemo)
	api.POST("/orders/:id/approve", s.ApproveDemo)
	api.POST("/orders/:id/revision", s.RequestRevision)
	api.POST("/orders/:id/final-payment-confirmed", s.ConfirmFinalPayment)
	api.POST("/orders/:id/final-files", s.UploadFinalFiles)
	api.POST("/orders/:id/receipt", s.ConfirmReceipt)
	api.POST("/orders/:id/reference-tracks", s.UploadReferenceTracks)
	api.GET("/orders/:id/files/:fileId/download-url", s.GetDownloadURL)
	api.GET("/orders/:id/demo/download-url", s.GetDemoDownloadURL)
	api.GET("/producer/orders", s.GetProducerOrders)
	api.GET("/customer/orders", s.GetCustomerOrders)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type placeOrderRequest struct {
	OrderID      int64    `json:"order_id"`
	ProducerID   int64    `json:"producer_id"`
	CustomerID   int64    `json:"customer_id"`
	ServiceType  string   `json:"service_type"`
	Genres       []string `json:"genres"`
	BPM          int      `json:"bpm"`
	Mood         string   `json:"mood"`
	TrackLength  string   `json:"track_length"`
	Instructions string   `json:"instructions"`
	Addons       []string `json:"addons"`
}

// PlaceOrder handles POST /api/v1/orders. Called by the platform's checkout
// hook once the deposit order exists.
func (s *Server) PlaceOrder(c echo.Context) error {
	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, newErrorBody(http.StatusBadRequest, "invalid request body"))
	}

	orderID, err := kernel.NewOrderID(req.OrderID)
	if err != nil {
		return fail(c, err)
	}
	producerID, err := kernel.NewUserID(req.ProducerID)
	if err != nil {
		return fail(c, err)
	}
	customerID, err := kernel.NewUserID(req.CustomerID)
	if err != nil {
		return fail(c, err)
	}

	cmd, err := commands.NewPlaceOrderCommand(orderID, producerID, customerID,
		order.CommissionSpec{
			ServiceType:  req.ServiceType,
			Genres:       req.Genres,
			BPM:          req.BPM,
			Mood:         req.Mood,
			TrackLength:  req.TrackLength,
			Instructions: req.Instructions,
		},
		req.Addons,
	)
	if err != nil {
		return fail(c, err)
	}

	if err = s.placeOrderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusCreated, map[string]int64{"order_id": req.OrderID})
}

// ConfirmDeposit handles POST /api/v1/orders/:id/deposit-confirmed. The
// platform calls it when the deposit payment clears; replays are absorbed.
func (s *Server) ConfirmDeposit(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return fail(c, err)
	}

	cmd, err := commands.NewConfirmDepositPaymentCommand(orderID)
	if err != nil {
		return fail(c, err)
	}

	if err = s.confirmDepositHandler.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, nil)
}

// UploadDemo handles POST /api/v1/orders/:id/demo with a multipart "file"
// part.
func (s *Server) UploadDemo(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	actorID, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, newErrorBody(http.StatusUnauthorized, err.Error()))
	}

	header, err := c.FormFile("file")
	if err != nil {
		return fail(c, errs.NewValueIsRequiredError("file"))
	}
	file, err := header.Open()
	if err != nil {
		return fail(c, err)
	}
	defer file.Close()

	cmd, err := commands.NewUploadDemoCommand(orderID, actorID, header.Filename, file)
	if err != nil {
		return fail(c, err)
	}

	if err = s.uploadDemoHandler.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, nil)
}

// ApproveDemo handles POST /api/v1/orders/:id/approve.
func (s *Server) ApproveDemo(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	actorID, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, newErrorBody(http.StatusUnauthorized, err.Error()))
	}

	cmd, err := commands.NewApproveDemoCommand(orderID, actorID)
	if err != nil {
		return fail(c, err)
	}

	if err = s.approveDemoHandler.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, nil)
}

type requestRevisionRequest struct {
	Feedback string `json:"feedback"`
}

// RequestRevision handles POST /api/v1/orders/:id/revision.
func (s *Server) RequestRevision(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	actorID, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, newErrorBody(http.StatusUnauthorized, err.Error()))
	}

	var req requestRevisionRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, newErrorBody(http.StatusBadRequest, "invalid request body"))
	}

	cmd, err := commands.NewRequestRevisionCommand(orderID, actorID, req.Feedback)
	if err != nil {
		return fail(c, err)
	}

	if err = s.requestRevisionHandler.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, nil)
}

// ConfirmFinalPayment handles POST /api/v1/orders/:id/final-payment-confirmed.
// The platform calls it when the balance order is paid.
func (s *Server) ConfirmFinalPayment(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return fail(c, err)
	}

	cmd, err := commands.NewConfirmFinalPaymentCommand(orderID)
	if err != nil {
		return fail(c, err)
	}

	if err = s.confirmFinalPaymentHandler.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, nil)
}

type uploadFilesResponse struct {
	Delivered []deliveredFileResponse `json:"delivered,omitempty"`
	Stored    []deliveredFileResponse `json:"stored,omitempty"`
	Rejected  []string                `json:"rejected,omitempty"`
}

type deliveredFileResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UploadFinalFiles handles POST /api/v1/orders/:id/final-files with multipart
// "files" parts. A delivery may partially succeed; rejected file names are
// reported alongside the accepted ones.
func (s *Server) UploadFinalFiles(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	actorID, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, newErrorBody(http.StatusUnauthorized, err.Error()))
	}

	uploads, closeAll, err := formUploads(c)
	if err != nil {
		return fail(c, err)
	}
	defer closeAll()

	cmd, err := commands.NewUploadFinalFilesCommand(orderID, actorID, uploads)
	if err != nil {
		return fail(c, err)
	}

	result, err := s.uploadFinalFilesHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return fail(c, err)
	}

	resp := uploadFilesResponse{Rejected: result.Rejected}
	for _, f := range result.Delivered {
		resp.Delivered = append(resp.Delivered, deliveredFileResponse{ID: f.ID.String(), Name: f.Name})
	}
	return ok(c, http.StatusOK, resp)
}

// ConfirmReceipt handles POST /api/v1/orders/:id/receipt.
func (s *Server) ConfirmReceipt(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	actorID, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, newErrorBody(http.StatusUnauthorized, err.Error()))
	}

	cmd, err := commands.NewConfirmReceiptCommand(orderID, actorID)
	if err != nil {
		return fail(c, err)
	}

	if err = s.confirmReceiptHandler.Handle(c.Request().Context(), cmd); err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, nil)
}

// UploadReferenceTracks handles POST /api/v1/orders/:id/reference-tracks with
// multipart "files" parts.
func (s *Server) UploadReferenceTracks(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	actorID, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, newErrorBody(http.StatusUnauthorized, err.Error()))
	}

	uploads, closeAll, err := formUploads(c)
	if err != nil {
		return fail(c, err)
	}
	defer closeAll()

	cmd, err := commands.NewUploadReferenceTracksCommand(orderID, actorID, uploads)
	if err != nil {
		return fail(c, err)
	}

	result, err := s.uploadReferenceHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return fail(c, err)
	}

	resp := uploadFilesResponse{Rejected: result.Rejected}
	for _, f := range result.Stored {
		resp.Stored = append(resp.Stored, deliveredFileResponse{ID: f.ID.String(), Name: f.Name})
	}
	return ok(c, http.StatusOK, resp)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	actorID, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, newErrorBody(http.StatusUnauthorized, err.Error()))
	}

	query, err := queries.NewGetOrderDetailsQuery(orderID, actorID)
	if err != nil {
		return fail(c, err)
	}

	details, err := s.getOrderDetailsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, details)
}

// GetProducerOrders handles GET /api/v1/producer/orders, listing the
// authenticated user's orders as a producer.
func (s *Server) GetProducerOrders(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, newErrorBody(http.StatusUnauthorized, err.Error()))
	}

	query, err := queries.NewGetProducerOrdersQuery(actorID)
	if err != nil {
		return fail(c, err)
	}

	orders, err := s.getProducerOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, orders)
}

// GetCustomerOrders handles GET /api/v1/customer/orders, listing the
// authenticated user's orders as a customer.
func (s *Server) GetCustomerOrders(c echo.Context) error {
	actorID, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, newErrorBody(http.StatusUnauthorized, err.Error()))
	}

	query, err := queries.NewGetCustomerOrdersQuery(actorID)
	if err != nil {
		return fail(c, err)
	}

	orders, err := s.getCustomerOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, orders)
}

// GetDownloadURL handles GET /api/v1/orders/:id/files/:fileId/download-url.
// The "kind" query parameter selects between final deliverables (the default)
// and reference material.
func (s *Server) GetDownloadURL(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	actorID, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, newErrorBody(http.StatusUnauthorized, err.Error()))
	}
	fileID, err := kernel.FileIDFromString(c.Param("fileId"))
	if err != nil {
		return fail(c, err)
	}
	kind, err := fileKindParam(c)
	if err != nil {
		return fail(c, err)
	}

	query, err := queries.NewGetDownloadURLQuery(orderID, kind, fileID, actorID)
	if err != nil {
		return fail(c, err)
	}

	link, err := s.getDownloadURLHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, link)
}

// GetDemoDownloadURL handles GET /api/v1/orders/:id/demo/download-url. An
// order carries at most one demo, so no file id appears in the path.
func (s *Server) GetDemoDownloadURL(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return fail(c, err)
	}
	actorID, err := actor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, newErrorBody(http.StatusUnauthorized, err.Error()))
	}

	query, err := queries.NewGetDownloadURLQuery(orderID, services.DemoFile, kernel.FileID{}, actorID)
	if err != nil {
		return fail(c, err)
	}

	link, err := s.getDownloadURLHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, link)
}

func fileKindParam(c echo.Context) (services.FileKind, error) {
	switch c.QueryParam("kind") {
	case "", "final":
		return services.FinalFile, nil
	case "reference":
		return services.ReferenceFile, nil
	case "demo":
		return services.DemoFile, nil
	default:
		return "", errs.NewValueIsInvalidError("kind")
	}
}

func orderIDParam(c echo.Context) (kernel.OrderID, error) {
	raw, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return kernel.OrderID{}, errs.NewValueIsInvalidError("orderId")
	}
	return kernel.NewOrderID(raw)
}

// formUploads collects all multipart "files" parts into command uploads. The
// returned closer releases every opened part.
func formUploads(c echo.Context) ([]commands.FileUpload, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, errs.NewValueIsRequiredError("files")
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return nil, nil, errs.NewValueIsRequiredError("files")
	}

	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	uploads := make([]commands.FileUpload, 0, len(headers))
	for _, header := range headers {
		file, openErr := header.Open()
		if openErr != nil {
			closeAll()
			return nil, nil, openErr
		}
		opened = append(opened, file)
		uploads = append(uploads, commands.FileUpload{Name: header.Filename, Content: io.Reader(file)})
	}

	return uploads, closeAll, nil
}
