// Package http exposes the order-management use cases over a JSON API.
// It coordinates between HTTP handlers and application use cases; the acting
// user's identity and role arrive from the authentication collaborator via
// the X-User-Id and X-User-Role headers.
package http

import (
	"errors"
	"net/http"
	"time"

	"garmentflow/internal/core/application/usecases/commands"
	"garmentflow/internal/core/application/usecases/queries"
	"garmentflow/internal/core/domain/model/kernel"
	"garmentflow/internal/core/domain/model/order"
	"garmentflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	headerUserID   = "X-User-Id"
	headerUserRole = "X-User-Role"
)

// Server wires the HTTP routes to the command and query handlers.
type Server struct {
	// Command handlers
	createOrderHandler      commands.CreateOrderCommandHandler
	submitTransitionHandler commands.SubmitTransitionCommandHandler
	claimDepartmentHandler  commands.ClaimDepartmentCommandHandler
	markUrgentHandler       commands.MarkUrgentCommandHandler
	recordPaymentHandler    commands.RecordPaymentCommandHandler
	setSLABufferHandler     commands.SetSLABufferCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	getActionMapHandler    queries.GetActionMapQueryHandler
	getSLAStatusHandler    queries.GetSLAStatusQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	submitTransitionHandler commands.SubmitTransitionCommandHandler,
	claimDepartmentHandler commands.ClaimDepartmentCommandHandler,
	markUrgentHandler commands.MarkUrgentCommandHandler,
	recordPaymentHandler commands.RecordPaymentCommandHandler,
	setSLABufferHandler commands.SetSLABufferCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getActionMapHandler queries.GetActionMapQueryHandler,
	getSLAStatusHandler queries.GetSLAStatusQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		submitTransitionHandler: submitTransitionHandler,
		claimDepartmentHandler:  claimDepartmentHandler,
		markUrgentHandler:       markUrgentHandler,
		recordPaymentHandler:    recordPaymentHandler,
		setSLABufferHandler:     setSLABufferHandler,
		getOrderHandler:         getOrderHandler,
		getActionMapHandler:     getActionMapHandler,
		getSLAStatusHandler:     getSLAStatusHandler,
		getActiveOrdersHandler:  getActiveOrdersHandler,
	}
}

// RegisterRoutes attaches all order routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/orders", s.CreateOrder)
	e.GET("/api/v1/orders/active", s.GetActiveOrders)
	e.GET("/api/v1/orders/:orderId", s.GetOrder)
	e.GET("/api/v1/orders/:orderId/actions", s.GetActionMap)
	e.GET("/api/v1/orders/:orderId/sla", s.GetSLAStatus)
	e.POST("/api/v1/orders/:orderId/transitions", s.SubmitTransition)
	e.POST("/api/v1/orders/:orderId/claims", s.ClaimDepartment)
	e.POST("/api/v1/orders/:orderId/urgent", s.MarkUrgent)
	e.POST("/api/v1/orders/:orderId/payments", s.RecordPayment)
	e.PUT("/api/v1/orders/:orderId/sla-buffer", s.SetSLABuffer)
}

// CreateOrder handles POST /api/v1/orders - opens a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, req.JobID, actor, order.BlockType(req.BlockType),
		req.DueDate, req.TotalPrice, req.PaidAmount,
		order.PaymentMethod(req.PaymentMethod), req.IsUrgent,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// SubmitTransition handles POST /api/v1/orders/:orderId/transitions - drives
// an order to a new status.
func (s *Server) SubmitTransition(ctx echo.Context) error {
	orderID, actor, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return writeError(ctx, err)
	}

	payload := order.TransitionPayload{
		Pass:       req.Pass,
		ReturnTo:   order.Role(req.ReturnTo),
		Reason:     req.Reason,
		TrackingNo: req.TrackingNo,
		Note:       req.Note,
	}

	cmd, err := commands.NewSubmitTransitionCommand(orderID, actor, target, payload)
	if err != nil {
		return writeError(ctx, err)
	}

	snap, err := s.submitTransitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromSnapshot(snap))
}

// ClaimDepartment handles POST /api/v1/orders/:orderId/claims - takes a
// department's claim slot on the order.
func (s *Server) ClaimDepartment(ctx echo.Context) error {
	orderID, actor, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req ClaimRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	cmd, err := commands.NewClaimDepartmentCommand(orderID, actor, order.Department(req.Department))
	if err != nil {
		return writeError(ctx, err)
	}

	snap, err := s.claimDepartmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromSnapshot(snap))
}

// MarkUrgent handles POST /api/v1/orders/:orderId/urgent - flags the order urgent.
func (s *Server) MarkUrgent(ctx echo.Context) error {
	orderID, actor, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req MarkUrgentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	cmd, err := commands.NewMarkUrgentCommand(orderID, actor, req.Note)
	if err != nil {
		return writeError(ctx, err)
	}

	snap, err := s.markUrgentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromSnapshot(snap))
}

// RecordPayment handles POST /api/v1/orders/:orderId/payments - records a
// payment against the order.
func (s *Server) RecordPayment(ctx echo.Context) error {
	orderID, actor, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req RecordPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	cmd, err := commands.NewRecordPaymentCommand(orderID, actor, req.Amount, order.PaymentMethod(req.PaymentMethod))
	if err != nil {
		return writeError(ctx, err)
	}

	snap, err := s.recordPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromSnapshot(snap))
}

// SetSLABuffer handles PUT /api/v1/orders/:orderId/sla-buffer - adjusts the
// order's SLA buffer days.
func (s *Server) SetSLABuffer(ctx echo.Context) error {
	orderID, actor, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req SetSLABufferRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	cmd, err := commands.NewSetSLABufferCommand(orderID, actor, req.Days)
	if err != nil {
		return writeError(ctx, err)
	}

	snap, err := s.setSLABufferHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromSnapshot(snap))
}

// GetOrder handles GET /api/v1/orders/:orderId - returns the order with the
// actor's action map and the SLA report.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, actor, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderDetailResponse{
		Order:   orderFromSnapshot(resp.Order),
		Actions: resp.ActionMap,
		SLA:     slaFromReport(resp.SLA),
	})
}

// GetActionMap handles GET /api/v1/orders/:orderId/actions - returns the
// actor's permitted actions on the order.
func (s *Server) GetActionMap(ctx echo.Context) error {
	orderID, actor, err := orderAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetActionMapQuery(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	actionMap, err := s.getActionMapHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, actionMap)
}

// GetSLAStatus handles GET /api/v1/orders/:orderId/sla - returns per-department
// deadlines and bands.
func (s *Server) GetSLAStatus(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetSLAStatusQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	report, err := s.getSLAStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, slaFromReport(report))
}

// GetActiveOrders handles GET /api/v1/orders/active - returns all orders still
// moving through the pipeline, urgent first.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	rows, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]ActiveOrderResponse, len(rows))
	for i, row := range rows {
		response[i] = ActiveOrderResponse{
			ID:        row.ID.String(),
			JobID:     row.JobID,
			Status:    row.Status.String(),
			SubStatus: string(row.SubStatus),
			IsUrgent:  row.IsUrgent,
			DueDate:   row.DueDate,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func orderAndActor(ctx echo.Context) (kernel.UUID, order.Actor, error) {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return kernel.UUID{}, order.Actor{}, err
	}

	actor, err := actorFromRequest(ctx)
	if err != nil {
		return kernel.UUID{}, order.Actor{}, err
	}

	return orderID, actor, nil
}

func orderIDFromPath(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("orderId"))
}

func actorFromRequest(ctx echo.Context) (order.Actor, error) {
	userID, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerUserID))
	if err != nil {
		return order.Actor{}, errors.New("missing or invalid " + headerUserID + " header")
	}

	return order.NewActor(userID, order.Role(ctx.Request().Header.Get(headerUserRole)))
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

// writeError maps domain error kinds onto HTTP statuses. Validation failures
// are client errors, authorization failures are 403, and claim or version
// races surface as 409 so the client can reload and retry.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrNotClaimed),
		errors.Is(err, errs.ErrAlreadyClaimed),
		errors.Is(err, errs.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrJobIDIsRequired),
		errors.Is(err, commands.ErrDueDateIsRequired):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}

func orderFromSnapshot(snap order.Snapshot) OrderResponse {
	claims := make(map[string]ClaimSlotResponse, len(snap.Claims))
	for department, rec := range snap.Claims {
		slot := ClaimSlotResponse{Finished: rec.Finished}
		if rec.Claimant != nil {
			claimantID := rec.Claimant.String()
			slot.ClaimantID = &claimantID
		}
		claims[department.String()] = slot
	}

	return OrderResponse{
		ID:               snap.ID.String(),
		JobID:            snap.JobID,
		SalesID:          snap.SalesID.String(),
		Status:           snap.Status.String(),
		SubStatus:        string(snap.SubStatus),
		BlockType:        string(snap.BlockType),
		IsUrgent:         snap.IsUrgent,
		UrgentNote:       snap.UrgentNote,
		CancelReason:     snap.CancelReason,
		PurchasingReason: snap.PurchasingReason,
		TrackingNo:       snap.TrackingNo,
		TotalPrice:       snap.TotalPrice,
		PaidAmount:       snap.PaidAmount,
		BalanceDue:       order.BalanceDueFor(snap.TotalPrice, snap.PaidAmount),
		PaymentMethod:    snap.PaymentMethod.String(),
		PaymentState:     order.PaymentStateFor(snap.TotalPrice, snap.PaidAmount).String(),
		SLABufferDays:    snap.SLABufferDays,
		ReworkCount:      snap.ReworkCount,
		Claims:           claims,
		DueDate:          snap.DueDate,
		CreatedAt:        snap.CreatedAt,
		UpdatedAt:        snap.UpdatedAt,
		Version:          snap.Version,
	}
}

func slaFromReport(report order.SLAReport) map[string]SLAEntryResponse {
	out := make(map[string]SLAEntryResponse, len(report))
	for department, sla := range report {
		out[department.String()] = SLAEntryResponse{
			Deadline:    sla.Deadline,
			Band:        string(sla.Band),
			IsCompleted: sla.IsCompleted,
		}
	}
	return out
}

// ErrorResponse is the JSON error body for all failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	JobID         string    `json:"jobId"`
	BlockType     string    `json:"blockType"`
	DueDate       time.Time `json:"dueDate"`
	TotalPrice    int64     `json:"totalPrice"`
	PaidAmount    int64     `json:"paidAmount"`
	PaymentMethod string    `json:"paymentMethod"`
	IsUrgent      bool      `json:"isUrgent"`
}

// CreateOrderResponse carries the generated order identifier.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// TransitionRequest is the body of POST /api/v1/orders/:orderId/transitions.
type TransitionRequest struct {
	Target     string `json:"target"`
	Pass       *bool  `json:"pass,omitempty"`
	ReturnTo   string `json:"returnTo,omitempty"`
	Reason     string `json:"reason,omitempty"`
	TrackingNo string `json:"trackingNo,omitempty"`
	Note       string `json:"note,omitempty"`
}

// ClaimRequest is the body of POST /api/v1/orders/:orderId/claims.
type ClaimRequest struct {
	Department string `json:"department"`
}

// MarkUrgentRequest is the body of POST /api/v1/orders/:orderId/urgent.
type MarkUrgentRequest struct {
	Note string `json:"note"`
}

// RecordPaymentRequest is the body of POST /api/v1/orders/:orderId/payments.
type RecordPaymentRequest struct {
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
}

// SetSLABufferRequest is the body of PUT /api/v1/orders/:orderId/sla-buffer.
type SetSLABufferRequest struct {
	Days int `json:"days"`
}

// OrderResponse is the full JSON view of one order.
type OrderResponse struct {
	ID               string                       `json:"id"`
	JobID            string                       `json:"jobId"`
	SalesID          string                       `json:"salesId"`
	Status           string                       `json:"status"`
	SubStatus        string                       `json:"subStatus"`
	BlockType        string                       `json:"blockType"`
	IsUrgent         bool                         `json:"isUrgent"`
	UrgentNote       string                       `json:"urgentNote,omitempty"`
	CancelReason     string                       `json:"cancelReason,omitempty"`
	PurchasingReason string                       `json:"purchasingReason,omitempty"`
	TrackingNo       string                       `json:"trackingNo,omitempty"`
	TotalPrice       int64                        `json:"totalPrice"`
	PaidAmount       int64                        `json:"paidAmount"`
	BalanceDue       int64                        `json:"balanceDue"`
	PaymentMethod    string                       `json:"paymentMethod"`
	PaymentState     string                       `json:"paymentState"`
	SLABufferDays    int                          `json:"slaBufferDays"`
	ReworkCount      int                          `json:"reworkCount"`
	Claims           map[string]ClaimSlotResponse `json:"claims"`
	DueDate          time.Time                    `json:"dueDate"`
	CreatedAt        time.Time                    `json:"createdAt"`
	UpdatedAt        time.Time                    `json:"updatedAt"`
	Version          int64                        `json:"version"`
}

// ClaimSlotResponse is one department claim slot in an order response.
type ClaimSlotResponse struct {
	ClaimantID *string `json:"claimantId"`
	Finished   bool    `json:"finished"`
}

// OrderDetailResponse combines the order with its derived views.
type OrderDetailResponse struct {
	Order   OrderResponse               `json:"order"`
	Actions order.ActionMap             `json:"actions"`
	SLA     map[string]SLAEntryResponse `json:"sla"`
}

// SLAEntryResponse is one department's evaluated deadline state.
type SLAEntryResponse struct {
	Deadline    time.Time `json:"deadline"`
	Band        string    `json:"band"`
	IsCompleted bool      `json:"isCompleted"`
}

// ActiveOrderResponse is one row of the dashboard list.
type ActiveOrderResponse struct {
	ID        string    `json:"id"`
	JobID     string    `json:"jobId"`
	Status    string    `json:"status"`
	SubStatus string    `json:"subStatus"`
	IsUrgent  bool      `json:"isUrgent"`
	DueDate   time.Time `json:"dueDate"`
}
