package controller_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/freshmarket/commerce-api/app/controller"
	"github.com/freshmarket/commerce-api/app/event"
	"github.com/freshmarket/commerce-api/app/repository"
	"github.com/freshmarket/commerce-api/app/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
)

const (
	findOrderByIDQuery  = `(?s)SELECT id, order_number, customer_id, status, payment_method, payment_status,\s+received_type, total_price, note, created_at, updated_at\s+FROM orders WHERE id = \?`
	listOrderItemsQuery = `(?s)SELECT id, order_id, product_id, quantity, price, created_at, updated_at\s+FROM order_items WHERE order_id = \?`
	updateOrderQuery    = `(?s)UPDATE orders SET\s+status = \?,\s+payment_method = \?,\s+payment_status = \?,\s+received_type = \?,\s+total_price = \?,\s+note = \?,\s+updated_at = \?\s+WHERE id = \?`
)

var orderItemColumns = []string{"id", "order_id", "product_id", "quantity", "price", "created_at", "updated_at"}

var orderColumns = []string{
	"id",
	"order_number",
	"customer_id",
	"status",
	"payment_method",
	"payment_status",
	"received_type",
	"total_price",
	"note",
	"created_at",
	"updated_at",
}

type dropPublisher struct{}

func (dropPublisher) PublishOrderCreated(ctx context.Context, evt event.OrderCreatedEvent) error {
	return nil
}

type orderFixture struct {
	controller *controller.OrderController
	mock       sqlmock.Sqlmock
}

func newOrderControllerWithMock(t *testing.T) (*orderFixture, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	orderService := service.NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewOrderItemRepository(db),
		repository.NewShipmentRepository(db),
		dropPublisher{},
	)

	return &orderFixture{
		controller: controller.NewOrderController(orderService),
		mock:       mock,
	}, func() { _ = db.Close() }
}

func (f *orderFixture) orderRow(note any) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(orderColumns).
		AddRow(10, "b7a1", 3, 1, 2, 2, 2, int64(50000), note, now, now)
}

func TestUpdateOrder_EmptyNoteClearsStoredNote(t *testing.T) {
	f, cleanup := newOrderControllerWithMock(t)
	defer cleanup()

	f.mock.ExpectQuery(findOrderByIDQuery).
		WithArgs(uint64(10)).
		WillReturnRows(f.orderRow("call ahead"))
	f.mock.ExpectQuery(listOrderItemsQuery).
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows(orderItemColumns))
	f.mock.ExpectQuery(findOrderByIDQuery).
		WithArgs(uint64(10)).
		WillReturnRows(f.orderRow("call ahead"))
	f.mock.ExpectExec(updateOrderQuery).
		WithArgs(2, 2, 2, 2, int64(50000), nil, sqlmock.AnyArg(), uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req, rec := newJSONRequest(t, http.MethodPut, "/api/orders/10", map[string]any{
		"status": 2,
		"note":   "",
	})
	ctx := echo.New().NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("10")

	if err := f.controller.UpdateOrder(ctx); err != nil {
		t.Fatalf("UpdateOrder returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["note"] != nil {
		t.Fatalf("note should be cleared, got %v", body["note"])
	}

	if err := f.mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateOrder_OmittedFieldsKeepStoredValues(t *testing.T) {
	f, cleanup := newOrderControllerWithMock(t)
	defer cleanup()

	f.mock.ExpectQuery(findOrderByIDQuery).
		WithArgs(uint64(10)).
		WillReturnRows(f.orderRow("leave at door"))
	f.mock.ExpectQuery(listOrderItemsQuery).
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows(orderItemColumns))
	f.mock.ExpectQuery(findOrderByIDQuery).
		WithArgs(uint64(10)).
		WillReturnRows(f.orderRow("leave at door"))
	f.mock.ExpectExec(updateOrderQuery).
		WithArgs(3, 2, 2, 2, int64(50000), "leave at door", sqlmock.AnyArg(), uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req, rec := newJSONRequest(t, http.MethodPut, "/api/orders/10", map[string]any{
		"status": 3,
	})
	ctx := echo.New().NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("10")

	if err := f.controller.UpdateOrder(ctx); err != nil {
		t.Fatalf("UpdateOrder returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["payment_method"] != float64(2) || body["note"] != "leave at door" {
		t.Fatalf("stored values must survive a partial update, got %v", body)
	}

	if err := f.mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateOrder_ExplicitFieldsOverrideStoredValues(t *testing.T) {
	f, cleanup := newOrderControllerWithMock(t)
	defer cleanup()

	f.mock.ExpectQuery(findOrderByIDQuery).
		WithArgs(uint64(10)).
		WillReturnRows(f.orderRow(nil))
	f.mock.ExpectQuery(listOrderItemsQuery).
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows(orderItemColumns))
	f.mock.ExpectQuery(findOrderByIDQuery).
		WithArgs(uint64(10)).
		WillReturnRows(f.orderRow(nil))
	f.mock.ExpectExec(updateOrderQuery).
		WithArgs(2, 1, 3, 2, int64(50000), "ring twice", sqlmock.AnyArg(), uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req, rec := newJSONRequest(t, http.MethodPut, "/api/orders/10", map[string]any{
		"status":         2,
		"payment_method": 1,
		"payment_status": 3,
		"note":           "ring twice",
	})
	ctx := echo.New().NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("10")

	if err := f.controller.UpdateOrder(ctx); err != nil {
		t.Fatalf("UpdateOrder returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if err := f.mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
