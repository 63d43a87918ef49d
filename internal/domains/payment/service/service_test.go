package service_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"wanderwise/config"
	kafkaMocks "wanderwise/infras/kafka/mocks"
	"wanderwise/infras/otel/mocks"
	bookingMocks "wanderwise/internal/domains/booking/mocks"
	bookingModel "wanderwise/internal/domains/booking/model"
	notifModel "wanderwise/internal/domains/notification/model"
	paymentMocks "wanderwise/internal/domains/payment/mocks"
	"wanderwise/internal/domains/payment/model"
	"wanderwise/internal/domains/payment/model/dto"
	"wanderwise/internal/domains/payment/repository"
	"wanderwise/internal/domains/payment/service"
	cacheMocks "wanderwise/shared/cache/mocks"
	"wanderwise/shared/constant"
	gDto "wanderwise/shared/dto"
	"wanderwise/shared/failure"
)

type paymentFixture struct {
	repo     *paymentMocks.MockPayment
	bookings *bookingMocks.MockBooking
	cache    *cacheMocks.MockRedisCache
	kafka    *kafkaMocks.MockClient
	svc      service.Payment
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.Kafka.BookingEventTopic = "booking-events"

	f := &paymentFixture{
		repo:     paymentMocks.NewMockPayment(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
	}

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.bookings, cfg, f.cache, mocks.NewOtel(), f.kafka)

	return f
}

func payerCtx() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, "traveler@example.com")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)
}

func pendingPaymentBooking() bookingModel.BookingRequest {
	return bookingModel.BookingRequest{
		ID:            "booking-1",
		Code:          "BK-123456",
		UserID:        "user-1",
		UserEmail:     "traveler@example.com",
		TravelerName:  "Asha Rao",
		TravelerEmail: "traveler@example.com",
		Destination:   "Bali",
		Country:       "Indonesia",
		TotalAmount:   3000,
		Currency:      "INR",
		Status:        bookingModel.StatusPendingPayment,
	}
}

func cardRequest() dto.SettlePaymentRequest {
	return dto.SettlePaymentRequest{
		BookingID:      "booking-1",
		Method:         model.MethodCard,
		CardHolderName: "Asha Traveler",
		CardNumber:     "4111 1111 1111 1111",
	}
}

func TestPaymentService_Settle(t *testing.T) {
	t.Run("card payment stores only the last four digits", func(t *testing.T) {
		f := newPaymentFixture(t)

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingPaymentBooking(), nil)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		f.repo.EXPECT().
			Settle(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, payment model.PaymentRecord, notifications []notifModel.Notification) error {
				assert.True(t, strings.HasPrefix(payment.Code, "PMT-"))
				assert.Len(t, payment.Code, 10)
				assert.Equal(t, "booking-1", payment.BookingRecordID)
				assert.Equal(t, "BK-123456", payment.BookingCode)
				assert.Equal(t, "user-1", payment.UserID)
				assert.Equal(t, "Asha Rao", payment.TravelerName)
				assert.Equal(t, "traveler@example.com", payment.TravelerEmail)
				assert.InDelta(t, 3000, payment.Amount, 0.001)
				assert.Equal(t, "INR", payment.Currency)
				assert.Equal(t, model.StatusSuccess, payment.Status)

				if assert.NotNil(t, payment.CardLast4) {
					assert.Equal(t, "1111", *payment.CardLast4)
				}
				if assert.NotNil(t, payment.CardHolderName) {
					assert.Equal(t, "Asha Traveler", *payment.CardHolderName)
				}
				assert.Nil(t, payment.UpiID)
				assert.Nil(t, payment.BankReference)

				if assert.Len(t, notifications, 2) {
					assert.Equal(t, "Payment Successful", notifications[0].Title)
					assert.Equal(t, notifModel.TypePayment, notifications[0].Type)
					assert.Contains(t, notifications[0].Body, payment.Code)

					assert.Equal(t, "Booking Submitted for Approval", notifications[1].Title)
					assert.Equal(t, notifModel.TypeBooking, notifications[1].Type)
					assert.Equal(t, "Your Bali booking (BK-123456) was submitted for admin approval.", notifications[1].Body)
				}

				return nil
			})

		res, err := f.svc.Settle(payerCtx(), cardRequest())
		assert.NoError(t, err)
		assert.Equal(t, model.StatusSuccess, res.Status)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("upi payment keeps the upi id", func(t *testing.T) {
		f := newPaymentFixture(t)

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingPaymentBooking(), nil)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		f.repo.EXPECT().
			Settle(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, payment model.PaymentRecord, _ []notifModel.Notification) error {
				assert.Nil(t, payment.CardLast4)

				if assert.NotNil(t, payment.UpiID) {
					assert.Equal(t, "asha@upi", *payment.UpiID)
				}

				return nil
			})

		_, err := f.svc.Settle(payerCtx(), dto.SettlePaymentRequest{
			BookingID: "booking-1",
			Method:    model.MethodUpi,
			UpiID:     " asha@upi ",
		})
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("missing booking returns not found", func(t *testing.T) {
		f := newPaymentFixture(t)

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(bookingModel.BookingRequest{}, nil)

		_, err := f.svc.Settle(payerCtx(), cardRequest())
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("someone else's booking is forbidden", func(t *testing.T) {
		f := newPaymentFixture(t)

		booking := pendingPaymentBooking()
		booking.UserID = "user-2"

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		_, err := f.svc.Settle(payerCtx(), cardRequest())
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("already settled booking is rejected", func(t *testing.T) {
		f := newPaymentFixture(t)

		booking := pendingPaymentBooking()
		booking.Status = bookingModel.StatusPending

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		_, err := f.svc.Settle(payerCtx(), cardRequest())
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("card holder name is required", func(t *testing.T) {
		f := newPaymentFixture(t)

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingPaymentBooking(), nil)

		req := cardRequest()
		req.CardHolderName = "  "

		_, err := f.svc.Settle(payerCtx(), req)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("bank transfer keeps the reference", func(t *testing.T) {
		f := newPaymentFixture(t)

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingPaymentBooking(), nil)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		f.repo.EXPECT().
			Settle(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, payment model.PaymentRecord, _ []notifModel.Notification) error {
				assert.Nil(t, payment.CardLast4)
				assert.Nil(t, payment.UpiID)

				if assert.NotNil(t, payment.BankReference) {
					assert.Equal(t, "NEFT-998877", *payment.BankReference)
				}

				return nil
			})

		_, err := f.svc.Settle(payerCtx(), dto.SettlePaymentRequest{
			BookingID:     "booking-1",
			Method:        model.MethodBankTransfer,
			BankReference: " NEFT-998877 ",
		})
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("card digit count is enforced", func(t *testing.T) {
		for _, number := range []string{"4111 1111", "41111111111", "41111111111111111111"} {
			f := newPaymentFixture(t)

			f.bookings.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(pendingPaymentBooking(), nil)

			req := cardRequest()
			req.CardNumber = number

			_, err := f.svc.Settle(payerCtx(), req)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err), "card number %q should be rejected", number)
		}
	})

	t.Run("non-digits are stripped before counting", func(t *testing.T) {
		f := newPaymentFixture(t)

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingPaymentBooking(), nil)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		f.repo.EXPECT().
			Settle(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, payment model.PaymentRecord, _ []notifModel.Notification) error {
				if assert.NotNil(t, payment.CardLast4) {
					assert.Equal(t, "4321", *payment.CardLast4)
				}

				return nil
			})

		req := cardRequest()
		req.CardNumber = "4111.1111.1111.4321"

		_, err := f.svc.Settle(payerCtx(), req)
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("upi id needs exactly one @ between handle and provider", func(t *testing.T) {
		for _, upi := range []string{"ashaupi", "asha@@upi", "@upi", "asha@"} {
			f := newPaymentFixture(t)

			f.bookings.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(pendingPaymentBooking(), nil)

			_, err := f.svc.Settle(payerCtx(), dto.SettlePaymentRequest{
				BookingID: "booking-1",
				Method:    model.MethodUpi,
				UpiID:     upi,
			})
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err), "upi id %q should be rejected", upi)
		}
	})

	t.Run("concurrent settlement loses the race gracefully", func(t *testing.T) {
		f := newPaymentFixture(t)

		f.bookings.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingPaymentBooking(), nil)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		f.repo.EXPECT().
			Settle(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(repository.ErrBookingNotSettleable)

		_, err := f.svc.Settle(payerCtx(), cardRequest())
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestPaymentService_GetMine(t *testing.T) {
	t.Run("filters by the caller and sorts by paid_at", func(t *testing.T) {
		f := newPaymentFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError).Times(2)
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		f.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.PaymentRecord, error) {
				assert.Equal(t, model.FieldPaidAt, req.SortBy)
				assert.Equal(t, gDto.SortDirDesc, req.SortDir)

				if assert.Len(t, filter.Filters, 1) {
					f, ok := filter.Filters[0].(gDto.Filter)
					if assert.True(t, ok) {
						assert.Equal(t, model.FieldUserID, f.Field)
						assert.Equal(t, "user-1", f.Value)
					}
				}

				return []model.PaymentRecord{{ID: "payment-1", Code: "PMT-654321"}}, nil
			})

		res, err := f.svc.GetMine(payerCtx(), gDto.QueryParams{Limit: 10})
		assert.NoError(t, err)

		if assert.Len(t, res.Payments, 1) {
			assert.Equal(t, "PMT-654321", res.Payments[0].Code)
		}

		time.Sleep(10 * time.Millisecond)
	})
}
