package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jikkosoft/library-service/internal/domain"
	"github.com/jikkosoft/library-service/internal/errs"
	"github.com/jikkosoft/library-service/internal/handler"
	"github.com/jikkosoft/library-service/internal/model"
	"github.com/jikkosoft/library-service/pkg/validate"

	service_mocks "github.com/jikkosoft/library-service/internal/handler/mocks"
)

func TestHandler_BorrowBook(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockLendingService, req model.BorrowBookRequest)

	var tests = []struct {
		name         string
		body         string
		input        model.BorrowBookRequest
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name: "ok",
			body: `{"memberId":7,"bookCopyId":3}`,
			input: model.BorrowBookRequest{
				MemberID:   7,
				BookCopyID: 3,
			},
			mockBehavior: func(r *service_mocks.MockLendingService, req model.BorrowBookRequest) {
				r.EXPECT().
					BorrowBook(context.Background(), req).
					Return(model.Loan{
						ID:         1,
						BookCopyID: 3,
						MemberID:   7,
						LoanDate:   "2026-09-01",
						DueDate:    "2026-09-15",
						Status:     "ACTIVE",
					}, nil)
			},
			expectedCode: http.StatusCreated,
			expectedBody: `{"id":1,"bookCopyId":3,"memberId":7,"loanDate":"2026-09-01","dueDate":"2026-09-15","status":"ACTIVE","penaltyDays":0}`,
		},
		{
			name: "err. member not eligible",
			body: `{"memberId":7,"bookCopyId":3}`,
			input: model.BorrowBookRequest{
				MemberID:   7,
				BookCopyID: 3,
			},
			mockBehavior: func(r *service_mocks.MockLendingService, req model.BorrowBookRequest) {
				r.EXPECT().
					BorrowBook(context.Background(), req).
					Return(model.Loan{}, errs.ErrNotEligible)
			},
			expectedCode: http.StatusUnprocessableEntity,
			expectedBody: `{"message":"member is not eligible to borrow"}`,
		},
		{
			name:         "err. memberId required",
			body:         `{"bookCopyId":3}`,
			mockBehavior: func(r *service_mocks.MockLendingService, req model.BorrowBookRequest) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "err. copy not found",
			body: `{"memberId":7,"bookCopyId":99}`,
			input: model.BorrowBookRequest{
				MemberID:   7,
				BookCopyID: 99,
			},
			mockBehavior: func(r *service_mocks.MockLendingService, req model.BorrowBookRequest) {
				r.EXPECT().
					BorrowBook(context.Background(), req).
					Return(model.Loan{}, errs.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"not found"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLendingService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/loans", h.BorrowBook)

			r := httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc, tt.input)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != "" {
				require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_UpdateMember(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockLendingService)

	var tests = []struct {
		name         string
		target       string
		body         string
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name:   "ok",
			target: "/members/7",
			body:   `{"firstName":"Janet","lastName":"Bookworm","email":"janet@example.com"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					UpdateMember(context.Background(), int64(7), model.UpdateMemberRequest{
						FirstName: "Janet",
						LastName:  "Bookworm",
						Email:     "janet@example.com",
					}).
					Return(model.Member{
						ID:        7,
						FirstName: "Janet",
						LastName:  "Bookworm",
						Email:     "janet@example.com",
						Active:    true,
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"id":7,"firstName":"Janet","lastName":"Bookworm","email":"janet@example.com","active":true}`,
		},
		{
			name:         "err. email required",
			target:       "/members/7",
			body:         `{"firstName":"Janet","lastName":"Bookworm"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "err. member not found",
			target: "/members/99",
			body:   `{"firstName":"Janet","lastName":"Bookworm","email":"janet@example.com"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					UpdateMember(context.Background(), int64(99), gomock.Any()).
					Return(model.Member{}, errs.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"not found"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLendingService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.PATCH("/members/:id", h.UpdateMember)

			r := httptest.NewRequest(http.MethodPatch, tt.target, strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != "" {
				require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_DeleteMember(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockLendingService)

	var tests = []struct {
		name         string
		target       string
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name:   "ok",
			target: "/members/7",
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					DeleteMember(context.Background(), int64(7)).
					Return(nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name:   "err. member not found",
			target: "/members/99",
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					DeleteMember(context.Background(), int64(99)).
					Return(errs.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"not found"}`,
		},
		{
			name:         "err. invalid id",
			target:       "/members/abc",
			mockBehavior: func(r *service_mocks.MockLendingService) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"invalid id"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLendingService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.DELETE("/members/:id", h.DeleteMember)

			r := httptest.NewRequest(http.MethodDelete, tt.target, nil)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != "" {
				require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_ReturnBook(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockLendingService)

	var tests = []struct {
		name         string
		target       string
		body         string
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name:   "ok with penalty",
			target: "/loans/5/return",
			body:   `{"returnDate":"2026-09-20"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					ReturnBook(context.Background(), int64(5), gomock.Any()).
					Return(model.Loan{
						ID:          5,
						BookCopyID:  3,
						MemberID:    7,
						LoanDate:    "2026-09-01",
						DueDate:     "2026-09-15",
						ReturnDate:  "2026-09-20",
						Status:      "RETURNED",
						PenaltyDays: 10,
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"id":5,"bookCopyId":3,"memberId":7,"loanDate":"2026-09-01","dueDate":"2026-09-15","returnDate":"2026-09-20","status":"RETURNED","penaltyDays":10}`,
		},
		{
			name:   "err. already returned",
			target: "/loans/5/return",
			body:   `{"returnDate":"2026-09-21"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {
				r.EXPECT().
					ReturnBook(context.Background(), int64(5), gomock.Any()).
					Return(model.Loan{}, errors.Wrap(domain.ErrIllegalState, "loan already returned on 2026-09-15"))
			},
			expectedCode: http.StatusConflict,
			expectedBody: `{"message":"loan already returned on 2026-09-15: illegal state"}`,
		},
		{
			name:         "err. invalid id",
			target:       "/loans/abc/return",
			body:         `{"returnDate":"2026-09-21"}`,
			mockBehavior: func(r *service_mocks.MockLendingService) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"invalid id"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLendingService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/loans/:id/return", h.ReturnBook)

			r := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != "" {
				require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}
