package handler

import (
	"context"

	"github.com/jikkosoft/library-service/internal/model"
	"github.com/jikkosoft/library-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LendingService interface {
	CreateCategory(ctx context.Context, req model.CreateCategoryRequest) (model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	CreateAuthor(ctx context.Context, req model.CreateAuthorRequest) (model.Author, error)
	CreateLibrary(ctx context.Context, req model.CreateLibraryRequest) (model.Library, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	GetBook(ctx context.Context, id int64) (model.Book, error)
	DeleteBook(ctx context.Context, id int64) error
	UpdateBookYear(ctx context.Context, id int64, req model.UpdateBookYearRequest) (model.Book, error)
	AddBookCopy(ctx context.Context, req model.AddBookCopyRequest) (model.BookCopy, error)
	ChangeCopyStatus(ctx context.Context, id int64, req model.ChangeCopyStatusRequest) (model.BookCopy, error)
	UpdateShelfLocation(ctx context.Context, id int64, req model.UpdateShelfLocationRequest) (model.BookCopy, error)
	RegisterMember(ctx context.Context, req model.RegisterMemberRequest) (model.Member, error)
	UpdateMember(ctx context.Context, id int64, req model.UpdateMemberRequest) (model.Member, error)
	DeleteMember(ctx context.Context, id int64) error
	GetMemberSummary(ctx context.Context, id int64) (model.MemberSummary, error)
	RegisterUser(ctx context.Context, req model.RegisterUserRequest) (model.User, error)
	DeactivateUser(ctx context.Context, id int64) (model.User, error)
	ChangeUserPassword(ctx context.Context, req model.ChangeUserPasswordRequest) error
	BorrowBook(ctx context.Context, req model.BorrowBookRequest) (model.Loan, error)
	ReturnBook(ctx context.Context, loanID int64, req model.ReturnBookRequest) (model.Loan, error)
	ReserveBook(ctx context.Context, req model.ReserveBookRequest) (model.Reservation, error)
	CancelReservation(ctx context.Context, id int64) (model.Reservation, error)
	FulfillReservation(ctx context.Context, id int64) (model.Loan, error)
}

var _ LendingService = (*service.Service)(nil)
