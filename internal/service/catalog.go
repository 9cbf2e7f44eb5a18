package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jikkosoft/library-service/internal/domain"
	"github.com/jikkosoft/library-service/internal/model"
)

func (s *Service) CreateCategory(ctx context.Context, req model.CreateCategoryRequest) (model.Category, error) {
	category, err := domain.NewCategory(req.Name, req.MaxLoanDays, req.PenaltyPerDay)
	if err != nil {
		return model.Category{}, err
	}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.Category.Create(ctx, category); err != nil {
			return err
		}
		return s.audit(ctx, domain.AuditActionCreate, "category", category.ID(), "category created")
	})
	if err != nil {
		return model.Category{}, err
	}
	s.log.Info("category created", zap.Int64("id", category.ID()), zap.String("name", category.Name()))
	return model.CategoryFromDomain(category), nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Category.SoftDelete(ctx, id); err != nil {
			return err
		}
		return s.audit(ctx, domain.AuditActionSoftDelete, "category", id, "category removed")
	})
	if err != nil {
		return err
	}
	s.log.Info("category removed", zap.Int64("id", id))
	return nil
}

func (s *Service) CreateAuthor(ctx context.Context, req model.CreateAuthorRequest) (model.Author, error) {
	cfg := domain.AuthorConfig{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Nationality: req.Nationality,
		Biography:   req.Biography,
		Website:     req.Website,
		Email:       req.Email,
		Affiliation: req.Affiliation,
	}
	if req.DateOfBirth != nil {
		dob := req.DateOfBirth.Time
		cfg.DateOfBirth = &dob
	}
	author, err := domain.NewAuthor(cfg)
	if err != nil {
		return model.Author{}, err
	}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.Author.Create(ctx, author); err != nil {
			return err
		}
		return s.audit(ctx, domain.AuditActionCreate, "author", author.ID(), "author created")
	})
	if err != nil {
		return model.Author{}, err
	}
	return model.AuthorFromDomain(author), nil
}

func (s *Service) CreateLibrary(ctx context.Context, req model.CreateLibraryRequest) (model.Library, error) {
	library, err := domain.NewLibrary(req.Name, req.Address, req.City)
	if err != nil {
		return model.Library{}, err
	}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.Library.Create(ctx, library); err != nil {
			return err
		}
		return s.audit(ctx, domain.AuditActionCreate, "library", library.ID(), "library created")
	})
	if err != nil {
		return model.Library{}, err
	}
	return model.LibraryFromDomain(library), nil
}

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	var book *domain.Book
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		category, err := s.repo.Category.FindByID(ctx, req.CategoryID)
		if err != nil {
			return err
		}
		authors, err := s.repo.Author.FindByIDs(ctx, req.AuthorIDs)
		if err != nil {
			return err
		}
		book, err = domain.NewBook(domain.BookConfig{
			ISBN:            req.ISBN,
			Title:           req.Title,
			Authors:         authors,
			PublicationYear: req.PublicationYear,
			Category:        category,
		})
		if err != nil {
			return err
		}
		if _, err := s.repo.Book.Create(ctx, book); err != nil {
			return err
		}
		return s.audit(ctx, domain.AuditActionCreate, "book", book.ID(), "book created")
	})
	if err != nil {
		return model.Book{}, err
	}
	s.log.Info("book created", zap.Int64("id", book.ID()), zap.String("isbn", book.ISBN().Value()))
	return model.BookFromDomain(book), nil
}

func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Book.SoftDelete(ctx, id); err != nil {
			return err
		}
		return s.audit(ctx, domain.AuditActionSoftDelete, "book", id, "book removed")
	})
	if err != nil {
		return err
	}
	s.log.Info("book removed", zap.Int64("id", id))
	return nil
}

func (s *Service) GetBook(ctx context.Context, id int64) (model.Book, error) {
	book, err := s.repo.Book.FindByID(ctx, id)
	if err != nil {
		return model.Book{}, err
	}
	return model.BookFromDomain(book), nil
}

func (s *Service) UpdateBookYear(ctx context.Context, id int64, req model.UpdateBookYearRequest) (model.Book, error) {
	var book *domain.Book
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		book, err = s.repo.Book.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := book.SetPublicationYear(req.PublicationYear); err != nil {
			return err
		}
		if err := s.repo.Book.Update(ctx, book); err != nil {
			return err
		}
		return s.audit(ctx, domain.AuditActionUpdate, "book", book.ID(), "publication year changed")
	})
	if err != nil {
		return model.Book{}, err
	}
	return model.BookFromDomain(book), nil
}

func (s *Service) AddBookCopy(ctx context.Context, req model.AddBookCopyRequest) (model.BookCopy, error) {
	barcode := req.Barcode
	if barcode == "" {
		barcode = uuid.NewString()
	}
	var bookCopy *domain.BookCopy
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		book, err := s.repo.Book.FindByID(ctx, req.BookID)
		if err != nil {
			return err
		}
		library, err := s.repo.Library.FindByID(ctx, req.LibraryID)
		if err != nil {
			return err
		}
		bookCopy, err = domain.NewBookCopy(domain.BookCopyConfig{
			Book:          book,
			Library:       library,
			CopyNumber:    req.CopyNumber,
			Barcode:       barcode,
			ShelfLocation: req.ShelfLocation,
		})
		if err != nil {
			return err
		}
		if _, err := s.repo.BookCopy.Create(ctx, bookCopy); err != nil {
			return err
		}
		return s.audit(ctx, domain.AuditActionCreate, "book_copy", bookCopy.ID(), "copy added")
	})
	if err != nil {
		return model.BookCopy{}, err
	}
	return model.BookCopyFromDomain(bookCopy), nil
}

func (s *Service) ChangeCopyStatus(ctx context.Context, id int64, req model.ChangeCopyStatusRequest) (model.BookCopy, error) {
	var bookCopy *domain.BookCopy
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		bookCopy, err = s.repo.BookCopy.FindByID(ctx, id)
		if err != nil {
			return err
		}
		before := string(bookCopy.Status())
		if err := bookCopy.ChangeStatus(domain.CopyStatus(req.Status)); err != nil {
			return err
		}
		if err := s.repo.BookCopy.Update(ctx, bookCopy); err != nil {
			return err
		}
		return s.auditChange(ctx, domain.AuditActionStatusChange, "book_copy", bookCopy.ID(),
			"status changed", before, req.Status)
	})
	if err != nil {
		return model.BookCopy{}, err
	}
	return model.BookCopyFromDomain(bookCopy), nil
}

func (s *Service) UpdateShelfLocation(ctx context.Context, id int64, req model.UpdateShelfLocationRequest) (model.BookCopy, error) {
	var bookCopy *domain.BookCopy
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		bookCopy, err = s.repo.BookCopy.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := bookCopy.UpdateShelfLocation(req.ShelfLocation); err != nil {
			return err
		}
		if err := s.repo.BookCopy.Update(ctx, bookCopy); err != nil {
			return err
		}
		return s.audit(ctx, domain.AuditActionUpdate, "book_copy", bookCopy.ID(), "shelf location changed")
	})
	if err != nil {
		return model.BookCopy{}, err
	}
	return model.BookCopyFromDomain(bookCopy), nil
}
