package postgresengine

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/openlending/lending-reservations-go/lending"
	"github.com/openlending/lending-reservations-go/lending/postgresengine/internal/adapters"
)

type bookStore struct {
	s *Stores
}

// FindByISBN retrieves one book by its ISBN.
func (b bookStore) FindByISBN(ctx context.Context, isbn lending.ISBNString) (lending.Book, error) {
	query, _, err := b.s.dialect().
		From(b.s.bookTable).
		Select(colISBN, colTitle, colAuthor, colPublisher, colFormat, colAvailable).
		Where(goqu.C(colISBN).Eq(isbn)).
		ToSQL()
	if err != nil {
		b.s.logError(logMsgBuildQueryFailed, logAttrError, err.Error())
		return lending.Book{}, err
	}

	b.s.logDebug(logMsgSQLExecuted+"find book by isbn", logAttrQuery, query)

	rows, err := b.s.db.Query(ctx, query)
	if err != nil {
		b.s.logError(logMsgDBQueryFailed, logAttrError, err.Error())
		return lending.Book{}, err
	}
	defer b.s.closeRows(rows)

	if !rows.Next() {
		return lending.Book{}, fmt.Errorf("%w: %s", lending.ErrBookNotFound, isbn)
	}

	return scanBook(rows)
}

// SearchByTitle lists books whose title contains the given fragment,
// case-insensitively.
func (b bookStore) SearchByTitle(ctx context.Context, title string) ([]lending.Book, error) {
	query, _, err := b.s.dialect().
		From(b.s.bookTable).
		Select(colISBN, colTitle, colAuthor, colPublisher, colFormat, colAvailable).
		Where(goqu.C(colTitle).ILike("%" + title + "%")).
		Order(goqu.C(colTitle).Asc(), goqu.C(colISBN).Asc()).
		ToSQL()
	if err != nil {
		b.s.logError(logMsgBuildQueryFailed, logAttrError, err.Error())
		return nil, err
	}

	b.s.logDebug(logMsgSQLExecuted+"search books by title", logAttrQuery, query)

	rows, err := b.s.db.Query(ctx, query)
	if err != nil {
		b.s.logError(logMsgDBQueryFailed, logAttrError, err.Error())
		return nil, err
	}
	defer b.s.closeRows(rows)

	books := make([]lending.Book, 0)

	for rows.Next() {
		book, scanErr := scanBook(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		books = append(books, book)
	}

	return books, nil
}

// Save persists the book, inserting or replacing the whole record.
// This is also the write path for availability flag changes.
func (b bookStore) Save(ctx context.Context, book lending.Book) error {
	record := goqu.Record{
		colISBN:      book.ISBN,
		colTitle:     book.Title,
		colAuthor:    book.Author,
		colPublisher: book.Publisher,
		colFormat:    string(book.Format),
		colAvailable: book.Available,
	}

	query, _, err := b.s.dialect().
		Insert(b.s.bookTable).
		Rows(record).
		OnConflict(goqu.DoUpdate(colISBN, record)).
		ToSQL()
	if err != nil {
		b.s.logError(logMsgBuildQueryFailed, logAttrError, err.Error())
		return err
	}

	b.s.logDebug(logMsgSQLExecuted+"save book", logAttrQuery, query)

	if _, execErr := b.s.db.Exec(ctx, query); execErr != nil {
		b.s.logError(logMsgDBExecFailed, logAttrError, execErr.Error())
		return execErr
	}

	return nil
}

// Delete removes the book identified by isbn.
func (b bookStore) Delete(ctx context.Context, isbn lending.ISBNString) error {
	query, _, err := b.s.dialect().
		Delete(b.s.bookTable).
		Where(goqu.C(colISBN).Eq(isbn)).
		ToSQL()
	if err != nil {
		b.s.logError(logMsgBuildQueryFailed, logAttrError, err.Error())
		return err
	}

	b.s.logDebug(logMsgSQLExecuted+"delete book", logAttrQuery, query)

	result, err := b.s.db.Exec(ctx, query)
	if err != nil {
		b.s.logError(logMsgDBExecFailed, logAttrError, err.Error())
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return fmt.Errorf("%w: %s", lending.ErrBookNotFound, isbn)
	}

	return nil
}

func scanBook(rows adapters.DBRows) (lending.Book, error) {
	var book lending.Book
	var format string

	if err := rows.Scan(
		&book.ISBN,
		&book.Title,
		&book.Author,
		&book.Publisher,
		&format,
		&book.Available,
	); err != nil {
		return lending.Book{}, err
	}

	book.Format = lending.Format(format)

	return book, nil
}
