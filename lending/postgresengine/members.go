package postgresengine

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/openlending/lending-reservations-go/lending"
	"github.com/openlending/lending-reservations-go/lending/postgresengine/internal/adapters"
)

type memberStore struct {
	s *Stores
}

// FindByCode retrieves one member by its code.
func (m memberStore) FindByCode(ctx context.Context, code lending.MemberCodeString) (lending.Member, error) {
	query, _, err := m.s.dialect().
		From(m.s.memberTable).
		Select(colCode, colFirstName, colLastName, colBirthDate, colCivility, colEmail).
		Where(goqu.C(colCode).Eq(code)).
		ToSQL()
	if err != nil {
		m.s.logError(logMsgBuildQueryFailed, logAttrError, err.Error())
		return lending.Member{}, err
	}

	m.s.logDebug(logMsgSQLExecuted+"find member by code", logAttrQuery, query)

	rows, err := m.s.db.Query(ctx, query)
	if err != nil {
		m.s.logError(logMsgDBQueryFailed, logAttrError, err.Error())
		return lending.Member{}, err
	}
	defer m.s.closeRows(rows)

	if !rows.Next() {
		return lending.Member{}, fmt.Errorf("%w: %s", lending.ErrMemberNotFound, code)
	}

	return scanMember(rows)
}

// SearchByName lists members whose last name contains the given fragment,
// case-insensitively.
func (m memberStore) SearchByName(ctx context.Context, name string) ([]lending.Member, error) {
	query, _, err := m.s.dialect().
		From(m.s.memberTable).
		Select(colCode, colFirstName, colLastName, colBirthDate, colCivility, colEmail).
		Where(goqu.C(colLastName).ILike("%" + name + "%")).
		Order(goqu.C(colLastName).Asc(), goqu.C(colCode).Asc()).
		ToSQL()
	if err != nil {
		m.s.logError(logMsgBuildQueryFailed, logAttrError, err.Error())
		return nil, err
	}

	m.s.logDebug(logMsgSQLExecuted+"search members by name", logAttrQuery, query)

	rows, err := m.s.db.Query(ctx, query)
	if err != nil {
		m.s.logError(logMsgDBQueryFailed, logAttrError, err.Error())
		return nil, err
	}
	defer m.s.closeRows(rows)

	members := make([]lending.Member, 0)

	for rows.Next() {
		member, scanErr := scanMember(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		members = append(members, member)
	}

	return members, nil
}

// Save persists the member, inserting or replacing the whole record.
func (m memberStore) Save(ctx context.Context, member lending.Member) error {
	record := goqu.Record{
		colCode:      member.Code,
		colFirstName: member.FirstName,
		colLastName:  member.LastName,
		colBirthDate: member.BirthDate,
		colCivility:  string(member.Civility),
		colEmail:     member.Email,
	}

	query, _, err := m.s.dialect().
		Insert(m.s.memberTable).
		Rows(record).
		OnConflict(goqu.DoUpdate(colCode, record)).
		ToSQL()
	if err != nil {
		m.s.logError(logMsgBuildQueryFailed, logAttrError, err.Error())
		return err
	}

	m.s.logDebug(logMsgSQLExecuted+"save member", logAttrQuery, query)

	if _, execErr := m.s.db.Exec(ctx, query); execErr != nil {
		m.s.logError(logMsgDBExecFailed, logAttrError, execErr.Error())
		return execErr
	}

	return nil
}

// Delete removes the member identified by code.
func (m memberStore) Delete(ctx context.Context, code lending.MemberCodeString) error {
	query, _, err := m.s.dialect().
		Delete(m.s.memberTable).
		Where(goqu.C(colCode).Eq(code)).
		ToSQL()
	if err != nil {
		m.s.logError(logMsgBuildQueryFailed, logAttrError, err.Error())
		return err
	}

	m.s.logDebug(logMsgSQLExecuted+"delete member", logAttrQuery, query)

	result, err := m.s.db.Exec(ctx, query)
	if err != nil {
		m.s.logError(logMsgDBExecFailed, logAttrError, err.Error())
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return fmt.Errorf("%w: %s", lending.ErrMemberNotFound, code)
	}

	return nil
}

func scanMember(rows adapters.DBRows) (lending.Member, error) {
	var member lending.Member
	var civility string

	if err := rows.Scan(
		&member.Code,
		&member.FirstName,
		&member.LastName,
		&member.BirthDate,
		&civility,
		&member.Email,
	); err != nil {
		return lending.Member{}, err
	}

	member.Civility = lending.Civility(civility)

	return member, nil
}
