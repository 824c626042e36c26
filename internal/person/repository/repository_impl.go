package repository

import (
	"context"
	"errors"

	"github.com/atriumhq/atrium/internal/person/domain"
	"github.com/atriumhq/atrium/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, person *domain.Person) error {
	return db.WithContext(ctx).Create(person).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, person *domain.Person) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND id = ?", person.AccountID, person.ID).
		Save(person).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM employments WHERE account_id = ? AND person_id = ?`, accountID, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM board_members WHERE account_id = ? AND person_id = ?`, accountID, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM person_tags WHERE account_id = ? AND person_id = ?`, accountID, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`UPDATE deals SET referrer_id = NULL WHERE account_id = ? AND referrer_id = ?`, accountID, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`UPDATE deals SET owner_id = NULL WHERE account_id = ? AND owner_id = ?`, accountID, id).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM people WHERE account_id = ? AND id = ?`, accountID, id).Error
	})
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*domain.Person, error) {
	var person domain.Person
	err := db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &person, nil
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, accountID snowflake.ID, email string) (*domain.Person, error) {
	var person domain.Person
	err := db.WithContext(ctx).
		Where("account_id = ? AND email = ?", accountID, email).
		First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &person, nil
}

func (r *repo) FindByLinkedin(ctx context.Context, db *gorm.DB, accountID snowflake.ID, linkedinURL string) (*domain.Person, error) {
	var person domain.Person
	err := db.WithContext(ctx).
		Where("account_id = ? AND linkedin_url = ?", accountID, linkedinURL).
		First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &person, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, accountID snowflake.ID, filter domain.ListPersonFilter, page pagination.Pagination) ([]*domain.Person, error) {
	query := db.WithContext(ctx).
		Model(&domain.Person{}).
		Where("people.account_id = ?", accountID)

	if filter.Name != "" {
		like := "%" + filter.Name + "%"
		query = query.Where("(people.first_name LIKE ? OR people.last_name LIKE ?)", like, like)
	}
	if filter.Location != "" {
		query = query.Where("people.location LIKE ?", "%"+filter.Location+"%")
	}
	if filter.Tag != "" {
		query = query.Joins("JOIN person_tags pt ON pt.person_id = people.id AND pt.account_id = people.account_id").
			Where("pt.tag = ?", filter.Tag)
	}

	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		query = query.Where("people.id > ?", cursor.ID)
	}

	// Snowflake ids are insertion-ordered, so the keyset cursor and the sort
	// key are the same column.
	var people []*domain.Person
	err := query.
		Order("people.id asc").
		Limit(page.PageSize + 1).
		Find(&people).Error
	if err != nil {
		return nil, err
	}
	return people, nil
}

func (r *repo) InsertTag(ctx context.Context, db *gorm.DB, tag *domain.PersonTag) error {
	return db.WithContext(ctx).Create(tag).Error
}

func (r *repo) DeleteTag(ctx context.Context, db *gorm.DB, accountID, personID snowflake.ID, tag string) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM person_tags WHERE account_id = ? AND person_id = ? AND tag = ?`,
		accountID, personID, tag,
	).Error
}

func (r *repo) ListTags(ctx context.Context, db *gorm.DB, accountID, personID snowflake.ID) ([]domain.PersonTag, error) {
	var tags []domain.PersonTag
	err := db.WithContext(ctx).
		Where("account_id = ? AND person_id = ?", accountID, personID).
		Order("tag asc").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}
