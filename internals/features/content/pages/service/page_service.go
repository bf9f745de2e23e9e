// Package service holds the page history rules: every overwrite of a page first stores its
// current state as the next version, and rollback is itself an overwrite.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"estatehub_backend/internals/features/content/pages/dto"
	"estatehub_backend/internals/features/content/pages/model"
)

var (
	ErrPageNotFound    = errors.New("Page not found")
	ErrVersionNotFound = errors.New("Version not found")
)

// MaxVersion is the highest version number of the page, 0 when there is none.
func MaxVersion(tx *gorm.DB, pageID uuid.UUID) (int, error) {
	var max *int
	row := tx.Model(&model.PageVersionModel{}).
		Where("page_id = ?", pageID).
		Select("MAX(version_number)").Row()
	if err := row.Scan(&max); err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// snapshot stores the page's current fields as version max+1.
func snapshot(tx *gorm.DB, page model.PageContentModel, by *uuid.UUID, note string) (model.PageVersionModel, error) {
	n, err := MaxVersion(tx, page.ID)
	if err != nil {
		return model.PageVersionModel{}, err
	}
	v := model.PageVersionModel{
		PageID:          page.ID,
		PageKey:         page.PageKey,
		VersionNumber:   n + 1,
		Title:           page.Title,
		Content:         page.Content,
		Sections:        page.Sections,
		MetaTitle:       page.MetaTitle,
		MetaDescription: page.MetaDescription,
		IsPublished:     page.IsPublished,
		ChangeNote:      note,
		CreatedBy:       by,
	}
	return v, tx.Create(&v).Error
}

func findPage(tx *gorm.DB, key string) (model.PageContentModel, error) {
	var page model.PageContentModel
	err := tx.Where("page_key = ?", dto.NormalizeKey(key)).First(&page).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return page, ErrPageNotFound
	}
	return page, err
}

// Upsert updates the page with key, snapshotting it first. A missing page is created from
// the request with no version, since there is no prior state to keep.
func Upsert(ctx context.Context, db *gorm.DB, key string, req dto.UpdatePageRequest, by *uuid.UUID) (model.PageContentModel, bool, error) {
	var page model.PageContentModel
	created := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		page, err = findPage(tx, key)
		if errors.Is(err, ErrPageNotFound) {
			page = model.PageContentModel{PageKey: dto.NormalizeKey(key), Title: dto.NormalizeKey(key), IsPublished: true}
			req.Apply(&page)
			page.UpdatedBy = by
			created = true
			return tx.Create(&page).Error
		}
		if err != nil {
			return err
		}
		if _, err := snapshot(tx, page, by, req.ChangeNote); err != nil {
			return err
		}
		req.Apply(&page)
		page.UpdatedBy = by
		return tx.Save(&page).Error
	})
	return page, created, err
}

// Rollback snapshots the current page, then copies version's fields back onto it.
// History only grows.
func Rollback(ctx context.Context, db *gorm.DB, key string, version int, by *uuid.UUID) (model.PageContentModel, model.PageVersionModel, error) {
	var page model.PageContentModel
	var snap model.PageVersionModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		page, err = findPage(tx, key)
		if err != nil {
			return err
		}
		var target model.PageVersionModel
		if err := tx.Where("page_id = ? AND version_number = ?", page.ID, version).First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVersionNotFound
			}
			return err
		}
		snap, err = snapshot(tx, page, by, fmt.Sprintf("Before rollback to version %d", version))
		if err != nil {
			return err
		}
		page.Title = target.Title
		page.Content = target.Content
		page.Sections = target.Sections
		page.MetaTitle = target.MetaTitle
		page.MetaDescription = target.MetaDescription
		page.IsPublished = target.IsPublished
		page.UpdatedBy = by
		return tx.Save(&page).Error
	})
	return page, snap, err
}

// Versions lists a page's snapshots, newest first.
func Versions(ctx context.Context, db *gorm.DB, key string) ([]model.PageVersionModel, error) {
	page, err := findPage(db.WithContext(ctx), key)
	if err != nil {
		return nil, err
	}
	rows := []model.PageVersionModel{}
	err = db.WithContext(ctx).Where("page_id = ?", page.ID).Order("version_number DESC").Find(&rows).Error
	return rows, err
}

func Version(ctx context.Context, db *gorm.DB, key string, version int) (model.PageVersionModel, error) {
	var v model.PageVersionModel
	page, err := findPage(db.WithContext(ctx), key)
	if err != nil {
		return v, err
	}
	err = db.WithContext(ctx).Where("page_id = ? AND version_number = ?", page.ID, version).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return v, ErrVersionNotFound
	}
	return v, err
}

// Delete removes the page and its history.
func Delete(ctx context.Context, db *gorm.DB, key string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		page, err := findPage(tx, key)
		if err != nil {
			return err
		}
		if err := tx.Where("page_id = ?", page.ID).Delete(&model.PageVersionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&page).Error
	})
}

func Response(ctx context.Context, db *gorm.DB, page model.PageContentModel) (dto.PageResponse, error) {
	n, err := MaxVersion(db.WithContext(ctx), page.ID)
	return dto.PageResponse{PageContentModel: page, CurrentVersion: n}, err
}
