package repository

import (
	"codequest_backend/internal/model"

	"gorm.io/gorm"
)

type LanguageRepository struct {
	DB *gorm.DB
}

func NewLanguageRepository(db *gorm.DB) *LanguageRepository {
	return &LanguageRepository{DB: db}
}

func (r *LanguageRepository) FindActive() ([]model.ProgrammingLanguage, error) {
	var languages []model.ProgrammingLanguage
	err := r.DB.Where("is_active = ?", true).Order("difficulty asc").Find(&languages).Error
	return languages, err
}

func (r *LanguageRepository) FindByID(id uint) (*model.ProgrammingLanguage, error) {
	var language model.ProgrammingLanguage
	err := r.DB.First(&language, id).Error
	return &language, err
}

func (r *LanguageRepository) Create(language *model.ProgrammingLanguage) error {
	return r.DB.Create(language).Error
}

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) FindPublished(languageID uint) ([]model.Course, error) {
	query := r.DB.Preload("Language").Where("is_published = ?", true).Order("order_index asc")
	if languageID != 0 {
		query = query.Where("language_id = ?", languageID)
	}

	var courses []model.Course
	err := query.Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Language").First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Course{}, id).Error
}
