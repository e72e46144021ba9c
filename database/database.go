package database

import (
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	projectRepo              *ProjectRepo
	skillRepo                *SkillRepo
	experienceRepo           *ExperienceRepo
	certificateRepo          *CertificateRepo
	profileSettingsRepo      *ProfileSettingsRepo
	resumeSettingsRepo       *ResumeSettingsRepo
	notificationSettingsRepo *NotificationSettingsRepo
	contactSubmissionRepo    *ContactSubmissionRepo
	userRepo                 *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:              NewProjectRepo(db),
		skillRepo:                NewSkillRepo(db),
		experienceRepo:           NewExperienceRepo(db),
		certificateRepo:          NewCertificateRepo(db),
		profileSettingsRepo:      NewProfileSettingsRepo(db),
		resumeSettingsRepo:       NewResumeSettingsRepo(db),
		notificationSettingsRepo: NewNotificationSettingsRepo(db),
		contactSubmissionRepo:    NewContactSubmissionRepo(db),
		userRepo:                 NewUserRepo(db),
	}
}

// Migrate creates or updates the schema for every entity table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Project{},
		&models.Skill{},
		&models.Experience{},
		&models.Certificate{},
		&models.ProfileSettings{},
		&models.ResumeSettings{},
		&models.NotificationSettings{},
		&models.ContactSubmission{},
		&models.User{},
		&models.UserRole{},
	)
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) ExperienceRepo() *ExperienceRepo {
	return d.experienceRepo
}

func (d Database) CertificateRepo() *CertificateRepo {
	return d.certificateRepo
}

func (d Database) ProfileSettingsRepo() *ProfileSettingsRepo {
	return d.profileSettingsRepo
}

func (d Database) ResumeSettingsRepo() *ResumeSettingsRepo {
	return d.resumeSettingsRepo
}

func (d Database) NotificationSettingsRepo() *NotificationSettingsRepo {
	return d.notificationSettingsRepo
}

func (d Database) ContactSubmissionRepo() *ContactSubmissionRepo {
	return d.contactSubmissionRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}
