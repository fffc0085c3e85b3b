package services

import (
	"github.com/mitlacherp/local-contract-manager/config"
	"github.com/mitlacherp/local-contract-manager/models"

	"gorm.io/gorm/clause"
)

func GetSettings() (map[string]string, error) {
	var rows []models.Setting
	if err := config.DB.Find(&rows).Error; err != nil {
		return nil, err
	}

	settings := make(map[string]string, len(rows))
	for _, r := range rows {
		settings[r.Key] = r.Value
	}
	return settings, nil
}

func UpsertSetting(key, value string) error {
	return config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&models.Setting{Key: key, Value: value}).Error
}
