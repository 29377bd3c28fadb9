package config

import (
	"fmt"
	"strings"

	"github.com/jlp0422/coffee-golf-leaderboard/repository"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var enumQueries = []string{
	`CREATE TYPE hole_color AS ENUM ('blue', 'yellow', 'red', 'purple', 'green')`,
	`CREATE TYPE tournament_format AS ENUM ('stroke_play', 'match_play', 'best_ball', 'skins')`,
	`CREATE TYPE group_role AS ENUM ('owner', 'admin', 'member')`,
}

func InitDB(host string, port string, user string, password string, dbName string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, password, dbName)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	for _, query := range enumQueries {
		x := db.Exec(query)
		if x.Error != nil {
			if strings.Contains(x.Error.Error(), "already exists") {
				continue
			}
			return nil, x.Error
		}
	}

	err = db.AutoMigrate(
		&repository.User{},
		&repository.Group{},
		&repository.GroupMember{},
		&repository.Tournament{},
		&repository.TournamentParticipant{},
		&repository.Round{},
		&repository.HoleScore{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
