package repository

import (
	"fmt"
	"log"
	"strings"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
)

var db *gorm.DB

var enumQueries = []string{
	`CREATE TYPE hole_color AS ENUM ('blue', 'yellow', 'red', 'purple', 'green')`,
	`CREATE TYPE tournament_format AS ENUM ('stroke_play', 'match_play', 'best_ball', 'skins')`,
	`CREATE TYPE group_role AS ENUM ('owner', 'admin', 'member')`,
}

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}

	err = pool.Client.Ping()
	if err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.Run("postgres", "17.2-alpine", []string{"POSTGRES_USER=postgres", "POSTGRES_PASSWORD=postgres", "DATABASE_NAME=postgres"})
	if err != nil {
		log.Fatalf("Could not start resource: %s", err)
	}
	resource.Expire(600)
	sqlInfo := fmt.Sprintf(
		"host=localhost port=%s user=postgres password=postgres dbname=postgres sslmode=disable",
		resource.GetPort("5432/tcp"))

	if err := pool.Retry(func() error {
		var err error
		db, err = gorm.Open(postgres.Open(sqlInfo), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}
		for _, query := range enumQueries {
			x := db.Exec(query)
			if x.Error != nil {
				if strings.Contains(x.Error.Error(), "already exists") {
					continue
				}
			}
		}
		return db.AutoMigrate(
			&User{},
			&Group{},
			&GroupMember{},
			&Tournament{},
			&TournamentParticipant{},
			&Round{},
			&HoleScore{},
		)
	}); err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}

	defer func() {
		if err := pool.Purge(resource); err != nil {
			log.Fatalf("Could not purge resource: %s", err)
		}
	}()
	m.Run()
}

func tearDown() {
	db.Exec("DELETE FROM hole_scores")
	db.Exec("DELETE FROM rounds")
	db.Exec("DELETE FROM tournament_participants")
	db.Exec("DELETE FROM tournaments")
	db.Exec("DELETE FROM group_members")
	db.Exec("DELETE FROM groups")
	db.Exec("DELETE FROM users")
}

func makeUser(t *testing.T, name string) *User {
	userRepository := NewUserRepository(db)
	user, err := userRepository.Save(&User{
		DisplayName: name,
		DiscordId:   name + "-discord",
		DiscordName: name,
	})
	assert.Nil(t, err)
	return user
}

func fullRound(userId int, date string) *Round {
	holes := make([]*HoleScore, 0, 5)
	for i, color := range HoleColors {
		holes = append(holes, &HoleScore{
			Color:      color,
			Strokes:    2,
			HoleNumber: i + 1,
		})
	}
	return &Round{
		UserId:       userId,
		PlayedDate:   date,
		TotalStrokes: 10,
		HoleScores:   holes,
	}
}

func TestCreateWithHoleScoresPersistsRoundAndHoles(t *testing.T) {
	defer tearDown()
	roundRepository := NewRoundRepository(db)
	user := makeUser(t, "alice")

	round := fullRound(user.Id, "2026-03-01")
	err := roundRepository.CreateWithHoleScores(round)
	assert.Nil(t, err)
	assert.NotZero(t, round.Id)

	fetched, err := roundRepository.GetRoundById(round.Id)
	assert.Nil(t, err)
	assert.Equal(t, 5, len(fetched.HoleScores))
	for _, hole := range fetched.HoleScores {
		assert.Equal(t, round.Id, hole.RoundId)
	}
}

func TestDuplicateDayIsRejected(t *testing.T) {
	defer tearDown()
	roundRepository := NewRoundRepository(db)
	user := makeUser(t, "alice")

	err := roundRepository.CreateWithHoleScores(fullRound(user.Id, "2026-03-01"))
	assert.Nil(t, err)

	err = roundRepository.CreateWithHoleScores(fullRound(user.Id, "2026-03-01"))
	assert.NotNil(t, err)

	var count int64
	db.Model(&Round{}).Where("user_id = ?", user.Id).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteOwnedEnforcesOwnership(t *testing.T) {
	defer tearDown()
	roundRepository := NewRoundRepository(db)
	alice := makeUser(t, "alice")
	bob := makeUser(t, "bob")

	round := fullRound(alice.Id, "2026-03-01")
	err := roundRepository.CreateWithHoleScores(round)
	assert.Nil(t, err)

	err = roundRepository.DeleteOwned(round.Id, bob.Id)
	assert.Equal(t, gorm.ErrRecordNotFound, err)

	err = roundRepository.DeleteOwned(round.Id, alice.Id)
	assert.Nil(t, err)

	_, err = roundRepository.GetRoundById(round.Id)
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}

func TestGetRoundsInWindow(t *testing.T) {
	defer tearDown()
	roundRepository := NewRoundRepository(db)
	alice := makeUser(t, "alice")
	bob := makeUser(t, "bob")

	assert.Nil(t, roundRepository.CreateWithHoleScores(fullRound(alice.Id, "2026-02-28")))
	assert.Nil(t, roundRepository.CreateWithHoleScores(fullRound(alice.Id, "2026-03-01")))
	assert.Nil(t, roundRepository.CreateWithHoleScores(fullRound(alice.Id, "2026-03-05")))
	assert.Nil(t, roundRepository.CreateWithHoleScores(fullRound(bob.Id, "2026-03-02")))

	rounds, err := roundRepository.GetRoundsInWindow([]int{alice.Id, bob.Id}, "2026-03-01", "2026-03-04")
	assert.Nil(t, err)
	assert.Equal(t, 2, len(rounds))
	assert.Equal(t, "2026-03-01", rounds[0].PlayedDate)
	assert.Equal(t, "2026-03-02", rounds[1].PlayedDate)
	assert.Equal(t, 5, len(rounds[0].HoleScores))

	rounds, err = roundRepository.GetRoundsInWindow([]int{}, "2026-03-01", "2026-03-04")
	assert.Nil(t, err)
	assert.Equal(t, 0, len(rounds))
}

func TestGetRoundByUserAndDate(t *testing.T) {
	defer tearDown()
	roundRepository := NewRoundRepository(db)
	alice := makeUser(t, "alice")

	assert.Nil(t, roundRepository.CreateWithHoleScores(fullRound(alice.Id, "2026-03-01")))

	round, err := roundRepository.GetRoundByUserAndDate(alice.Id, "2026-03-01")
	assert.Nil(t, err)
	assert.Equal(t, alice.Id, round.UserId)

	_, err = roundRepository.GetRoundByUserAndDate(alice.Id, "2026-03-02")
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}
