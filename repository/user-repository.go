package repository

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	Id          int    `gorm:"primaryKey" json:"id"`
	DisplayName string `gorm:"not null" json:"display_name"`
	DiscordId   string `gorm:"uniqueIndex;not null" json:"-"`
	DiscordName string `json:"-"`
	AvatarUrl   string `json:"avatar_url"`
	CreatedAt   time.Time
}

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) GetUserById(userId int) (*User, error) {
	var user User
	result := r.DB.First(&user, userId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) GetUsersByIds(userIds []int) ([]*User, error) {
	users := make([]*User, 0)
	result := r.DB.Find(&users, "id in ?", userIds)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (r *UserRepository) Save(user *User) (*User, error) {
	result := r.DB.Save(user)
	if result.Error != nil {
		return nil, result.Error
	}
	return user, nil
}

// GetOrCreateByDiscordId backs the OAuth callback. The display name is only
// seeded on first login so renames done in the app are not clobbered.
func (r *UserRepository) GetOrCreateByDiscordId(discordId string, discordName string, avatarUrl string) (*User, error) {
	var user User
	result := r.DB.First(&user, "discord_id = ?", discordId)
	if result.Error == nil {
		user.DiscordName = discordName
		user.AvatarUrl = avatarUrl
		return r.Save(&user)
	}
	if result.Error != gorm.ErrRecordNotFound {
		return nil, result.Error
	}
	user = User{
		DisplayName: discordName,
		DiscordId:   discordId,
		DiscordName: discordName,
		AvatarUrl:   avatarUrl,
	}
	return r.Save(&user)
}
