package repository

import (
	"time"

	"gorm.io/gorm"
)

type GroupRole string

const (
	RoleOwner  GroupRole = "owner"
	RoleAdmin  GroupRole = "admin"
	RoleMember GroupRole = "member"
)

func (r GroupRole) CanManage() bool {
	return r == RoleOwner || r == RoleAdmin
}

type Group struct {
	Id         int    `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	InviteCode string `gorm:"uniqueIndex;not null" json:"invite_code"`
	CreatedBy  int    `gorm:"not null" json:"created_by"`
	CreatedAt  time.Time
	Members    []*GroupMember `gorm:"constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

type GroupMember struct {
	GroupId   int       `gorm:"primaryKey" json:"group_id"`
	UserId    int       `gorm:"primaryKey" json:"user_id"`
	Role      GroupRole `gorm:"type:group_role;not null;default:member" json:"role"`
	CreatedAt time.Time
	User      *User `gorm:"foreignKey:UserId" json:"user,omitempty"`
}

type GroupRepository struct {
	DB *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{DB: db}
}

func (r *GroupRepository) Save(group *Group) (*Group, error) {
	result := r.DB.Save(group)
	if result.Error != nil {
		return nil, result.Error
	}
	return group, nil
}

func (r *GroupRepository) GetGroupById(groupId int) (*Group, error) {
	var group Group
	result := r.DB.Preload("Members.User").First(&group, groupId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &group, nil
}

func (r *GroupRepository) GetGroupByInviteCode(inviteCode string) (*Group, error) {
	var group Group
	result := r.DB.First(&group, "invite_code = ?", inviteCode)
	if result.Error != nil {
		return nil, result.Error
	}
	return &group, nil
}

func (r *GroupRepository) GetGroupsForUser(userId int) ([]*Group, error) {
	groups := make([]*Group, 0)
	result := r.DB.
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userId).
		Order("groups.created_at DESC").
		Preload("Members.User").
		Find(&groups)
	if result.Error != nil {
		return nil, result.Error
	}
	return groups, nil
}

func (r *GroupRepository) GetMember(groupId int, userId int) (*GroupMember, error) {
	var member GroupMember
	result := r.DB.First(&member, "group_id = ? AND user_id = ?", groupId, userId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &member, nil
}

func (r *GroupRepository) AddMember(member *GroupMember) error {
	return r.DB.Create(member).Error
}

func (r *GroupRepository) UpdateMemberRole(groupId int, userId int, role GroupRole) error {
	result := r.DB.Model(&GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupId, userId).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GroupRepository) RemoveMember(groupId int, userId int) error {
	return r.DB.Delete(&GroupMember{}, "group_id = ? AND user_id = ?", groupId, userId).Error
}

func (r *GroupRepository) Delete(groupId int) error {
	return r.DB.Delete(&Group{}, groupId).Error
}
