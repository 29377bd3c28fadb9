package service

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/jlp0422/coffee-golf-leaderboard/repository"
	"github.com/jlp0422/coffee-golf-leaderboard/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// leaderboardWindowDays bounds the group leaderboard to recent form
// instead of all-time history.
const leaderboardWindowDays = 30

type GroupService struct {
	groupRepository *repository.GroupRepository
	roundRepository *repository.RoundRepository
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{
		groupRepository: repository.NewGroupRepository(db),
		roundRepository: repository.NewRoundRepository(db),
	}
}

func newInviteCode() string {
	return strings.Split(uuid.NewString(), "-")[0]
}

func (s *GroupService) CreateGroup(userId int, name string) (*repository.Group, error) {
	group := &repository.Group{
		Name:       name,
		InviteCode: newInviteCode(),
		CreatedBy:  userId,
	}
	group, err := s.groupRepository.Save(group)
	if err != nil {
		return nil, err
	}
	err = s.groupRepository.AddMember(&repository.GroupMember{
		GroupId: group.Id,
		UserId:  userId,
		Role:    repository.RoleOwner,
	})
	if err != nil {
		return nil, err
	}
	return s.groupRepository.GetGroupById(group.Id)
}

// GetGroup returns the group with members, visible to members only.
func (s *GroupService) GetGroup(groupId int, userId int) (*repository.Group, error) {
	if _, err := s.requireMember(groupId, userId); err != nil {
		return nil, err
	}
	group, err := s.groupRepository.GetGroupById(groupId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return group, err
}

func (s *GroupService) GetGroupsForUser(userId int) ([]*repository.Group, error) {
	return s.groupRepository.GetGroupsForUser(userId)
}

func (s *GroupService) JoinGroup(userId int, inviteCode string) (*repository.Group, error) {
	group, err := s.groupRepository.GetGroupByInviteCode(inviteCode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidInviteCode
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.groupRepository.GetMember(group.Id, userId); err == nil {
		return nil, ErrDuplicateMember
	}
	err = s.groupRepository.AddMember(&repository.GroupMember{
		GroupId: group.Id,
		UserId:  userId,
		Role:    repository.RoleMember,
	})
	if err != nil {
		return nil, err
	}
	return s.groupRepository.GetGroupById(group.Id)
}

func (s *GroupService) LeaveGroup(groupId int, userId int) error {
	member, err := s.requireMember(groupId, userId)
	if err != nil {
		return err
	}
	if member.Role == repository.RoleOwner {
		return ErrOwnerCannotLeave
	}
	return s.groupRepository.RemoveMember(groupId, userId)
}

// RemoveMember ejects another member. Admins cannot remove the owner.
func (s *GroupService) RemoveMember(groupId int, actorId int, userId int) error {
	if err := s.requireAdmin(groupId, actorId); err != nil {
		return err
	}
	target, err := s.groupRepository.GetMember(groupId, userId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if target.Role == repository.RoleOwner {
		return ErrNotGroupAdmin
	}
	return s.groupRepository.RemoveMember(groupId, userId)
}

// SetMemberRole grants or revokes admin. Only the owner may change roles,
// and the owner role itself is not assignable.
func (s *GroupService) SetMemberRole(groupId int, actorId int, userId int, role repository.GroupRole) error {
	actor, err := s.requireMember(groupId, actorId)
	if err != nil {
		return err
	}
	if actor.Role != repository.RoleOwner || role == repository.RoleOwner {
		return ErrNotGroupAdmin
	}
	err = s.groupRepository.UpdateMemberRole(groupId, userId, role)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GroupService) DeleteGroup(groupId int, userId int) error {
	member, err := s.requireMember(groupId, userId)
	if err != nil {
		return err
	}
	if member.Role != repository.RoleOwner {
		return ErrNotGroupAdmin
	}
	return s.groupRepository.Delete(groupId)
}

type LeaderboardEntry struct {
	UserId         int     `json:"user_id"`
	DisplayName    string  `json:"display_name"`
	RoundsPlayed   int     `json:"rounds_played"`
	AverageStrokes float64 `json:"average_strokes"`
	BestRound      int     `json:"best_round"`
}

// GetLeaderboard ranks group members by average strokes over the last 30
// days, lowest first. Members without a recent round sort to the bottom.
func (s *GroupService) GetLeaderboard(groupId int, userId int) ([]*LeaderboardEntry, error) {
	if _, err := s.requireMember(groupId, userId); err != nil {
		return nil, err
	}
	group, err := s.groupRepository.GetGroupById(groupId)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startDate := utils.LocalDateStr(now.AddDate(0, 0, -(leaderboardWindowDays - 1)))
	userIds := utils.Map(group.Members, func(m *repository.GroupMember) int { return m.UserId })
	rounds, err := s.roundRepository.GetRoundsInWindow(userIds, startDate, utils.LocalDateStr(now))
	if err != nil {
		return nil, err
	}

	totals := make(map[int]int)
	counts := make(map[int]int)
	bests := make(map[int]int)
	for _, round := range rounds {
		totals[round.UserId] += round.TotalStrokes
		counts[round.UserId]++
		if best, ok := bests[round.UserId]; !ok || round.TotalStrokes < best {
			bests[round.UserId] = round.TotalStrokes
		}
	}

	entries := make([]*LeaderboardEntry, 0, len(group.Members))
	for _, member := range group.Members {
		entry := &LeaderboardEntry{
			UserId:       member.UserId,
			RoundsPlayed: counts[member.UserId],
			BestRound:    bests[member.UserId],
		}
		if member.User != nil {
			entry.DisplayName = member.User.DisplayName
		}
		if entry.RoundsPlayed > 0 {
			average := float64(totals[member.UserId]) / float64(entry.RoundsPlayed)
			entry.AverageStrokes = math.Round(average*10) / 10
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if (a.RoundsPlayed == 0) != (b.RoundsPlayed == 0) {
			return b.RoundsPlayed == 0
		}
		if a.RoundsPlayed == 0 {
			return false
		}
		return a.AverageStrokes < b.AverageStrokes
	})
	return entries, nil
}

func (s *GroupService) requireMember(groupId int, userId int) (*repository.GroupMember, error) {
	member, err := s.groupRepository.GetMember(groupId, userId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotGroupMember
	}
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (s *GroupService) requireAdmin(groupId int, userId int) error {
	member, err := s.requireMember(groupId, userId)
	if err != nil {
		return err
	}
	if !member.Role.CanManage() {
		return ErrNotGroupAdmin
	}
	return nil
}
