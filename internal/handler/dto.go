package handler

import (
	"time"

	"github.com/msomdec/toadoo/internal/domain"
	"github.com/msomdec/toadoo/internal/service"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID                  int64  `json:"id"`
	Email               string `json:"email"`
	Username            string `json:"username"`
	Role                string `json:"role"`
	IsActive            bool   `json:"isActive"`
	IsVerified          bool   `json:"isVerified"`
	TotalCompletedCount int    `json:"totalCompletedCount"`
	CreatedAt           string `json:"createdAt"`
	UpdatedAt           string `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:                  u.ID,
		Email:               u.Email,
		Username:            u.Username,
		Role:                string(u.Role),
		IsActive:            u.IsActive,
		IsVerified:          u.IsVerified,
		TotalCompletedCount: u.TotalCompletedCount,
		CreatedAt:           u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           u.UpdatedAt.Format(time.RFC3339),
	}
}

func toUserDTOs(users []domain.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = toUserDTO(&users[i])
	}
	return dtos
}

// TodoDTO is the JSON representation of a todo.
type TodoDTO struct {
	ID          int64   `json:"id"`
	OwnerID     int64   `json:"ownerId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"dueDate"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func toTodoDTO(t *domain.Todo) TodoDTO {
	dto := TodoDTO{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(time.RFC3339)
		dto.DueDate = &due
	}
	return dto
}

func toTodoDTOs(todos []domain.Todo) []TodoDTO {
	dtos := make([]TodoDTO, len(todos))
	for i := range todos {
		dtos[i] = toTodoDTO(&todos[i])
	}
	return dtos
}

// TokenPairDTO is the JSON representation of a login/refresh result.
type TokenPairDTO struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
}

func toTokenPairDTO(p *service.TokenPair) TokenPairDTO {
	return TokenPairDTO{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    "bearer",
	}
}

// HarvestResultDTO reports a harvest outcome.
type HarvestResultDTO struct {
	HarvestedCount int `json:"harvestedCount"`
	NewTotal       int `json:"newTotal"`
}

// HarvestRecordDTO is one harvest history entry.
type HarvestRecordDTO struct {
	ID          int64  `json:"id"`
	Count       int    `json:"count"`
	HarvestedAt string `json:"harvestedAt"`
}

func toHarvestRecordDTOs(records []domain.HarvestRecord) []HarvestRecordDTO {
	dtos := make([]HarvestRecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = HarvestRecordDTO{
			ID:          rec.ID,
			Count:       rec.Count,
			HarvestedAt: rec.HarvestedAt.Format(time.RFC3339),
		}
	}
	return dtos
}

// RankDTO describes the user's tier progression.
type RankDTO struct {
	Tier                string  `json:"tier"`
	NextTier            *string `json:"nextTier"`
	RemainingToNext     int     `json:"remainingToNext"`
	TotalCompletedCount int     `json:"totalCompletedCount"`
}

func toRankDTO(rank domain.Rank, count int) RankDTO {
	dto := RankDTO{
		Tier:                rank.Tier.Name,
		RemainingToNext:     rank.RemainingToNext,
		TotalCompletedCount: count,
	}
	if rank.NextTier != nil {
		name := rank.NextTier.Name
		dto.NextTier = &name
	}
	return dto
}

// LeaderboardEntryDTO is one ranked leaderboard row.
type LeaderboardEntryDTO struct {
	Rank          int    `json:"rank"`
	UserID        int64  `json:"userId"`
	Username      string `json:"username"`
	Count         int    `json:"count"`
	IsCurrentUser bool   `json:"isCurrentUser"`
}

func toLeaderboardEntryDTOs(entries []domain.LeaderboardEntry) []LeaderboardEntryDTO {
	dtos := make([]LeaderboardEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = LeaderboardEntryDTO{
			Rank:          e.Rank,
			UserID:        e.UserID,
			Username:      e.Username,
			Count:         e.Count,
			IsCurrentUser: e.IsCurrentUser,
		}
	}
	return dtos
}

// StatsDTO is the admin system-stats payload.
type StatsDTO struct {
	Users struct {
		Total    int `json:"total"`
		Active   int `json:"active"`
		Inactive int `json:"inactive"`
		Admins   int `json:"admins"`
	} `json:"users"`
	Todos struct {
		Total      int `json:"total"`
		Completed  int `json:"completed"`
		Pending    int `json:"pending"`
		InProgress int `json:"inProgress"`
	} `json:"todos"`
}

func toStatsDTO(stats *service.SystemStats) StatsDTO {
	var dto StatsDTO
	dto.Users.Total = stats.TotalUsers
	dto.Users.Active = stats.ActiveUsers
	dto.Users.Inactive = stats.InactiveUsers
	dto.Users.Admins = stats.AdminUsers
	dto.Todos.Total = stats.TotalTodos
	dto.Todos.Completed = stats.CompletedTodos
	dto.Todos.Pending = stats.PendingTodos
	dto.Todos.InProgress = stats.InProgressTodos
	return dto
}
