package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/jlp0422/coffee-golf-leaderboard/config"
	"github.com/jlp0422/coffee-golf-leaderboard/repository"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

type OauthState struct {
	Timeout  int64
	Redirect string
}

type OauthService struct {
	Config         *oauth2.Config
	stateMutex     sync.Mutex
	stateMap       map[string]OauthState
	userRepository *repository.UserRepository
}

type DiscordUserResponse struct {
	Id            string `json:"id"`
	Username      string `json:"username"`
	Avatar        string `json:"avatar"`
	Discriminator string `json:"discriminator"`
	GlobalName    string `json:"global_name"`
}

func NewOauthService(db *gorm.DB) *OauthService {
	env := config.Env()
	return &OauthService{
		Config: &oauth2.Config{
			ClientID:     env.DiscordClientID,
			ClientSecret: env.DiscordClientSecret,
			Scopes:       []string{"identify"},
			RedirectURL:  env.OauthRedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://discord.com/oauth2/authorize",
				TokenURL: "https://discord.com/api/oauth2/token",
			},
		},
		stateMap:       make(map[string]OauthState),
		userRepository: repository.NewUserRepository(db),
	}
}

// GetLoginURL issues a fresh state token and the Discord authorize URL.
// States expire after five minutes.
func (s *OauthService) GetLoginURL(redirect string) string {
	state := uuid.NewString()
	s.stateMutex.Lock()
	for key, existing := range s.stateMap {
		if existing.Timeout < time.Now().Unix() {
			delete(s.stateMap, key)
		}
	}
	s.stateMap[state] = OauthState{
		Timeout:  time.Now().Add(5 * time.Minute).Unix(),
		Redirect: redirect,
	}
	s.stateMutex.Unlock()
	return s.Config.AuthCodeURL(state)
}

// HandleCallback validates the state, exchanges the code and upserts the
// user. The second return is the post-login redirect target.
func (s *OauthService) HandleCallback(ctx context.Context, state string, code string) (*repository.User, string, error) {
	s.stateMutex.Lock()
	pending, ok := s.stateMap[state]
	delete(s.stateMap, state)
	s.stateMutex.Unlock()
	if !ok || pending.Timeout < time.Now().Unix() {
		return nil, "", fmt.Errorf("invalid or expired oauth state")
	}

	token, err := s.Config.Exchange(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("token exchange failed: %w", err)
	}
	discordUser, err := s.fetchDiscordUser(token)
	if err != nil {
		return nil, "", err
	}

	displayName := discordUser.GlobalName
	if displayName == "" {
		displayName = discordUser.Username
	}
	avatarUrl := ""
	if discordUser.Avatar != "" {
		avatarUrl = fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", discordUser.Id, discordUser.Avatar)
	}
	user, err := s.userRepository.GetOrCreateByDiscordId(discordUser.Id, displayName, avatarUrl)
	if err != nil {
		return nil, "", err
	}
	return user, pending.Redirect, nil
}

func (s *OauthService) fetchDiscordUser(token *oauth2.Token) (*DiscordUserResponse, error) {
	request, err := http.NewRequest("GET", "https://discord.com/api/v10/users/@me", nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Authorization", "Bearer "+token.AccessToken)
	response, err := http.DefaultClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discord user fetch returned status %d", response.StatusCode)
	}
	var discordUser DiscordUserResponse
	if err := json.NewDecoder(response.Body).Decode(&discordUser); err != nil {
		return nil, err
	}
	return &discordUser, nil
}
