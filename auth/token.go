package auth

import (
	"fmt"
	"time"

	"github.com/jlp0422/coffee-golf-leaderboard/config"
	"github.com/jlp0422/coffee-golf-leaderboard/repository"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserId int   `json:"user_id"`
	Exp    int64 `json:"exp"`
}

func (claims *Claims) FromJWTClaims(jwtClaims jwt.Claims) error {
	mapClaims, ok := jwtClaims.(jwt.MapClaims)
	if !ok {
		return fmt.Errorf("unexpected claims type")
	}
	userId, ok := mapClaims["user_id"].(float64)
	if !ok {
		return fmt.Errorf("missing user_id claim")
	}
	exp, ok := mapClaims["exp"].(float64)
	if !ok {
		return fmt.Errorf("missing exp claim")
	}
	claims.UserId = int(userId)
	claims.Exp = int64(exp)
	return nil
}

func (claims *Claims) Valid() error {
	if time.Now().Unix() > claims.Exp {
		return jwt.ErrTokenExpired
	}
	return nil
}

func CreateToken(user *repository.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"user_id": user.Id,
			"exp":     time.Now().Add(time.Hour * 24 * 21).Unix(),
		})

	tokenString, err := token.SignedString([]byte(config.Env().JWTSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Env().JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}
	return token, nil
}
