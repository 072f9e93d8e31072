package service

import (
	"context"
	"errors"
	"time"

	"github.com/Kountade/MSG-SARL-sub002/internal/config"
	"github.com/Kountade/MSG-SARL-sub002/internal/dto"
	"github.com/Kountade/MSG-SARL-sub002/internal/model"
	"github.com/Kountade/MSG-SARL-sub002/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CreerUtilisateur(ctx context.Context, req dto.CreerUtilisateurRequest) (*dto.UtilisateurResponse, error)
	ListerUtilisateurs(ctx context.Context) ([]dto.UtilisateurResponse, error)
	ModifierUtilisateur(ctx context.Context, id uuid.UUID, req dto.ModifierUtilisateurRequest) (*dto.UtilisateurResponse, error)
	DesactiverUtilisateur(ctx context.Context, id uuid.UUID) error
	ReactiverUtilisateur(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo repository.UtilisateurRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UtilisateurRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.New("identifiants invalides")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("identifiants invalides")
	}

	return s.buildLoginResponse(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalide ou expiré")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims invalides")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("jeton mal formé")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("jeton mal formé")
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Actif {
		return nil, errors.New("utilisateur introuvable ou inactif")
	}

	return s.buildLoginResponse(user)
}

func (s *authService) buildLoginResponse(user *model.Utilisateur) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         *utilisateurToResponse(user),
	}, nil
}

func (s *authService) CreerUtilisateur(ctx context.Context, req dto.CreerUtilisateurRequest) (*dto.UtilisateurResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.Utilisateur{
		Username:     req.Username,
		Nom:          req.Nom,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Actif:        true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return utilisateurToResponse(user), nil
}

func (s *authService) ListerUtilisateurs(ctx context.Context) ([]dto.UtilisateurResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UtilisateurResponse, len(users))
	for i := range users {
		resp[i] = *utilisateurToResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) ModifierUtilisateur(ctx context.Context, id uuid.UUID, req dto.ModifierUtilisateurRequest) (*dto.UtilisateurResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("utilisateur introuvable")
	}
	if req.Nom != "" {
		user.Nom = req.Nom
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return utilisateurToResponse(user), nil
}

func (s *authService) DesactiverUtilisateur(ctx context.Context, id uuid.UUID) error {
	return s.repo.Desactiver(ctx, id)
}

func (s *authService) ReactiverUtilisateur(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactiver(ctx, id)
}

func (s *authService) generateToken(user *model.Utilisateur, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func utilisateurToResponse(u *model.Utilisateur) *dto.UtilisateurResponse {
	return &dto.UtilisateurResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Nom:      u.Nom,
		Email:    u.Email,
		Role:     u.Role,
		Actif:    u.Actif,
	}
}
