package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Kountade/MSG-SARL-sub002/internal/config"
	"github.com/Kountade/MSG-SARL-sub002/internal/dto"
	"github.com/Kountade/MSG-SARL-sub002/internal/model"
	"github.com/Kountade/MSG-SARL-sub002/internal/repository"
	"github.com/Kountade/MSG-SARL-sub002/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// stubUtilisateurRepo mirrors the real repository's contract: lookups by
// username only ever return active accounts.
type stubUtilisateurRepo struct {
	users map[uuid.UUID]*model.Utilisateur
}

func newStubUtilisateurRepo() *stubUtilisateurRepo {
	return &stubUtilisateurRepo{users: make(map[uuid.UUID]*model.Utilisateur)}
}

func (r *stubUtilisateurRepo) Create(_ context.Context, u *model.Utilisateur) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUtilisateurRepo) FindByUsername(_ context.Context, username string) (*model.Utilisateur, error) {
	for _, u := range r.users {
		if u.Username == username && u.Actif {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubUtilisateurRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Utilisateur, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUtilisateurRepo) List(_ context.Context) ([]model.Utilisateur, error) {
	var out []model.Utilisateur
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUtilisateurRepo) Update(_ context.Context, u *model.Utilisateur) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUtilisateurRepo) Desactiver(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Actif = false
	}
	return nil
}

func (r *stubUtilisateurRepo) Reactiver(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Actif = true
	}
	return nil
}

var _ repository.UtilisateurRepository = (*stubUtilisateurRepo)(nil)

func newAuthFixture(t *testing.T) (*stubUtilisateurRepo, service.AuthService, *model.Utilisateur) {
	t.Helper()
	repo := newStubUtilisateurRepo()
	cfg := &config.Config{
		JWTSecret:          "secret-de-test",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	svc := service.NewAuthService(repo, cfg)

	hash, err := bcrypt.GenerateFromPassword([]byte("motdepasse"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.Utilisateur{
		ID:           uuid.New(),
		Username:     "awa",
		Nom:          "Awa Diop",
		PasswordHash: string(hash),
		Role:         "vendeur",
		Actif:        true,
	}
	repo.users[user.ID] = user
	return repo, svc, user
}

func TestLoginSucces(t *testing.T) {
	_, svc, user := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "awa", Password: "motdepasse"})
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, user.ID.String(), resp.User.ID)
	assert.Equal(t, "vendeur", resp.User.Role)

	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret-de-test"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.String(), claims["user_id"])
	assert.Equal(t, "awa", claims["username"])
	assert.Equal(t, "vendeur", claims["role"])
}

func TestLoginMauvaisMotDePasse(t *testing.T) {
	_, svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "awa", Password: "faux"})
	require.Error(t, err)
	assert.Equal(t, "identifiants invalides", err.Error())
}

func TestLoginCompteDesactive(t *testing.T) {
	repo, svc, user := newAuthFixture(t)
	require.NoError(t, repo.Desactiver(context.Background(), user.ID))

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "awa", Password: "motdepasse"})
	require.Error(t, err)
	assert.Equal(t, "identifiants invalides", err.Error(), "même message que le mauvais mot de passe")
}

func TestRefreshRenouvelleLesJetons(t *testing.T) {
	_, svc, user := newAuthFixture(t)
	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "awa", Password: "motdepasse"})
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestRefreshJetonInvalide(t *testing.T) {
	_, svc, _ := newAuthFixture(t)

	_, err := svc.Refresh(context.Background(), "pas.un.jwt")
	assert.Error(t, err)
}

func TestRefreshCompteDesactive(t *testing.T) {
	repo, svc, user := newAuthFixture(t)
	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "awa", Password: "motdepasse"})
	require.NoError(t, err)

	require.NoError(t, repo.Desactiver(context.Background(), user.ID))
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.Error(t, err, "un compte désactivé ne renouvelle pas ses jetons")
}

func TestCreerUtilisateurHacheLeMotDePasse(t *testing.T) {
	repo, svc, _ := newAuthFixture(t)

	resp, err := svc.CreerUtilisateur(context.Background(), dto.CreerUtilisateurRequest{
		Username: "moussa",
		Nom:      "Moussa Ndiaye",
		Password: "tressecret1",
		Role:     "gestionnaire",
	})
	require.NoError(t, err)
	assert.True(t, resp.Actif)

	stocke, err := repo.FindByUsername(context.Background(), "moussa")
	require.NoError(t, err)
	assert.NotEqual(t, "tressecret1", stocke.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stocke.PasswordHash), []byte("tressecret1")))
}

func TestModifierUtilisateurChampsPartiels(t *testing.T) {
	_, svc, user := newAuthFixture(t)

	resp, err := svc.ModifierUtilisateur(context.Background(), user.ID, dto.ModifierUtilisateurRequest{
		Role: "administrateur",
	})
	require.NoError(t, err)
	assert.Equal(t, "administrateur", resp.Role)
	assert.Equal(t, "Awa Diop", resp.Nom, "les champs absents restent inchangés")
}
