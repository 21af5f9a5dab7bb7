package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/unibites/campus-bites/internal/models"
	"github.com/unibites/campus-bites/internal/repository"
	"github.com/unibites/campus-bites/internal/testutil"
	"github.com/unibites/campus-bites/internal/utils"
)

type AuthServiceIntegrationTestSuite struct {
	suite.Suite
	testDB      *testutil.TestDatabase
	userRepo    *repository.UserRepository
	authService *AuthService
}

func (s *AuthServiceIntegrationTestSuite) SetupSuite() {
	s.testDB = testutil.SetupTestDatabase(s.T())
	s.userRepo = repository.NewUserRepository(s.testDB.DB)
	s.authService = NewAuthService(s.userRepo, "test-secret", time.Hour, "test")
}

func (s *AuthServiceIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *AuthServiceIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *AuthServiceIntegrationTestSuite) TestRegister_Success() {
	user, token, err := s.authService.Register("Ada Student", "ada@uni.edu", "Password123", "Test University")

	s.Require().NoError(err)
	s.NotEmpty(token)
	s.NotEmpty(user.ID)
	s.Equal("ada@uni.edu", user.Email)
	s.Equal(models.RoleUser, user.Role)
	s.True(user.IsActive)
	s.NotEqual("Password123", user.PasswordHash)

	claims, err := utils.ValidateToken(token, "test-secret")
	s.Require().NoError(err)
	s.Equal(user.ID, claims.UserID)
}

func (s *AuthServiceIntegrationTestSuite) TestRegister_DuplicateEmail() {
	_, _, err := s.authService.Register("Ada Student", "ada@uni.edu", "Password123", "Test University")
	s.Require().NoError(err)

	_, _, err = s.authService.Register("Other Person", "ada@uni.edu", "Password456", "Test University")
	s.ErrorIs(err, ErrEmailAlreadyExists)
}

func (s *AuthServiceIntegrationTestSuite) TestRegister_ValidationFailures() {
	cases := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"short name", "A", "ada@uni.edu", "Password123"},
		{"bad email", "Ada Student", "not-an-email", "Password123"},
		{"short password", "Ada Student", "ada@uni.edu", "short"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, _, err := s.authService.Register(tc.userName, tc.email, tc.password, "Test University")
			s.ErrorIs(err, ErrInvalidInput)
		})
	}
}

func (s *AuthServiceIntegrationTestSuite) TestLogin_Success() {
	registered, _, err := s.authService.Register("Ada Student", "ada@uni.edu", "Password123", "Test University")
	s.Require().NoError(err)

	user, token, err := s.authService.Login("ada@uni.edu", "Password123")
	s.Require().NoError(err)
	s.Equal(registered.ID, user.ID)
	s.NotEmpty(token)
}

func (s *AuthServiceIntegrationTestSuite) TestLogin_WrongPassword() {
	_, _, err := s.authService.Register("Ada Student", "ada@uni.edu", "Password123", "Test University")
	s.Require().NoError(err)

	_, _, err = s.authService.Login("ada@uni.edu", "WrongPassword")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceIntegrationTestSuite) TestLogin_UnknownEmail() {
	_, _, err := s.authService.Login("nobody@uni.edu", "Password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceIntegrationTestSuite) TestLogin_DeactivatedAccount() {
	user, _, err := s.authService.Register("Ada Student", "ada@uni.edu", "Password123", "Test University")
	s.Require().NoError(err)

	user.IsActive = false
	s.Require().NoError(s.userRepo.Save(user))

	_, _, err = s.authService.Login("ada@uni.edu", "Password123")
	s.ErrorIs(err, ErrAccountDeactivated)
}

func (s *AuthServiceIntegrationTestSuite) TestProfile() {
	user, _, err := s.authService.Register("Ada Student", "ada@uni.edu", "Password123", "Test University")
	s.Require().NoError(err)

	profile, err := s.authService.Profile(user.ID)
	s.Require().NoError(err)
	s.Equal(user.Email, profile.Email)

	_, err = s.authService.Profile("00000000-0000-0000-0000-000000000000")
	s.ErrorIs(err, ErrUserNotFound)
}

func TestAuthServiceIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceIntegrationTestSuite))
}
