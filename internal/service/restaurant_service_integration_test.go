package service

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/unibites/campus-bites/internal/models"
	"github.com/unibites/campus-bites/internal/repository"
	"github.com/unibites/campus-bites/internal/testutil"
)

type RestaurantServiceIntegrationTestSuite struct {
	suite.Suite
	testDB            *testutil.TestDatabase
	restaurantRepo    *repository.RestaurantRepository
	restaurantService *RestaurantService
	owner             *models.User
	admin             *models.User
}

func (s *RestaurantServiceIntegrationTestSuite) SetupSuite() {
	s.testDB = testutil.SetupTestDatabase(s.T())
	s.restaurantRepo = repository.NewRestaurantRepository(s.testDB.DB)
	s.restaurantService = NewRestaurantService(s.restaurantRepo, nil)
}

func (s *RestaurantServiceIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *RestaurantServiceIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)

	owner, err := testutil.CreateTestUser("Owner", "owner@uni.edu", "Password123", models.RoleUser)
	s.Require().NoError(err)
	s.Require().NoError(s.testDB.DB.Create(owner).Error)
	s.owner = owner

	admin, err := testutil.CreateTestUser("Admin", "admin@uni.edu", "Password123", models.RoleAdmin)
	s.Require().NoError(err)
	s.Require().NoError(s.testDB.DB.Create(admin).Error)
	s.admin = admin
}

func (s *RestaurantServiceIntegrationTestSuite) createRestaurant(name string) *models.Restaurant {
	restaurant, err := s.restaurantService.Create(CreateRestaurantInput{
		Name:       name,
		Type:       models.TypeCafe,
		University: "Test University",
	}, s.owner.ID)
	s.Require().NoError(err)
	return restaurant
}

func (s *RestaurantServiceIntegrationTestSuite) TestCreate_Defaults() {
	restaurant := s.createRestaurant("Campus Coffee")

	s.NotEmpty(restaurant.ID)
	s.False(restaurant.Approved)
	s.Zero(restaurant.AverageRating)
	s.Zero(restaurant.TotalReviews)
	s.Equal(s.owner.ID, restaurant.CreatedByID)
}

func (s *RestaurantServiceIntegrationTestSuite) TestCreate_Validation() {
	_, err := s.restaurantService.Create(CreateRestaurantInput{
		Name:       "AB",
		Type:       models.TypeCafe,
		University: "Test University",
	}, s.owner.ID)
	s.ErrorIs(err, ErrInvalidInput)

	_, err = s.restaurantService.Create(CreateRestaurantInput{
		Name:       "Campus Coffee",
		Type:       models.RestaurantType("food_truck"),
		University: "Test University",
	}, s.owner.ID)
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *RestaurantServiceIntegrationTestSuite) TestList_PublicNeverSeesUnapproved() {
	approved := s.createRestaurant("Approved Cafe")
	_, err := s.restaurantService.SetApproved(approved.ID, true)
	s.Require().NoError(err)
	s.createRestaurant("Pending Cafe")

	listed, err := s.restaurantService.List(repository.RestaurantFilters{}, false)
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal("Approved Cafe", listed[0].Name)

	// An explicit approved=false filter from a public caller still
	// yields nothing unapproved.
	notApproved := false
	listed, err = s.restaurantService.List(repository.RestaurantFilters{Approved: &notApproved}, false)
	s.Require().NoError(err)
	s.Empty(listed)

	// Admins see the pending one.
	listed, err = s.restaurantService.List(repository.RestaurantFilters{Approved: &notApproved}, true)
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal("Pending Cafe", listed[0].Name)
}

func (s *RestaurantServiceIntegrationTestSuite) TestList_Filters() {
	first := s.createRestaurant("North Canteen")
	_, err := s.restaurantService.SetApproved(first.ID, true)
	s.Require().NoError(err)

	second, err := s.restaurantService.Create(CreateRestaurantInput{
		Name:       "South Cafe",
		Type:       models.TypeCampusCanteen,
		University: "Other University",
	}, s.owner.ID)
	s.Require().NoError(err)
	_, err = s.restaurantService.SetApproved(second.ID, true)
	s.Require().NoError(err)

	listed, err := s.restaurantService.List(repository.RestaurantFilters{University: "Other University"}, false)
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal("South Cafe", listed[0].Name)

	listed, err = s.restaurantService.List(repository.RestaurantFilters{Type: models.TypeCafe}, false)
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal("North Canteen", listed[0].Name)
}

func (s *RestaurantServiceIntegrationTestSuite) TestSearch_CaseInsensitive() {
	restaurant := s.createRestaurant("Golden Noodle House")
	_, err := s.restaurantService.SetApproved(restaurant.ID, true)
	s.Require().NoError(err)

	found, err := s.restaurantService.Search("golden noodle")
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(restaurant.ID, found[0].ID)

	found, err = s.restaurantService.Search("GOLDEN")
	s.Require().NoError(err)
	s.Len(found, 1)

	found, err = s.restaurantService.Search("pizza")
	s.Require().NoError(err)
	s.Empty(found)
}

func (s *RestaurantServiceIntegrationTestSuite) TestUpdate_OwnerAndAdminOnly() {
	restaurant := s.createRestaurant("Campus Coffee")
	newName := "Campus Coffee Roasters"

	_, err := s.restaurantService.Update(restaurant.ID, UpdateRestaurantInput{Name: &newName}, s.admin.ID, false)
	s.ErrorIs(err, ErrForbidden)

	updated, err := s.restaurantService.Update(restaurant.ID, UpdateRestaurantInput{Name: &newName}, s.owner.ID, false)
	s.Require().NoError(err)
	s.Equal(newName, updated.Name)

	otherName := "Renamed By Admin"
	updated, err = s.restaurantService.Update(restaurant.ID, UpdateRestaurantInput{Name: &otherName}, s.admin.ID, true)
	s.Require().NoError(err)
	s.Equal(otherName, updated.Name)
}

func (s *RestaurantServiceIntegrationTestSuite) TestTopRated_Ordering() {
	for _, spec := range []struct {
		name  string
		avg   float64
		count int
	}{
		{"Mid Cafe", 3.5, 10},
		{"Best Cafe", 4.8, 5},
		{"Tied Cafe", 4.8, 2},
	} {
		restaurant := s.createRestaurant(spec.name)
		_, err := s.restaurantService.SetApproved(restaurant.ID, true)
		s.Require().NoError(err)
		s.Require().NoError(s.restaurantRepo.UpdateRating(nil, restaurant.ID, spec.avg, spec.count))
	}

	top, err := s.restaurantService.TopRated(10)
	s.Require().NoError(err)
	s.Require().Len(top, 3)
	s.Equal("Best Cafe", top[0].Name)
	s.Equal("Tied Cafe", top[1].Name)
	s.Equal("Mid Cafe", top[2].Name)
}

func (s *RestaurantServiceIntegrationTestSuite) TestDelete_CascadesReviews() {
	restaurant := s.createRestaurant("Campus Coffee")
	review := testutil.CreateTestReview(s.owner.ID, restaurant.ID, 5)
	s.Require().NoError(s.testDB.DB.Create(review).Error)

	err := s.restaurantService.Delete(restaurant.ID, s.admin.ID, false)
	s.ErrorIs(err, ErrForbidden)

	s.Require().NoError(s.restaurantService.Delete(restaurant.ID, s.owner.ID, false))

	_, err = s.restaurantService.FindByID(restaurant.ID)
	s.ErrorIs(err, ErrRestaurantNotFound)

	var reviewCount int64
	s.Require().NoError(s.testDB.DB.Model(&models.Review{}).Where("restaurant_id = ?", restaurant.ID).Count(&reviewCount).Error)
	s.Zero(reviewCount)
}

func (s *RestaurantServiceIntegrationTestSuite) TestFindByID_NotFound() {
	_, err := s.restaurantService.FindByID("00000000-0000-0000-0000-000000000000")
	s.ErrorIs(err, ErrRestaurantNotFound)
}

func TestRestaurantServiceIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RestaurantServiceIntegrationTestSuite))
}
