package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/restaurant_supply_app/internal/apperrors"
	"github.com/SscSPs/restaurant_supply_app/internal/clock"
	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	portssvc "github.com/SscSPs/restaurant_supply_app/internal/core/ports/services"
	"github.com/SscSPs/restaurant_supply_app/internal/core/services"
	"github.com/SscSPs/restaurant_supply_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InviteServiceTestSuite struct {
	suite.Suite
	mockInvite *MockInviteCodeRepository
	mockOrg    *MockOrganizationRepository
	clock      *clock.FakeClock
	service    portssvc.InviteSvcFacade
}

func (suite *InviteServiceTestSuite) SetupTest() {
	suite.mockInvite = new(MockInviteCodeRepository)
	suite.mockOrg = new(MockOrganizationRepository)
	suite.clock = clock.NewFakeClock(time.Date(2026, 5, 20, 8, 30, 0, 0, time.UTC))
	suite.service = services.NewInviteService(suite.mockInvite, suite.mockOrg, services.WithClock(suite.clock))
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		InviteCode: " Tacos-Del-Norte ",
		Name:       "Fer",
		Email:      "Fer@Example.com",
		Password:   "supersecret",
		Role:       "restaurant",
		Restaurant: "Sucursal Centro",
	}
}

func (suite *InviteServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	suite.mockInvite.On("RedeemInviteCode", ctx, "tacos-del-norte", mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "fer@example.com" && u.Restaurant == "Sucursal Centro" && u.OrganizationID == "" && u.IsActive
	}), suite.clock.Now()).Return(func() *domain.User {
		u := storedUser("new", "restaurant")
		u.OrganizationID = "tacos-del-norte"
		return u
	}(), nil).Once()

	user, err := suite.service.Register(ctx, registerRequest())

	suite.Require().NoError(err)
	suite.Equal("tacos-del-norte", user.OrganizationID)
	suite.mockInvite.AssertExpectations(suite.T())
}

func (suite *InviteServiceTestSuite) TestRegister_CodeErrors() {
	ctx := context.Background()
	testCases := []struct {
		name    string
		repoErr error
		want    error
	}{
		{"missing code", apperrors.ErrNotFound, apperrors.ErrNotFound},
		{"code already used", apperrors.ErrConflict, apperrors.ErrConflict},
		{"email taken", apperrors.ErrDuplicate, apperrors.ErrDuplicate},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.mockInvite.On("RedeemInviteCode", ctx, "tacos-del-norte", mock.AnythingOfType("domain.User"), suite.clock.Now()).
				Return(nil, tc.repoErr).Once()

			user, err := suite.service.Register(ctx, registerRequest())
			suite.Nil(user)
			suite.ErrorIs(err, tc.want)
		})
	}
}

func (suite *InviteServiceTestSuite) TestRegister_ValidatesBeforeRedeeming() {
	ctx := context.Background()
	blankCode := registerRequest()
	blankCode.InviteCode = "   "
	noRestaurant := registerRequest()
	noRestaurant.Restaurant = ""
	badRole := registerRequest()
	badRole.Role = "chef"
	shortPassword := registerRequest()
	shortPassword.Password = "abc"

	for _, req := range []dto.RegisterRequest{blankCode, noRestaurant, badRole, shortPassword} {
		_, err := suite.service.Register(ctx, req)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockInvite.AssertNotCalled(suite.T(), "RedeemInviteCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InviteServiceTestSuite) TestCreateInviteCode_Generated() {
	ctx := context.Background()
	suite.mockOrg.On("FindOrganizationByID", ctx, testOrgID).
		Return(&domain.Organization{OrganizationID: testOrgID, Name: "Centro"}, nil).Once()
	suite.mockInvite.On("SaveInviteCode", ctx, mock.AnythingOfType("domain.InviteCode")).Return(nil).Once()

	code, err := suite.service.CreateInviteCode(ctx, adminActor(), dto.CreateInviteCodeRequest{})

	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(code.Code, testOrgID+"-"), code.Code)
	suite.Len(code.Code, len(testOrgID)+1+6)
	suite.Equal(testOrgID, code.OrganizationID)
	suite.Equal("Centro", code.OrganizationName)
	suite.False(code.Used)
}

func (suite *InviteServiceTestSuite) TestCreateInviteCode_Explicit() {
	ctx := context.Background()
	suite.mockInvite.On("SaveInviteCode", ctx, mock.MatchedBy(func(c domain.InviteCode) bool {
		return c.Code == "sucursal-sur-2026"
	})).Return(nil).Once()

	code, err := suite.service.CreateInviteCode(ctx, adminActor(), dto.CreateInviteCodeRequest{
		Code: "Sucursal Sur 2026", OrganizationName: "Centro",
	})
	suite.Require().NoError(err)
	suite.Equal("sucursal-sur-2026", code.Code)
	suite.mockOrg.AssertNotCalled(suite.T(), "FindOrganizationByID", mock.Anything, mock.Anything)
}

func (suite *InviteServiceTestSuite) TestCreateInviteCode_Duplicate() {
	ctx := context.Background()
	suite.mockInvite.On("SaveInviteCode", ctx, mock.AnythingOfType("domain.InviteCode")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateInviteCode(ctx, adminActor(), dto.CreateInviteCodeRequest{Code: "abc", OrganizationName: "C"})
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *InviteServiceTestSuite) TestReleaseInviteCode() {
	ctx := context.Background()
	usedBy := "u1"
	usedAt := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	used := &domain.InviteCode{Code: "abc", OrganizationID: testOrgID, Used: true, UsedBy: &usedBy, UsedAt: &usedAt}
	suite.mockInvite.On("FindInviteCode", ctx, "abc").Return(used, nil).Once()
	suite.mockInvite.On("ReleaseInviteCode", ctx, "abc").Return(nil).Once()

	code, err := suite.service.ReleaseInviteCode(ctx, adminActor(), "ABC")
	suite.Require().NoError(err)
	suite.False(code.Used)
	// The previous redeemer stays on record after the release.
	suite.Require().NotNil(code.UsedBy)
	suite.Equal("u1", *code.UsedBy)
	suite.Require().NotNil(code.UsedAt)
	suite.Equal(usedAt, *code.UsedAt)
	suite.mockInvite.AssertExpectations(suite.T())
}

func (suite *InviteServiceTestSuite) TestReleaseInviteCode_OtherOrganization() {
	ctx := context.Background()
	suite.mockInvite.On("FindInviteCode", ctx, "abc").
		Return(&domain.InviteCode{Code: "abc", OrganizationID: "org-otra", Used: true}, nil).Once()

	_, err := suite.service.ReleaseInviteCode(ctx, adminActor(), "abc")
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockInvite.AssertNotCalled(suite.T(), "ReleaseInviteCode", mock.Anything, mock.Anything)
}

func (suite *InviteServiceTestSuite) TestListInviteCodes_AdminOnly() {
	_, err := suite.service.ListInviteCodes(context.Background(), supplierActor())
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestNormalizeInviteCode(t *testing.T) {
	assert.Equal(t, "tacos-del-norte", services.NormalizeInviteCode("  Tacos del Norte "))
	assert.Equal(t, "", services.NormalizeInviteCode("   "))
}

func TestInviteService(t *testing.T) {
	suite.Run(t, new(InviteServiceTestSuite))
}
